package realtime

import (
	"testing"

	"go.uber.org/goleak"
)

// Форвардеры шины не должны переживать отмену своего контекста.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
