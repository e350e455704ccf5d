package handlers_test

import (
	"MoodKeeper/internal/journal"
	"MoodKeeper/internal/model"
	"MoodKeeper/internal/realtime"
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sseEvent struct {
	name string
	data string
}

// readEvent читает одно SSE-событие, пропуская комментарии.
func readEvent(t *testing.T, r *bufio.Reader) sseEvent {
	t.Helper()
	var ev sseEvent
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			if ev.name != "" || ev.data != "" {
				return ev
			}
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event: "):
			ev.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			ev.data = strings.TrimPrefix(line, "data: ")
		}
	}
}

func openStream(t *testing.T, env *testEnv, userID int64) (*bufio.Reader, context.CancelFunc) {
	t.Helper()
	srv := httptest.NewServer(env.router)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/records/stream", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/event-stream")
	addAuthCookie(t, req, userID)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return bufio.NewReader(resp.Body), cancel
}

func TestStream_SnapshotOnOpenAndOnChange(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now().UTC()
	first := []model.Record{{ID: "a", UserID: 6, Category: "Humor", CategoryValue: "Good", CreatedAt: now.Add(-time.Hour)}}
	second := append([]model.Record{{ID: "b", UserID: 6, Category: "Sleep", CategoryValue: "EightPlus", CreatedAt: now}}, first...)
	env.records.On("ListByUser", mock.Anything, int64(6)).Return(first, nil).Once()
	env.records.On("ListByUser", mock.Anything, int64(6)).Return(second, nil)

	r, cancel := openStream(t, env, 6)
	defer cancel()

	ev := readEvent(t, r)
	assert.Equal(t, "snapshot", ev.name)
	var snap []journal.Record
	require.NoError(t, json.Unmarshal([]byte(ev.data), &snap))
	assert.Len(t, snap, 1)

	// изменение другого пользователя не должно дойти
	env.hub.Broadcast(realtime.Message{Channel: realtime.UserChannel(7), Event: realtime.EventRecordsChanged})
	env.hub.Broadcast(realtime.Message{Channel: realtime.UserChannel(6), Event: realtime.EventRecordsChanged})

	ev = readEvent(t, r)
	assert.Equal(t, "snapshot", ev.name)
	require.NoError(t, json.Unmarshal([]byte(ev.data), &snap))
	if assert.Len(t, snap, 2) {
		assert.Equal(t, "b", snap[0].ID)
	}
}

func TestStream_EndsOnAccountDeleted(t *testing.T) {
	env := newTestEnv(t)
	env.records.On("ListByUser", mock.Anything, int64(8)).Return([]model.Record{}, nil)

	r, cancel := openStream(t, env, 8)
	defer cancel()

	ev := readEvent(t, r)
	assert.Equal(t, "snapshot", ev.name)
	assert.Equal(t, "[]", ev.data)

	env.hub.Broadcast(realtime.Message{Channel: realtime.UserChannel(8), Event: realtime.EventAccountDeleted})
	ev = readEvent(t, r)
	assert.Equal(t, "account-deleted", ev.name)
}
