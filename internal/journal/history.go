package journal

import (
	"fmt"
	"strings"
	"time"
)

// Window - окно истории в днях. WindowAll отключает фильтрацию.
type Window int

const (
	WindowAll     Window = 0
	WindowWeek    Window = 7
	WindowMonth   Window = 30
	WindowQuarter Window = 90

	DefaultWindow = WindowWeek
)

func (w Window) String() string {
	if w <= WindowAll {
		return "all"
	}
	return fmt.Sprintf("%dd", int(w))
}

// ParseWindow разбирает значение фильтра из CLI или query-параметра.
// Пустая строка даёт окно по умолчанию (неделя).
func ParseWindow(s string) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultWindow, nil
	case "7", "7d", "week":
		return WindowWeek, nil
	case "30", "30d", "month":
		return WindowMonth, nil
	case "90", "90d", "quarter":
		return WindowQuarter, nil
	case "all":
		return WindowAll, nil
	}
	return 0, fmt.Errorf("unknown window %q (use 7, 30, 90 or all)", s)
}

// FilterByWindow возвращает записи с createdAt строго позже now-w дней, сохраняя порядок.
// Для WindowAll вход возвращается без изменений.
func FilterByWindow(records []Record, w Window, now time.Time) []Record {
	if w <= WindowAll {
		return records
	}
	cutoff := now.AddDate(0, 0, -int(w))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.CreatedAt.After(cutoff) {
			out = append(out, r)
		}
	}
	return out
}
