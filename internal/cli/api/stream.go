package api

import (
	"MoodKeeper/internal/journal"
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxEventSize = 8 << 20

// Event - одно SSE-событие.
type Event struct {
	Name string
	Data string
}

// ReadEvents разбирает поток text/event-stream и вызывает fn на каждое событие.
// Комментарии (строки с ':') пропускаются, многострочные data склеиваются через '\n'.
// Останавливается на ошибке fn или конце потока (io.EOF не считается ошибкой).
func ReadEvents(r io.Reader, fn func(Event) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxEventSize)

	var (
		ev   Event
		data []string
	)
	flush := func() error {
		if ev.Name == "" && len(data) == 0 {
			return nil
		}
		ev.Data = strings.Join(data, "\n")
		if ev.Name == "" {
			ev.Name = "message"
		}
		err := fn(ev)
		ev, data = Event{}, nil
		return err
	}

	for sc.Scan() {
		line := sc.Text()
		switch {
		case line == "":
			if err := flush(); err != nil {
				return err
			}
		case strings.HasPrefix(line, ":"):
		default:
			field, value, _ := strings.Cut(line, ":")
			value = strings.TrimPrefix(value, " ")
			switch field {
			case "event":
				ev.Name = value
			case "data":
				data = append(data, value)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return flush()
}

// Subscribe держит поток /api/records/stream. Битые события отдаются в onError,
// чтение продолжается. Возвращает ErrAccountDeleted, если сервер сообщил об удалении аккаунта,
// и nil при отмене ctx.
func (c *Client) Subscribe(ctx context.Context, onSnapshot func([]journal.Record), onError func(error)) error {
	if onError == nil {
		onError = func(error) {}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/records/stream", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	c.authorize(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return decodeError(resp.StatusCode, body)
	}

	err = ReadEvents(resp.Body, func(ev Event) error {
		switch ev.Name {
		case "snapshot":
			var recs []journal.Record
			if err := json.Unmarshal([]byte(ev.Data), &recs); err != nil {
				onError(fmt.Errorf("malformed snapshot: %w", err))
				return nil
			}
			onSnapshot(recs)
		case "account-deleted":
			return ErrAccountDeleted
		case "error":
			onError(decodeError(http.StatusInternalServerError, []byte(ev.Data)))
		}
		return nil
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}
