package commands

import (
	"MoodKeeper/internal/cli/api"
	"MoodKeeper/internal/cli/state"
	"MoodKeeper/internal/journal"
	"errors"
	"fmt"
	"io"
	"time"
)

const dateLayout = "02/01/2006 15:04"

func printRecords(w io.Writer, recs []journal.Record) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No records yet.")
		return
	}
	for _, r := range recs {
		line := fmt.Sprintf("- %s  [%s] %s", r.CreatedAt.Local().Format(dateLayout), journal.Label(string(r.Category)), journal.Title(r))
		if r.Content != "" {
			line += ": " + journal.Excerpt(r.Content)
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "Total: %d\n", len(recs))
}

func printSummary(w io.Writer, s journal.Summary) {
	fmt.Fprintf(w, "Records in the last 7 days: %d\n", s.RecordsLastWeek)
	fmt.Fprintf(w, "Most common category: %s\n", journal.Label(s.MostCommonCategory))
	fmt.Fprintf(w, "Sleep records: %d\n", s.SleepRecordCount)
}

func printStale(w io.Writer, syncedAt time.Time) {
	fmt.Fprintf(w, "(offline: showing records cached at %s)\n", syncedAt.Local().Format(dateLayout))
}

// printView рисует экран watch из состояния.
func printView(w io.Writer, s state.State) {
	fmt.Fprintf(w, "\n== %s, window %s ==\n", time.Now().Format(dateLayout), s.Window)
	printRecords(w, s.Records)
	printSummary(w, s.Summary)
	if s.Message != "" {
		fmt.Fprintln(w, "!", s.Message)
	}
}

// describe превращает ошибку в текст для пользователя.
func describe(err error) string {
	switch {
	case errors.Is(err, api.ErrRecentLoginRequired):
		return api.ErrRecentLoginRequired.Error()
	case errors.Is(err, journal.ErrValidation):
		return err.Error()
	case errors.Is(err, api.ErrUnauthenticated):
		return "not signed in, run `mkcli login <login> <password>`"
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 500 {
		return "the server could not complete the request, please try again"
	}
	return err.Error()
}
