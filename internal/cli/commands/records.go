package commands

import (
	"MoodKeeper/internal/config"
	"MoodKeeper/internal/journal"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
)

type addCmd struct{}

func (addCmd) Name() string        { return "add" }
func (addCmd) Description() string { return "Add a journal record" }
func (addCmd) Usage() string {
	return "add [--content text] [--pain|--screen|--severity id] <category> [value]"
}

func (addCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var d journal.Draft
	fs.StringVar(&d.Content, "content", "", "free-text note")
	fs.StringVar(&d.PainValue, "pain", "", "pain for Health records")
	fs.StringVar(&d.ScreenTimeValue, "screen", "", "time spent for ScreenTime records")
	fs.StringVar(&d.SeverityValue, "severity", "", "intensity for Cycle records")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	rest := fs.Args()
	if len(rest) < 1 || len(rest) > 2 {
		return ErrUsage
	}
	cat, ok := findCategory(rest[0])
	if !ok {
		return fmt.Errorf("%w: %q (see `mkcli categories`)", journal.ErrUnknownCategory, rest[0])
	}
	d.Category = cat
	if len(rest) == 2 {
		d.CategoryValue = rest[1]
	}

	dp := newDeps(cfg)
	svc, done := dp.journal(cfg)
	defer done()
	rec, err := svc.Add(ctx, d)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Saved: %s\n", journal.Title(rec))
	return nil
}

// findCategory ищет категорию без учёта регистра.
func findCategory(name string) (journal.Category, bool) {
	for _, c := range journal.Categories() {
		if strings.EqualFold(string(c), name) {
			return c, true
		}
	}
	return "", false
}

type historyCmd struct{}

func (historyCmd) Name() string        { return "history" }
func (historyCmd) Description() string { return "Show records, newest first" }
func (historyCmd) Usage() string       { return "history [--window 7|30|90|all]" }

func (historyCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	raw := fs.String("window", "", "history window in days or all")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}
	window, err := journal.ParseWindow(*raw)
	if err != nil {
		return err
	}

	dp := newDeps(cfg)
	svc, done := dp.journal(cfg)
	defer done()
	h, err := svc.History(ctx, window)
	if err != nil {
		return err
	}
	if h.Stale {
		printStale(Out, h.SyncedAt)
	}
	printRecords(Out, h.Records)
	return nil
}

type insightsCmd struct{}

func (insightsCmd) Name() string        { return "insights" }
func (insightsCmd) Description() string { return "Show a summary of your records" }
func (insightsCmd) Usage() string       { return "insights [--server]" }

// Run без --server считает сводку локально и при недоступном сервере берёт записи из кэша.
// С --server сводку считает сервер.
func (insightsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("insights", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	remote := fs.Bool("server", false, "ask the server for the summary")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}
	dp := newDeps(cfg)
	if *remote {
		sum, err := dp.client.Insights(ctx)
		if err != nil {
			return err
		}
		printSummary(Out, sum)
		return nil
	}
	svc, done := dp.journal(cfg)
	defer done()
	sum, stale, err := svc.Insights(ctx)
	if err != nil {
		return err
	}
	if stale {
		fmt.Fprintln(Out, "(offline: based on cached records)")
	}
	printSummary(Out, sum)
	return nil
}

func init() {
	RegisterCmd(addCmd{})
	RegisterCmd(historyCmd{})
	RegisterCmd(insightsCmd{})
}
