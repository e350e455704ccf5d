package commands

import (
	"MoodKeeper/internal/config"
	"MoodKeeper/internal/wellness"
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"time"
)

// rng можно подменить в тестах.
var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

type tipCmd struct{}

func (tipCmd) Name() string        { return "tip" }
func (tipCmd) Description() string { return "Show wellness tips and support resources" }
func (tipCmd) Usage() string       { return "tip [-n count]" }

func (tipCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tip", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	n := fs.Int("n", 1, "number of tips")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 || *n < 1 {
		return ErrUsage
	}

	tip := wellness.RandomTip(rng)
	for i := 0; i < *n; i++ {
		if i > 0 {
			tip = wellness.NextTip(tip, rng)
		}
		fmt.Fprintf(Out, "* %s\n  %s\n", tip.Title, tip.Content)
	}
	fmt.Fprintln(Out, "\nSupport:")
	for _, r := range wellness.Resources() {
		fmt.Fprintf(Out, "  %s (%s): %s\n", r.Name, r.Contact, r.Link)
	}
	return nil
}

func init() { RegisterCmd(tipCmd{}) }
