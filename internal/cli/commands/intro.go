package commands

import (
	fsrepo "MoodKeeper/internal/cli/repo/fs"
	"MoodKeeper/internal/config"
	"MoodKeeper/internal/wellness"
	"context"
	"fmt"
)

const introText = `MoodKeeper is a private journal for your mood, sleep, health and habits.
Add short entries as your day goes, browse your history and look at simple insights.
Your records are visible only to you. Deleting your account removes all of them.

MoodKeeper is not a medical service. If you need support, reach out:`

type introCmd struct{}

func (introCmd) Name() string        { return "intro" }
func (introCmd) Description() string { return "Show the introduction and unlock the other commands" }
func (introCmd) Usage() string       { return "intro" }

func (introCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	fmt.Fprintln(Out, introText)
	for _, r := range wellness.Resources() {
		fmt.Fprintf(Out, "  %s (%s): %s\n", r.Name, r.Contact, r.Link)
	}
	if err := fsrepo.NewFSStore(cfg.StateDir).MarkIntroSeen(); err != nil {
		return fmt.Errorf("save intro flag: %w", err)
	}
	fmt.Fprintln(Out, "\nYou are all set. Run `mkcli register` or `mkcli login` to start.")
	return nil
}

func init() { RegisterCmd(introCmd{}) }
