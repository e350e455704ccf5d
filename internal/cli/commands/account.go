package commands

import (
	"MoodKeeper/internal/config"
	"context"
	"flag"
	"fmt"
	"io"
)

type deleteAccountCmd struct{}

func (deleteAccountCmd) Name() string { return "delete-account" }
func (deleteAccountCmd) Description() string {
	return "Delete all your records and then your account"
}
func (deleteAccountCmd) Usage() string { return "delete-account --yes" }

func (deleteAccountCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("delete-account", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	yes := fs.Bool("yes", false, "confirm deletion")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 || !*yes {
		return ErrUsage
	}

	svc, done := newDeps(cfg).account(cfg)
	defer done()
	n, err := svc.Delete(ctx)
	if err != nil {
		if n > 0 {
			fmt.Fprintf(Out, "%d record(s) were deleted before the failure.\n", n)
		}
		return err
	}
	fmt.Fprintf(Out, "Account deleted together with %d record(s)\n", n)
	return nil
}

func init() { RegisterCmd(deleteAccountCmd{}) }
