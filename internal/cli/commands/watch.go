package commands

import (
	"MoodKeeper/internal/cli/api"
	"MoodKeeper/internal/cli/repo"
	"MoodKeeper/internal/cli/service"
	"MoodKeeper/internal/cli/state"
	"MoodKeeper/internal/config"
	"MoodKeeper/internal/journal"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
)

type watchCmd struct{}

func (watchCmd) Name() string        { return "watch" }
func (watchCmd) Description() string { return "Follow records and insights live (Ctrl+C to stop)" }
func (watchCmd) Usage() string       { return "watch [--window 7|30|90|all]" }

func (watchCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	raw := fs.String("window", "", "history window in days or all")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}
	window, err := journal.ParseWindow(*raw)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dp := newDeps(cfg)
	store := state.NewStore(state.Initial(true))
	// выход из сессии останавливает наблюдение
	stopObserving := dp.session.Observe(func(u *repo.User) {
		if u == nil {
			store.Dispatch(state.SignedOut{})
			cancel()
			return
		}
		store.Dispatch(state.SignedIn{User: *u})
	})
	defer stopObserving()

	u, err := dp.session.Refresh(ctx)
	if err != nil {
		return err
	}
	if u == nil {
		return api.ErrUnauthenticated
	}

	store.Dispatch(state.Navigate{To: state.ViewHistory})
	store.Dispatch(state.WindowChanged{Window: window})

	unsubscribe := store.Subscribe(func(s state.State) { printView(Out, s) })
	defer unsubscribe()

	svc, done := dp.journal(cfg)
	defer done()

	fmt.Fprintf(Out, "Watching records of %s...\n", u.Name)
	err = svc.Watch(ctx, window, func(v service.View) {
		store.Dispatch(state.SnapshotReceived{Records: v.Records, Summary: v.Summary})
	}, func(err error) {
		store.Dispatch(state.Failed{Err: err})
	})
	if errors.Is(err, api.ErrAccountDeleted) {
		unsubscribe()
		fmt.Fprintln(Out, "Your account was deleted.")
		if err := dp.session.SignOut(ctx); err != nil {
			log.Debugw("sign out after account deletion", "err", err)
		}
		return nil
	}
	return err
}

func init() { RegisterCmd(watchCmd{}) }
