package commands

import (
	"MoodKeeper/internal/config"
	"context"
	"fmt"
	"strings"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account and sign in" }
func (registerCmd) Usage() string       { return "register <login> <password> [display name]" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	d := newDeps(cfg)
	u, err := d.session.Register(ctx, args[0], args[1], strings.Join(args[2:], " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Welcome, %s! Registered and logged in\n", u.Name)
	return nil
}

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store auth cookie" }
func (loginCmd) Usage() string       { return "login <login> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	d := newDeps(cfg)
	u, err := d.session.SignIn(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Hello, %s! Logged in successfully\n", u.Name)
	return nil
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Sign out and forget the local session" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	if err := newDeps(cfg).session.SignOut(ctx); err != nil {
		// локальная сессия уже очищена, сервер мог быть недоступен
		log.Warnw("logout", "err", err)
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show the signed-in user" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	u, err := newDeps(cfg).session.Current(ctx)
	if err != nil {
		return err
	}
	if u == nil {
		fmt.Fprintln(Out, "Not logged in")
		return nil
	}
	fmt.Fprintf(Out, "Logged in as %s (%s)\n", u.Name, u.Login)
	return nil
}

func init() {
	RegisterCmd(registerCmd{})
	RegisterCmd(loginCmd{})
	RegisterCmd(logoutCmd{})
	RegisterCmd(statusCmd{})
}
