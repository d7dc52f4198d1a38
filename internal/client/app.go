package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-profile-keeper/internal/adapter"
	"github.com/MKhiriev/go-profile-keeper/internal/config"
	"github.com/MKhiriev/go-profile-keeper/internal/logger"
	"github.com/MKhiriev/go-profile-keeper/models"
	"github.com/charmbracelet/lipgloss"
)

const usage = `usage: profile-client [flags] <command> [args]

commands:
  register <username> <password>
  login <username> <password>
  logout
  profile <username>
  passwd <username> <new-password>
  rename <username> <first-name> <last-name>
  avatar <username> <image-path>
  upload <username> <file-path>
  files <username>
  delete <username> <confirm-username>
  version`

type command struct {
	args int
	run  func(ctx context.Context, args []string) error
}

type App struct {
	server adapter.ServerAdapter
	token  tokenFile
	out    io.Writer

	commands map[string]command

	logger *logger.Logger
}

func NewApp(server adapter.ServerAdapter, cfg config.Client, out io.Writer, logger *logger.Logger) (*App, error) {
	a := &App{
		server: server,
		token:  tokenFile{path: cfg.TokenFile},
		out:    out,
		logger: logger,
	}

	token, err := a.token.load()
	if err != nil {
		return nil, err
	}
	server.SetToken(token)

	a.commands = map[string]command{
		"register": {2, a.register},
		"login":    {2, a.login},
		"logout":   {0, a.logout},
		"profile":  {1, a.profile},
		"passwd":   {2, a.changePassword},
		"rename":   {3, a.rename},
		"avatar":   {2, a.setAvatar},
		"upload":   {2, a.upload},
		"files":    {1, a.files},
		"delete":   {2, a.deleteAccount},
		"version":  {0, a.version},
	}
	return a, nil
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, usage)
		return ErrUsage
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		fmt.Fprintln(a.out, usage)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}
	if len(args)-1 != cmd.args {
		fmt.Fprintln(a.out, usage)
		return fmt.Errorf("%w: %s takes %d", ErrUsage, args[0], cmd.args)
	}

	a.logger.Debug().Str("command", args[0]).Msg("running command")
	return cmd.run(ctx, args[1:])
}

func (a *App) register(ctx context.Context, args []string) error {
	redirect, err := a.server.Register(ctx, models.Credentials{Username: args[0], Password: args[1]})
	if err != nil {
		return err
	}
	return a.sessionStarted(redirect)
}

func (a *App) login(ctx context.Context, args []string) error {
	redirect, err := a.server.Login(ctx, models.Credentials{Username: args[0], Password: args[1]})
	if err != nil {
		return err
	}
	return a.sessionStarted(redirect)
}

func (a *App) sessionStarted(redirect string) error {
	if err := a.token.save(a.server.Token()); err != nil {
		return err
	}
	a.printOK("signed in, profile at " + redirect)
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if err := a.server.Logout(ctx); err != nil {
		return err
	}
	if err := a.token.save(""); err != nil {
		return err
	}
	a.printOK("signed out")
	return nil
}

func (a *App) profile(ctx context.Context, args []string) error {
	view, err := a.server.Profile(ctx, args[0])
	if err != nil {
		return err
	}

	lines := []string{
		titleStyle.Render(view.Username),
		field("first name", view.FirstName),
		field("last name", view.LastName),
		field("avatar", view.Avatar),
		field("files", strings.Join(view.Files, ", ")),
	}
	if view.ShowOptions {
		lines = append(lines, labelStyle.Render("you own this profile"))
	}

	fmt.Fprintln(a.out, boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	return nil
}

func (a *App) changePassword(ctx context.Context, args []string) error {
	if err := a.server.ChangePassword(ctx, args[0], args[1]); err != nil {
		return err
	}
	a.printOK("password changed")
	return nil
}

func (a *App) rename(ctx context.Context, args []string) error {
	if err := a.server.Rename(ctx, args[0], args[1], args[2]); err != nil {
		return err
	}
	a.printOK("name updated")
	return nil
}

func (a *App) setAvatar(ctx context.Context, args []string) error {
	return a.withFile(args[1], func(name string, r io.Reader) error {
		if err := a.server.SetAvatar(ctx, args[0], name, r); err != nil {
			return err
		}
		a.printOK("avatar updated")
		return nil
	})
}

func (a *App) upload(ctx context.Context, args []string) error {
	return a.withFile(args[1], func(name string, r io.Reader) error {
		if err := a.server.UploadFile(ctx, args[0], name, r); err != nil {
			return err
		}
		a.printOK("uploaded " + name)
		return nil
	})
}

func (a *App) files(ctx context.Context, args []string) error {
	names, err := a.server.ListFiles(ctx, args[0])
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(a.out, name)
	}
	return nil
}

func (a *App) deleteAccount(ctx context.Context, args []string) error {
	if err := a.server.DeleteAccount(ctx, args[0], args[1]); err != nil {
		return err
	}
	if err := a.token.save(""); err != nil {
		return err
	}
	a.printOK("account deleted")
	return nil
}

func (a *App) version(ctx context.Context, _ []string) error {
	v, err := a.server.Version(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, v)
	return nil
}

func (a *App) withFile(path string, fn func(name string, r io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return fn(filepath.Base(path), f)
}

func (a *App) printOK(msg string) {
	fmt.Fprintln(a.out, okStyle.Render(msg))
}

func field(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}
