package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/idilsaglam/easycontact/internal/api"
	"github.com/idilsaglam/easycontact/internal/auth"
	"github.com/idilsaglam/easycontact/internal/config"
	"github.com/idilsaglam/easycontact/internal/model"
	"github.com/idilsaglam/easycontact/internal/session"
	"github.com/idilsaglam/easycontact/internal/tui"
	"github.com/idilsaglam/easycontact/internal/ui"
)

// Options tune behavior from root flags.
type Options struct {
	APIURL  string // overrides EASYCONTACT_API_URL
	Theme   string // overrides EASYCONTACT_THEME
	NoColor bool
	In      io.Reader // prompts read from here; nil means stdin
}

type runner struct {
	app *app
	in  *bufio.Reader
	ctx context.Context
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]
	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		PrintHelp()
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		ui.Fail("config: " + err.Error())
		return 1
	}
	if opt.APIURL != "" {
		cfg.APIURL = strings.TrimRight(opt.APIURL, "/")
	}
	if opt.Theme != "" {
		cfg.Theme = opt.Theme
	}
	ui.SetTheme(cfg.Theme)
	if opt.NoColor {
		ui.SetColorForcing(false, true)
	}

	interactive := cmd == "explore" || cmd == "tui"
	ap, err := newApp(cfg, interactive)
	if err != nil {
		ui.Fail("init: " + err.Error())
		return 1
	}
	defer ap.Close()

	in := opt.In
	if in == nil {
		in = os.Stdin
	}
	r := &runner{app: ap, in: bufio.NewReader(in), ctx: context.Background()}

	switch cmd {
	case "explore", "tui":
		return r.explore()
	case "login":
		return r.login(a)
	case "register":
		return r.register(a)
	case "logout":
		return r.logout(a)
	case "ls":
		return r.list()
	case "show":
		if len(a) != 1 {
			ui.Fail("usage: easycontact show <id>")
			return 2
		}
		return r.show(a[0])
	case "add":
		if len(a) == 0 {
			ui.Fail("usage: easycontact add <title> [description...]")
			return 2
		}
		return r.add(a[0], strings.Join(a[1:], " "))
	case "edit":
		return r.edit(a)
	case "rm":
		return r.remove(a)
	case "profile":
		return r.profile()
	case "avatar":
		if len(a) != 1 {
			ui.Fail("usage: easycontact avatar <1-5|url>")
			return 2
		}
		return r.avatar(a[0])
	case "auth":
		if len(a) == 0 {
			ui.Fail("usage: easycontact auth <status|whoami>")
			return 2
		}
		switch a[0] {
		case "status":
			return r.authStatus()
		case "whoami":
			return r.authWhoAmI()
		default:
			ui.Fail("usage: easycontact auth <status|whoami>")
			return 2
		}
	}

	ui.Fail("unknown subcommand: " + cmd)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Fprint(ui.Stdout(), `easycontact - contacts from the terminal

Usage:
  easycontact [flags] <subcommand> [args]

Subcommands:
  explore                      Interactive screens (login, contacts, profile)
  login [username]             Log in; prompts for what is missing
  register [username] [email]  Create an account
  logout [--yes]               Forget the stored token (asks first)
  ls                           List contacts
  show <id>                    Show one contact
  add <title> [description...] Add a contact
  edit <id> [--title T] [--description D]
  rm <id> [--yes]              Delete a contact (asks first)
  profile                      Show your profile
  avatar <1-5|url>             Change your avatar
  auth <status|whoami>         Inspect the stored token

Environment:
  EASYCONTACT_API_URL, EASYCONTACT_TOKEN, EASYCONTACT_HOME,
  EASYCONTACT_TOKEN_BACKEND (file|sqlite), EASYCONTACT_HTTP_TIMEOUT,
  LOG_LEVEL, LOG_FORMAT, EASYCONTACT_LOG_FILE, EASYCONTACT_THEME

Examples:
  easycontact login alice
  easycontact add "Bob" "+33 6 12 34 56 78"
  easycontact edit 64f0c2 --title "Robert"
  easycontact rm 64f0c2 --yes
`)
}

// ---------------------------------------------------
// prompts
// ---------------------------------------------------

func (r *runner) prompt(label string) (string, error) {
	fmt.Fprint(ui.Stdout(), label)
	line, err := r.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.TrimSpace(label), ":"), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (r *runner) confirm(question string) bool {
	answer, err := r.prompt(question + " [y/N]: ")
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// fail reports err the way the screens do: server message first, fallback otherwise.
func fail(what string, err error) int {
	msg := api.UserMessage(err, err.Error())
	ui.Fail(what + ": " + msg)
	if api.KindOf(err) == api.KindAuth {
		ui.Hint("Hint: run `easycontact login` or set EASYCONTACT_TOKEN")
	}
	return 1
}

// ---------------------------------------------------
// auth subcommands
// ---------------------------------------------------

func (r *runner) explore() int {
	if err := tui.Run(r.app.tuiDeps()); err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	return 0
}

func (r *runner) login(a []string) int {
	var username string
	if len(a) > 0 {
		username = a[0]
	} else {
		u, err := r.prompt("Username: ")
		if err != nil {
			ui.Fail(err.Error())
			return 1
		}
		username = u
	}
	password, err := r.prompt("Password: ")
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	if err := r.app.flow.Login(r.ctx, username, password); err != nil {
		ui.Fail(auth.Message(err))
		return 1
	}
	ui.OK(auth.LoginSuccessMessage)
	return 0
}

func (r *runner) register(a []string) int {
	var reg model.Registration
	var err error
	if len(a) > 0 {
		reg.Username = a[0]
	} else if reg.Username, err = r.prompt("Username: "); err != nil {
		ui.Fail(err.Error())
		return 1
	}
	if len(a) > 1 {
		reg.Email = a[1]
	} else if reg.Email, err = r.prompt("Email: "); err != nil {
		ui.Fail(err.Error())
		return 1
	}
	if reg.Password, err = r.prompt("Password: "); err != nil {
		ui.Fail(err.Error())
		return 1
	}
	if err := r.app.flow.Register(r.ctx, reg); err != nil {
		ui.Fail(auth.Message(err))
		return 1
	}
	ui.OK("registered; run `easycontact login " + strings.TrimSpace(reg.Username) + "`")
	return 0
}

func (r *runner) logout(a []string) int {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	yes := fs.Bool("yes", false, "skip the confirmation")
	if err := fs.Parse(a); err != nil {
		return 2
	}
	flow := r.app.flow
	flow.RequestLogout()
	if !*yes && !r.confirm("Are you sure you want to logout?") {
		flow.CancelLogout()
		ui.Muted("cancelled")
		return 0
	}
	err := flow.ConfirmLogout()
	switch {
	case errors.Is(err, session.ErrEnvManaged):
		ui.Warn("token is provided by EASYCONTACT_TOKEN env var (nothing to delete)")
		return 0
	case err != nil:
		ui.Fail("logout: " + err.Error())
		return 1
	}
	ui.OK("logged out")
	return 0
}

func (r *runner) authStatus() int {
	token, err := r.app.tokens.Get()
	if err != nil {
		ui.Fail("read token: " + err.Error())
		return 1
	}
	if token == "" {
		ui.Muted("not logged in")
		ui.Info("Run: easycontact login")
		return 0
	}
	source := r.app.cfg.TokenBackend
	if r.app.cfg.EnvToken != "" {
		source = "env"
	}
	lines := []string{ui.Field("source", source), ui.Field("api", r.app.client.BaseURL())}
	if c, err := session.Inspect(token); err == nil && c.ExpiresAt != nil {
		exp := c.ExpiresAt.UTC().Format(time.RFC3339)
		if c.Expired(time.Now()) {
			exp += " (expired)"
		}
		lines = append(lines, ui.Field("expires", exp))
	} else {
		lines = append(lines, ui.Field("expires", "(unknown)"))
	}
	lines = append(lines, ui.Field("env override", "EASYCONTACT_TOKEN"))
	ui.Panel(lines)
	return 0
}

// whoami decodes JWT claims locally (unverified); opaque tokens print basic info.
func (r *runner) authWhoAmI() int {
	token, _ := r.app.tokens.Get()
	if token == "" {
		ui.Fail("not logged in. Run: easycontact login")
		return 2
	}
	c, err := session.Inspect(token)
	if err != nil {
		ui.Info("Opaque token (cannot introspect locally).")
		return 0
	}
	lines := []string{ui.Title("JWT claims (unverified)")}
	if c.Username != "" {
		lines = append(lines, ui.Field("username", c.Username))
	}
	if c.Subject != "" {
		lines = append(lines, ui.Field("subject", c.Subject))
	}
	if c.UserID != nil {
		lines = append(lines, ui.Field("user_id", fmt.Sprint(c.UserID)))
	}
	if c.Issuer != "" {
		lines = append(lines, ui.Field("issuer", c.Issuer))
	}
	lines = append(lines, ui.Field("alg", c.Algorithm))
	ui.Panel(lines)
	return 0
}

// ---------------------------------------------------
// contact subcommands
// ---------------------------------------------------

func (r *runner) list() int {
	if err := r.app.todos.FetchAll(r.ctx); err != nil {
		return fail("ls", err)
	}
	todos := r.app.todos.Todos()
	if len(todos) == 0 {
		ui.Muted("No contacts available. Add some!")
		return 0
	}
	lines := []string{ui.Title(fmt.Sprintf("Contacts (%d)", len(todos)))}
	for _, t := range todos {
		line := ui.Bullet(t.Title) + "  " + ui.C(ui.Current().Muted, t.ID)
		if t.Description != "" {
			line += "\n    " + t.Description
		}
		lines = append(lines, strings.Split(line, "\n")...)
	}
	ui.Panel(lines)
	return 0
}

func (r *runner) show(id string) int {
	t, err := r.app.client.GetTodo(r.ctx, id)
	if err != nil {
		return fail("show", err)
	}
	printTodo(t)
	return 0
}

func printTodo(t model.Todo) {
	ui.Panel([]string{
		ui.Title(t.Title),
		ui.Field("id", t.ID),
		ui.Field("description", t.Description),
	})
}

func (r *runner) add(title, description string) int {
	title = strings.TrimSpace(title)
	if title == "" {
		ui.Fail("add: empty title")
		return 2
	}
	t, err := r.app.client.CreateTodo(r.ctx, model.TodoInput{Title: title, Description: strings.TrimSpace(description)})
	if err != nil {
		return fail("add", err)
	}
	ui.OK("added " + t.ID)
	return 0
}

func (r *runner) edit(a []string) int {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	title := fs.String("title", "", "new title")
	description := fs.String("description", "", "new description")
	if len(a) == 0 || strings.HasPrefix(a[0], "-") {
		ui.Fail("usage: easycontact edit <id> [--title T] [--description D]")
		return 2
	}
	id := a[0]
	if err := fs.Parse(a[1:]); err != nil {
		return 2
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if len(set) == 0 {
		ui.Fail("edit: nothing to change; pass --title and/or --description")
		return 2
	}

	current, err := r.app.client.GetTodo(r.ctx, id)
	if err != nil {
		return fail("edit", err)
	}
	in := model.TodoInput{Title: current.Title, Description: current.Description}
	if set["title"] {
		in.Title = *title
	}
	if set["description"] {
		in.Description = *description
	}
	updated, err := r.app.client.UpdateTodo(r.ctx, id, in)
	if err != nil {
		return fail("edit", err)
	}
	ui.OK("Todo updated successfully")
	printTodo(updated)
	return 0
}

func (r *runner) remove(a []string) int {
	fs := flag.NewFlagSet("rm", flag.ContinueOnError)
	yes := fs.Bool("yes", false, "skip the confirmation")
	if len(a) == 0 || strings.HasPrefix(a[0], "-") {
		ui.Fail("usage: easycontact rm <id> [--yes]")
		return 2
	}
	id := a[0]
	if err := fs.Parse(a[1:]); err != nil {
		return 2
	}
	if !*yes && !r.confirm("Are you sure you want to delete this contact?") {
		ui.Muted("cancelled")
		return 0
	}
	if err := r.app.todos.Delete(r.ctx, id); err != nil {
		return fail("rm", err)
	}
	ui.OK("removed " + id)
	return 0
}

// ---------------------------------------------------
// profile subcommands
// ---------------------------------------------------

func (r *runner) profile() int {
	p, err := r.app.client.GetProfile(r.ctx)
	if err != nil {
		return fail("profile", err)
	}
	avatar := p.Avatar
	if avatar == "" {
		avatar = "(default)"
	}
	ui.Panel([]string{
		ui.Title("Welcome, " + p.Username + "!"),
		ui.Field("username", p.Username),
		ui.Field("email", p.Email),
		ui.Field("avatar", avatar),
	})
	return 0
}

func (r *runner) avatar(choice string) int {
	avatar := choice
	if n, err := strconv.Atoi(choice); err == nil {
		if n < 1 || n > len(tui.AvatarOptions) {
			ui.Fail(fmt.Sprintf("avatar: choose 1-%d, got %d", len(tui.AvatarOptions), n))
			return 2
		}
		avatar = tui.AvatarOptions[n-1]
	} else if !strings.HasPrefix(choice, "http://") && !strings.HasPrefix(choice, "https://") {
		ui.Fail("avatar: expected a number or an http(s) URL")
		return 2
	}
	if err := r.app.client.UpdateAvatar(r.ctx, avatar); err != nil {
		return fail("avatar", err)
	}
	ui.OK("avatar updated")
	return 0
}
