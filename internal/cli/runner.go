package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/basket-cli/basket/internal/api"
	"github.com/basket-cli/basket/internal/config"
	"github.com/basket-cli/basket/internal/logging"
	"github.com/basket-cli/basket/internal/model"
	"github.com/basket-cli/basket/internal/session"
	"github.com/basket-cli/basket/internal/store/tokenfile"
	"github.com/basket-cli/basket/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	JSON bool // print list output as JSON instead of styled lines
}

type runner struct {
	cfg     *config.Config
	log     *slog.Logger
	client  *api.Client // error toasts wired in; used by one-shot commands
	quiet   *api.Client // no observer; interactive views surface errors themselves
	tokens  *tokenfile.Store
	session *session.Manager
	opt     Options
}

// Run assembles the client stack and dispatches subcommands, returning an
// exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	cfg, err := config.Load()
	if err != nil {
		ui.Fail("config: " + err.Error())
		return 1
	}
	log := logging.New(cfg.Log)

	tokens, err := tokenfile.New(cfg.CredentialsDir)
	if err != nil {
		ui.Fail("credentials: " + err.Error())
		return 1
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, log, ui.Toaster{})
	quiet := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, log, nil)

	r := &runner{
		cfg:     cfg,
		log:     log,
		client:  client,
		quiet:   quiet,
		tokens:  tokens,
		session: session.NewManager(client, tokens, log),
		opt:     opt,
	}
	return r.dispatch(args)
}

func (r *runner) dispatch(args []string) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "register":
		if len(a) != 2 {
			ui.Fail("usage: basket register <name> <username>")
			return 2
		}
		return r.doRegister(a[0], a[1])

	case "auth":
		if len(a) == 0 {
			ui.Fail("usage: basket auth <login|logout|status|whoami>")
			return 2
		}
		switch a[0] {
		case "login":
			if len(a) != 2 {
				ui.Fail("usage: basket auth login <username>")
				return 2
			}
			return r.doLogin(a[1])
		case "logout":
			return r.doLogout()
		case "status":
			return r.doStatus()
		case "whoami":
			return r.doWhoAmI()
		default:
			ui.Fail("usage: basket auth <login|logout|status|whoami>")
			return 2
		}

	case "groups":
		return r.dispatchGroups(a)

	case "members":
		return r.dispatchMembers(a)

	case "items":
		return r.dispatchItems(a)

	case "search":
		return r.dispatchSearch(a)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`basket - shared shopping lists from the terminal

Usage:
  basket <subcommand> [args]

Subcommands:
  register <name> <username>        Create an account (then log in)
  auth login <username>             Log in (password prompted)
  auth logout                       Log out
  auth status                       Show credential status
  auth whoami                       Show the logged-in user
  groups ls                         List your groups
  groups create <name> [password]   Create a group
  groups show <id>                  Group details and members
  groups rm <id>                    Delete a group (owner only)
  groups join <id> [password]       Join a group
  groups leave <id>                 Leave a group
  members add <groupID> <userID>    Add a member
  members rm <groupID> <userID>     Remove a member
  items <groupID>                   Interactive item list (TUI)
  items ls <groupID>                List items
  items add <groupID> <title...>    Add an item
  items rm <groupID> <itemID>       Remove an item
  search                            Interactive search (TUI)
  search users <query>              Search users
  search groups <query>             Search groups

Examples:
  basket auth login maria
  basket groups create "Groceries"
  basket items add 64f1c2 "Buy milk"
`)
}

// ---------------------------------------------------
// Auth subcommands
// ---------------------------------------------------

func (r *runner) doRegister(name, username string) int {
	password, err := promptPassword("Choose a password: ")
	if err != nil {
		ui.Fail("read password: " + err.Error())
		return 1
	}
	if err := r.session.Register(context.Background(), name, username, password); err != nil {
		return failRequest(err)
	}
	ui.Ok("registered. Now run: basket auth login " + username)
	return 0
}

func (r *runner) doLogin(username string) int {
	password, err := promptPassword("Password: ")
	if err != nil {
		ui.Fail("read password: " + err.Error())
		return 1
	}
	user, err := r.session.Login(context.Background(), username, password)
	if err != nil {
		if !api.Notified(err) {
			ui.Fail("login failed: " + err.Error())
		}
		return 1
	}
	ui.Ok("logged in as " + user.Name)
	return 0
}

func (r *runner) doLogout() int {
	if r.tokens.FromEnv() {
		ui.Ok("token is provided by BASKET_TOKEN env var (nothing to delete)")
		return 0
	}
	r.session.Logout()
	ui.Ok("logged out")
	return 0
}

func (r *runner) doStatus() int {
	token, err := r.tokens.Load()
	if err != nil {
		ui.Fail("credentials: " + err.Error())
		return 1
	}
	if token == "" {
		fmt.Println(ui.MutedStyle.Render("not logged in"))
		fmt.Println("Run: basket auth login <username>")
		return 0
	}
	source := "file"
	if r.tokens.FromEnv() {
		source = "env (BASKET_TOKEN)"
	}
	ui.Panel([]string{
		"token: present",
		"source: " + source,
		"server: " + r.cfg.API.BaseURL,
	})
	return 0
}

func (r *runner) doWhoAmI() int {
	user, code := r.requireAuth()
	if code != 0 {
		return code
	}
	ui.Panel([]string{
		ui.TitleStyle.Render(user.Name),
		"username: " + user.Username,
		"id: " + user.ID,
	})
	return 0
}

// requireAuth bootstraps the session and returns the resolved user, or a
// non-zero exit code when anonymous.
func (r *runner) requireAuth() (*model.User, int) {
	if err := r.session.Bootstrap(context.Background()); err != nil {
		ui.Fail(err.Error())
		return nil, 1
	}
	if !r.session.Authenticated() {
		ui.Fail("not logged in. Set BASKET_TOKEN or run `basket auth login <username>`")
		return nil, 2
	}
	return r.session.User(), 0
}

// failRequest reports a failed API call. Server and malformed errors were
// already shown by the toaster; everything else (transport failures in
// particular) has not been shown to anyone yet.
func failRequest(err error) int {
	if !api.Notified(err) {
		ui.Fail(err.Error())
	}
	return 1
}

func promptPassword(label string) (string, error) {
	fmt.Print(label)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	// stdin is piped: read one line instead of echoing off a terminal.
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func printJSON(v any) int {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		ui.Fail("encode: " + err.Error())
		return 1
	}
	fmt.Println(string(b))
	return 0
}

func joinRest(a []string) string {
	return strings.TrimSpace(strings.Join(a, " "))
}
