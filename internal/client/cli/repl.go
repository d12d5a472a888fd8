package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	report(ctx context.Context, err error)

	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	ResetPassword(ctx context.Context) error

	Events(ctx context.Context) error
	NewEvent(ctx context.Context) error
	EditEvent(ctx context.Context, args []string) error
	StartEvent(ctx context.Context, args []string) error
	DeleteEvent(ctx context.Context, args []string) error
	Leaderboard(ctx context.Context, args []string) error

	Posts(ctx context.Context, args []string) error
	Reports(ctx context.Context, args []string) error
	Act(ctx context.Context, args []string) error

	Users(ctx context.Context, args []string) error
	Ban(ctx context.Context, args []string) error
	Unban(ctx context.Context, args []string) error

	Admins(ctx context.Context) error
	AddAdmin(ctx context.Context) error
	SetRole(ctx context.Context, args []string) error

	Transactions(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: login, reset, status, help, exit"
	helpLoggedIn  = `Available commands:
  status, whoami, logout, exit
  events, newevent, editevent <id>, startevent <id>, delevent <id>, leaderboard <id>
  posts [page], reports [page], act <postId> <remove|warn>
  users [page], ban <userId>, unban <userId>
  admins, addadmin, setrole <adminId> <role>
  transactions [type=credit|debit] [from=YYYY-MM-DD] [to=YYYY-MM-DD] [search=text] [page=N] [limit=N]`
)

// runREPL reads commands line by line from reader and dispatches them to a.
// Prompts issued by the commands read from the same reader, so scripted
// input works as expected. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Commands that talk to the API require a login. Errors returned by command
// handlers go to a.report, which classifies them for the user.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("admin %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "login":
			a.report(ctx, a.Login(ctx))
			continue
		case "reset":
			a.report(ctx, a.ResetPassword(ctx))
			continue
		case "status":
			a.report(ctx, a.Status(ctx))
			continue
		}

		if !a.isLoggedIn() {
			if _, known := loggedInCommands[cmd]; known {
				printlnFn("Please login first")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		run, ok := loggedInCommands[cmd]
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		a.report(ctx, run(a, ctx, args))
	}
}

// command receives the executor first so interface method expressions such
// as execIface.Ban can be used directly.
type command func(a execIface, ctx context.Context, args []string) error

var loggedInCommands = map[string]command{
	"logout":       func(a execIface, ctx context.Context, _ []string) error { return a.Logout(ctx) },
	"whoami":       func(a execIface, ctx context.Context, _ []string) error { return a.WhoAmI(ctx) },
	"events":       func(a execIface, ctx context.Context, _ []string) error { return a.Events(ctx) },
	"newevent":     func(a execIface, ctx context.Context, _ []string) error { return a.NewEvent(ctx) },
	"editevent":    execIface.EditEvent,
	"startevent":   execIface.StartEvent,
	"delevent":     execIface.DeleteEvent,
	"leaderboard":  execIface.Leaderboard,
	"posts":        execIface.Posts,
	"reports":      execIface.Reports,
	"act":          execIface.Act,
	"users":        execIface.Users,
	"ban":          execIface.Ban,
	"unban":        execIface.Unban,
	"admins":       func(a execIface, ctx context.Context, _ []string) error { return a.Admins(ctx) },
	"addadmin":     func(a execIface, ctx context.Context, _ []string) error { return a.AddAdmin(ctx) },
	"setrole":      execIface.SetRole,
	"transactions": execIface.Transactions,
}
