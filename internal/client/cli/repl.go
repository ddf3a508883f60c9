package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	Generate(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Toggle(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
	Format(ctx context.Context, args []string) error
	Analytics(ctx context.Context, args []string) error
	Plans(ctx context.Context) error
	Upgrade(ctx context.Context, args []string) error
}

// runREPL starts the read-eval-print loop. It reads a line from the
// scanner, parses the first token as the command and dispatches to methods
// on 'a'. Unknown commands are reported back to the user. The loop exits
// on scanner EOF or when the user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("qr %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: generate, (l)ist, show, edit, delete, toggle, download, format, analytics, plans, upgrade, profile, logout, exit")
			} else {
				printlnFn("Available commands: register, login, generate, plans, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "profile", "whoami":
			_ = a.Profile(ctx)

		case "generate", "gen":
			_ = a.Generate(ctx)

		case "l", "list":
			_ = a.List(ctx, args)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <id>")
				continue
			}
			_ = a.Show(ctx, args)

		case "edit":
			if len(args) == 0 {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.Edit(ctx, args)

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, args)

		case "toggle":
			if len(args) == 0 {
				printlnFn("Usage: toggle <id>")
				continue
			}
			_ = a.Toggle(ctx, args)

		case "download", "dl":
			if len(args) == 0 {
				printlnFn("Usage: download <id> [png|svg|pdf]")
				continue
			}
			_ = a.Download(ctx, args)

		case "format":
			if len(args) < 2 {
				printlnFn("Usage: format <id> <png|svg|pdf>")
				continue
			}
			_ = a.Format(ctx, args)

		case "analytics", "stats":
			_ = a.Analytics(ctx, args)

		case "overview":
			_ = a.Analytics(ctx, nil)

		case "plans":
			_ = a.Plans(ctx)

		case "upgrade":
			if len(args) == 0 {
				printlnFn("Usage: upgrade <plan>")
				continue
			}
			_ = a.Upgrade(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
