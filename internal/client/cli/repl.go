package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn and printFn are test seams for REPL output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface is the command surface the REPL drives. *App satisfies it; tests
// provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Book(ctx context.Context, ref string) error
	Reviews(ctx context.Context) error
	Review(ctx context.Context) error
	Edit(ctx context.Context, ref string) error
	Save(ctx context.Context) error
	Cancel(ctx context.Context) error
	Delete(ctx context.Context, ref string) error
	Mine(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, search <text>, book <n|id>, reviews, help, exit"
	helpLoggedIn  = "Available commands: search <text>, book <n|id>, reviews, review, edit <n|id>, save, cancel, delete <n|id>, mine, logout, help, exit"
)

// gated lists commands that need a logged-in session.
var gated = map[string]bool{
	"review": true,
	"edit":   true,
	"save":   true,
	"cancel": true,
	"delete": true,
	"mine":   true,
	"logout": true,
}

// runREPL reads commands line by line from reader and dispatches them to a.
// The first word is the command, the rest of the line its argument. The loop
// ends on EOF or "exit"/"quit".
//
// Errors returned by handlers are ignored here; handlers report to the user
// themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printFn(fmt.Sprintf("bookify %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			printlnFn()
			return
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		if gated[cmd] && !a.isLoggedIn() {
			printlnFn("Please log in first.")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "search", "s":
			_ = a.Search(ctx, arg)

		case "book", "b":
			_ = a.Book(ctx, arg)

		case "reviews", "r":
			_ = a.Reviews(ctx)

		case "review":
			_ = a.Review(ctx)

		case "edit":
			_ = a.Edit(ctx, arg)

		case "save":
			_ = a.Save(ctx)

		case "cancel":
			_ = a.Cancel(ctx)

		case "delete":
			_ = a.Delete(ctx, arg)

		case "mine":
			_ = a.Mine(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
