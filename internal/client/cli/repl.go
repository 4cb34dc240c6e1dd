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
	Add(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	SetStatus(ctx context.Context, args []string) error
	Seed(ctx context.Context, args []string) error
}

const (
	helpGuest    = "Available commands: register, login, exit"
	helpLoggedIn = "Available commands: add, (l)ist [key=value...], show <id>, status <id> <status>, seed [count], logout, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// The first token is the command and the rest are its arguments. Errors from
// command handlers are printed and the loop continues. It returns on EOF or
// on "exit" / "quit".
//
//	Not logged in:
//	  - help, register, login, exit | quit
//
//	Logged in:
//	  - help
//	  - add                       record a transaction (interactive)
//	  - list [key=value ...]      list with skip, limit, sort, order, contractor, date
//	  - show <id>                 show one transaction
//	  - status <id> <status>      change the review status
//	  - seed [count]              add random demo transactions
//	  - logout, exit | quit
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("txl %s > ", statusFn()))

		line, readErr := reader.ReadString('\n')
		parts := strings.Fields(line)

		if len(parts) > 0 {
			cmd, args := parts[0], parts[1:]
			if cmd == "exit" || cmd == "quit" {
				printlnFn("Bye!")
				return
			}
			if err := dispatch(ctx, a, cmd, args); err != nil {
				printlnFn("Error:", err)
			}
		}

		if readErr != nil {
			return
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	if cmd == "help" {
		if a.isLoggedIn() {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpGuest)
		}
		return nil
	}

	if !a.isLoggedIn() {
		switch cmd {
		case "register":
			return a.Register(ctx)
		case "login":
			return a.Login(ctx)
		case "add", "l", "list", "show", "status", "seed", "logout":
			printlnFn("Please log in first")
			return nil
		}
	} else {
		switch cmd {
		case "add":
			return a.Add(ctx)
		case "l", "list":
			return a.List(ctx, args)
		case "show":
			return a.Show(ctx, args)
		case "status":
			return a.SetStatus(ctx, args)
		case "seed":
			return a.Seed(ctx, args)
		case "logout":
			return a.Logout(ctx)
		case "register", "login":
			printlnFn("Already logged in, logout first")
			return nil
		}
	}

	printlnFn("Unknown command:", cmd)
	return nil
}
