package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn and printFn are test seams for the REPL's own output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	EnterOTP(ctx context.Context) error
	Resend(ctx context.Context) error
	ChangeNumber(ctx context.Context) error
	Status(ctx context.Context) error
	Upload(ctx context.Context) error
	Search(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Download(ctx context.Context, id string) error
	DownloadAll(ctx context.Context) error
	Logout(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: register, login, otp, resend, change, status, exit"
	helpLoggedIn  = "Available commands: upload, search, show <id>, download <id>, downloadall, status, logout, exit"
)

// runREPL reads commands from reader until EOF, "exit"/"quit" or ctx is
// canceled. The first word is the command, the second (if any) its argument.
//
// Commands for documents are only dispatched once logged in; the login
// commands are available in any state and the handlers refuse what does not
// apply. Handler errors are ignored here: handlers report to the user
// themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printFn(fmt.Sprintf("docvault (%s)> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			printlnFn()
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, arg := parts[0], ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpAnonymous)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "register":
			_ = a.Register(ctx)
			continue
		case "login":
			_ = a.Login(ctx)
			continue
		case "otp":
			_ = a.EnterOTP(ctx)
			continue
		case "resend":
			_ = a.Resend(ctx)
			continue
		case "change":
			_ = a.ChangeNumber(ctx)
			continue
		case "status":
			_ = a.Status(ctx)
			continue
		case "logout":
			_ = a.Logout(ctx)
			continue
		}

		if !a.isLoggedIn() {
			switch cmd {
			case "upload", "search", "show", "download", "downloadall":
				printlnFn("Please log in first. Type 'login'.")
			default:
				printlnFn("Unknown command. Type 'help'.")
			}
			continue
		}

		switch cmd {
		case "upload":
			_ = a.Upload(ctx)
		case "search":
			_ = a.Search(ctx)
		case "show":
			_ = a.Show(ctx, arg)
		case "download":
			_ = a.Download(ctx, arg)
		case "downloadall":
			_ = a.DownloadAll(ctx)
		default:
			printlnFn("Unknown command. Type 'help'.")
		}
	}
}
