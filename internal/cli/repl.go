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
	Add(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Chapters(ctx context.Context, args []string) error
	Write(ctx context.Context, args []string) error
	Notes(ctx context.Context, args []string) error
	Character(ctx context.Context, args []string) error
	Stats(ctx context.Context) error
	Goals(ctx context.Context, args []string) error
	Activity(ctx context.Context) error
	ExportStats(ctx context.Context) error
	ExportBooks(ctx context.Context) error
	Import(ctx context.Context, args []string) error
	ImportDoc(ctx context.Context, args []string) error
	Sync(ctx context.Context) error
	Storage(ctx context.Context) error
	ResetStats(ctx context.Context) error
}

const helpText = `Available commands:
  add                     - add a new book (interactive)
  list [status|genre|text]- list books, optionally filtered
  show <book>             - show one book (id prefix or title)
  edit <book>             - edit a book (interactive)
  delete <book>           - delete a book
  chapters <book>         - manage chapters (interactive)
  write <book> <chapter>  - write chapter content (multiline)
  notes <book>            - edit notes (interactive)
  character <book>        - manage characters (interactive)
  stats                   - dashboard summary and writing goals
  goals <daily> <weekly>  - set page goals
  activity                - recent activity feed
  export                  - export full statistics snapshot
  exportbooks             - export the book list
  import <file>           - replace the library from a JSON export
  importdoc <file>        - import a .txt manuscript as a new book
  sync                    - force a save and backup now
  storage                 - show active store and usage
  clear                   - reset statistics and activity (confirmed)
  help, exit`

// runREPL starts a read–eval–print loop over the library commands.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are printed but never abort the
// loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("arc> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var err error
		switch cmd {
		case "help":
			printlnFn(helpText)

		case "add":
			err = a.Add(ctx)

		case "l", "list":
			err = a.List(ctx, args)

		case "show":
			err = a.Show(ctx, args)

		case "edit":
			err = a.Edit(ctx, args)

		case "delete":
			err = a.Delete(ctx, args)

		case "chapters":
			err = a.Chapters(ctx, args)

		case "write":
			err = a.Write(ctx, args)

		case "notes":
			err = a.Notes(ctx, args)

		case "character":
			err = a.Character(ctx, args)

		case "stats":
			err = a.Stats(ctx)

		case "goals":
			err = a.Goals(ctx, args)

		case "activity":
			err = a.Activity(ctx)

		case "export":
			err = a.ExportStats(ctx)

		case "exportbooks":
			err = a.ExportBooks(ctx)

		case "import":
			err = a.Import(ctx, args)

		case "importdoc":
			err = a.ImportDoc(ctx, args)

		case "sync":
			err = a.Sync(ctx)

		case "storage":
			err = a.Storage(ctx)

		case "clear":
			err = a.ResetStats(ctx)

		case "exit", "quit":
			printlnFn("Tot ziens!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
