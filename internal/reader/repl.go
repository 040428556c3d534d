package reader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

type printlnFn func(a ...any)

const helpText = `Beschikbare commando's:
  list                 - toon gepubliceerde boeken
  show <boek>          - details van een gepubliceerd boek
  read <boek> <nr>     - lees een hoofdstuk
  stats                - statistieken over gepubliceerde boeken
  help                 - toon deze hulp
  exit                 - afsluiten`

// App is the interactive read-only shell over the published view.
type App struct {
	view *View
	out  printlnFn
}

func NewApp(view *View) *App {
	return &App{view: view, out: func(a ...any) { fmt.Println(a...) }}
}

// Run reads commands until exit, EOF or context cancellation. Command
// errors are printed, never fatal.
func (a *App) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	a.out("Arc Crusade leeszaal. Typ 'help' voor commando's.")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		fmt.Print("lezen> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]
		if cmd == "exit" || cmd == "quit" {
			a.out("Tot ziens!")
			return nil
		}
		if err := a.dispatch(ctx, cmd, args); err != nil {
			a.out("Fout:", err)
		}
	}
}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		a.out(helpText)
		return nil
	case "list":
		return a.list(ctx)
	case "show":
		if len(args) == 0 {
			return fmt.Errorf("gebruik: show <boek>")
		}
		return a.show(ctx, strings.Join(args, " "))
	case "read":
		if len(args) < 2 {
			return fmt.Errorf("gebruik: read <boek> <hoofdstuknummer>")
		}
		number, err := strconv.Atoi(args[len(args)-1])
		if err != nil {
			return fmt.Errorf("ongeldig hoofdstuknummer: %s", args[len(args)-1])
		}
		return a.read(ctx, strings.Join(args[:len(args)-1], " "), number)
	case "stats":
		return a.stats(ctx)
	default:
		return fmt.Errorf("onbekend commando: %s", cmd)
	}
}

func (a *App) list(ctx context.Context) error {
	books, err := a.view.Published(ctx)
	if err != nil {
		return err
	}
	if len(books) == 0 {
		a.out("Geen gepubliceerde boeken.")
		return nil
	}
	for _, b := range books {
		a.out(fmt.Sprintf("%-8s %s - %s (%d pagina's, %d hoofdstukken)",
			b.ID[:min(8, len(b.ID))], b.Title, b.Author, b.Pages, len(b.Chapters)))
	}
	return nil
}

func (a *App) show(ctx context.Context, arg string) error {
	b, err := a.view.Find(ctx, arg)
	if err != nil {
		return err
	}
	a.out(fmt.Sprintf("%s - %s", b.Title, b.Author))
	if b.Description != "" {
		a.out(b.Description)
	}
	a.out(fmt.Sprintf("Genre: %s | Pagina's: %d | Gepubliceerd: %s",
		b.Genre, b.Pages, b.UpdatedAt.Format(time.DateOnly)))
	for i, ch := range readingOrder(b.Chapters) {
		a.out(fmt.Sprintf("  %2d. %s (%d woorden)", i+1, ch.Title, ch.WordCount))
	}
	return nil
}

func (a *App) read(ctx context.Context, bookArg string, number int) error {
	b, ch, err := a.view.Chapter(ctx, bookArg, number)
	if err != nil {
		return err
	}
	a.out(fmt.Sprintf("%s - hoofdstuk %d: %s", b.Title, number, ch.Title))
	a.out("")
	if strings.TrimSpace(ch.Content) == "" {
		a.out("(dit hoofdstuk heeft nog geen inhoud)")
		return nil
	}
	a.out(ch.Content)
	return nil
}

func (a *App) stats(ctx context.Context) error {
	s, err := a.view.Stats(ctx)
	if err != nil {
		return err
	}
	a.out(fmt.Sprintf("Gepubliceerde boeken: %d", s.Books))
	a.out(fmt.Sprintf("Hoofdstukken: %d", s.Chapters))
	a.out(fmt.Sprintf("Pagina's: %d", s.Pages))
	a.out(fmt.Sprintf("Woorden: %d", s.Words))
	return nil
}
