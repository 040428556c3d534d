package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/library"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/storage"
)

// App wires the library service to the interactive commands. All prompts
// read from reader and write to out, so tests can drive a whole session
// from a string.
type App struct {
	svc       *library.Service
	store     *storage.Adapter
	reader    *bufio.Reader
	out       io.Writer
	exportDir string
}

func NewApp(svc *library.Service, store *storage.Adapter, exportDir string) *App {
	return &App{
		svc:       svc,
		store:     store,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		exportDir: exportDir,
	}
}

// Run starts the interactive loop and blocks until exit or EOF.
func (a *App) Run(ctx context.Context) {
	printlnFn("Arc Crusade Book Library (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) status() string {
	n := len(a.svc.Books(context.Background()))
	return fmt.Sprintf("%d boeken [%s]", n, a.store.Name())
}
