package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/library"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/model"
)

// ExportStats writes the full statistics snapshot to the export
// directory.
func (a *App) ExportStats(ctx context.Context) error {
	path, err := a.svc.ExportStatistics(ctx, a.exportDir)
	if err != nil {
		return err
	}
	printlnFn("Statistieken geëxporteerd naar", path)
	return nil
}

// ExportBooks writes the book list to the export directory.
func (a *App) ExportBooks(ctx context.Context) error {
	path, err := a.svc.ExportBooks(ctx, a.exportDir)
	if err != nil {
		return err
	}
	printlnFn("Boeken geëxporteerd naar", path)
	return nil
}

// Import replaces the whole library from a JSON export file, after
// confirmation.
func (a *App) Import(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: import <file.json>")
	}
	ok, err := Confirm(a.reader, "Dit vervangt de hele bibliotheek. Doorgaan?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Geannuleerd.")
		return nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	defer f.Close()

	n, err := a.svc.ImportBooks(ctx, f)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("%d boeken geïmporteerd", n))
	return nil
}

// ImportDoc ingests a plain-text manuscript as a new book.
func (a *App) ImportDoc(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: importdoc <file.txt>")
	}
	path := args[0]
	if !strings.HasSuffix(path, ".txt") {
		return fmt.Errorf("only .txt manuscripts are supported")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), ".txt")
	title, err := GetSimpleText(a.reader, fmt.Sprintf("Titel [%s]", base), a.out)
	if err != nil {
		return err
	}
	if title == "" {
		title = base
	}
	author, err := GetSimpleText(a.reader, "Auteur", a.out)
	if err != nil {
		return err
	}
	genre, err := GetSimpleText(a.reader, "Genre", a.out)
	if err != nil {
		return err
	}
	split, err := Confirm(a.reader, "Automatisch in drie delen splitsen?", a.out)
	if err != nil {
		return err
	}

	b, err := a.svc.ImportDocument(ctx, string(data), library.DocumentImport{
		Title:     title,
		Author:    author,
		Genre:     model.Genre(genre),
		AutoSplit: split,
	})
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Document %q geïmporteerd met %d hoofdstuk(ken)", b.Title, len(b.Chapters)))
	return nil
}

// Sync forces a save and backup immediately.
func (a *App) Sync(ctx context.Context) error {
	if err := a.svc.ForceSync(ctx); err != nil {
		return err
	}
	printlnFn("Bibliotheek opgeslagen en backup ververst.")
	return nil
}

// Storage reports which store is active and how full the fallback is.
func (a *App) Storage(ctx context.Context) error {
	info := a.store.Info(ctx)
	if info.Limit > 0 {
		printlnFn(fmt.Sprintf("Opslag: %s, %d van %d bytes in gebruik", info.Type, info.UsedBytes, info.Limit))
	} else {
		printlnFn(fmt.Sprintf("Opslag: %s, %d bytes in gebruik", info.Type, info.UsedBytes))
	}
	return nil
}
