package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/library"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/model"
)

// resolveBook finds a book by id prefix or case-insensitive title
// substring. Ambiguous input is an error so a typo never edits the
// wrong book.
func (a *App) resolveBook(arg string) (model.Book, error) {
	if arg == "" {
		return model.Book{}, fmt.Errorf("give a book id or title")
	}
	books := a.svc.Books(context.Background())

	var hits []model.Book
	lower := strings.ToLower(arg)
	for _, b := range books {
		if strings.HasPrefix(b.ID, arg) || strings.Contains(strings.ToLower(b.Title), lower) {
			hits = append(hits, b)
		}
	}
	switch len(hits) {
	case 0:
		return model.Book{}, fmt.Errorf("%w: %s", library.ErrBookNotFound, arg)
	case 1:
		return hits[0], nil
	default:
		titles := make([]string, 0, len(hits))
		for _, h := range hits {
			titles = append(titles, h.Title)
		}
		return model.Book{}, fmt.Errorf("ambiguous: %s matches %s", arg, strings.Join(titles, ", "))
	}
}

// Add prompts for the book fields and creates it.
func (a *App) Add(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Titel", a.out)
	if err != nil {
		return err
	}
	author, err := GetSimpleText(a.reader, "Auteur (leeg = Unknown)", a.out)
	if err != nil {
		return err
	}
	genre, err := GetSimpleText(a.reader, "Genre (fantasy/sci-fi/romance/thriller/adventure/mystery/horror/comedy)", a.out)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Beschrijving", a.out)
	if err != nil {
		return err
	}
	pages, err := GetInt(a.reader, "Pagina's", 0, a.out)
	if err != nil {
		return err
	}

	b, err := a.svc.AddBook(ctx,
		model.NewBook(title, author, model.Genre(genre), model.StatusDraft, description, pages, 0, ""))
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Boek %q toegevoegd (%s)", b.Title, shortID(b.ID)))
	return nil
}

// List shows the books, optionally filtered by status, genre or a search
// term.
func (a *App) List(ctx context.Context, args []string) error {
	var status model.Status
	var genre model.Genre
	var search string

	for _, arg := range args {
		switch {
		case model.Status(arg).Valid():
			status = model.Status(arg)
		case model.Genre(arg).Valid():
			genre = model.Genre(arg)
		default:
			search = arg
		}
	}

	books := a.svc.Filter(status, genre, search)
	if len(books) == 0 {
		printlnFn("Geen boeken gevonden.")
		return nil
	}
	for _, b := range books {
		printlnFn(fmt.Sprintf("%s  %-30s %-12s %-10s %3d%%  %d hfst",
			shortID(b.ID), b.Title, b.Genre, b.Status, b.Progress, len(b.Chapters)))
	}
	return nil
}

// Show prints one book in full.
func (a *App) Show(ctx context.Context, args []string) error {
	b, err := a.resolveBook(strings.Join(args, " "))
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("%s - %s", b.Title, b.Author))
	printlnFn(fmt.Sprintf("  id:       %s", b.ID))
	printlnFn(fmt.Sprintf("  genre:    %s (%s)", b.Genre, b.Genre.DisplayName()))
	printlnFn(fmt.Sprintf("  status:   %s", b.Status))
	printlnFn(fmt.Sprintf("  pagina's: %d, voortgang %d%%", b.Pages, b.Progress))
	if b.Description != "" {
		printlnFn("  " + b.Description)
	}
	for _, ch := range b.Chapters {
		printlnFn(fmt.Sprintf("  %2d. %-25s %-8s %6d woorden", ch.Number, ch.Title, ch.Status, ch.WordCount))
	}
	return nil
}

// Edit prompts for new values; empty input keeps the current one.
func (a *App) Edit(ctx context.Context, args []string) error {
	b, err := a.resolveBook(strings.Join(args, " "))
	if err != nil {
		return err
	}

	title, err := GetSimpleText(a.reader, fmt.Sprintf("Titel [%s]", b.Title), a.out)
	if err != nil {
		return err
	}
	if title != "" {
		b.Title = title
	}
	status, err := GetSimpleText(a.reader, fmt.Sprintf("Status (draft/in-progress/published) [%s]", b.Status), a.out)
	if err != nil {
		return err
	}
	if status != "" {
		b.Status = model.Status(status)
	}
	pages, err := GetInt(a.reader, "Pagina's", b.Pages, a.out)
	if err != nil {
		return err
	}
	b.Pages = pages
	progress, err := GetInt(a.reader, "Voortgang %", b.Progress, a.out)
	if err != nil {
		return err
	}
	b.Progress = progress

	if _, err := a.svc.UpdateBook(ctx, b); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Boek %q bijgewerkt", b.Title))
	return nil
}

// Delete removes a book after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	b, err := a.resolveBook(strings.Join(args, " "))
	if err != nil {
		return err
	}
	ok, err := Confirm(a.reader, fmt.Sprintf("Boek %q definitief verwijderen?", b.Title), a.out)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Geannuleerd.")
		return nil
	}
	if err := a.svc.DeleteBook(ctx, b.ID); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Boek %q verwijderd", b.Title))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
