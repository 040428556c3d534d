package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/model"
)

// Chapters manages a book's chapter list interactively: add a chapter,
// change its status or delete one.
func (a *App) Chapters(ctx context.Context, args []string) error {
	b, err := a.resolveBook(strings.Join(args, " "))
	if err != nil {
		return err
	}

	for _, ch := range b.Chapters {
		printlnFn(fmt.Sprintf("%s  %2d. %-25s %-8s %6d woorden",
			shortID(ch.ID), ch.Number, ch.Title, ch.Status, ch.WordCount))
	}

	action, err := GetSimpleText(a.reader, "Actie (add/status/delete, leeg = klaar)", a.out)
	if err != nil {
		return err
	}

	switch action {
	case "":
		return nil

	case "add":
		title, err := GetSimpleText(a.reader, "Hoofdstuk titel", a.out)
		if err != nil {
			return err
		}
		summary, err := GetSimpleText(a.reader, "Samenvatting (optioneel)", a.out)
		if err != nil {
			return err
		}
		ch, err := a.svc.AddChapter(ctx, b.ID, model.NewChapter(title, 0, summary, "", ""))
		if err != nil {
			return err
		}
		printlnFn(fmt.Sprintf("Hoofdstuk %d %q toegevoegd", ch.Number, ch.Title))
		return nil

	case "status":
		ch, err := a.resolveChapter(b, "")
		if err != nil {
			return err
		}
		status, err := GetSimpleText(a.reader,
			fmt.Sprintf("Status (planned/draft/writing/review/complete) [%s]", ch.Status), a.out)
		if err != nil {
			return err
		}
		if status == "" {
			return nil
		}
		ch.Status = model.ChapterStatus(status)
		if _, err := a.svc.UpdateChapter(ctx, b.ID, ch); err != nil {
			return err
		}
		printlnFn(fmt.Sprintf("Hoofdstuk %q is nu %s", ch.Title, ch.Status))
		return nil

	case "delete":
		ch, err := a.resolveChapter(b, "")
		if err != nil {
			return err
		}
		ok, err := Confirm(a.reader, fmt.Sprintf("Hoofdstuk %q verwijderen?", ch.Title), a.out)
		if err != nil || !ok {
			return err
		}
		return a.svc.DeleteChapter(ctx, b.ID, ch.ID)

	default:
		return fmt.Errorf("unknown action: %s", action)
	}
}

// Write opens the multiline editor for a chapter's content.
func (a *App) Write(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: write <book> [chapter]")
	}
	b, err := a.resolveBook(args[0])
	if err != nil {
		return err
	}
	var chapterArg string
	if len(args) > 1 {
		chapterArg = strings.Join(args[1:], " ")
	}
	ch, err := a.resolveChapter(b, chapterArg)
	if err != nil {
		return err
	}

	if ch.Content != "" {
		printlnFn(fmt.Sprintf("Huidige inhoud: %d woorden. Nieuwe tekst vervangt alles.", ch.WordCount))
	}
	printlnFn("Opmaak: **vet**, *cursief*, _onderstreept_, ## kopje, > citaat, --- scheiding")
	content, err := GetMultiline(a.reader, fmt.Sprintf("Schrijf %q", ch.Title), a.out)
	if err != nil {
		return err
	}
	if content == "" {
		printlnFn("Niets geschreven, inhoud onveranderd.")
		return nil
	}

	written, err := a.svc.SetChapterContent(ctx, b.ID, ch.ID, content)
	if err != nil {
		return err
	}
	stats := model.TextStats(written.Content)
	printlnFn(fmt.Sprintf("Opgeslagen: %d woorden, %d tekens, %d alinea's, ±%d min leestijd",
		stats.Words, stats.Characters, stats.Paragraphs, stats.ReadingMinutes))
	return nil
}

// resolveChapter picks a chapter by id prefix, number or title. An empty
// arg prompts for one.
func (a *App) resolveChapter(b model.Book, arg string) (model.Chapter, error) {
	if arg == "" {
		var err error
		arg, err = GetSimpleText(a.reader, "Welk hoofdstuk (nummer of titel)?", a.out)
		if err != nil {
			return model.Chapter{}, err
		}
	}
	lower := strings.ToLower(arg)
	for _, ch := range b.Chapters {
		if strings.HasPrefix(ch.ID, arg) ||
			fmt.Sprint(ch.Number) == arg ||
			strings.Contains(strings.ToLower(ch.Title), lower) {
			return ch, nil
		}
	}
	return model.Chapter{}, fmt.Errorf("chapter not found: %s", arg)
}
