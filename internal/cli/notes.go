package cli

import (
	"context"
	"fmt"
	"strings"
)

// Notes edits a book's free-form notes. Empty input keeps the current
// text.
func (a *App) Notes(ctx context.Context, args []string) error {
	b, err := a.resolveBook(strings.Join(args, " "))
	if err != nil {
		return err
	}

	general, err := GetMultiline(a.reader, "Algemene notities (leeg = behouden)", a.out)
	if err != nil {
		return err
	}
	if general == "" {
		general = b.Notes.General
	}
	worldbuilding, err := GetMultiline(a.reader, "Wereldopbouw (leeg = behouden)", a.out)
	if err != nil {
		return err
	}
	if worldbuilding == "" {
		worldbuilding = b.Notes.Worldbuilding
	}
	plot, err := GetMultiline(a.reader, "Plot (leeg = behouden)", a.out)
	if err != nil {
		return err
	}
	if plot == "" {
		plot = b.Notes.Plot
	}

	if err := a.svc.SetNotes(ctx, b.ID, general, worldbuilding, plot); err != nil {
		return err
	}
	printlnFn("Notities opgeslagen.")
	return nil
}

// Character manages a book's character list.
func (a *App) Character(ctx context.Context, args []string) error {
	b, err := a.resolveBook(strings.Join(args, " "))
	if err != nil {
		return err
	}

	for _, c := range b.Notes.Characters {
		printlnFn(fmt.Sprintf("%s  %-20s %-15s %s", shortID(c.ID), c.Name, c.Role, c.Description))
	}

	action, err := GetSimpleText(a.reader, "Actie (add/delete, leeg = klaar)", a.out)
	if err != nil {
		return err
	}

	switch action {
	case "":
		return nil

	case "add":
		name, err := GetSimpleText(a.reader, "Naam", a.out)
		if err != nil {
			return err
		}
		role, err := GetSimpleText(a.reader, "Rol", a.out)
		if err != nil {
			return err
		}
		description, err := GetSimpleText(a.reader, "Beschrijving", a.out)
		if err != nil {
			return err
		}
		c, err := a.svc.AddCharacter(ctx, b.ID, name, role, description)
		if err != nil {
			return err
		}
		printlnFn(fmt.Sprintf("Karakter %q toegevoegd", c.Name))
		return nil

	case "delete":
		arg, err := GetSimpleText(a.reader, "Welk karakter (id of naam)?", a.out)
		if err != nil {
			return err
		}
		lower := strings.ToLower(arg)
		for _, c := range b.Notes.Characters {
			if strings.HasPrefix(c.ID, arg) || strings.ToLower(c.Name) == lower {
				return a.svc.DeleteCharacter(ctx, b.ID, c.ID)
			}
		}
		return fmt.Errorf("character not found: %s", arg)

	default:
		return fmt.Errorf("unknown action: %s", action)
	}
}
