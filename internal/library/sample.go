package library

import "github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/model"

// sampleBooks seeds a first run so the library is not an empty page.
func sampleBooks() []model.Book {
	return []model.Book{
		model.NewBook(
			"De Drakenkrieger", "Arc Crusade", model.GenreFantasy, model.StatusInProgress,
			"Een episch verhaal over een jonge krijger die moet strijden tegen oude draken om zijn koninkrijk te redden.",
			350, 65, ""),
		model.NewBook(
			"Sterren van Morgen", "Arc Crusade", model.GenreSciFi, model.StatusDraft,
			"In een verre toekomst moet de mensheid nieuwe planeten koloniseren om te overleven.",
			280, 25, ""),
		model.NewBook(
			"Het Verloren Koninkrijk", "Arc Crusade", model.GenreAdventure, model.StatusPublished,
			"Een groep avonturiers zoekt naar een legendarisch koninkrijk dat al eeuwen verloren is.",
			420, 100, ""),
	}
}
