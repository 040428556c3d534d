package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// Stats prints the dashboard summary and writing-goal progress.
func (a *App) Stats(ctx context.Context) error {
	sum := a.svc.Summarize()
	stats := a.svc.Stats()

	printlnFn(fmt.Sprintf("Boeken: %d totaal - %d draft, %d in bewerking, %d gepubliceerd",
		sum.TotalBooks, sum.Drafts, sum.InProgress, sum.Published))
	printlnFn(fmt.Sprintf("Pagina's: %d, woorden: %d", sum.TotalPages, sum.TotalWords))
	for genre, count := range sum.GenreCounts {
		printlnFn(fmt.Sprintf("  %-12s %d", genre.DisplayName(), count))
	}
	printlnFn(fmt.Sprintf("Vandaag: %d/%d pagina's, deze week: %d/%d",
		stats.DailyProgress, stats.DailyGoal, stats.WeeklyProgress, stats.WeeklyGoal))
	printlnFn(fmt.Sprintf("Schrijfreeks: %d dagen", stats.WritingStreak))
	return nil
}

// Goals sets the daily and weekly page goals.
func (a *App) Goals(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: goals <daily> <weekly>")
	}
	daily, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("not a number: %q", args[0])
	}
	weekly, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("not a number: %q", args[1])
	}
	if err := a.svc.SetGoals(ctx, daily, weekly); err != nil {
		return err
	}
	stats := a.svc.Stats()
	printlnFn(fmt.Sprintf("Doelen: %d pagina's per dag, %d per week", stats.DailyGoal, stats.WeeklyGoal))
	return nil
}

// Activity prints the recent activity feed, newest first.
func (a *App) Activity(ctx context.Context) error {
	acts := a.svc.Activities()
	if len(acts) == 0 {
		printlnFn("Nog geen activiteiten.")
		return nil
	}
	for i := len(acts) - 1; i >= 0; i-- {
		act := acts[i]
		printlnFn(fmt.Sprintf("%s  [%s] %s", timeAgo(act.Timestamp), act.Type, act.Description))
	}
	return nil
}

// ResetStats clears statistics and the activity feed after confirmation.
func (a *App) ResetStats(ctx context.Context) error {
	ok, err := Confirm(a.reader, "Alle statistieken resetten? Dit kan niet ongedaan gemaakt worden.", a.out)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Geannuleerd.")
		return nil
	}
	if err := a.svc.ResetStatistics(ctx); err != nil {
		return err
	}
	printlnFn("Statistieken gereset.")
	return nil
}

func timeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "net nu"
	case d < time.Hour:
		return fmt.Sprintf("%d min geleden", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d uur geleden", int(d.Hours()))
	default:
		return fmt.Sprintf("%d dagen geleden", int(d.Hours()/24))
	}
}
