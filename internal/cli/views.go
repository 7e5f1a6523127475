package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/client/hooks"
	"github.com/yigit/hostelmess/internal/pkg/helpers"
)

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

// section prints a titled block: a loading line, the error in place of the
// content, or body. It reports whether the section loaded.
func section[T any](w io.Writer, title string, s hooks.State[T], body func(data []T)) bool {
	printf(w, "== %s ==\n", title)
	defer printf(w, "\n")

	switch {
	case s.Loading:
		printf(w, "Loading...\n")
		return false
	case s.Err != "":
		printf(w, "Error: %s\n", s.Err)
		return false
	}

	body(s.Data)
	return true
}

func mealTitle(t models.MealType) string {
	s := string(t)
	return strings.ToUpper(s[:1]) + s[1:]
}

func renderMenuDay(w io.Writer, item models.MenuItem) {
	printf(w, "%s\n", item.Day)
	for _, t := range models.MealTypes {
		items := item.Meal(t)
		list := "-"
		if len(items) > 0 {
			list = strings.Join(items, ", ")
		}
		printf(w, "  %-10s %s\n", mealTitle(t)+":", list)
	}
}

func renderMenuEditable(w io.Writer, item models.MenuItem) {
	printf(w, "%s (%s)\n", item.Day, item.ID)
	for _, t := range models.MealTypes {
		printf(w, "  %s:\n", mealTitle(t))
		for i, entry := range item.Meal(t) {
			printf(w, "    %d. %s\n", i, entry)
		}
	}
}

func renderWorkers(w io.Writer, workers []models.Worker) {
	if len(workers) == 0 {
		printf(w, "No workers listed.\n")
		return
	}
	for _, wk := range workers {
		printf(w, "%s (%s)\n  upi: %s  id: %s\n", wk.Name, wk.Role, wk.UpiID, wk.ID)
	}
}

func renderComplaints(w io.Writer, complaints []models.Complaint, now time.Time) {
	if len(complaints) == 0 {
		printf(w, "No complaints.\n")
		return
	}
	for _, c := range complaints {
		printf(w, "[%s] %s | %s | %s\n", c.Status, c.Category, c.StudentName, helpers.RelativeTime(c.Timestamp, now))
		printf(w, "  %s\n", c.Description)
		if c.Image != nil && *c.Image != "" {
			printf(w, "  photo: %s\n", *c.Image)
		}
		printf(w, "  id: %s\n", c.ID)
	}
}

func renderAnnouncements(w io.Writer, announcements []models.Announcement, now time.Time) {
	if len(announcements) == 0 {
		printf(w, "No announcements.\n")
		return
	}
	for _, a := range announcements {
		printf(w, "[%s] %s (%s)\n", strings.ToUpper(string(a.Priority)), a.Title, helpers.RelativeTime(a.Timestamp, now))
		printf(w, "  %s\n", a.Content)
	}
}
