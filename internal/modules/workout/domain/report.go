package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type HistoryFilter struct {
	DayKey string
	From   string
	To     string
	Limit  int
}

type HistorySummary struct {
	ID         string
	SavedAt    time.Time
	Date       string
	DayKey     string
	DayTitle   string
	Athlete    string
	LoggedSets int
	HasNotes   bool
}

// ExportNote pairs an entry with its rendered markdown body.
type ExportNote struct {
	Entry HistoryEntry
	Body  string
}

func Summarize(entry HistoryEntry) HistorySummary {
	logged := 0
	for _, sets := range entry.Logs {
		for _, set := range sets {
			if !isBlank(set.Weight) || !isBlank(set.Reps) {
				logged++
			}
		}
	}
	return HistorySummary{
		ID:         entry.ID,
		SavedAt:    entry.SavedAt,
		Date:       entry.Date,
		DayKey:     entry.DayKey,
		DayTitle:   entry.DayTitle,
		Athlete:    AthleteName(entry.ProfileSnapshot),
		LoggedSets: logged,
		HasNotes:   !isBlank(entry.Notes),
	}
}

func AthleteName(p Profile) string {
	if isBlank(p.Name) {
		return "Player"
	}
	return p.Name
}

// OrderedExercises returns the entry's exercise names: those in order first,
// then any others alphabetically.
func OrderedExercises(entry HistoryEntry, order []string) []string {
	out := make([]string, 0, len(entry.Logs))
	seen := map[string]struct{}{}
	for _, name := range order {
		if _, ok := entry.Logs[name]; ok {
			out = append(out, name)
			seen[name] = struct{}{}
		}
	}
	rest := make([]string, 0)
	for name := range entry.Logs {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// RenderDetails renders an entry's sets and notes as markdown.
func RenderDetails(entry HistoryEntry, order []string) string {
	var sb strings.Builder
	for _, name := range OrderedExercises(entry, order) {
		sb.WriteString("### " + name + "\n\n")
		sets := entry.Logs[name]
		if len(sets) == 0 {
			sb.WriteString("No sets logged.\n\n")
			continue
		}
		for i, set := range sets {
			sb.WriteString(fmt.Sprintf("- Set %d: Weight %s • Reps %s\n", i+1, dash(set.Weight), dash(set.Reps)))
		}
		sb.WriteString("\n")
	}
	if notes := strings.TrimSpace(entry.Notes); notes != "" {
		sb.WriteString("### Notes\n\n" + notes + "\n")
	}
	if sb.Len() == 0 {
		return "No details logged.\n"
	}
	return sb.String()
}

func dash(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "—"
	}
	return s
}
