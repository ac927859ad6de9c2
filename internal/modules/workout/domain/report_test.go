package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"liftlog/internal/modules/workout/domain"
)

func TestRenderDetails(t *testing.T) {
	t.Parallel()
	entry := domain.HistoryEntry{
		Logs: domain.DayLog{
			"Calf Raises": {{Reps: "15"}},
			"Back Squat":  {{Weight: "95", Reps: "5"}, {}},
			"Zercher":     {},
		},
		Notes: "  felt good ",
	}
	got := domain.RenderDetails(entry, []string{"Back Squat", "Calf Raises"})
	want := "### Back Squat\n\n" +
		"- Set 1: Weight 95 • Reps 5\n" +
		"- Set 2: Weight — • Reps —\n\n" +
		"### Calf Raises\n\n" +
		"- Set 1: Weight — • Reps 15\n\n" +
		"### Zercher\n\nNo sets logged.\n\n" +
		"### Notes\n\nfelt good\n"
	assert.Equal(t, want, got)

	assert.Equal(t, "No details logged.\n", domain.RenderDetails(domain.HistoryEntry{}, nil))
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	summary := domain.Summarize(domain.HistoryEntry{
		ID:    "h1",
		Logs:  domain.DayLog{"Back Squat": {{Weight: "95"}, {}, {Reps: " 5"}}},
		Notes: " ",
	})
	assert.Equal(t, 2, summary.LoggedSets)
	assert.False(t, summary.HasNotes)
	assert.Equal(t, "Player", summary.Athlete)
}
