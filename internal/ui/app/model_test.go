package app

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	programdto "liftlog/internal/modules/program/dto"
	workoutdto "liftlog/internal/modules/workout/dto"
	apperrors "liftlog/internal/platform/errors"
	dayview "liftlog/internal/ui/views/day"
)

type fakeProgram struct{}

func (fakeProgram) Rules(context.Context) programdto.RulesOutput {
	return programdto.RulesOutput{Progression: "reps first", Intensity: "RPE 7"}
}

type fakeWorkout struct {
	mu    sync.Mutex
	views []string
	dates []string
}

func (f *fakeWorkout) ShowDay(_ context.Context, dayKey string) (workoutdto.DayViewOutput, error) {
	return workoutdto.DayViewOutput{Key: dayKey, Title: dayKey}, nil
}

func (f *fakeWorkout) SetEntry(context.Context, string, string, int, *string, *string) (workoutdto.ExerciseLogOutput, error) {
	return workoutdto.ExerciseLogOutput{}, nil
}

func (f *fakeWorkout) Autofill(context.Context, string, string) (workoutdto.ExerciseLogOutput, error) {
	return workoutdto.ExerciseLogOutput{}, nil
}

func (f *fakeWorkout) SetNotes(context.Context, string, string) error { return nil }
func (f *fakeWorkout) ClearDay(context.Context, string) error         { return nil }

func (f *fakeWorkout) SaveHistory(context.Context, string) (workoutdto.HistoryEntryOutput, error) {
	return workoutdto.HistoryEntryOutput{}, apperrors.ErrNothingToSave
}

func (f *fakeWorkout) Video(context.Context, string, string, bool) (workoutdto.VideoOutput, error) {
	return workoutdto.VideoOutput{}, nil
}

func (f *fakeWorkout) Profile(context.Context) (workoutdto.Profile, error) {
	return workoutdto.Profile{Name: "Player"}, nil
}

func (f *fakeWorkout) UpdateProfile(_ context.Context, p workoutdto.Profile) (workoutdto.Profile, error) {
	return p, nil
}

func (f *fakeWorkout) ResetProfile(context.Context) (workoutdto.Profile, error) {
	return workoutdto.Profile{Name: "Player"}, nil
}

func (f *fakeWorkout) ListHistory(context.Context, string, string, string, int) ([]workoutdto.HistorySummaryOutput, error) {
	return nil, nil
}

func (f *fakeWorkout) ShowHistory(context.Context, string) (workoutdto.HistoryEntryOutput, error) {
	return workoutdto.HistoryEntryOutput{}, apperrors.ErrNotFound
}

func (f *fakeWorkout) DeleteHistory(context.Context, string) (bool, error) { return false, nil }
func (f *fakeWorkout) ClearHistory(context.Context) error                  { return nil }

func (f *fakeWorkout) Overview(context.Context) (workoutdto.StateOutput, error) {
	return workoutdto.StateOutput{ActiveView: "history", SelectedDate: "2026-10-17"}, nil
}

func (f *fakeWorkout) SetView(_ context.Context, view string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.views = append(f.views, view)
	return nil
}

func (f *fakeWorkout) SetDate(_ context.Context, date string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dates = append(f.dates, date)
	return date, nil
}

func (f *fakeWorkout) ExportHistory(_ context.Context, dir string) (workoutdto.ExportOutput, error) {
	return workoutdto.ExportOutput{Dir: dir}, nil
}

func (f *fakeWorkout) ResetAll(context.Context) (workoutdto.StateOutput, error) {
	return workoutdto.StateOutput{ActiveView: "day1", SelectedDate: "2026-10-17"}, nil
}

// drain runs cmd and any batched commands it expands to, returning every
// leaf message.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestOverviewRestoresActiveTabAndDate(t *testing.T) {
	t.Parallel()
	workout := &fakeWorkout{}
	m := NewModel(fakeProgram{}, workout)

	msgs := drain(m.loadOverviewCmd())
	require.Len(t, msgs, 1)
	m, _ = update(t, m, msgs[0])

	assert.Equal(t, tabHistory, m.activeTab)
	assert.Equal(t, "2026-10-17", m.date)
}

func TestNumberKeySwitchesTabAndPersistsView(t *testing.T) {
	t.Parallel()
	workout := &fakeWorkout{}
	m := NewModel(fakeProgram{}, workout)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")})
	assert.Equal(t, tabProfile, m.activeTab)
	drain(cmd)
	assert.Equal(t, []string{"profile"}, workout.views)
}

func TestPaletteDayCommandsNeedDayTab(t *testing.T) {
	t.Parallel()
	m := NewModel(fakeProgram{}, &fakeWorkout{})
	m.activeTab = tabProfile

	next, cmd := m.executePalette("save")
	assert.Nil(t, cmd)
	assert.Equal(t, "save: switch to a day tab first", next.(Model).status)

	next, cmd = m.executePalette("history:export")
	assert.Nil(t, cmd)
	assert.Equal(t, "usage: history:export <dir>", next.(Model).status)

	next, _ = m.executePalette("bogus")
	assert.Equal(t, "unknown command: bogus", next.(Model).status)
}

func TestPaletteDateUpdatesSelectedDate(t *testing.T) {
	t.Parallel()
	workout := &fakeWorkout{}
	m := NewModel(fakeProgram{}, workout)

	next, cmd := m.executePalette("date 2026-10-01")
	msgs := drain(cmd)
	require.Len(t, msgs, 1)
	m, _ = update(t, next.(Model), msgs[0])

	assert.Equal(t, []string{"2026-10-01"}, workout.dates)
	assert.Equal(t, "2026-10-01", m.date)
	assert.Equal(t, "workout date 2026-10-01", m.status)
}

func TestSaveWithNothingLoggedExplainsWhy(t *testing.T) {
	t.Parallel()
	m := NewModel(fakeProgram{}, &fakeWorkout{})

	m, cmd := update(t, m, dayview.SavedMsg{DayKey: "day1", Err: apperrors.ErrNothingToSave})
	assert.Nil(t, cmd)
	assert.Equal(t, "Nothing to save yet: log at least one set or a note.", m.status)
}
