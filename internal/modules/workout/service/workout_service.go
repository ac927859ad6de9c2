package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"liftlog/internal/modules/workout/domain"
	workoutout "liftlog/internal/modules/workout/port/out"
	"liftlog/internal/platform/clock"
	"liftlog/internal/platform/config"
	apperrors "liftlog/internal/platform/errors"
	"liftlog/internal/platform/id"
)

const maxLoggedPayload = 512

type Options struct {
	Clock         clock.Clock
	IDs           id.Generator
	Store         workoutout.StateStore
	Catalog       workoutout.Catalog
	Index         workoutout.HistoryIndex
	Exporter      workoutout.HistoryExporter
	Launcher      workoutout.VideoLauncher
	CorruptPolicy string
}

// WorkoutService owns the in-memory state. Every mutation runs against it and
// the whole state is written back before the call returns.
type WorkoutService struct {
	clock         clock.Clock
	idGen         id.Generator
	store         workoutout.StateStore
	catalog       workoutout.Catalog
	index         workoutout.HistoryIndex
	exporter      workoutout.HistoryExporter
	launcher      workoutout.VideoLauncher
	corruptPolicy string
	log           *logrus.Entry

	mu    sync.Mutex
	state *domain.State
}

func NewWorkoutService(opts Options) *WorkoutService {
	policy := opts.CorruptPolicy
	if policy == "" {
		policy = config.CorruptPolicyReset
	}
	return &WorkoutService{
		clock:         opts.Clock,
		idGen:         opts.IDs,
		store:         opts.Store,
		catalog:       opts.Catalog,
		index:         opts.Index,
		exporter:      opts.Exporter,
		launcher:      opts.Launcher,
		corruptPolicy: policy,
		log:           logrus.WithField("component", "workout"),
	}
}

// State returns a deep copy of the current state, loading it on first use.
func (s *WorkoutService) State(ctx context.Context) (domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.State{}, err
	}
	return domain.Clone(*s.state), nil
}

func (s *WorkoutService) Day(ctx context.Context, dayKey string) (domain.DayDef, error) {
	return s.catalog.Day(ctx, dayKey)
}

// OpenDay reconciles every exercise log of the day against the program and
// returns the day with a copy of its log.
func (s *WorkoutService) OpenDay(ctx context.Context, dayKey string) (domain.DayDef, domain.DayLog, error) {
	day, err := s.catalog.Day(ctx, dayKey)
	if err != nil {
		return domain.DayDef{}, nil, err
	}
	var log domain.DayLog
	err = s.mutate(ctx, func(state *domain.State) error {
		current, err := domain.EnsureDay(state, day)
		if err != nil {
			return err
		}
		log = domain.CloneDayLog(current)
		return nil
	})
	if err != nil {
		return domain.DayDef{}, nil, err
	}
	return day, log, nil
}

// FieldUpdate is one value written into a set.
type FieldUpdate struct {
	Field domain.Field
	Value string
}

// SetFields applies every update to one set and persists once, so a weight
// and reps pair is saved together or not at all.
func (s *WorkoutService) SetFields(ctx context.Context, dayKey, exercise string, setIndex int, updates ...FieldUpdate) ([]domain.SetEntry, error) {
	ex, err := s.exercise(ctx, dayKey, exercise)
	if err != nil {
		return nil, err
	}
	var sets []domain.SetEntry
	err = s.mutate(ctx, func(state *domain.State) error {
		for _, u := range updates {
			if err := domain.SetField(state, dayKey, ex, setIndex, u.Field, u.Value); err != nil {
				return err
			}
		}
		sets = append([]domain.SetEntry{}, state.Logs[dayKey][ex.Name]...)
		return nil
	})
	return sets, err
}

func (s *WorkoutService) Autofill(ctx context.Context, dayKey, exercise string) ([]domain.SetEntry, error) {
	ex, err := s.exercise(ctx, dayKey, exercise)
	if err != nil {
		return nil, err
	}
	var sets []domain.SetEntry
	err = s.mutate(ctx, func(state *domain.State) error {
		day, err := s.catalog.Day(ctx, dayKey)
		if err != nil {
			return err
		}
		log, err := domain.EnsureDay(state, day)
		if err != nil {
			return err
		}
		domain.AutofillTargets(log, ex)
		sets = append([]domain.SetEntry{}, log[ex.Name]...)
		return nil
	})
	return sets, err
}

func (s *WorkoutService) SetNotes(ctx context.Context, dayKey, notes string) error {
	return s.mutate(ctx, func(state *domain.State) error {
		return domain.SetNotes(state, dayKey, notes)
	})
}

func (s *WorkoutService) SetDate(ctx context.Context, date string) (string, error) {
	var selected string
	err := s.mutate(ctx, func(state *domain.State) error {
		if err := domain.SetDate(state, strings.TrimSpace(date), clock.Today(s.clock)); err != nil {
			return err
		}
		selected = state.SelectedDate
		return nil
	})
	return selected, err
}

func (s *WorkoutService) SetActiveView(ctx context.Context, view string) error {
	return s.mutate(ctx, func(state *domain.State) error {
		return domain.SetActiveView(state, view)
	})
}

func (s *WorkoutService) UpdateProfile(ctx context.Context, profile domain.Profile) error {
	return s.mutate(ctx, func(state *domain.State) error {
		domain.UpdateProfile(state, profile)
		return nil
	})
}

func (s *WorkoutService) ResetProfile(ctx context.Context) (domain.Profile, error) {
	var profile domain.Profile
	err := s.mutate(ctx, func(state *domain.State) error {
		domain.ResetProfile(state)
		profile = state.Profile
		return nil
	})
	return profile, err
}

func (s *WorkoutService) ClearDay(ctx context.Context, dayKey string) error {
	return s.mutate(ctx, func(state *domain.State) error {
		return domain.ClearDay(state, dayKey)
	})
}

// SaveToHistory snapshots a day. It returns apperrors.ErrNothingToSave,
// without touching state or storage, when the day has nothing logged.
func (s *WorkoutService) SaveToHistory(ctx context.Context, dayKey string) (domain.HistoryEntry, error) {
	day, err := s.catalog.Day(ctx, dayKey)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	var (
		entry   domain.HistoryEntry
		evicted []string
	)
	err = s.mutate(ctx, func(state *domain.State) error {
		before := make(map[string]struct{}, len(state.History))
		for _, h := range state.History {
			before[h.ID] = struct{}{}
		}
		now := s.clock.Now()
		saved, err := domain.SaveToHistory(state, day, s.idGen.New(), now, now.Format(clock.DateLayout))
		if err != nil {
			return err
		}
		entry = saved
		for _, h := range state.History {
			delete(before, h.ID)
		}
		for id := range before {
			evicted = append(evicted, id)
		}
		return nil
	})
	if err != nil && !historyChanged(err) {
		return domain.HistoryEntry{}, err
	}
	s.syncIndex(ctx, func(ctx context.Context) error {
		if err := s.index.Upsert(ctx, entry); err != nil {
			return err
		}
		for _, id := range evicted {
			if err := s.index.Delete(ctx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	s.log.WithFields(logrus.Fields{"id": entry.ID, "day": entry.DayKey, "evicted": len(evicted)}).Info("saved workout to history")
	return entry, nil
}

func (s *WorkoutService) History(ctx context.Context) ([]domain.HistoryEntry, error) {
	state, err := s.State(ctx)
	if err != nil {
		return nil, err
	}
	return state.History, nil
}

func (s *WorkoutService) HistoryEntry(ctx context.Context, id string) (domain.HistoryEntry, error) {
	state, err := s.State(ctx)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	entry, ok := domain.FindHistoryEntry(state, id)
	if !ok {
		return domain.HistoryEntry{}, fmt.Errorf("history entry %q: %w", id, apperrors.ErrNotFound)
	}
	return entry, nil
}

// QueryHistory answers filtered listings from the index, falling back to the
// in-memory list when no index is configured.
func (s *WorkoutService) QueryHistory(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistorySummary, error) {
	if s.index == nil {
		state, err := s.State(ctx)
		if err != nil {
			return nil, err
		}
		return filterHistory(state.History, filter), nil
	}
	if _, err := s.State(ctx); err != nil {
		return nil, err
	}
	return s.index.List(ctx, filter)
}

// DeleteHistoryEntry is a no-op returning false when id is unknown.
func (s *WorkoutService) DeleteHistoryEntry(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	if err := s.ensureLoaded(ctx); err != nil {
		s.mu.Unlock()
		return false, err
	}
	if _, ok := domain.FindHistoryEntry(*s.state, id); !ok {
		s.mu.Unlock()
		return false, nil
	}
	s.mu.Unlock()

	err := s.mutate(ctx, func(state *domain.State) error {
		domain.DeleteHistoryEntry(state, id)
		return nil
	})
	if err != nil && !historyChanged(err) {
		return false, err
	}
	s.syncIndex(ctx, func(ctx context.Context) error { return s.index.Delete(ctx, id) })
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *WorkoutService) ClearHistory(ctx context.Context) error {
	err := s.mutate(ctx, func(state *domain.State) error {
		domain.ClearHistory(state)
		return nil
	})
	if err != nil && !historyChanged(err) {
		return err
	}
	s.syncIndex(ctx, func(ctx context.Context) error { return s.index.Reset(ctx) })
	return err
}

// ResetAll discards the persisted record and reloads as on first launch.
func (s *WorkoutService) ResetAll(ctx context.Context) (domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Remove(ctx); err != nil {
		return domain.State{}, err
	}
	s.state = nil
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.State{}, err
	}
	s.syncIndex(ctx, func(ctx context.Context) error { return s.index.Reset(ctx) })
	s.log.Info("reset all state")
	return domain.Clone(*s.state), nil
}

func (s *WorkoutService) Reindex(ctx context.Context) error {
	if s.index == nil {
		return fmt.Errorf("history index is not configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	return s.rebuildIndex(ctx)
}

func (s *WorkoutService) ExportHistory(ctx context.Context, dir string) ([]string, error) {
	if s.exporter == nil {
		return nil, fmt.Errorf("history exporter is not configured")
	}
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("export directory is required: %w", apperrors.ErrInvalidInput)
	}
	entries, err := s.History(ctx)
	if err != nil {
		return nil, err
	}
	notes := make([]domain.ExportNote, 0, len(entries))
	for _, entry := range entries {
		body, err := s.RenderDetails(ctx, entry)
		if err != nil {
			return nil, err
		}
		notes = append(notes, domain.ExportNote{Entry: entry, Body: body})
	}
	return s.exporter.Export(ctx, dir, notes)
}

// RenderDetails renders an entry with its exercises in program order.
func (s *WorkoutService) RenderDetails(ctx context.Context, entry domain.HistoryEntry) (string, error) {
	var order []string
	day, err := s.catalog.Day(ctx, entry.DayKey)
	switch {
	case err == nil:
		order = day.ExerciseOrder()
	case errors.Is(err, apperrors.ErrNotFound):
	default:
		return "", err
	}
	return domain.RenderDetails(entry, order), nil
}

// OpenVideo resolves the exercise's reference link and, when launch is set,
// hands it to the launcher verbatim.
func (s *WorkoutService) OpenVideo(ctx context.Context, dayKey, exercise string, launch bool) (string, error) {
	ex, err := s.exercise(ctx, dayKey, exercise)
	if err != nil {
		return "", err
	}
	if !launch {
		return ex.Link, nil
	}
	if s.launcher == nil {
		return ex.Link, fmt.Errorf("video launcher is not configured")
	}
	if err := s.launcher.Open(ctx, ex.Link); err != nil {
		return ex.Link, err
	}
	return ex.Link, nil
}

func (s *WorkoutService) exercise(ctx context.Context, dayKey, name string) (domain.ExerciseDef, error) {
	day, err := s.catalog.Day(ctx, dayKey)
	if err != nil {
		return domain.ExerciseDef{}, err
	}
	ex, ok := day.Exercise(name)
	if !ok {
		return domain.ExerciseDef{}, fmt.Errorf("exercise %q on %s: %w", name, dayKey, apperrors.ErrNotFound)
	}
	return ex, nil
}

// mutate applies fn to the live state and persists the result. A failed
// write leaves the mutation in memory and reports apperrors.ErrStorageWrite.
func (s *WorkoutService) mutate(ctx context.Context, fn func(*domain.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	if err := fn(s.state); err != nil {
		return err
	}
	if err := s.store.Save(ctx, *s.state); err != nil {
		s.log.WithError(err).Error("persist state")
		return fmt.Errorf("%w: %v", apperrors.ErrStorageWrite, err)
	}
	return nil
}

// historyChanged reports whether a mutate error left the in-memory history
// modified. A failed write keeps the mutation, so the index must follow it.
func historyChanged(err error) bool {
	return errors.Is(err, apperrors.ErrStorageWrite)
}

func (s *WorkoutService) ensureLoaded(ctx context.Context) error {
	if s.state != nil {
		return nil
	}
	today := clock.Today(s.clock)
	rec, err := s.store.Load(ctx)
	var corrupt *domain.CorruptStateError
	switch {
	case err == nil:
		state := domain.Migrate(rec, today)
		s.state = &state
	case errors.Is(err, apperrors.ErrNotFound):
		state := domain.DefaultState(today)
		s.state = &state
	case errors.As(err, &corrupt) && s.corruptPolicy == config.CorruptPolicyReset:
		s.log.WithError(corrupt.Cause).
			WithField("payload", truncate(corrupt.Payload, maxLoggedPayload)).
			Warn("discarding unreadable state record, starting from defaults")
		state := domain.DefaultState(today)
		s.state = &state
	default:
		return err
	}
	s.checkIndex(ctx)
	return nil
}

// checkIndex rebuilds the history index when it disagrees with the loaded
// history, e.g. after the record was restored by hand.
func (s *WorkoutService) checkIndex(ctx context.Context) {
	if s.index == nil {
		return
	}
	count, err := s.index.Count(ctx)
	if err == nil && count == len(s.state.History) {
		return
	}
	if err := s.rebuildIndex(ctx); err != nil {
		s.log.WithError(err).Warn("rebuild history index")
	}
}

func (s *WorkoutService) rebuildIndex(ctx context.Context) error {
	if err := s.index.Reset(ctx); err != nil {
		return err
	}
	// Oldest first, so insertion order matches capture order.
	for i := len(s.state.History) - 1; i >= 0; i-- {
		if err := s.index.Upsert(ctx, s.state.History[i]); err != nil {
			return err
		}
	}
	return nil
}

// syncIndex keeps the projection in step with history. The state record is
// the source of truth, so failures are logged and repaired on next load.
func (s *WorkoutService) syncIndex(ctx context.Context, fn func(context.Context) error) {
	if s.index == nil {
		return
	}
	if err := fn(ctx); err != nil {
		s.log.WithError(err).Warn("sync history index")
	}
}

func filterHistory(entries []domain.HistoryEntry, filter domain.HistoryFilter) []domain.HistorySummary {
	out := make([]domain.HistorySummary, 0, len(entries))
	for _, entry := range entries {
		if filter.DayKey != "" && entry.DayKey != filter.DayKey {
			continue
		}
		if filter.From != "" && entry.Date < filter.From {
			continue
		}
		if filter.To != "" && entry.Date > filter.To {
			continue
		}
		out = append(out, domain.Summarize(entry))
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out
}

func truncate(payload []byte, limit int) string {
	if len(payload) <= limit {
		return string(payload)
	}
	return string(payload[:limit]) + "…"
}
