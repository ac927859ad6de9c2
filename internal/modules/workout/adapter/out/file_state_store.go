package out

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"liftlog/internal/modules/workout/domain"
	workoutout "liftlog/internal/modules/workout/port/out"
	apperrors "liftlog/internal/platform/errors"
)

// FileStateStore keeps the whole state as one JSON document.
type FileStateStore struct {
	path string
}

func NewFileStateStore(path string) workoutout.StateStore {
	return &FileStateStore{path: path}
}

func (s *FileStateStore) Load(_ context.Context) (domain.Record, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Record{}, apperrors.ErrNotFound
		}
		return domain.Record{}, fmt.Errorf("read state: %w", err)
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return domain.Record{}, apperrors.ErrNotFound
	}
	rec := domain.Record{}
	if err := json.Unmarshal(payload, &rec); err != nil {
		return domain.Record{}, &domain.CorruptStateError{Payload: payload, Cause: err}
	}
	return rec, nil
}

func (s *FileStateStore) Save(_ context.Context, state domain.State) error {
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := writeFileAtomic(s.path, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

func (s *FileStateStore) Remove(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove state: %w", err)
	}
	return nil
}

// writeFileAtomic replaces path so readers see either the old or the new
// content in full.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return syncDir(dir)
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
