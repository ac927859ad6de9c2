package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"liftlog/internal/modules/workout/domain"
	workoutout "liftlog/internal/modules/workout/port/out"
	"liftlog/internal/platform/markdown"
	"liftlog/internal/platform/slug"
)

const (
	managedIndexStart = "<!-- liftlog:history:start -->"
	managedIndexEnd   = "<!-- liftlog:history:end -->"
)

type historyFrontmatter struct {
	SchemaVersion int    `yaml:"schema_version"`
	ID            string `yaml:"id"`
	SavedAt       string `yaml:"saved_at"`
	Date          string `yaml:"date"`
	DayKey        string `yaml:"day_key"`
	DayTitle      string `yaml:"day_title"`
	Athlete       string `yaml:"athlete"`
}

// VaultHistoryExporter writes history entries as markdown notes, one per
// entry, plus an index note whose generated list is kept between markers.
// Notes it wrote earlier for entries no longer in history are removed; other
// markdown files under the history folder are left alone.
type VaultHistoryExporter struct{}

func NewVaultHistoryExporter() workoutout.HistoryExporter {
	return VaultHistoryExporter{}
}

func (VaultHistoryExporter) Export(ctx context.Context, dir string, notes []domain.ExportNote) ([]string, error) {
	root := filepath.Join(dir, "history")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	paths := make([]string, 0, len(notes))
	links := make([]string, 0, len(notes))
	written := make(map[string]bool, len(notes))
	for _, note := range notes {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		path, err := writeHistoryNote(root, note)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
		written[path] = true
		rel, _ := filepath.Rel(root, path)
		links = append(links, fmt.Sprintf("- [%s – %s](%s)", note.Entry.Date, note.Entry.DayTitle, filepath.ToSlash(rel)))
	}

	if err := pruneStaleNotes(root, written); err != nil {
		return paths, err
	}
	if err := writeHistoryIndex(filepath.Join(root, "index.md"), links); err != nil {
		return paths, err
	}
	return paths, nil
}

func pruneStaleNotes(root string, keep map[string]bool) error {
	dateDirs, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("read history dir: %w", err)
	}
	for _, dateDir := range dateDirs {
		if !dateDir.IsDir() {
			continue
		}
		dir := filepath.Join(root, dateDir.Name())
		files, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("read %s: %w", dir, err)
		}
		remaining := len(files)
		for _, f := range files {
			path := filepath.Join(dir, f.Name())
			if f.IsDir() || filepath.Ext(f.Name()) != ".md" || keep[path] {
				continue
			}
			owned, err := isExportedNote(path)
			if err != nil {
				return err
			}
			if !owned {
				continue
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("remove stale note: %w", err)
			}
			remaining--
		}
		if remaining == 0 {
			_ = os.Remove(dir)
		}
	}
	return nil
}

// isExportedNote reports whether path carries the frontmatter this exporter
// writes. Unparseable frontmatter means the note is someone else's.
func isExportedNote(path string) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	var meta historyFrontmatter
	_, found, err := markdown.DecodeFrontmatter(string(raw), &meta)
	if err != nil || !found {
		return false, nil
	}
	return meta.ID != "" && meta.SchemaVersion > 0, nil
}

func writeHistoryNote(root string, note domain.ExportNote) (string, error) {
	entry := note.Entry
	date := entry.Date
	if date == "" {
		date = entry.SavedAt.Format("2006-01-02")
	}
	dir := filepath.Join(root, date)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create history note dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s-%s.md", entry.SavedAt.UTC().Format("150405"), slug.Make(entry.DayTitle), shortID(entry.ID))
	path := filepath.Join(dir, name)

	meta := historyFrontmatter{
		SchemaVersion: domain.SchemaVersion,
		ID:            entry.ID,
		SavedAt:       entry.SavedAt.UTC().Format(time.RFC3339),
		Date:          entry.Date,
		DayKey:        entry.DayKey,
		DayTitle:      entry.DayTitle,
		Athlete:       domain.AthleteName(entry.ProfileSnapshot),
	}
	body := fmt.Sprintf("# %s\n\n- Date: %s\n- Athlete: %s\n\n%s", entry.DayTitle, entry.Date, meta.Athlete, note.Body)
	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write history note: %w", err)
	}
	return path, nil
}

// shortID keeps note names unique when two entries share a saved-at second.
func shortID(id string) string {
	id = slug.Make(strings.ReplaceAll(id, "-", ""))
	if len(id) > 8 {
		id = id[:8]
	}
	return id
}

func writeHistoryIndex(path string, links []string) error {
	body := "# Workout history\n"
	if existing, err := os.ReadFile(path); err == nil {
		body = string(existing)
	}
	generated := strings.Join(links, "\n")
	if generated == "" {
		generated = "_No workouts saved yet._"
	}
	body = markdown.ReplaceManagedBlock(body, managedIndexStart, managedIndexEnd, generated)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write history index: %w", err)
	}
	return nil
}
