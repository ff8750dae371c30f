package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/serroba/scoreboard/internal/leaderboard"
)

// FileSnapshots persists the board as a JSON array in a single file.
// Saves go to a temporary file in the same directory which is then renamed over
// the target, so readers see either the old or the new snapshot.
type FileSnapshots struct {
	path string
	mu   sync.Mutex
}

// NewFileSnapshots creates a file-backed snapshot store at path.
func NewFileSnapshots(path string) *FileSnapshots {
	return &FileSnapshots{path: path}
}

// Path returns the snapshot file location.
func (f *FileSnapshots) Path() string {
	return f.path
}

// Load reads the snapshot. A missing or empty file is an empty board.
func (f *FileSnapshots) Load(ctx context.Context) ([]leaderboard.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []leaderboard.Entry{}, nil
		}

		return nil, err
	}

	entries := []leaderboard.Entry{}

	if len(b) == 0 {
		return entries, nil
	}

	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}

	return entries, nil
}

func (f *FileSnapshots) Save(ctx context.Context, entries []leaderboard.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if entries == nil {
		entries = []leaderboard.Entry{}
	}

	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return err
	}

	if err := writeAndSync(tmp, b); err != nil {
		_ = os.Remove(tmp.Name())

		return err
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		_ = os.Remove(tmp.Name())

		return err
	}

	return nil
}

// Ping checks that the snapshot directory exists or can be created.
func (f *FileSnapshots) Ping(_ context.Context) error {
	return os.MkdirAll(filepath.Dir(f.path), 0o755)
}

func writeAndSync(file *os.File, b []byte) error {
	if _, err := file.Write(b); err != nil {
		_ = file.Close()

		return err
	}

	if err := file.Sync(); err != nil {
		_ = file.Close()

		return err
	}

	return file.Close()
}

var _ leaderboard.SnapshotStore = (*FileSnapshots)(nil)
