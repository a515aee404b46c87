package decision

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Storage persists the full decision map. Implementations rewrite the
// whole snapshot on every save; there are no partial patches.
type Storage interface {
	Load() (map[string]Decision, error)
	Save(decisions map[string]Decision) error
}

// FileStorage keeps the decision map as one JSON object at a
// well-known path. Saves go through a temp file in the same directory
// followed by a rename, so readers never observe a half-written file.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (s *FileStorage) Load() (map[string]Decision, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]Decision{}, nil
		}
		return nil, fmt.Errorf("read decisions file: %w", err)
	}

	if len(data) == 0 {
		return map[string]Decision{}, nil
	}

	decisions := map[string]Decision{}
	if err := json.Unmarshal(data, &decisions); err != nil {
		return nil, fmt.Errorf("decode decisions file %q: %w", s.path, err)
	}

	return decisions, nil
}

func (s *FileStorage) Save(decisions map[string]Decision) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create decisions directory: %w", err)
	}

	data, err := json.MarshalIndent(decisions, "", "  ")
	if err != nil {
		return fmt.Errorf("encode decisions: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".decisions_*.json")
	if err != nil {
		return fmt.Errorf("create temp decisions file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write decisions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace decisions file: %w", err)
	}

	return nil
}

// MemoryStorage is the in-process backend used by tests and by any
// caller that wants gating without a file on disk.
type MemoryStorage struct {
	decisions map[string]Decision
	failSave  error
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{decisions: map[string]Decision{}}
}

// FailSavesWith makes every subsequent Save return err. Used to test
// that gating survives persistence failures.
func (s *MemoryStorage) FailSavesWith(err error) {
	s.failSave = err
}

func (s *MemoryStorage) Load() (map[string]Decision, error) {
	copied := make(map[string]Decision, len(s.decisions))
	for id, d := range s.decisions {
		copied[id] = d
	}
	return copied, nil
}

func (s *MemoryStorage) Save(decisions map[string]Decision) error {
	if s.failSave != nil {
		return s.failSave
	}
	copied := make(map[string]Decision, len(decisions))
	for id, d := range decisions {
		copied[id] = d
	}
	s.decisions = copied
	return nil
}
