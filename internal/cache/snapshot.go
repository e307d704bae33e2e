package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// snapshot is the on-disk form of a Memory store.
type snapshot struct {
	SavedAt time.Time        `json:"saved_at"`
	Entries map[string]entry `json:"entries"`
}

// SaveSnapshot writes the still-live entries to path as JSON, creating parent
// directories as needed. A leading ~/ is expanded to the home directory.
func (m *Memory) SaveSnapshot(path string) error {
	path, err := expandHome(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	m.mu.Lock()
	now := time.Now()
	snap := snapshot{
		SavedAt: now,
		Entries: make(map[string]entry, len(m.entries)),
	}
	for key, e := range m.entries {
		if e.expired(now) {
			continue
		}
		snap.Entries[key] = e
	}
	m.mu.Unlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}

// LoadSnapshot restores entries from a snapshot file, skipping any that
// expired since the save. A missing file is not an error.
func (m *Memory) LoadSnapshot(path string) error {
	path, err := expandHome(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parsing snapshot: %w", err)
	}

	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	for key, e := range snap.Entries {
		if e.expired(now) {
			continue
		}
		m.entries[key] = e
	}

	return nil
}

// expandHome expands a leading ~/ to the user's home directory
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
