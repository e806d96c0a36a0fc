package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// snapshot is the durable form of the cache: the blob index, the running
// statistics, and the per-text miss counters, in one JSON document.
type snapshot struct {
	Entries map[string]*Entry `json:"cache"`
	Stats   counters          `json:"stats"`
	Seen    map[string]int    `json:"hit_counts"`
}

func emptySnapshot() snapshot {
	return snapshot{
		Entries: make(map[string]*Entry),
		Seen:    make(map[string]int),
	}
}

// loadSnapshot reads the persisted state from dir. A missing file is a
// normal empty start; any other failure is reported so the caller can log
// it and fall back to empty state.
func loadSnapshot(dir string) (snapshot, error) {
	data, err := os.ReadFile(filepath.Join(dir, snapshotName))
	if err != nil {
		if os.IsNotExist(err) {
			return emptySnapshot(), nil
		}
		return emptySnapshot(), err
	}

	snap := emptySnapshot()
	if err := json.Unmarshal(data, &snap); err != nil {
		return emptySnapshot(), err
	}
	if snap.Entries == nil {
		snap.Entries = make(map[string]*Entry)
	}
	if snap.Seen == nil {
		snap.Seen = make(map[string]int)
	}
	return snap, nil
}

// saveSnapshot writes the full cache state to the snapshot file.
// Must be called with the cache lock held.
func (c *ResponseCache) saveSnapshot() error {
	snap := snapshot{Entries: c.entries, Stats: c.stats, Seen: c.seen}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(c.dir, snapshotName), data)
}

// writeFile writes data through a temp file and renames it into place so a
// crash mid-write cannot leave a truncated file behind.
func writeFile(path string, data []byte) error {
	tempPath := path + ".tmp"

	file, err := os.Create(tempPath)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	closeErr := file.Close()

	if err != nil {
		os.Remove(tempPath)
		return err
	}
	if closeErr != nil {
		os.Remove(tempPath)
		return closeErr
	}

	return os.Rename(tempPath, path)
}
