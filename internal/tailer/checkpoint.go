package tailer

import (
	"encoding/json"
	"os"
	"sync"
)

// checkpointData is the on-disk JSON structure. The tailer follows exactly
// one live log, so a single path/offset pair is all the state there is.
type checkpointData struct {
	Path   string `json:"path"`
	Offset int64  `json:"offset"`
}

// Checkpoint persists the live-log read offset so a restart doesn't replay
// lines that were already broadcast.
type Checkpoint struct {
	mu   sync.RWMutex
	path string
	data checkpointData
}

// NewCheckpoint creates or loads a checkpoint file at the given path.
func NewCheckpoint(path string) (*Checkpoint, error) {
	c := &Checkpoint{path: path}

	raw, err := os.ReadFile(path)
	if err == nil {
		_ = json.Unmarshal(raw, &c.data)
	}

	return c, nil
}

// Get returns the saved offset for the live log path. A checkpoint written
// for a different path doesn't apply.
func (c *Checkpoint) Get(path string) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.data.Path != path {
		return 0, false
	}
	return c.data.Offset, true
}

// Set records the current offset for the live log path.
func (c *Checkpoint) Set(path string, offset int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = checkpointData{Path: path, Offset: offset}
}

// Save writes the checkpoint to disk atomically via a temp file rename.
func (c *Checkpoint) Save() error {
	c.mu.RLock()
	raw, err := json.MarshalIndent(c.data, "", "  ")
	c.mu.RUnlock()
	if err != nil {
		return err
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}
