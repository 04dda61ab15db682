// Package watcher monitors the live console log for appends and rotation
// using OS-level file notifications.
package watcher

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Event represents a change to the watched live log file.
type Event struct {
	Path string
	Op   fsnotify.Op
}

// Watcher watches the directory containing the live log and forwards only
// the events that concern it. Watching the directory instead of the file
// keeps notifications flowing across rotation, when the file is renamed
// away and recreated.
type Watcher struct {
	fsw    *fsnotify.Watcher
	target string
	Events chan Event
}

// New creates a Watcher for the given live log file path.
func New(target string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		fsw.Close()
		return nil, err
	}

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	return &Watcher{
		fsw:    fsw,
		target: abs,
		Events: make(chan Event, 256),
	}, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.target
}

// Start begins forwarding events. It blocks until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	defer w.fsw.Close()
	defer close(w.Events)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Name != w.target {
				continue
			}
			switch {
			case ev.Op&fsnotify.Write != 0,
				ev.Op&fsnotify.Create != 0,
				ev.Op&fsnotify.Remove != 0,
				ev.Op&fsnotify.Rename != 0:
				w.Events <- Event{Path: ev.Name, Op: ev.Op}
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("watcher error")
		}
	}
}
