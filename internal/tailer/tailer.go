// Package tailer reads newly appended lines from the live console log,
// surviving rotation, and emits them for live broadcast.
package tailer

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/model"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/watcher"
)

// Tailer follows the live log file and emits RawLine values for each
// appended line.
type Tailer struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	offset int64
	out    chan model.RawLine
	ckpt   *Checkpoint
	events <-chan watcher.Event
}

// New creates a Tailer reading rotation/append events from the Watcher.
func New(w *watcher.Watcher, ckpt *Checkpoint) *Tailer {
	return &Tailer{
		path:   w.Path(),
		out:    make(chan model.RawLine, 512),
		ckpt:   ckpt,
		events: w.Events,
	}
}

// Lines returns the channel where raw log lines are sent.
func (t *Tailer) Lines() <-chan model.RawLine {
	return t.out
}

// Start begins processing watcher events. Blocks until context is cancelled.
func (t *Tailer) Start(ctx context.Context) {
	defer close(t.out)

	t.open(true)

	saveTicker := time.NewTicker(5 * time.Second)
	defer saveTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.saveCheckpoint()
			t.closeFile()
			return

		case ev, ok := <-t.events:
			if !ok {
				return
			}
			t.handleEvent(ev)

		case <-saveTicker.C:
			t.saveCheckpoint()
		}
	}
}

func (t *Tailer) handleEvent(ev watcher.Event) {
	switch {
	case ev.Op&fsnotify.Write != 0:
		t.readNewLines()

	case ev.Op&fsnotify.Create != 0:
		// Rotation: the fresh file starts from offset zero.
		t.closeFile()
		t.open(false)
		t.readNewLines()

	case ev.Op&fsnotify.Remove != 0, ev.Op&fsnotify.Rename != 0:
		t.closeFile()
	}
}

// open opens the live file. The first open resumes from the checkpointed
// offset (or the end of file, to skip history); a rotation reopen starts
// at the beginning of the new file.
func (t *Tailer) open(resume bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.file != nil {
		return
	}

	f, err := os.Open(t.path)
	if err != nil {
		log.Warn().Str("path", t.path).Err(err).Msg("cannot open live log")
		return
	}

	var offset int64
	if resume {
		if saved, ok := t.ckpt.Get(t.path); ok {
			offset = saved
		} else {
			offset, _ = f.Seek(0, io.SeekEnd)
		}
	}
	f.Seek(offset, io.SeekStart)

	t.file = f
	t.offset = offset
}

// readNewLines reads from the last offset to EOF and emits complete lines.
func (t *Tailer) readNewLines() {
	t.mu.Lock()
	f := t.file
	t.mu.Unlock()
	if f == nil {
		return
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		t.out <- model.RawLine{Text: scanner.Text(), Source: t.path}
	}
	if err := scanner.Err(); err != nil {
		log.Warn().Str("path", t.path).Err(err).Msg("read error on live log")
	}

	pos, _ := f.Seek(0, io.SeekCurrent)
	t.mu.Lock()
	t.offset = pos
	t.mu.Unlock()
	t.ckpt.Set(t.path, pos)
}

func (t *Tailer) closeFile() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.file != nil {
		t.file.Close()
		t.file = nil
	}
}

func (t *Tailer) saveCheckpoint() {
	if err := t.ckpt.Save(); err != nil {
		log.Warn().Err(err).Msg("checkpoint save failed")
	}
}
