// Package file writes an NDJSON transcript of accepted messages with
// buffered I/O and optional size-based rotation. Useful for replaying a
// session after the display surface is gone.
package file

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/crimson-sun/wisp/internal/model"
	"github.com/crimson-sun/wisp/internal/render"
)

const defaultBufSize = 64 * 1024 // 64KB

// Option configures a file Renderer.
type Option func(*Renderer)

// WithMaxSize sets the file size (bytes) at which rotation triggers.
// 0 (default) disables rotation.
func WithMaxSize(bytes int64) Option {
	return func(r *Renderer) { r.maxSize = bytes }
}

// WithBufSize sets the bufio.Writer buffer size. Default: 64KB.
func WithBufSize(bytes int) Option {
	return func(r *Renderer) { r.bufSize = bytes }
}

// Renderer appends one JSON record per accepted message. Lifecycle events
// other than exhaustion are not persisted; diagnostics already travel the
// message stream.
type Renderer struct {
	render.Nop
	w       *bufio.Writer
	f       *os.File
	path    string
	maxSize int64 // 0 = no rotation
	written int64
	bufSize int
}

// New creates a file renderer appending to the given path.
func New(path string, opts ...Option) (*Renderer, error) {
	r := &Renderer{path: path, bufSize: defaultBufSize}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.openFile(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) MessageAppended(msg model.Message) {
	data, err := json.Marshal(render.NewRecord(msg))
	if err != nil {
		return
	}
	data = append(data, '\n')

	if r.maxSize > 0 && r.written+int64(len(data)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return
		}
	}

	n, _ := r.w.Write(data)
	r.written += int64(n)
}

// Close flushes the buffer and closes the file.
func (r *Renderer) Close() error {
	if err := r.w.Flush(); err != nil {
		r.f.Close()
		return fmt.Errorf("file renderer: flush: %w", err)
	}
	return r.f.Close()
}

// openFile opens (or creates) the transcript file and wraps it in a
// bufio.Writer.
func (r *Renderer) openFile() error {
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("file renderer: open %s: %w", r.path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("file renderer: stat %s: %w", r.path, err)
	}
	r.f = f
	r.w = bufio.NewWriterSize(f, r.bufSize)
	r.written = info.Size()
	return nil
}

// rotate flushes, closes the current file, renames it to {path}.1
// (shifting existing rotated files), and opens a new file.
func (r *Renderer) rotate() error {
	if err := r.w.Flush(); err != nil {
		return err
	}
	if err := r.f.Close(); err != nil {
		return err
	}

	// Shift existing rotated files: .2 → .3, .1 → .2, current → .1
	for i := 9; i >= 1; i-- {
		from := fmt.Sprintf("%s.%d", r.path, i)
		to := fmt.Sprintf("%s.%d", r.path, i+1)
		os.Rename(from, to) // ignore errors — file may not exist
	}
	if err := os.Rename(r.path, r.path+".1"); err != nil {
		return err
	}

	r.written = 0
	return r.openFile()
}
