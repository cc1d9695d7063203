// Package watch re-renders a file every time it is saved.
package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when Watcher.Debounce is zero.
const DefaultDebounce = 100 * time.Millisecond

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

// Watcher renders Input to Output once and then again after every change.
type Watcher struct {
	Input  string
	Output string
	// Render converts the input bytes to the output bytes.
	Render   func([]byte) ([]byte, error)
	Debounce time.Duration
	Logger   *slog.Logger
	// OnRender, if set, is called after every render attempt.
	OnRender func(error)
}

// Run blocks until ctx is done. A failing first render is returned; later
// failures are logged and the previous output is left in place.
func (w *Watcher) Run(ctx context.Context) error {
	if w.Input == "" || w.Output == "" {
		return errors.New("watch: input and output are required")
	}
	if w.Render == nil {
		return errors.New("watch: Render is nil")
	}
	logger := w.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	input, err := filepath.Abs(w.Input)
	if err != nil {
		return errors.Wrap(err, "watch: input path")
	}
	output, err := filepath.Abs(w.Output)
	if err != nil {
		return errors.Wrap(err, "watch: output path")
	}
	if input == output {
		return errors.New("watch: output must differ from input")
	}

	if err := w.rebuild(input, output, logger); err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "watch: create watcher")
	}
	defer fw.Close()
	// Watch the directory so editors that save by rename keep being seen.
	if err := fw.Add(filepath.Dir(input)); err != nil {
		return errors.Wrapf(err, "watch: add %s", filepath.Dir(input))
	}
	logger.Info("watching", slog.String("input", input), slog.String("output", output))

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != input || ev.Op&relevantOps == 0 {
				continue
			}
			logger.Debug("change", slog.String("op", ev.Op.String()))
			fire = time.After(debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", slog.Any("error", err))
		case <-fire:
			fire = nil
			if err := w.rebuild(input, output, logger); err != nil {
				logger.Error("render failed", slog.Any("error", err))
			}
		}
	}
}

func (w *Watcher) rebuild(input, output string, logger *slog.Logger) (err error) {
	defer func() {
		if w.OnRender != nil {
			w.OnRender(err)
		}
	}()
	start := time.Now()
	src, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(err, "watch: read")
	}
	out, err := w.Render(src)
	if err != nil {
		return errors.Wrap(err, "watch: render")
	}
	if err := writeFileAtomic(output, out); err != nil {
		return errors.Wrap(err, "watch: write")
	}
	logger.Info("rendered",
		slog.String("output", output),
		slog.Int("bytes", len(out)),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

// writeFileAtomic replaces path with data through a temp file in the same
// directory, so readers never see a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
