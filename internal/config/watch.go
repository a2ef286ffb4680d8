package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// debounceDelay coalesces the event bursts editors emit for a single save.
const debounceDelay = 100 * time.Millisecond

// Watcher reloads the configuration file when it changes on disk.
//
// The file's directory is watched rather than the file itself so that
// editors which replace the file on save (write to a temp file, rename
// over) keep triggering reloads.
type Watcher struct {
	log      zerolog.Logger
	path     string
	fsw      *fsnotify.Watcher
	onChange func(Config)
	done     chan struct{}
}

// Watch starts watching the configuration file at path. After each change
// it reloads the file and calls onChange with the result, on the watcher's
// goroutine. Reloads that fail to parse or validate are logged and dropped,
// keeping the previous configuration in effect.
func Watch(path string, onChange func(Config), log zerolog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		log:      log.With().Str("component", "config").Logger(),
		path:     abs,
		fsw:      fsw,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)

	timer := time.NewTimer(debounceDelay)
	if !timer.Stop() {
		<-timer.C
	}
	armed := false

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			if armed && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(debounceDelay)
			armed = true

		case <-timer.C:
			armed = false
			w.reload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("config watch error")
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.log.Warn().Err(err).Msg("config reload failed, keeping previous")
		return
	}
	w.log.Info().Str("path", w.path).Msg("config reloaded")
	w.onChange(cfg)
}
