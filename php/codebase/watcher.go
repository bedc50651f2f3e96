package codebase

import (
	"io/fs"
	"path/filepath"
	"time"
)

// FileWatcher polls the project tree and keeps the codebase in sync with
// it. Files for which Skip returns true are left alone. OnChange, when
// set, is called after a file was parsed again; fi is nil when the file
// was removed.
type FileWatcher struct {
	codebase     *Codebase
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time

	Skip     func(path string) bool
	OnChange func(path string, fi *FileInfo)
}

func NewFileWatcher(c *Codebase) *FileWatcher {
	return &FileWatcher{
		codebase:     c,
		stopCh:       make(chan struct{}),
		pollInterval: c.project.Config.Watch.Interval.Duration,
		modTimes:     make(map[string]time.Time),
	}
}

func (w *FileWatcher) Start() {
	go w.run()
}

func (w *FileWatcher) Stop() {
	close(w.stopCh)
}

func (w *FileWatcher) run() {
	interval := w.pollInterval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *FileWatcher) scan() {
	proj := w.codebase.project
	currentFiles := make(map[string]bool)

	for _, inc := range proj.Config.Include {
		filepath.WalkDir(filepath.Join(proj.RootDir, inc), func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if rel, err := filepath.Rel(proj.RootDir, path); err == nil && proj.Excluded(rel) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !proj.IsSource(path) {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}

			currentFiles[path] = true

			lastMod, known := w.modTimes[path]
			if w.Skip != nil && w.Skip(path) {
				return nil
			}
			if !known || info.ModTime().After(lastMod) {
				w.modTimes[path] = info.ModTime()
				if err := w.codebase.ScanFile(path); err != nil {
					log.Warningf("%s", err)
					return nil
				}
				w.changed(path, w.codebase.GetFile(path))
			}
			return nil
		})
	}

	for path := range w.modTimes {
		if !currentFiles[path] {
			delete(w.modTimes, path)
			w.codebase.RemoveFile(path)
			w.changed(path, nil)
		}
	}
}

func (w *FileWatcher) changed(path string, fi *FileInfo) {
	if w.OnChange != nil {
		w.OnChange(path, fi)
	}
}
