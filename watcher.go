// watcher.go reloads the user-supplied catalog file when it changes on disk
// so edits show up in the running TUI without a restart.
package main

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/sammcj/llmfit/catalog"
	"github.com/sammcj/llmfit/logging"
)

// watchCatalog blocks watching the directory containing path. Editors often
// replace files on save rather than writing in place, so the watch is on the
// directory and events are filtered by name.
func watchCatalog(path string, p *tea.Program) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logging.ErrorLogger.Printf("Failed to create catalog watcher: %v", err)
		return
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		logging.ErrorLogger.Printf("Failed to watch %s: %v", dir, err)
		return
	}
	target := filepath.Base(path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			extra, err := catalog.LoadFile(path)
			if err != nil {
				// A partially written file is expected mid-save, keep the
				// previous catalog until a clean read succeeds
				logging.DebugLogger.Printf("Catalog reload skipped: %v", err)
				continue
			}

			models := catalog.Merge(catalog.Load(), extra)
			p.Send(catalogReloadedMsg{models: models})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logging.ErrorLogger.Printf("Catalog watcher error: %v", err)
		}
	}
}
