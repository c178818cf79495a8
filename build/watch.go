package build

import (
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aaronpuchert/logic/logging"
)

// Watch re-runs the checker whenever one of its input files changes.  The
// pipeline itself stays synchronous: file events only retrigger a full run.
// Watch blocks until the watcher's channels are closed; errors reported by
// the watcher while running are logged and watching continues.
func (c *Checker) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(c.rulesPath); err != nil {
		return err
	}
	for _, path := range c.theoryPaths {
		if err := watcher.Add(path); err != nil {
			return err
		}
	}

	c.Check()

	// Editors often produce bursts of events for one save; changes are
	// coalesced until the burst is over.
	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				pending = time.After(100 * time.Millisecond)

				// Some editors replace the file, which removes the watch.
				watcher.Add(event.Name)
			}

		case <-pending:
			pending = nil
			logging.PrintInfoMessage("Watch", "input changed, rechecking")
			c.Check()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.PrintErrorMessage("Watch Error", err)
		}
	}
}
