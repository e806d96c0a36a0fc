package cache

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// startWatcher begins watching the cache directory so blobs deleted behind
// the cache's back (cleanup scripts, disk pressure tools) are purged from
// the index instead of turning into unreadable-blob misses later.
func (c *ResponseCache) startWatcher() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(c.dir); err != nil {
		w.Close()
		return err
	}

	done := make(chan struct{})
	c.watcher = w
	c.watchDone = done
	go c.watchLoop(w, done)

	log.Debug("Watching cache directory", "dir", c.dir)
	return nil
}

func (c *ResponseCache) watchLoop(w *fsnotify.Watcher, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if filepath.Ext(event.Name) != blobExt {
				continue
			}
			c.purgeRemovedBlob(event.Name)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Debug("Cache watcher error", "error", err)
		}
	}
}

// purgeRemovedBlob drops the index entry for a blob path the watcher saw
// disappear. Events for the cache's own evictions arrive after the entry
// is already gone, so those fall out at the lookup below; a Store that
// rewrote the blob between the event and now is detected by re-checking
// the file.
func (c *ResponseCache) purgeRemovedBlob(path string) {
	key := strings.TrimSuffix(filepath.Base(path), blobExt)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return
	}
	if _, err := os.Stat(entry.Path); err == nil {
		return
	}

	delete(c.entries, key)
	log.Warn("Cached blob removed externally, purging entry",
		"key", key, "text", entry.TextPreview)
	c.persist()
}

// stopWatcher shuts the directory watcher down. The fields are swapped out
// under the lock so only one of several concurrent Close calls observes the
// live watcher; the rest are no-ops.
func (c *ResponseCache) stopWatcher() {
	c.mu.Lock()
	w := c.watcher
	done := c.watchDone
	c.watcher = nil
	c.watchDone = nil
	c.mu.Unlock()

	if w == nil {
		return
	}
	close(done)
	if err := w.Close(); err != nil {
		log.Debug("Failed to close cache watcher", "error", err)
	}
}
