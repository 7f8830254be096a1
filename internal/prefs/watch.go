// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher is implemented by stores that can report outside changes.
type Watcher interface {
	Watch(ctx context.Context, onChange func(key, value string), onError func(error)) error
}

// Watch reloads the file whenever it changes on disk and calls onChange for
// every key whose value differs from before. It blocks until ctx is done.
// Watcher and reload errors go to onError, which may be nil, and do not end
// the watch.
//
// The directory is watched rather than the file because AtomicWriteFile
// replaces the file by rename.
func (s *FileStore) Watch(ctx context.Context, onChange func(key, value string), onError func(error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	s.watchLoop(ctx, w.Events, w.Errors, onChange, onError)
	return nil
}

// watchLoop applies events to the store until ctx is done or either channel
// is closed.
func (s *FileStore) watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, onChange func(key, value string), onError func(error)) {
	if onError == nil {
		onError = func(error) {}
	}
	target := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-errs:
			if !ok {
				return
			}
			onError(fmt.Errorf("watch %s: %w", filepath.Dir(target), err))
		case ev, ok := <-events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			before := s.snapshot()
			if err := s.reload(); err != nil {
				onError(err)
				continue
			}
			for k, v := range s.snapshot() {
				if old, ok := before[k]; !ok || old != v {
					onChange(k, v)
				}
			}
		}
	}
}

func (s *FileStore) snapshot() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}
