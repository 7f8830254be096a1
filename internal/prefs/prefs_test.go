// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	_, ok := s.Get(KeyTheme)
	assert.False(t, ok)

	require.NoError(t, s.Set(KeyTheme, "dark"))
	v, ok := s.Get(KeyTheme)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".softhub", DefaultFileName)

	s, err := NewFileStore(path)
	require.NoError(t, err)
	_, ok := s.Get(KeyTheme)
	assert.False(t, ok, "missing file is an empty store")

	require.NoError(t, s.Set(KeyTheme, "dark"))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	v, ok := reopened.Get(KeyTheme)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("theme = "), 0600))

	_, err := NewFileStore(path)
	assert.Error(t, err)
}

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme(" Dark ")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, th)

	_, err = ParseTheme("solarized")
	assert.Error(t, err)
}

func TestThemeToggle(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
	assert.True(t, ThemeDark.IsDark())
}

func TestLoadTheme(t *testing.T) {
	dark := func() bool { return true }
	light := func() bool { return false }

	tests := []struct {
		name   string
		saved  string
		detect func() bool
		want   Theme
	}{
		{"saved light beats dark OS", "light", dark, ThemeLight},
		{"saved dark beats light OS", "dark", light, ThemeDark},
		{"unset falls back to OS dark", "", dark, ThemeDark},
		{"unset falls back to OS light", "", light, ThemeLight},
		{"invalid falls back to OS", "sepia", dark, ThemeDark},
		{"no detector means light", "", nil, ThemeLight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMemoryStore()
			if tt.saved != "" {
				require.NoError(t, s.Set(KeyTheme, tt.saved))
			}
			assert.Equal(t, tt.want, LoadTheme(s, tt.detect))
		})
	}
}

func TestSaveThemePersists(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, SaveTheme(s, ThemeLight.Toggle()))
	assert.Equal(t, ThemeDark, LoadTheme(s, nil))
}

func TestFileStoreWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	watched, err := NewFileStore(path)
	require.NoError(t, err)
	other, err := NewFileStore(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan string, 8)
	go func() {
		_ = watched.Watch(ctx, func(key, value string) {
			if key == KeyTheme {
				changes <- value
			}
		}, nil)
	}()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case v := <-changes:
			assert.Equal(t, "dark", v)
			got, _ := watched.Get(KeyTheme)
			assert.Equal(t, "dark", got)
			return
		case <-ticker.C:
			require.NoError(t, other.Set(KeyTheme, "dark"))
		case <-deadline:
			t.Fatal("watcher never reported the change")
		}
	}
}

func TestWatchLoopSurvivesErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	watched, err := NewFileStore(path)
	require.NoError(t, err)
	other, err := NewFileStore(path)
	require.NoError(t, err)

	events := make(chan fsnotify.Event)
	errs := make(chan error)
	var reported []error
	var changed []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		watched.watchLoop(context.Background(), events, errs, func(key, value string) {
			changed = append(changed, key+"="+value)
		}, func(err error) {
			reported = append(reported, err)
		})
	}()

	errs <- errors.New("queue overflow")
	errs <- errors.New("queue overflow again")

	require.NoError(t, other.Set(KeyTheme, "dark"))
	events <- fsnotify.Event{Name: filepath.Join(filepath.Dir(path), "unrelated.toml"), Op: fsnotify.Write}
	events <- fsnotify.Event{Name: path, Op: fsnotify.Write}

	require.NoError(t, os.WriteFile(path, []byte("theme = "), 0600))
	events <- fsnotify.Event{Name: path, Op: fsnotify.Write}

	close(events)
	<-done

	require.Len(t, reported, 3)
	assert.Contains(t, reported[0].Error(), "queue overflow")
	assert.Contains(t, reported[2].Error(), "failed to read preferences")
	assert.Equal(t, []string{KeyTheme + "=dark"}, changed)
	got, _ := watched.Get(KeyTheme)
	assert.Equal(t, "dark", got)
}
