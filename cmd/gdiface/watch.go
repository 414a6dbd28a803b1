/*
 * gdiface - Godot script interface conformance checker
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const watchDebounce = 100 * time.Millisecond

// watcher calls onChange when any of the watched files,
// or any file in the watched directories, is changed.
// Bursts of changes, e.g. of editors saving atomically, result in one call.
type watcher struct {
	paths    []string
	debounce time.Duration
	logger   zerolog.Logger
	onChange func()
	// onReady is called once all paths are watched, if set
	onReady func()
}

func newWatcher(paths []string, logger zerolog.Logger, onChange func()) *watcher {
	return &watcher{
		paths:    paths,
		debounce: watchDebounce,
		logger:   logger,
		onChange: onChange,
	}
}

// Run watches until the context is done.
// onChange is called on the goroutine calling Run, so calls never overlap.
func (w *watcher) Run(ctx context.Context) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsWatcher.Close()

	files := map[string]struct{}{}
	var dirs []string

	watched := map[string]struct{}{}
	watch := func(dir string) error {
		if _, ok := watched[dir]; ok {
			return nil
		}
		watched[dir] = struct{}{}
		return fsWatcher.Add(dir)
	}

	for _, path := range w.paths {
		path = filepath.Clean(path)

		info, err := os.Stat(path)
		if err != nil {
			return err
		}

		if !info.IsDir() {
			files[path] = struct{}{}
			// The directory is watched, so that files replaced by atomic saves are still noticed
			if err := watch(filepath.Dir(path)); err != nil {
				return err
			}
			continue
		}

		dirs = append(dirs, path)
		err = filepath.WalkDir(path, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !entry.IsDir() {
				return nil
			}
			return watch(path)
		})
		if err != nil {
			return err
		}
	}

	relevant := func(name string) bool {
		name = filepath.Clean(name)
		if _, ok := files[name]; ok {
			return true
		}
		for _, dir := range dirs {
			if strings.HasPrefix(name, dir+string(filepath.Separator)) {
				return true
			}
		}
		return false
	}

	if w.onReady != nil {
		w.onReady()
	}

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			if !relevant(event.Name) {
				continue
			}

			w.logger.Debug().
				Str("path", event.Name).
				Str("op", event.Op.String()).
				Msg("change detected")

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.onChange()

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("watch error")

		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()
		}
	}
}
