// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"context"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"github.com/dacolabs/zodgen/internal/logger"
)

// watcher reruns a callback when schema files in a directory change.
// Editors often replace files instead of writing them, so the directory is
// watched rather than the file.
type watcher struct {
	fsw *fsnotify.Watcher
}

func newWatcher(dir string) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, errors.Wrapf(err, "failed to watch %s", dir)
	}
	return &watcher{fsw: fsw}, nil
}

func (w *watcher) Close() error {
	return w.fsw.Close()
}

// Run blocks until ctx is done. Bursts of events are collapsed into one
// call to onChange after debounce of quiet. Calls never overlap. A failing
// call is logged and watching continues.
func (w *watcher) Run(ctx context.Context, debounce time.Duration, onChange func() error) error {
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !isSchemaFile(event.Name) || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			logger.Logger.Debugw("Change detected",
				logger.FieldFile, event.Name,
				logger.FieldEvent, event.Op.String())
			timer.Reset(debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Logger.Warnw("Watcher error", logger.FieldError, err)

		case <-timer.C:
			if err := onChange(); err != nil {
				logger.Logger.Errorw("Regeneration failed", logger.FieldError, err)
			}
		}
	}
}

func isSchemaFile(name string) bool {
	switch filepath.Ext(name) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
