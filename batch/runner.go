// Package batch applies the coinpics operations to a tree of coin
// directories: one subdirectory per coin, holding its obverse/reverse
// pictures.
package batch

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/setanarut/coinpics"
	"github.com/setanarut/coinpics/logger"
	"github.com/setanarut/coinpics/utils"
)

// Tuner lets an interactive front end adjust a session before its result is
// taken. Returning an error skips the picture. A runner with a Tuner works
// through one directory at a time, so calls never overlap.
type Tuner interface {
	TuneKey(path string, s *coinpics.KeySession) error
	TuneCrop(path string, s *coinpics.CropSession) error
}

type Runner struct {
	Root    string
	Options coinpics.Options
	Log     logger.ILogger
	// Directories processed at once; <= 0 uses GOMAXPROCS. Forced to 1
	// when Tuner is set.
	Workers int
	// Optional; nil takes every result with the configured options.
	Tuner Tuner
	// Derive the keying band of every picture from its backdrop instead of
	// using Options.Band.
	SuggestBand bool
}

func NewRunner(root string, opt coinpics.Options, log logger.ILogger) *Runner {
	return &Runner{Root: root, Options: opt, Log: log}
}

// Run executes one numbered command, as listed by the command line help.
func (r *Runner) Run(ctx context.Context, command byte) error {
	switch command {
	case '1':
		return r.RenameSequential(ctx)
	case '2':
		return r.CreateThumbnails(ctx, -1)
	case '3':
		return r.CreateThumbnails(ctx, 2)
	case '4':
		return r.CreateDerivatives(ctx)
	case '5':
		return r.KeyImages(ctx)
	case '6':
		return r.CropImages(ctx)
	}
	return errors.Errorf("command %q not recognized", command)
}

func (r *Runner) log() logger.ILogger {
	if r.Log == nil {
		return logger.Discard
	}
	return r.Log
}

func (r *Runner) subdirs() ([]string, error) {
	entries, err := os.ReadDir(r.Root)
	if err != nil {
		return nil, errors.Wrapf(err, "list root %s", r.Root)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(r.Root, e.Name()))
		}
	}
	return dirs, nil
}

// forEachDir runs fn on every coin directory, several directories at once.
// A failing directory is logged and the others carry on; only cancellation
// stops the batch.
func (r *Runner) forEachDir(ctx context.Context, fn func(ctx context.Context, dir string) error) error {
	dirs, err := r.subdirs()
	if err != nil {
		return err
	}
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if r.Tuner != nil {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, dir := range dirs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r.log().Debugf("\tDirectory: %v", filepath.Base(dir))
			if err := fn(ctx, dir); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				r.log().Errorf("%v: %v", dir, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// forEachImage runs fn on the pictures of dir in name order, logging and
// skipping the ones that fail.
func (r *Runner) forEachImage(ctx context.Context, dir string, fn func(path string) error) error {
	paths, err := utils.ListImages(dir)
	if err != nil {
		return err
	}
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(p); err != nil {
			r.log().Errorf("%v: %v", p, err)
		}
	}
	return nil
}
