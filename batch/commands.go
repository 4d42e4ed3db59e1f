package batch

import (
	"context"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/setanarut/coinpics"
	"github.com/setanarut/coinpics/utils"
)

// RenameSequential renames the pictures of every coin directory to 0000.ext,
// 0001.ext, ... following the lexicographic order of the original names.
func (r *Runner) RenameSequential(ctx context.Context) error {
	r.log().Infof("Renaming files in subdirectories")
	return r.forEachDir(ctx, func(ctx context.Context, dir string) error {
		paths, err := utils.ListImages(dir)
		if err != nil {
			return err
		}
		return renameDir(paths, func(from, to string) {
			r.log().Debugf("\t\tRenaming %v to %v", filepath.Base(from), filepath.Base(to))
		})
	})
}

// renameDir goes through temporary names first so a picture already called
// 0001.jpg is never overwritten by another one taking that name. On failure
// every picture not yet renamed gets its old name back.
func renameDir(paths []string, onRename func(from, to string)) error {
	tmp := make([]string, len(paths))
	for i, p := range paths {
		tmp[i] = filepath.Join(filepath.Dir(p), fmt.Sprintf(".coinpics-%04d.tmp", i))
		if err := os.Rename(p, tmp[i]); err != nil {
			return errors.Wrapf(restore(tmp[:i], paths[:i], err), "rename %s", p)
		}
	}
	for i, p := range paths {
		to := filepath.Join(filepath.Dir(p), utils.SequentialName(i, filepath.Ext(p)))
		if err := os.Rename(tmp[i], to); err != nil {
			return errors.Wrapf(restore(tmp[i:], paths[i:], err), "rename %s to %s", p, filepath.Base(to))
		}
		onRename(p, to)
	}
	return nil
}

// restore moves temporary names back to the names they came from. Pictures
// that cannot be moved back are named in the returned error.
func restore(tmp, orig []string, cause error) error {
	var stuck []string
	for i := range tmp {
		if err := os.Rename(tmp[i], orig[i]); err != nil {
			stuck = append(stuck, fmt.Sprintf("%s (now %s)", filepath.Base(orig[i]), filepath.Base(tmp[i])))
		}
	}
	if len(stuck) > 0 {
		return errors.Wrapf(cause, "could not restore %s", strings.Join(stuck, ", "))
	}
	return cause
}

// CreateThumbnails writes thumbnail.jpg into every coin directory.
// maxImages >= 1 only uses the first maxImages pictures.
func (r *Runner) CreateThumbnails(ctx context.Context, maxImages int) error {
	if maxImages > 0 {
		r.log().Infof("Creating thumbnail files in subdirectories with a maximum number of pictures %v...", maxImages)
	} else {
		r.log().Infof("Creating thumbnail files in subdirectories...")
	}
	return r.forEachDir(ctx, func(ctx context.Context, dir string) error {
		paths, err := utils.ListImages(dir)
		if err != nil {
			return err
		}
		if maxImages >= 1 && len(paths) > maxImages {
			paths = paths[:maxImages]
		}
		if len(paths)%2 != 0 {
			return errors.Wrapf(coinpics.ErrUnevenPictureSet,
				"must be an even number of files in each folder (obverse/reverse pairs), found %d", len(paths))
		}
		imgs := make([]image.Image, len(paths))
		for i, p := range paths {
			if err := ctx.Err(); err != nil {
				return err
			}
			if imgs[i], err = utils.ReadImage(p); err != nil {
				return err
			}
		}
		thumb, err := coinpics.ComposeThumbnail(imgs, r.Options.ThumbnailHeight, maxImages)
		if err != nil {
			return err
		}
		out := filepath.Join(dir, utils.ThumbnailName)
		r.log().Debugf("\t\tWriting %v", out)
		return utils.SaveImage(thumb, out, r.Options.JPEGQuality)
	})
}

// CreateDerivatives writes a WebP copy next to every picture.
func (r *Runner) CreateDerivatives(ctx context.Context) error {
	r.log().Infof("Creating WebP images...")
	return r.forEachDir(ctx, func(ctx context.Context, dir string) error {
		return r.forEachImage(ctx, dir, func(path string) error {
			r.log().Debugf("\t\tCreating WebP image for %v", filepath.Base(path))
			img, err := utils.ReadImage(path)
			if err != nil {
				return err
			}
			data, err := utils.Reencode(img, r.Options.DerivativeQuality)
			if err != nil {
				return err
			}
			return os.WriteFile(utils.DerivativePath(path), data, 0o644)
		})
	})
}

// KeyImages keys out the backdrop of every picture in place. The result
// carries an alpha channel, so it is written as PNG with the same stem and a
// source in another format is removed.
func (r *Runner) KeyImages(ctx context.Context) error {
	r.log().Infof("Running chroma keying...")
	return r.forEachDir(ctx, func(ctx context.Context, dir string) error {
		return r.forEachImage(ctx, dir, func(path string) error {
			r.log().Debugf("\t\tChroma keying image: %v", path)
			img, err := utils.ReadImage(path)
			if err != nil {
				return err
			}
			band := r.Options.Band
			if r.SuggestBand {
				var ok bool
				if band, ok = utils.SuggestBand(img); !ok {
					r.log().Infof("%v: no blue backdrop found, using band %v-%v", path, band.Min, band.Max)
				}
			}
			s := coinpics.NewKeySession(img, band)
			if r.Tuner != nil {
				if err := r.Tuner.TuneKey(path, s); err != nil {
					return err
				}
			}
			keyed, err := s.Result()
			if err != nil {
				return err
			}
			out, err := keyedPath(path)
			if err != nil {
				return err
			}
			if err := utils.SaveImage(keyed, out, r.Options.JPEGQuality); err != nil {
				return err
			}
			r.log().Debugf("\t\tImage saved to %v", out)
			if out == path {
				return nil
			}
			return errors.Wrapf(os.Remove(path), "remove %s", path)
		})
	})
}

// keyedPath is where the keyed version of path goes: path itself for PNG
// sources, otherwise a PNG with the same stem. A different picture already
// sitting at that name is never overwritten.
func keyedPath(path string) (string, error) {
	ext := filepath.Ext(path)
	if strings.EqualFold(ext, ".png") {
		return path, nil
	}
	out := strings.TrimSuffix(path, ext) + ".png"
	existing, err := os.Stat(out)
	if errors.Is(err, fs.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "stat %s", out)
	}
	src, err := os.Stat(path)
	if err != nil {
		return "", errors.Wrapf(err, "stat %s", path)
	}
	// A hard link to the source: the save renames a new file over out, so
	// removing the source afterwards is safe.
	if os.SameFile(src, existing) {
		return out, nil
	}
	return "", errors.Errorf("keyed output %s would overwrite another picture", filepath.Base(out))
}

// CropImages crops every picture to its detected coin plus padding,
// overwriting the picture.
func (r *Runner) CropImages(ctx context.Context) error {
	r.log().Infof("Cropping images...")
	return r.forEachDir(ctx, func(ctx context.Context, dir string) error {
		return r.forEachImage(ctx, dir, func(path string) error {
			r.log().Debugf("\t\tCropping image: %v", path)
			img, err := utils.ReadImage(path)
			if err != nil {
				return err
			}
			s, err := coinpics.NewCropSession(img, r.Options.Detect, r.Options.Padding)
			if err != nil {
				return err
			}
			if r.Tuner != nil {
				if err := r.Tuner.TuneCrop(path, s); err != nil {
					return err
				}
			}
			cropped, err := s.Result()
			if err != nil {
				return err
			}
			return utils.SaveImage(cropped, path, r.Options.JPEGQuality)
		})
	})
}
