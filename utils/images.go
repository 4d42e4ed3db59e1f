package utils

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/webp"
	"github.com/pkg/errors"
	_ "golang.org/x/image/webp"
)

// ThumbnailName is the composite written into every coin directory.
const ThumbnailName = "thumbnail.jpg"

// DerivativeExt is the extension of compressed derivative pictures.
const DerivativeExt = ".webp"

var acceptedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".jpe":  true,
	".jp2":  true,
	".png":  true,
}

// IsImage reports whether path has an accepted picture extension
// (case-insensitive).
func IsImage(path string) bool {
	return acceptedExtensions[strings.ToLower(filepath.Ext(path))]
}

// ListImages returns the accepted pictures of dir in lexicographic order of
// their names. The thumbnail output is never listed.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", dir)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !IsImage(e.Name()) || strings.EqualFold(e.Name(), ThumbnailName) {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	return out, nil
}

// SequentialName is the zero-padded name given to the i-th picture.
func SequentialName(i int, ext string) string {
	return fmt.Sprintf("%04d%s", i, ext)
}

// DerivativePath keeps the stem of path and swaps the extension.
func DerivativePath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + DerivativeExt
}

// ErrUnsupportedFormat is returned for accepted pictures no decoder is
// registered for (JPEG 2000).
var ErrUnsupportedFormat = errors.New("unsupported picture format")

// ReadImage decodes a picture, applying its EXIF orientation.
func ReadImage(path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".jp2") {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "read %s: JPEG 2000 cannot be decoded, convert it to JPEG or PNG", path)
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return img, nil
}

// SaveImage encodes img in the format named by the extension of path. The
// picture is written to a temporary file next to path and renamed over it,
// so a failed save leaves any existing file untouched.
func SaveImage(img image.Image, path string, jpegQuality int) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		if !strings.EqualFold(filepath.Ext(path), ".jpe") {
			return errors.Wrapf(err, "save %s", path)
		}
		format = imaging.JPEG
	}
	f, err := os.CreateTemp(filepath.Dir(path), ".coinpics-save-*.tmp")
	if err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	tmp := f.Name()
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := f.Chmod(mode); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.Wrapf(err, "save %s", path)
	}
	if err := imaging.Encode(f, img, format, imaging.JPEGQuality(jpegQuality)); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.Wrapf(err, "encode %s", path)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "save %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "save %s", path)
	}
	return nil
}

// Reencode compresses img as lossy WebP. quality must be within [0,100].
func Reencode(img image.Image, quality int) ([]byte, error) {
	if quality < 0 || quality > 100 {
		return nil, errors.Errorf("webp quality %d outside [0,100]", quality)
	}
	if img == nil || img.Bounds().Empty() {
		return nil, errors.New("reencode: empty image")
	}
	var b bytes.Buffer
	if err := webp.Encode(&b, img, webp.Options{Quality: quality}); err != nil {
		return nil, errors.Wrap(err, "webp encode")
	}
	return b.Bytes(), nil
}
