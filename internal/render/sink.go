package render

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format names an image encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// ErrUnsupportedFormat reports an image format the sinks cannot encode.
var ErrUnsupportedFormat = errors.New("render: unsupported image format")

// OutputError reports a failure writing rendered output. It is distinct from
// generation errors.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("render: writing %q: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }

// Sink consumes a rendered image.
type Sink interface {
	Write(img image.Image) error
}

// ParseFormat resolves a format name or file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "", "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	}
	return "", errors.Wrapf(ErrUnsupportedFormat, "%q", s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatBMP:
		return "image/bmp"
	case FormatTIFF:
		return "image/tiff"
	default:
		return "image/png"
	}
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return errors.Wrapf(ErrUnsupportedFormat, "%q", format)
}

// FileSink writes images to Path, choosing the codec from its extension.
type FileSink struct {
	Path string
}

// Write encodes img to the sink's path, creating parent directories.
func (s FileSink) Write(img image.Image) error {
	format, err := ParseFormat(filepath.Ext(s.Path))
	if err != nil {
		return &OutputError{Path: s.Path, Err: err}
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &OutputError{Path: s.Path, Err: err}
		}
	}
	f, err := os.Create(s.Path)
	if err != nil {
		return &OutputError{Path: s.Path, Err: err}
	}
	w := bufio.NewWriter(f)
	if err := Encode(w, img, format); err != nil {
		f.Close()
		return &OutputError{Path: s.Path, Err: errors.Wrap(err, "encode")}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return &OutputError{Path: s.Path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &OutputError{Path: s.Path, Err: err}
	}
	return nil
}
