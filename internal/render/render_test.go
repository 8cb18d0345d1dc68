package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"markovmap/internal/terrain"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

func checkerField(t *testing.T, cols, rows int) *terrain.Field {
	t.Helper()
	f, err := terrain.NewField(cols, rows)
	require.NoError(t, err)
	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			require.NoError(t, f.Set(x, y, terrain.Category((x+y)%2)))
		}
	}
	return f
}

func TestPaintFillsCellBlocks(t *testing.T) {
	f := checkerField(t, 3, 2)
	img := Paint(f, []color.RGBA{red, blue}, 4)
	require.Equal(t, image.Rect(0, 0, 12, 8), img.Bounds())

	for py := 0; py < 8; py++ {
		for px := 0; px < 12; px++ {
			want := red
			if (px/4+py/4)%2 == 1 {
				want = blue
			}
			require.Equalf(t, want, img.RGBAAt(px, py), "pixel (%d, %d)", px, py)
		}
	}
}

func TestPaintClampsPalette(t *testing.T) {
	f := checkerField(t, 2, 1)
	img := Paint(f, []color.RGBA{red}, 1)
	require.Equal(t, red, img.RGBAAt(1, 0))

	empty := Paint(f, nil, 2)
	require.Equal(t, color.RGBA{}, empty.RGBAAt(0, 0))
}

func TestPaintClampsCellSize(t *testing.T) {
	f := checkerField(t, 3, 2)
	for _, cell := range []int{0, -4} {
		img := Paint(f, []color.RGBA{red, blue}, cell)
		require.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
		require.Equal(t, blue, img.RGBAAt(1, 0))
	}
}

func TestPaintIntoPartialColumns(t *testing.T) {
	f := checkerField(t, 4, 1)
	img := image.NewRGBA(image.Rect(0, 0, 8, 2))
	PaintInto(img, f, []color.RGBA{red, blue}, 2, 2)
	require.Equal(t, blue, img.RGBAAt(2, 0))
	require.Equal(t, color.RGBA{}, img.RGBAAt(4, 0), "columns beyond the reveal stay blank")
}

func TestFileSinkFormats(t *testing.T) {
	img := Paint(checkerField(t, 4, 4), []color.RGBA{red, blue}, 2)
	dir := t.TempDir()
	decoders := map[string]func(*bytes.Reader) (image.Image, error){
		"out.png":      func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
		"sub/out.bmp":  func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) },
		"out.tiff":     func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) },
		"deep/a/b.tif": func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) },
	}
	for name, decode := range decoders {
		path := filepath.Join(dir, name)
		require.NoError(t, FileSink{Path: path}.Write(img), name)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		got, err := decode(bytes.NewReader(data))
		require.NoError(t, err, name)
		require.Equal(t, img.Bounds(), got.Bounds(), name)
		r, g, b, _ := got.At(2, 0).RGBA()
		require.Equal(t, [3]uint32{0, 0, 0xffff}, [3]uint32{r, g, b}, name)
	}
}

func TestFileSinkErrors(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))

	err := FileSink{Path: filepath.Join(t.TempDir(), "map.gif")}.Write(img)
	var outErr *OutputError
	require.True(t, errors.As(err, &outErr), "got %v", err)
	require.True(t, errors.Is(err, ErrUnsupportedFormat))

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	err = FileSink{Path: filepath.Join(blocker, "map.png")}.Write(img)
	require.True(t, errors.As(err, &outErr), "got %v", err)
	require.Contains(t, outErr.Error(), "map.png")
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatPNG, ".PNG": FormatPNG, "bmp": FormatBMP, ".tif": FormatTIFF, "tiff": FormatTIFF} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseFormat("jpeg")
	require.True(t, errors.Is(err, ErrUnsupportedFormat))
	require.Equal(t, "image/tiff", FormatTIFF.ContentType())
	require.Error(t, Encode(&bytes.Buffer{}, image.NewRGBA(image.Rect(0, 0, 1, 1)), Format("webp")))
}

func TestThumbnail(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 100))
	got := Thumbnail(img, 100)
	require.Equal(t, 100, got.Bounds().Dx())
	require.Equal(t, 25, got.Bounds().Dy())

	tall := Thumbnail(image.NewRGBA(image.Rect(0, 0, 10, 50)), 20)
	require.Equal(t, image.Rect(0, 0, 4, 20), tall.Bounds())

	require.Same(t, img, Thumbnail(img, 0))
	require.Same(t, img, Thumbnail(img, 500))
}
