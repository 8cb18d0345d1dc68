package terrain

import (
	"math"

	"github.com/pkg/errors"
)

const unassigned Category = MaxCategories

// Field stores the category painted on each grid cell. Cells are addressed by
// grid index (x, y), not pixels, and stored column-major to follow the
// generator's traversal.
type Field struct {
	cols, rows int
	cells      []Category
	painted    int
}

// NewField allocates an unpainted field.
func NewField(cols, rows int) (*Field, error) {
	if cols <= 0 || rows <= 0 {
		return nil, errors.Wrapf(ErrConfig, "field must be at least 1x1, got %dx%d", cols, rows)
	}
	if cols > math.MaxInt/rows {
		return nil, errors.Wrapf(ErrConfig, "field %dx%d is too large", cols, rows)
	}
	cells := make([]Category, cols*rows)
	for i := range cells {
		cells[i] = unassigned
	}
	return &Field{cols: cols, rows: rows, cells: cells}, nil
}

// Cols returns the number of columns.
func (f *Field) Cols() int { return f.cols }

// Rows returns the number of rows.
func (f *Field) Rows() int { return f.rows }

func (f *Field) index(x, y int) (int, error) {
	if x < 0 || x >= f.cols || y < 0 || y >= f.rows {
		return 0, errors.Wrapf(ErrOutOfRange, "(%d, %d) outside %dx%d", x, y, f.cols, f.rows)
	}
	return x*f.rows + y, nil
}

// Get returns the category painted at (x, y).
func (f *Field) Get(x, y int) (Category, error) {
	i, err := f.index(x, y)
	if err != nil {
		return 0, err
	}
	if f.cells[i] == unassigned {
		return 0, errors.Wrapf(ErrUnassigned, "(%d, %d)", x, y)
	}
	return f.cells[i], nil
}

// Set paints (x, y). Every cell may be painted once.
func (f *Field) Set(x, y int, c Category) error {
	i, err := f.index(x, y)
	if err != nil {
		return err
	}
	if c == unassigned {
		return errors.Wrapf(ErrUnknownCategory, "category #%d cannot be stored", c)
	}
	if f.cells[i] != unassigned {
		return errors.Wrapf(ErrAssigned, "(%d, %d)", x, y)
	}
	f.cells[i] = c
	f.painted++
	return nil
}

// Assigned reports whether (x, y) has been painted. Out of range cells are
// never assigned.
func (f *Field) Assigned(x, y int) bool {
	i, err := f.index(x, y)
	return err == nil && f.cells[i] != unassigned
}

// Complete reports whether every cell has been painted.
func (f *Field) Complete() bool { return f.painted == len(f.cells) }

// Each visits painted cells column by column, top to bottom.
func (f *Field) Each(fn func(x, y int, c Category)) {
	for x := 0; x < f.cols; x++ {
		for y := 0; y < f.rows; y++ {
			if c := f.cells[x*f.rows+y]; c != unassigned {
				fn(x, y, c)
			}
		}
	}
}

// Histogram counts painted cells per category for a catalog of n categories.
// Categories beyond n are ignored.
func (f *Field) Histogram(n int) []int {
	counts := make([]int, n)
	for _, c := range f.cells {
		if c != unassigned && int(c) < n {
			counts[c]++
		}
	}
	return counts
}

// Equal reports whether two fields have the same size and contents.
func (f *Field) Equal(other *Field) bool {
	if other == nil || f.cols != other.cols || f.rows != other.rows {
		return false
	}
	for i, c := range f.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}
