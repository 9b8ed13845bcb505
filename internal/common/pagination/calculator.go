package pagination

import "math"

// CalculateOffset calculates the database OFFSET value based on page number and page size.
// Page numbers are 1-based, so page 1 has offset 0.
//
// Formula: offset = (page - 1) * size
//
// Examples:
//   - Page 1, Size 10 -> Offset 0
//   - Page 2, Size 10 -> Offset 10
//   - Page 3, Size 25 -> Offset 50
func CalculateOffset(page, size int) int {
	return (page - 1) * size
}

// Window is the LIMIT/OFFSET pair for one over-fetching page query.
type Window struct {
	Page   int  // Effective 1-based page
	Size   int  // Items shown on the page
	Offset int  // Rows to skip
	Fetch  int  // Rows to request: Size + 1
	Empty  bool // Offset is not representable; the page holds no rows and no query is needed
}

// NewWindow returns the window for page with the given size.
// Pages below 1 are clamped to 1. Pages whose offset would overflow an
// int return an Empty window with zero Offset and Fetch.
func NewWindow(page, size int) Window {
	page = ClampPage(page)
	if !offsetFits(page, size) {
		return Window{Page: page, Size: size, Empty: true}
	}
	return Window{
		Page:   page,
		Size:   size,
		Offset: CalculateOffset(page, size),
		Fetch:  size + 1,
	}
}

// offsetFits reports whether (page-1)*size + size + 1 stays within int.
func offsetFits(page, size int) bool {
	if size <= 0 {
		return true
	}
	return page-1 <= (math.MaxInt-size-1)/size
}

// Trim cuts rows fetched through w down to the page size.
// hasNext reports whether the store returned the extra probe row.
func Trim[T any](rows []T, w Window) (page []T, hasNext bool) {
	if w.Empty {
		return nil, false
	}
	if len(rows) > w.Size {
		return rows[:w.Size], true
	}
	return rows, false
}
