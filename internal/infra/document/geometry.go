// Package document renders summary text into a paginated PDF.
// It contains the greedy word-wrap layout engine and a gofpdf-backed composer
// that draws the laid-out lines onto fixed-size pages.
package document

import (
	"errors"
	"fmt"
)

// ErrInvalidGeometry indicates that a page geometry cannot hold any text.
var ErrInvalidGeometry = errors.New("invalid page geometry")

// Geometry holds the fixed measurements that govern text layout.
// All lengths are in PDF points (1" = 72pt).
type Geometry struct {
	PageWidth    float64
	PageHeight   float64
	LeftMargin   float64
	RightMargin  float64
	TopMargin    float64
	BottomMargin float64

	// FontFamily is a PDF core font family ("Times", "Helvetica", "Courier").
	FontFamily string
	// FontStyle is a gofpdf style string ("", "B", "I", "BI").
	FontStyle  string
	FontSize   float64
	LineHeight float64
}

// LetterGeometry returns the geometry used for summary downloads:
// US Letter, Times-Roman 12pt, 40pt side margins, 60pt top/bottom margins
// and an 18pt line height.
func LetterGeometry() Geometry {
	return Geometry{
		PageWidth:    612,
		PageHeight:   792,
		LeftMargin:   40,
		RightMargin:  40,
		TopMargin:    60,
		BottomMargin: 60,
		FontFamily:   "Times",
		FontStyle:    "",
		FontSize:     12,
		LineHeight:   18,
	}
}

// UsableWidth returns the horizontal space available for a line of text.
func (g Geometry) UsableWidth() float64 {
	return g.PageWidth - g.LeftMargin - g.RightMargin
}

// UsableHeight returns the vertical space between the top and bottom margins.
func (g Geometry) UsableHeight() float64 {
	return g.PageHeight - g.TopMargin - g.BottomMargin
}

// bottomLimit is the lowest baseline (measured from the top edge) a line may occupy.
func (g Geometry) bottomLimit() float64 {
	return g.PageHeight - g.BottomMargin
}

// LinesPerPage returns how many lines fit between the top and bottom margins.
func (g Geometry) LinesPerPage() int {
	return int(g.UsableHeight()/g.LineHeight) + 1
}

// Validate reports whether the geometry can hold at least one line of text.
func (g Geometry) Validate() error {
	if g.PageWidth <= 0 || g.PageHeight <= 0 {
		return fmt.Errorf("%w: page size must be positive, got %vx%v", ErrInvalidGeometry, g.PageWidth, g.PageHeight)
	}
	if g.UsableWidth() <= 0 {
		return fmt.Errorf("%w: usable width must be positive, got %v", ErrInvalidGeometry, g.UsableWidth())
	}
	if g.LineHeight <= 0 {
		return fmt.Errorf("%w: line height must be positive, got %v", ErrInvalidGeometry, g.LineHeight)
	}
	if g.UsableHeight() <= g.LineHeight {
		return fmt.Errorf("%w: usable height %v must exceed line height %v", ErrInvalidGeometry, g.UsableHeight(), g.LineHeight)
	}
	if g.FontSize <= 0 {
		return fmt.Errorf("%w: font size must be positive, got %v", ErrInvalidGeometry, g.FontSize)
	}
	if g.FontFamily == "" {
		return fmt.Errorf("%w: font family cannot be empty", ErrInvalidGeometry)
	}
	return nil
}
