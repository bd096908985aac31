package document

import "strings"

// Measurer reports the rendered width of a string in the font used for drawing.
type Measurer interface {
	StringWidth(s string) float64
}

// MeasureFunc adapts a plain function to the Measurer interface.
type MeasureFunc func(s string) float64

// StringWidth implements Measurer.
func (f MeasureFunc) StringWidth(s string) float64 {
	return f(s)
}

// Line is a single committed line of text. Y is the baseline measured from
// the top edge of the page.
type Line struct {
	X    float64
	Y    float64
	Text string
}

// Page is an ordered sequence of committed lines.
type Page struct {
	Lines []Line
}

// Layout wraps text greedily into lines no wider than the usable width and
// distributes them over as many pages as needed.
//
// The text is split on whitespace, so runs of spaces and newlines collapse
// into single separators. A word wider than the usable width is placed on a
// line of its own and never split. The page overflow check happens only after
// a line has been committed. Empty input yields a single page without lines.
func Layout(text string, g Geometry, m Measurer) ([]Page, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	usable := g.UsableWidth()
	bottom := g.bottomLimit()

	pages := []Page{{}}
	y := g.TopMargin
	line := ""

	commit := func() {
		last := len(pages) - 1
		pages[last].Lines = append(pages[last].Lines, Line{X: g.LeftMargin, Y: y, Text: line})
		y += g.LineHeight
		if y > bottom {
			pages = append(pages, Page{})
			y = g.TopMargin
		}
	}

	for _, word := range strings.Fields(text) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if m.StringWidth(candidate) <= usable {
			line = candidate
			continue
		}
		// An overlong first word has nothing to push down; it simply starts the line.
		if line != "" {
			commit()
		}
		line = word
	}
	// The trailing line skips the overflow check, so no blank page follows it.
	if line != "" {
		last := len(pages) - 1
		pages[last].Lines = append(pages[last].Lines, Line{X: g.LeftMargin, Y: y, Text: line})
	}
	return pages, nil
}
