package display

// Style is the visual style of a cell.
type Style struct {
	Foreground Color
	Background Color
	Bold       bool
}

// DefaultStyle returns the default terminal style.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// WithForeground returns a new style with the given foreground color.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// Equals returns true if two styles are identical.
func (s Style) Equals(other Style) bool {
	return s.Foreground.Equals(other.Foreground) &&
		s.Background.Equals(other.Background) &&
		s.Bold == other.Bold
}

// Cell is a single terminal cell.
type Cell struct {
	// Rune is the base character.
	Rune rune
	// Combining holds combining marks drawn over Rune.
	Combining []rune
	Style     Style
}

// EmptyCell returns a blank cell with default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Style: DefaultStyle()}
}

// CellFromGlyph splits a grapheme cluster into base rune and combining marks.
func CellFromGlyph(glyph string, style Style) Cell {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return Cell{Rune: ' ', Style: style}
	}
	c := Cell{Rune: runes[0], Style: style}
	if len(runes) > 1 {
		c.Combining = runes[1:]
	}
	return c
}

// Equals returns true if two cells are identical.
func (c Cell) Equals(other Cell) bool {
	if c.Rune != other.Rune || len(c.Combining) != len(other.Combining) {
		return false
	}
	for i := range c.Combining {
		if c.Combining[i] != other.Combining[i] {
			return false
		}
	}
	return c.Style.Equals(other.Style)
}
