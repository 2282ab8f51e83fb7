// Package label lays out multi-line node labels.
//
// Labels are plain strings with two embedded markers:
//
//	<svg_new_line>    ends the current line
//	<svg_box_divide>  ends the current line and draws a separator rule below it
//
// All measurements are in em units of the diagram font. The box is sized for a
// monospace face: every character is 0.75em wide and every line 1.3em tall.
package label

import (
	"strings"
	"unicode/utf8"
)

// Markers recognized inside label text.
const (
	NewLine   = "<svg_new_line>"
	BoxDivide = "<svg_box_divide>"
)

// Metrics, in em.
const (
	CharWidth     = 0.75 // box width per character
	LineHeight    = 1.3  // box height per line
	FirstBaseline = 0.83 // baseline of the first line
	LineAdvance   = 1.1  // baseline distance between lines
	Indent        = 0.17 // horizontal text offset
	GlyphAdvance  = 0.67 // forced text length per character
	DividerOffset = 0.34 // separator distance below its line's baseline
)

// Segment is one display line.
type Segment struct {
	Text     string
	Baseline float64 // em from the top of the box
	Divider  bool    // draw a separator rule below this line
}

// Chars returns the number of characters in the segment.
func (s Segment) Chars() int { return utf8.RuneCountInString(s.Text) }

// TextLength is the width the line is stretched to, in em.
func (s Segment) TextLength() float64 { return float64(s.Chars()) * GlyphAdvance }

// DividerY is the vertical position of the separator rule, in em.
func (s Segment) DividerY() float64 { return s.Baseline + DividerOffset }

// Layout is the computed arrangement of a label.
type Layout struct {
	Segments []Segment
	Largest  int // character count of the longest segment
}

// Width of the label box in em.
func (l Layout) Width() float64 { return float64(l.Largest) * CharWidth }

// Height of the label box in em.
func (l Layout) Height() float64 { return float64(len(l.Segments)) * LineHeight }

// Lines returns the segment texts in order.
func (l Layout) Lines() []string {
	out := make([]string, len(l.Segments))
	for i, s := range l.Segments {
		out[i] = s.Text
	}
	return out
}

// Compute parses text into segments. A label without markers is a single
// line holding the whole text; an empty label has no lines. Nothing follows a
// trailing marker, though a divider it names is still drawn.
func Compute(text string) Layout {
	if text == "" {
		return Layout{}
	}

	var l Layout
	rest := text
	for {
		i, marker := nextMarker(rest)
		if i < 0 {
			if rest != "" {
				l.add(rest, false)
			}
			return l
		}
		l.add(rest[:i], marker == BoxDivide)
		rest = rest[i+len(marker):]
	}
}

func (l *Layout) add(text string, divider bool) {
	seg := Segment{
		Text:     text,
		Baseline: FirstBaseline + float64(len(l.Segments))*LineAdvance,
		Divider:  divider,
	}
	l.Segments = append(l.Segments, seg)
	l.Largest = max(l.Largest, seg.Chars())
}

// nextMarker finds the earliest marker in s.
func nextMarker(s string) (int, string) {
	nl := strings.Index(s, NewLine)
	bd := strings.Index(s, BoxDivide)
	switch {
	case nl < 0 && bd < 0:
		return -1, ""
	case bd < 0 || (nl >= 0 && nl < bd):
		return nl, NewLine
	default:
		return bd, BoxDivide
	}
}

// Join builds label text from sections of lines. Lines within a section are
// separated by line breaks, sections by box dividers.
func Join(sections ...[]string) string {
	parts := make([]string, len(sections))
	for i, sec := range sections {
		parts[i] = strings.Join(sec, NewLine)
	}
	return strings.Join(parts, BoxDivide)
}
