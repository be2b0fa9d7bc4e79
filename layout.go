package strumtab

import "fmt"

type (
	// LayoutItem is a NoteStack augmented with its computed horizontal screen
	// offset.
	LayoutItem struct {
		NoteStack
		DisplayX float64
	}

	// MeasureLine is a synthetic entity drawn between stacks. It is always
	// derived from the Tab, never stored in it.
	MeasureLine struct {
		ID       string
		Position int
		DisplayX float64
	}

	// Layout maps a Tab to screen space, left to right.
	Layout struct {
		Items      []LayoutItem
		Lines      []MeasureLine
		TotalWidth float64
		Config     LayoutConfig
	}

	// LayoutConfig holds the geometry constants of the layout engine. All the
	// widths are in pixels.
	LayoutConfig struct {
		InitialIndent float64 // left margin before the first stack
		PixelsPerTick float64 // duration-driven width scale
		LineSpacing   float64 // gap on either side of a measure line
		LineWidth     float64 // the line's own width
		ExtraSpacing  float64 // breathing-room bonus after a line following a short note
		TrailingPad   float64 // padding after the last stack
	}
)

// DefaultLayoutConfig returns the geometry the editor renders with: a quarter
// note spans 64 pixels.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		InitialIndent: 32,
		PixelsPerTick: 64.0 / TicksPerQuarter,
		LineSpacing:   8,
		LineWidth:     2,
		ExtraSpacing:  16,
		TrailingPad:   32,
	}
}

func (c LayoutConfig) durationWidth(d Duration) float64 {
	return float64(d.Ticks()) * c.PixelsPerTick
}

// Layout walks the stacks in temporal order and assigns display coordinates.
// Each stack sits after the previous stack's duration-width; every measure
// boundary falling strictly between two stacks adds spacing, the line itself
// and spacing again, plus the extra visual bonus when the previous stack is
// shorter than a whole note. The boundaries come from the intelligent
// placement engine (Tab.MeasureBoundaries) and the extra widths never alter
// any musical position.
func (c LayoutConfig) Layout(t Tab, boundaries []int) Layout {
	ret := Layout{Config: c}
	x := c.InitialIndent
	bi := 0
	for i := range t {
		if i > 0 {
			prev := &t[i-1]
			x += c.durationWidth(prev.Duration)
			for bi < len(boundaries) && boundaries[bi] <= prev.Position {
				bi++
			}
			for bi < len(boundaries) && boundaries[bi] < t[i].Position {
				x += c.LineSpacing
				ret.Lines = append(ret.Lines, MeasureLine{
					ID:       fmt.Sprintf("measure-%d", len(ret.Lines)+1),
					Position: boundaries[bi],
					DisplayX: x,
				})
				x += c.LineWidth + c.LineSpacing
				if prev.Duration != Whole {
					x += c.ExtraSpacing
				}
				bi++
			}
		}
		ret.Items = append(ret.Items, LayoutItem{NoteStack: t[i].Copy(), DisplayX: x})
	}
	if len(ret.Items) > 0 {
		last := ret.Items[len(ret.Items)-1]
		ret.TotalWidth = last.DisplayX + c.durationWidth(last.Duration) + c.TrailingPad
	} else {
		ret.TotalWidth = c.InitialIndent + c.TrailingPad
	}
	return ret
}

// PositionAtDisplayX inverts the layout: coordinates before the first stack
// map to position 0, coordinates inside a stack's duration-width map to that
// stack's position, and coordinates past a stack extrapolate linearly by
// PixelsPerTick (capped at the next stack's position, uncapped after the
// last).
func (l Layout) PositionAtDisplayX(x float64) int {
	if len(l.Items) == 0 || x < l.Items[0].DisplayX {
		return 0
	}
	for i, item := range l.Items {
		width := l.Config.durationWidth(item.Duration)
		if x < item.DisplayX+width {
			return item.Position
		}
		pos := item.Position + int((x-item.DisplayX)/l.Config.PixelsPerTick)
		if i+1 < len(l.Items) {
			if next := l.Items[i+1]; x < next.DisplayX {
				if pos > next.Position {
					pos = next.Position
				}
				return pos
			}
			continue
		}
		return pos
	}
	return 0
}

// FindStackAtDisplayX returns the stack whose duration-width contains the
// coordinate.
func (l Layout) FindStackAtDisplayX(x float64) (NoteStack, bool) {
	for _, item := range l.Items {
		if x >= item.DisplayX && x < item.DisplayX+l.Config.durationWidth(item.Duration) {
			return item.NoteStack.Copy(), true
		}
	}
	return NoteStack{}, false
}

// SnapToGrid rounds a position to the nearest quarter-note boundary when
// snapping is enabled; otherwise it is the identity.
func SnapToGrid(position int, snapToQuarterNotes bool) int {
	if !snapToQuarterNotes {
		return position
	}
	if position < 0 {
		return 0
	}
	return (position + TicksPerQuarter/2) / TicksPerQuarter * TicksPerQuarter
}
