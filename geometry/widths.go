// Package geometry implements the position-optimization stage: a
// quadratic program over per-node left/right and per-hop centerline
// coordinates, built atop the layout package's Placement and the solve
// package's constraint algebra and QP solver.
package geometry

import "github.com/jsavage/depict-layout/index"

// DefaultSep is the minimum horizontal gap between two SHR-adjacent
// locations at the same rank.
const DefaultSep = 20.0

// DefaultHopWidth is the (action, percept) half-width fallback used
// when a WidthProvider reports no measurement for a hop.
var DefaultHopWidth = [2]float64{20, 20}

// DefaultSymWeight is the quadratic penalty weight applied to the
// vertical-continuity symmetry term.
const DefaultSymWeight = 100.0

// WidthProvider supplies externally-measured widths: label pixel
// widths per node and per-hop action/percept half-widths. This package
// never measures text itself; that is the caller's job.
type WidthProvider interface {
	// NodeLabelWidth returns the measured pixel width of name's label.
	NodeLabelWidth(name string) float64
	// HopWidth returns the (action, percept) half-widths for h. A
	// provider that has no measurement for a given hop should return
	// DefaultHopWidth.
	HopWidth(h index.Hop) (action, percept float64)
}

// StaticWidths is the simplest WidthProvider: fixed tables keyed by
// node name and by the hop's enclosing edge, with DefaultHopWidth as
// the fallback for any hop whose edge is absent from HopWidths.
type StaticWidths struct {
	Labels    map[string]float64
	HopWidths map[[2]string][2]float64
}

func NewStaticWidths() *StaticWidths {
	return &StaticWidths{Labels: map[string]float64{}, HopWidths: map[[2]string][2]float64{}}
}

func (w *StaticWidths) NodeLabelWidth(name string) float64 {
	return w.Labels[name]
}

func (w *StaticWidths) HopWidth(h index.Hop) (float64, float64) {
	if v, ok := w.HopWidths[[2]string{h.Src, h.Dst}]; ok {
		return v[0], v[1]
	}
	return DefaultHopWidth[0], DefaultHopWidth[1]
}
