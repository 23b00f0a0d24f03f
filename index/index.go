// Package index defines the strongly-typed integer identifiers threaded
// through the layout pipeline. Each kind wraps a plain int so that a
// VRank can never silently stand in for an OHR, a SHR, a LocSol or a
// HopSol: the compiler catches the mix-up instead of a reviewer.
package index

import "fmt"

// VRank is a vertical rank, 0 at the synthetic root.
type VRank int

func (v VRank) String() string { return fmt.Sprintf("VRank(%d)", int(v)) }

// OHR is a node's or hop's horizontal position within its rank before
// crossing minimization runs.
type OHR int

func (o OHR) String() string { return fmt.Sprintf("OHR(%d)", int(o)) }

// SHR is the horizontal position within a rank after crossing
// minimization; a permutation of the rank's OHRs.
type SHR int

func (s SHR) String() string { return fmt.Sprintf("SHR(%d)", int(s)) }

// LocSol is a dense identifier for a node-at-(VRank,OHR), used as a key
// into the geometry solution's left/right coordinate arrays.
type LocSol int

func (l LocSol) String() string { return fmt.Sprintf("LocSol(%d)", int(l)) }

// HopSol is a dense identifier for a hop segment, used as a key into
// the geometry solution's centerline coordinate array.
type HopSol int

func (h HopSol) String() string { return fmt.Sprintf("HopSol(%d)", int(h)) }

// RankOHR addresses a single (rank, position) cell of the placement grid.
type RankOHR struct {
	Rank VRank
	OHR  OHR
}

// LocKind distinguishes a Loc that stands for a real node from one
// synthesized as an intermediate hop location.
type LocKind int

const (
	LocKindNode LocKind = iota
	LocKindHop
)

// Loc identifies a single placement cell: either a named node or an
// in-transit point on a multi-rank edge (src,dst) at the given rank.
type Loc struct {
	Kind LocKind
	Rank VRank
	OHR  OHR

	// Node is set when Kind == LocKindNode.
	Node string

	// Src/Dst are set when Kind == LocKindHop: the enclosing edge's
	// endpoints, not the hop's own (rank-local) endpoints.
	Src string
	Dst string
}

func NodeLoc(name string, r VRank, o OHR) Loc {
	return Loc{Kind: LocKindNode, Rank: r, OHR: o, Node: name}
}

func HopLoc(src, dst string, r VRank, o OHR) Loc {
	return Loc{Kind: LocKindHop, Rank: r, OHR: o, Src: src, Dst: dst}
}

func (l Loc) IsNode() bool { return l.Kind == LocKindNode }
func (l Loc) IsHop() bool  { return l.Kind == LocKindHop }

func (l Loc) String() string {
	if l.IsNode() {
		return fmt.Sprintf("Loc{Node %s @ %s/%s}", l.Node, l.Rank, l.OHR)
	}
	return fmt.Sprintf("Loc{Hop %s->%s @ %s/%s}", l.Src, l.Dst, l.Rank, l.OHR)
}

// Hop is a single-rank segment of a possibly multi-rank edge. Rather
// than a sentinel out-of-range lower OHR, the final segment of a chain
// is tagged Terminal so callers iterating "control points" can detect
// the end without reserving a magic value.
type Hop struct {
	Rank     VRank
	Upper    OHR
	Lower    OHR
	Src      string
	Dst      string
	Terminal bool
}

func (h Hop) String() string {
	return fmt.Sprintf("Hop{%s->%s @ %s: %s->%s term=%v}", h.Src, h.Dst, h.Rank, h.Upper, h.Lower, h.Terminal)
}

// Less orders hops the way Placement construction needs them grouped:
// by rank, then by upper OHR, then by source/destination name so that
// edge traversal order is deterministic.
func (h Hop) Less(o Hop) bool {
	if h.Rank != o.Rank {
		return h.Rank < o.Rank
	}
	if h.Upper != o.Upper {
		return h.Upper < o.Upper
	}
	if h.Src != o.Src {
		return h.Src < o.Src
	}
	return h.Dst < o.Dst
}
