package layout

import "context"

// Pipeline is the full output of the ranking/placement/crossing stages
// (Facts → VCG → Condensed VCG → RankedPaths → Placement → SolvedLocs),
// the single shared read-only input the geometry package consumes
// alongside per-location/per-hop widths.
type Pipeline struct {
	VCG       *VCG
	Condensed []CondensedEdge
	Ranked    RankedPaths
	Ranks     Ranks
	Placement *Placement
	Crossing  CrossingResult
}

// Run is the outermost entry point for the ranking/placement/crossing
// half of the pipeline (the geometry half is geometry.Solve, which
// consumes Pipeline.Placement and Pipeline.Crossing.SHR). It accepts a
// context.Context because it reaches a blocking call (the ILP driver's
// QP relaxation solves, through MinimizeCrossingsWithOptions); the pure
// functions it calls (BuildVCG, Condense, Rank, BuildPlacement) never
// block and take no context.
func Run(ctx context.Context, facts []Fact, opts Options) (*Pipeline, error) {
	vcg, err := BuildVCG(facts)
	if err != nil {
		return nil, err
	}

	condensed := Condense(vcg)

	ranked, ranks, err := Rank(vcg)
	if err != nil {
		return nil, err
	}

	placement, err := BuildPlacement(ranked, condensed, ranks)
	if err != nil {
		return nil, err
	}

	crossing, err := MinimizeCrossingsWithOptions(ctx, placement, opts)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		VCG:       vcg,
		Condensed: condensed,
		Ranked:    ranked,
		Ranks:     ranks,
		Placement: placement,
		Crossing:  crossing,
	}, nil
}
