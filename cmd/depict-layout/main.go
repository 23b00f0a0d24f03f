// Command depict-layout reads a stream of path-facts as JSON Lines and
// writes the computed diagram geometry as a jsonl-graph-compatible
// node/edge stream.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	jsonlgraph "github.com/nikolaydubina/jsonl-graph/graph"
	"github.com/nikolaydubina/multiline-jsonl/mjsonl"

	"github.com/jsavage/depict-layout/errs"
	"github.com/jsavage/depict-layout/geometry"
	"github.com/jsavage/depict-layout/index"
	"github.com/jsavage/depict-layout/layout"
)

func main() {
	var (
		inPath  = flag.String("in", "-", "input facts JSONL path, - for stdin")
		outPath = flag.String("out", "-", "output graph JSONL path, - for stdout")
		scale   = flag.Float64("scale", 1.0, "uniform scale factor applied to the solved geometry before export")
		stats   = flag.Bool("stats", false, "print a diagram-extent summary to stderr")
		backend = flag.String("backend", "native", "crossing minimizer backend: native or minion")
	)
	flag.Parse()

	if err := run(*inPath, *outPath, *scale, *stats, *backend); err != nil {
		log.Fatalf("depict-layout: %v", err)
	}
}

func run(inPath, outPath string, scale float64, stats bool, backend string) error {
	in := os.Stdin
	if inPath != "-" {
		f, err := os.Open(inPath)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	out := os.Stdout
	if outPath != "-" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	if backend != "native" && backend != "minion" {
		return errs.Scopef(errs.ErrUnknownMode, "depict-layout: backend %q", backend)
	}

	facts, err := readFacts(in)
	if err != nil {
		return fmt.Errorf("read facts: %w", err)
	}

	ctx := context.Background()
	pipeline, err := layout.Run(ctx, facts, layout.DefaultOptions())
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	if backend == "minion" {
		crossing, err := layout.CrossingsViaMinion(ctx, pipeline.Placement)
		if err != nil {
			return fmt.Errorf("minion backend: %w", err)
		}
		pipeline.Crossing = crossing
	}

	widths := defaultWidths(pipeline)
	labelCounts := layout.LabelCounts(pipeline.VCG)

	sol, lp, err := geometry.Solve(ctx, pipeline.Placement, pipeline.Crossing.SHR, widths, labelCounts, geometry.DefaultOptions())
	if err != nil {
		return fmt.Errorf("geometry: %w", err)
	}

	g := exportGraph(pipeline, lp, sol)
	if scale != 1.0 {
		unscaled := g.Copy()
		(&layout.ScalerLayout{Scale: scale}).UpdateGraphLayout(g)
		if stats {
			printStats(os.Stderr, "unscaled", unscaled)
			printStats(os.Stderr, "scaled", g)
		}
	} else if stats {
		printStats(os.Stderr, "unscaled", g)
	}
	return writeGraph(out, g)
}

// printStats reports the diagram's root count and bounding extent, a
// sanity check worth seeing before and after a --scale pass.
func printStats(w *os.File, label string, g layout.Graph) {
	minx, miny, maxx, maxy := g.BoundingBox()
	fmt.Fprintf(w, "%s: %d nodes, %d roots, bbox=[%d,%d]-[%d,%d], total node area=%dx%d\n",
		label, len(g.Nodes), len(g.Roots()), minx, miny, maxx, maxy,
		g.TotalNodesWidth(), g.TotalNodesHeight())
}

// readFacts decodes one Fact per JSON Lines record. mjsonl.Scanner is
// used instead of bufio.Scanner because a Fact's labels may embed
// literal newlines (e.g. a multi-sentence percept description), which
// a plain line scanner would split mid-record.
func readFacts(r *os.File) ([]layout.Fact, error) {
	var facts []layout.Fact
	sc := mjsonl.NewScanner(r)
	for sc.Scan() {
		var rec factRecord
		if err := sc.Decode(&rec); err != nil {
			return nil, errs.Wrap(errs.ErrParse, "readFacts: decode record", err)
		}
		facts = append(facts, rec.toFact())
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrParse, "readFacts: scan", err)
	}
	return facts, nil
}

type factRecord struct {
	Path          []string      `json:"path"`
	LabelsByLevel []levelRecord `json:"labels_by_level"`
}

type levelRecord struct {
	Actions  []string `json:"actions"`
	Percepts []string `json:"percepts"`
}

func (r factRecord) toFact() layout.Fact {
	f := layout.Fact{Path: r.Path}
	for _, lr := range r.LabelsByLevel {
		f.LabelsByLevel = append(f.LabelsByLevel, layout.LevelLabels{
			Actions:  lr.Actions,
			Percepts: lr.Percepts,
		})
	}
	return f
}

// defaultWidths measures nothing (text measurement is an external
// collaborator); it reports zero label widths and the default hop
// half-widths so the pipeline still runs end to end without a real
// front-end attached.
func defaultWidths(*layout.Pipeline) geometry.WidthProvider {
	return geometry.NewStaticWidths()
}

func exportGraph(p *layout.Pipeline, lp *geometry.LayoutProblem, sol geometry.LayoutSolution) layout.Graph {
	g := layout.Graph{
		Nodes: map[layout.NodeID]layout.Node{},
		Edges: map[[2]layout.NodeID]layout.Edge{},
	}

	nodeIDByName := map[string]layout.NodeID{}
	for id, ro := range lp.RankOHRs {
		loc, ok := p.Placement.LocToNode[ro]
		if !ok || !loc.IsNode() {
			continue
		}
		top := sol.Ts[ro.Rank]
		n := layout.Node{
			Position: layout.Position{X: int(sol.L(index.LocSol(id))), Y: int(top)},
			W:        int(sol.R(index.LocSol(id)) - sol.L(index.LocSol(id))),
			H:        int(geometry.DefaultRowHeight),
		}
		g.Nodes[id] = n
		nodeIDByName[loc.Node] = id
	}

	for key := range p.Placement.HopsByEdge {
		src, dst := key[0], key[1]
		from, ok1 := nodeIDByName[src]
		to, ok2 := nodeIDByName[dst]
		if !ok1 || !ok2 {
			continue
		}
		g.Edges[[2]layout.NodeID{from, to}] = layout.Edge{}
	}

	// DirectEdgesLayout fills every edge's path in one pass rather than
	// computing it inline above, since a renderer later swapping in a
	// curved-path assigner only needs to replace this one line.
	(layout.DirectEdgesLayout{}).UpdateGraphLayout(g)

	return g
}

func writeGraph(w *os.File, g layout.Graph) error {
	enc := jsonlgraph.NewEncoder(w)
	for id, n := range g.Nodes {
		if err := enc.Encode(jsonlgraph.Node{
			ID: fmt.Sprintf("%d", id),
			Attrs: map[string]any{
				"x": n.X, "y": n.Y, "w": n.W, "h": n.H,
			},
		}); err != nil {
			return err
		}
	}
	for key := range g.Edges {
		if err := enc.Encode(jsonlgraph.Edge{
			Source: fmt.Sprintf("%d", key[0]),
			Target: fmt.Sprintf("%d", key[1]),
		}); err != nil {
			return err
		}
	}
	return nil
}
