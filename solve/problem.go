// Package solve implements the constraint algebra, QP solver, and ILP
// branch-and-bound driver shared by the crossing minimizer and the
// geometry problem builder.
package solve

import "math"

// Vars is a dense column-index registry: each distinct key of type K is
// assigned a stable integer index the first time it is seen.
type Vars[K comparable] struct {
	index map[K]int
	order []K
}

func NewVars[K comparable]() *Vars[K] {
	return &Vars[K]{index: make(map[K]int)}
}

func (v *Vars[K]) Index(k K) int {
	if i, ok := v.index[k]; ok {
		return i
	}
	i := len(v.order)
	v.index[k] = i
	v.order = append(v.order, k)
	return i
}

func (v *Vars[K]) Len() int    { return len(v.order) }
func (v *Vars[K]) Key(i int) K { return v.order[i] }

// Term is one cᵢ·xᵢ summand of a constraint row.
type Term struct {
	Var  int
	Coef float64
}

// Row is a constraint L ≤ Σ Terms ≤ U.
type Row struct {
	L, U  float64
	Terms []Term
}

// QuadTerm is one diagonal entry of the quadratic objective; Coef is
// the P-matrix entry itself, and since SolveQP minimizes 1/2 x'Px its
// contribution to the objective is (Coef/2)·x².
type QuadTerm struct {
	Var  int
	Coef float64
}

// Problem bundles a variable registry, linear objective, diagonal
// quadratic objective, and ordered constraint rows — the shape both the
// crossing minimizer's ILP relaxation and the geometry QP populate.
type Problem[K comparable] struct {
	Vars   *Vars[K]
	Rows   []Row
	Linear map[int]float64
	Quad   []QuadTerm
}

func NewProblem[K comparable]() *Problem[K] {
	return &Problem[K]{Vars: NewVars[K](), Linear: make(map[int]float64)}
}

func (p *Problem[K]) Var(k K) int { return p.Vars.Index(k) }

// AddObjective adds coef·x[k] to the linear objective q.
func (p *Problem[K]) AddObjective(k K, coef float64) {
	p.Linear[p.Var(k)] += coef
}

func (p *Problem[K]) push(l float64, terms []Term, u float64) {
	p.Rows = append(p.Rows, Row{L: l, U: u, Terms: terms})
}

// Leq posts 0 ≤ b−a ≤ +inf, i.e. a ≤ b.
func (p *Problem[K]) Leq(a, b K) {
	p.push(0, []Term{{p.Var(a), -1}, {p.Var(b), 1}}, math.Inf(1))
}

// Geq posts 0 ≤ a−b ≤ +inf, i.e. a ≥ b.
func (p *Problem[K]) Geq(a, b K) {
	p.push(0, []Term{{p.Var(b), -1}, {p.Var(a), 1}}, math.Inf(1))
}

// Leqc posts c ≤ b−a ≤ +inf.
func (p *Problem[K]) Leqc(a, b K, c float64) {
	p.push(c, []Term{{p.Var(a), -1}, {p.Var(b), 1}}, math.Inf(1))
}

// Geqc posts c ≤ a−b ≤ +inf.
func (p *Problem[K]) Geqc(a, b K, c float64) {
	p.push(c, []Term{{p.Var(b), -1}, {p.Var(a), 1}}, math.Inf(1))
}

// Eq posts 0 ≤ Σ terms ≤ 0.
func (p *Problem[K]) Eq(terms map[K]float64) {
	p.push(0, p.terms(terms), 0)
}

// Eqc posts c ≤ Σ terms ≤ c.
func (p *Problem[K]) Eqc(terms map[K]float64, c float64) {
	p.push(c, p.terms(terms), c)
}

// Row posts l ≤ Σ terms ≤ u directly, for rows with more than two
// terms (e.g. the crossing minimizer's three-term transitivity and
// covering-inequality rows) that don't fit leq/geq/eqc's two-term shape.
func (p *Problem[K]) Row(l float64, terms map[K]float64, u float64) {
	p.push(l, p.terms(terms), u)
}

// Bound posts l ≤ x[k] ≤ u directly (used for the 0/1 ILP bounds and
// the non-negativity bounds on geometry coordinates).
func (p *Problem[K]) Bound(k K, l, u float64) {
	p.push(l, []Term{{p.Var(k), 1}}, u)
}

func (p *Problem[K]) terms(terms map[K]float64) []Term {
	ts := make([]Term, 0, len(terms))
	for k, c := range terms {
		ts = append(ts, Term{p.Var(k), c})
	}
	return ts
}

// LinearVector renders the linear objective q as a dense vector indexed
// by variable column, the shape SolveQP and the ILP driver consume.
func (p *Problem[K]) LinearVector() []float64 {
	q := make([]float64, p.Vars.Len())
	for i, c := range p.Linear {
		q[i] = c
	}
	return q
}

// Sym introduces the fresh auxiliary variable auxKey with t − a + b = 0
// and records weight as t's quadratic (P-diagonal) entry; under
// SolveQP's 1/2 x'Px objective this realizes the symmetry penalty
// (weight/2)·(a−b)².
func (p *Problem[K]) Sym(auxKey, a, b K, weight float64) {
	t := p.Var(auxKey)
	p.push(0, []Term{{t, 1}, {p.Var(a), -1}, {p.Var(b), 1}}, 0)
	p.Quad = append(p.Quad, QuadTerm{Var: t, Coef: weight})
}
