// SPDX-License-Identifier: MIT

// Package engine: cycle shapes and the recursive cycle driver.

package engine

// CycleKind names the traversal pattern of one multigrid correction pass.
type CycleKind uint8

const (
	// CycleV visits each level once on the way down and once on the way up.
	CycleV CycleKind = iota

	// CycleW applies two successive coarse corrections per level.
	CycleW

	// CycleF applies one full F-shaped correction followed by a V-shaped
	// one per level.
	CycleF

	// AMLI applies two V-shaped coarse corrections per level (the
	// unweighted AMLI(2) stabilization).
	AMLI
)

// cycleNames in CycleKind order.
var cycleNames = [...]string{"V", "W", "F", "AMLI"}

// String returns the conventional cycle letter.
func (k CycleKind) String() string {
	if int(k) < len(cycleNames) {
		return cycleNames[k]
	}

	return "unknown"
}

// ParseCycle maps the conventional cycle names {"V","W","F","AMLI"} to
// their kind; the empty string selects CycleV. Unknown names are a
// solve-time configuration error.
func ParseCycle(name string) (CycleKind, error) {
	switch name {
	case "", "V", "v":
		return CycleV, nil
	case "W", "w":
		return CycleW, nil
	case "F", "f":
		return CycleF, nil
	case "AMLI", "amli":
		return AMLI, nil
	default:
		return CycleV, ErrUnknownCycle
	}
}

// corrections returns how many coarse corrections the shape applies per
// level and the shapes to use for them.
func (k CycleKind) corrections() (int, [2]CycleKind) {
	switch k {
	case CycleW:
		return 2, [2]CycleKind{CycleW, CycleW}
	case CycleF:
		return 2, [2]CycleKind{CycleF, CycleV}
	case AMLI:
		return 2, [2]CycleKind{CycleV, CycleV}
	default:
		return 1, [2]CycleKind{CycleV, CycleV}
	}
}

// cycle runs one correction pass of the given shape at level lvl.
// All scratch is allocated here so concurrent cycles never share state.
func (h *Hierarchy) cycle(kind CycleKind, lvl int, x, b []float64) {
	if lvl == len(h.levels) {
		h.coarse.solve(x, b)
		return
	}

	l := h.levels[lvl]
	n := l.a.Rows
	scratch := make([]float64, n)

	l.presmooth(h, x, b, scratch)

	// Restrict the residual to the coarse grid.
	res := scratch
	_ = l.a.MulVec(res, x)
	for i := range res {
		res[i] = b[i] - res[i]
	}
	nc := l.r.Rows
	rc := make([]float64, nc)
	_ = l.r.MulVec(rc, res)

	// One or two coarse corrections, shape-dependent. The second correction
	// re-solves for the remaining coarse residual rather than restarting.
	count, shapes := kind.corrections()
	xc := make([]float64, nc)
	h.cycle(shapes[0], lvl+1, xc, rc)
	if count == 2 && lvl+1 < len(h.levels) {
		// On the coarsest grid the first correction was already exact.
		rc2 := make([]float64, nc)
		_ = h.levels[lvl+1].a.MulVec(rc2, xc)
		for i := range rc2 {
			rc2[i] = rc[i] - rc2[i]
		}
		dc := make([]float64, nc)
		h.cycle(shapes[1], lvl+1, dc, rc2)
		for i := range xc {
			xc[i] += dc[i]
		}
	}

	// Prolongate and correct.
	corr := make([]float64, n)
	_ = l.p.MulVec(corr, xc)
	for i := range x {
		x[i] += corr[i]
	}

	l.postsmooth(h, x, b, scratch)
}
