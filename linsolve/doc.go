// SPDX-License-Identifier: MIT

// Package linsolve is a caching front end for solve-many workflows: hold
// one problem matrix, build its multigrid hierarchy lazily, and reuse it
// across right-hand sides until the matrix changes.
//
// The cache tracks staleness explicitly. New and SetMatrix only record the
// matrix; the expensive hierarchy build happens on the first Solve after a
// change, and never again until the next SetMatrix. This is the shape most
// simulation loops want: factor once, solve per time step.
//
// Solve reports a three-valued Status instead of a bare error:
//
//	StatusSuccess       — the achieved residual met the tolerance
//	StatusMaxIterations — iteration cap reached first; dst holds the best
//	                      iterate and Result carries its residual
//	StatusFailure       — the engine rejected the build or the solve
//
// A capped solve is not an error: callers that can tolerate a loose
// iterate read dst regardless and branch on Status.
//
// Example:
//
//	c, err := linsolve.New(a, amg.RugeStuben, linsolve.WithTolerance(1e-8))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//	for step := 0; step < steps; step++ {
//	    res, err := c.Solve(x, b[step])
//	    ...
//	}
package linsolve
