// Package poisson solves the discrete Poisson equation -L phi = rho for the
// operators built by package laplace.
//
// The periodic Laplacian is singular: constants span its null space. [Solve]
// therefore uses conjugate gradients on the positive semi-definite operator
// -L, which converges as long as rho has zero mean, and returns the
// zero-mean solution. Open-boundary operators are non-singular and can also be
// solved directly with [Direct].
package poisson
