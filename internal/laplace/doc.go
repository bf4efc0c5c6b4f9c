// Package laplace builds dense matrices of the discrete Laplace operator on
// regular 1D and 2D grids under the centered finite-difference stencil.
//
// Grid cells are flattened with a single convention,
//
//	index(x, y) = (x mod nx) + (y mod ny) * nx
//
// and every neighbour lookup goes through [Grid.Index], so periodic
// wraparound is handled in one place. Open boundaries are obtained from the
// periodic assembly by subtracting exactly the wraparound contributions,
// which keeps grids with two points along an axis correct.
//
// # Example
//
//	lap, err := laplace.Build2D(3, 3, 1, 1, true)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(mat.Formatted(lap))
package laplace
