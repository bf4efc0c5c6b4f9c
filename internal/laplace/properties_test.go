package laplace_test

import (
	"math"

	"github.com/markovmodel/compsci-2018/internal/laplace"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var _ = Describe("Laplacian", func() {
	DescribeTable("periodic operator is symmetric with zero row sums",
		func(nx, ny int, lx, ly float64) {
			lap, err := laplace.Build2D(nx, ny, lx, ly, true)
			Expect(err).NotTo(HaveOccurred())

			n := nx * ny
			for i := 0; i < n; i++ {
				row := mat.Row(nil, i, lap)
				Expect(floats.Sum(row)).To(BeNumerically("~", 0, 1e-9))
				for j := 0; j < n; j++ {
					Expect(lap.At(i, j)).To(Equal(lap.At(j, i)))
				}
			}
		},
		Entry("3x3 on 2x2", 3, 3, 2.0, 2.0),
		Entry("3x3 on unit box", 3, 3, 1.0, 1.0),
		Entry("2x2", 2, 2, 1.0, 1.0),
		Entry("2x3", 2, 3, 1.0, 1.0),
		Entry("3x2", 3, 2, 1.0, 1.0),
		Entry("5x10 on 3x1", 5, 10, 3.0, 1.0),
		Entry("20x5 on 1x3", 20, 5, 1.0, 3.0),
	)

	DescribeTable("open operator loses mass only at the boundary",
		func(nx, ny int, lx, ly float64) {
			g, err := laplace.NewGrid(nx, ny, lx, ly, false)
			Expect(err).NotTo(HaveOccurred())
			lap := g.Laplacian()
			Expect(mat.Equal(lap, lap.T())).To(BeTrue())

			for i := 0; i < g.N(); i++ {
				x, y := g.Coords(i)
				sum := floats.Sum(mat.Row(nil, i, lap))
				if g.OnBoundary(x, y) {
					Expect(sum).To(BeNumerically("<", 0), "row %d", i)
				} else {
					Expect(sum).To(BeNumerically("~", 0, 1e-9), "row %d", i)
				}
			}
		},
		Entry("3x3", 3, 3, 1.0, 1.0),
		Entry("2x2", 2, 2, 1.0, 1.0),
		Entry("6x4 on 2x5", 6, 4, 2.0, 5.0),
	)

	Describe("eigenfunctions", func() {
		field := func(x, y float64) float64 { return math.Sin(x) * math.Cos(y) }

		It("maps a sampled Fourier mode onto itself", func() {
			for _, n := range []int{4, 7, 12} {
				g, err := laplace.NewGrid(n, n+1, 2*math.Pi, 2*math.Pi, true)
				Expect(err).NotTo(HaveOccurred())
				f := g.Sample(field)
				got, err := laplace.Apply(g.Laplacian(), f)
				Expect(err).NotTo(HaveOccurred())

				want := make([]float64, len(f))
				floats.ScaleTo(want, g.ModeEigenvalue(1, 1), f)
				Expect(floats.Distance(got, want, math.Inf(1))).To(BeNumerically("<", 1e-9))
			}
		})

		It("approaches the continuous eigenvalue as the grid is refined", func() {
			prev := math.Inf(1)
			for _, n := range []int{8, 16, 32} {
				g, err := laplace.NewGrid(n, n, 2*math.Pi, 2*math.Pi, true)
				Expect(err).NotTo(HaveOccurred())
				f := g.Sample(field)
				got, err := laplace.Apply(g.Laplacian(), f)
				Expect(err).NotTo(HaveOccurred())

				want := make([]float64, len(f))
				floats.ScaleTo(want, -2, f)
				dist := floats.Distance(got, want, math.Inf(1))
				Expect(dist).To(BeNumerically("<", prev))
				prev = dist
			}
			Expect(prev).To(BeNumerically("<", 2e-2))
		})
	})

	DescribeTable("analytic spectrum matches a symmetric eigensolver",
		func(nx, ny int, periodic bool) {
			g, err := laplace.NewGrid(nx, ny, 1.5, 2.5, periodic)
			Expect(err).NotTo(HaveOccurred())
			lap := g.Laplacian()

			n := g.N()
			sym := mat.NewSymDense(n, nil)
			for i := 0; i < n; i++ {
				for j := i; j < n; j++ {
					sym.SetSym(i, j, lap.At(i, j))
				}
			}
			var eig mat.EigenSym
			Expect(eig.Factorize(sym, false)).To(BeTrue())
			got := eig.Values(nil)

			want := g.Eigenvalues()
			Expect(got).To(HaveLen(len(want)))
			for i := range want {
				Expect(got[i]).To(BeNumerically("~", want[i], 1e-8*math.Abs(want[0])+1e-9))
			}
		},
		Entry("periodic 4x3", 4, 3, true),
		Entry("periodic 2x2", 2, 2, true),
		Entry("open 4x3", 4, 3, false),
		Entry("open 2x5", 2, 5, false),
	)
})
