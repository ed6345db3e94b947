package engines_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/isingsim/internal/compute"
	"github.com/san-kum/isingsim/internal/engines"
	"github.com/san-kum/isingsim/internal/ising"
)

var _ = Describe("Sequential engine", func() {
	It("agrees trial by trial with a brute-force Hamiltonian reference", func() {
		const temperature, field = 2.0, 0.25
		eng := engines.NewSequential()
		lat := randomLattice(4, 42)
		ref, _ := ising.NewLattice(4)
		copy(ref.Spins(), lat.Spins())
		rec := &recordingRandom{src: ising.NewSource(42)}

		for step := 0; step < 25; step++ {
			rec.ints, rec.floats = rec.ints[:0], rec.floats[:0]
			before := eng.AcceptedFlips()

			Expect(eng.Advance(lat, rec, 1, temperature, field)).To(Succeed())
			Expect(rec.floats).To(HaveLen(16))
			Expect(rec.ints).To(HaveLen(32))

			accepted := referenceTrials(ref, rec.ints, rec.floats, temperature, field)
			Expect(ref.Spins()).To(Equal(lat.Spins()), "step %d", step)
			Expect(eng.AcceptedFlips() - before).To(BeEquivalentTo(accepted))
		}
	})

	It("is deterministic for a fixed seed", func() {
		a, b := randomLattice(4, 42), randomLattice(4, 42)
		Expect(engines.NewSequential().Advance(a, ising.NewSource(42), 100, 2.0, 0)).To(Succeed())
		Expect(engines.NewSequential().Advance(b, ising.NewSource(42), 100, 2.0, 0)).To(Succeed())
		Expect(a.Spins()).To(Equal(b.Spins()))
	})

	It("rejects non-positive temperature and step counts", func() {
		lat := randomLattice(4, 1)
		eng := engines.NewSequential()
		src := ising.NewSource(1)
		Expect(eng.Advance(lat, src, 1, 0, 0)).To(MatchError(ising.ErrDomain))
		Expect(eng.Advance(lat, src, 1, -1, 0)).To(MatchError(ising.ErrDomain))
		Expect(eng.Advance(lat, src, 0, 1, 0)).To(MatchError(ising.ErrDomain))
	})

	It("runs on odd lattices", func() {
		lat := randomLattice(5, 3)
		Expect(engines.NewSequential().Advance(lat, ising.NewSource(3), 10, 2.0, 0)).To(Succeed())
		Expect(lat.Validate()).To(Succeed())
	})
})

var _ = Describe("Checkerboard engine", func() {
	It("rejects odd lattices at construction", func() {
		for _, l := range []int{1, 3, 9} {
			_, err := engines.NewCheckerboard(l, 0)
			Expect(err).To(MatchError(ising.ErrDomain))
		}
	})

	It("rejects a lattice of another size", func() {
		eng, err := engines.NewCheckerboard(4, 0)
		Expect(err).NotTo(HaveOccurred())
		lat := randomLattice(6, 1)
		Expect(eng.Advance(lat, ising.NewSource(1), 1, 2.0, 0)).To(MatchError(ising.ErrDomain))
	})

	It("draws one uniform per site per sweep", func() {
		eng, _ := engines.NewCheckerboard(4, 0)
		rec := &recordingRandom{src: ising.NewSource(9)}
		Expect(eng.Advance(randomLattice(4, 9), rec, 3, 2.0, 0)).To(Succeed())
		Expect(rec.floats).To(HaveLen(3 * 16))
		Expect(rec.ints).To(BeEmpty())
	})

	It("is independent of the worker count", func() {
		serial, _ := engines.NewCheckerboard(64, 1)
		parallel, _ := engines.NewCheckerboard(64, 8)
		a, b := randomLattice(64, 5), randomLattice(64, 5)

		Expect(serial.Advance(a, ising.NewSource(5), 20, 2.2, 0.1)).To(Succeed())
		Expect(parallel.Advance(b, ising.NewSource(5), 20, 2.2, 0.1)).To(Succeed())
		Expect(a.Spins()).To(Equal(b.Spins()))
		Expect(serial.AcceptedFlips()).To(Equal(parallel.AcceptedFlips()))
	})

	It("locks balanced colours on L=2 at zero field", func() {
		// Both neighbours of a site are the same opposite-colour pair, so
		// balanced colours give a zero neighbour sum and every site flips.
		eng, _ := engines.NewCheckerboard(2, 0)
		lat, _ := ising.NewLattice(2)
		for idx, v := range []int8{1, 1, -1, -1} {
			Expect(lat.Set(idx/2, idx%2, v)).To(Succeed())
		}
		src := ising.NewSource(3)
		for step := 0; step < 1000; step++ {
			Expect(eng.Advance(lat, src, 1, 2.5, 0)).To(Succeed())
			Expect(ising.Energy(lat)).To(BeZero())
		}
		Expect(eng.AcceptedFlips()).To(BeEquivalentTo(4 * 1000))
	})

	It("flips every site at infinite temperature", func() {
		eng, _ := engines.NewCheckerboard(4, 0)
		lat := randomLattice(4, 2)
		before := lat.Copy()
		Expect(eng.Advance(lat, ising.NewSource(2), 1, 1e300, 0)).To(Succeed())
		for k := range before {
			Expect(lat.Spins()[k]).To(Equal(-before[k]))
		}
	})
})

var _ = Describe("Both engines", func() {
	type factory func(l int) engines.Engine

	sequential := func(int) engines.Engine { return engines.NewSequential() }
	checkerboard := func(l int) engines.Engine {
		eng, err := engines.NewCheckerboard(l, 0)
		Expect(err).NotTo(HaveOccurred())
		return eng
	}

	DescribeTable("keep every cell in {-1, +1}",
		func(newEngine factory, temperature, field float64) {
			lat := randomLattice(6, 17)
			Expect(newEngine(6).Advance(lat, ising.NewSource(17), 50, temperature, field)).To(Succeed())
			Expect(lat.Validate()).To(Succeed())
		},
		Entry("sequential cold", sequential, 0.1, 0.0),
		Entry("sequential hot with field", sequential, 10.0, -1.5),
		Entry("checkerboard cold", checkerboard, 0.1, 0.0),
		Entry("checkerboard hot with field", checkerboard, 10.0, 1.5),
	)

	DescribeTable("run on the smallest even lattice",
		func(newEngine factory) {
			lat := randomLattice(2, 4)
			Expect(newEngine(2).Advance(lat, ising.NewSource(4), 100, 2.0, 0.5)).To(Succeed())
			Expect(lat.Validate()).To(Succeed())
		},
		Entry("sequential", sequential),
		Entry("checkerboard", checkerboard),
	)

	It("samples the Boltzmann distribution on L=2 sequentially", func() {
		for _, tc := range []struct{ temperature, field float64 }{{2.5, 0}, {1.5, 0.5}} {
			want := exactMeanEnergy(2, tc.temperature, tc.field)
			acc, err := run(sequential(2), randomLattice(2, 8), ising.NewSource(8), 200, 40000, tc.temperature, tc.field)
			Expect(err).NotTo(HaveOccurred())
			Expect(acc.meanE()).To(BeNumerically("~", want, 0.25), "T=%v h=%v", tc.temperature, tc.field)
		}
	})

	DescribeTable("sample the Boltzmann distribution on L=4",
		func(newEngine factory, temperature, field float64) {
			want := exactMeanEnergy(4, temperature, field)
			acc, err := run(newEngine(4), randomLattice(4, 8), ising.NewSource(8), 500, 40000, temperature, field)
			Expect(err).NotTo(HaveOccurred())
			Expect(acc.meanE()).To(BeNumerically("~", want, 0.4))
		},
		Entry("sequential T=2.5", sequential, 2.5, 0.0),
		Entry("sequential T=1.5 h=0.5", sequential, 1.5, 0.5),
		Entry("checkerboard T=2.5", checkerboard, 2.5, 0.0),
		Entry("checkerboard T=3.5", checkerboard, 3.5, 0.0),
		Entry("checkerboard T=1.5 h=0.5", checkerboard, 1.5, 0.5),
	)

	DescribeTable("average to zero magnetization at infinite temperature",
		func(newEngine factory) {
			lat := randomLattice(8, 23)
			acc, err := run(newEngine(8), lat, ising.NewSource(23), 10, 4000, 1e12, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(acc.meanM() / 64).To(BeNumerically("~", 0, 0.05))
		},
		Entry("sequential", sequential),
		Entry("checkerboard", checkerboard),
	)

	DescribeTable("follow the inverted trajectory from an inverted start at zero field",
		func(newEngine factory) {
			a := randomLattice(8, 31)
			b := randomLattice(8, 31)
			b.Invert()
			engA, engB := newEngine(8), newEngine(8)
			srcA, srcB := ising.NewSource(77), ising.NewSource(77)

			for step := 0; step < 50; step++ {
				Expect(engA.Advance(a, srcA, 1, 2.3, 0)).To(Succeed())
				Expect(engB.Advance(b, srcB, 1, 2.3, 0)).To(Succeed())
				Expect(ising.Energy(b)).To(Equal(ising.Energy(a)))
				Expect(ising.Magnetization(b)).To(Equal(-ising.Magnetization(a)))
			}
		},
		Entry("sequential", sequential),
		Entry("checkerboard", checkerboard),
	)

	It("agree on the energy and magnetization distributions", func() {
		const temperature, field, l = 3.0, 0.2, 8
		n := float64(l * l)

		seq, err := run(sequential(l), randomLattice(l, 1), ising.NewSource(1), 500, 10000, temperature, field)
		Expect(err).NotTo(HaveOccurred())
		cb, err := run(checkerboard(l), randomLattice(l, 2), ising.NewSource(2), 500, 10000, temperature, field)
		Expect(err).NotTo(HaveOccurred())

		Expect(cb.meanE() / n).To(BeNumerically("~", seq.meanE()/n, 0.05))
		Expect(cb.meanM() / n).To(BeNumerically("~", seq.meanM()/n, 0.05))

		varSeq := seq.e2/float64(seq.n) - math.Pow(seq.meanE(), 2)
		varCB := cb.e2/float64(cb.n) - math.Pow(cb.meanE(), 2)
		Expect(varCB / varSeq).To(BeNumerically("~", 1, 0.2))
	})
})

var _ = Describe("External engine", func() {
	newExternal := func() *engines.External {
		b, err := compute.NewRegistry().Lookup("cpu")
		Expect(err).NotTo(HaveOccurred())
		return engines.NewExternal(b)
	}

	It("updates the attached lattice in place", func() {
		eng := newExternal()
		lat := randomLattice(8, 6)
		Expect(eng.Attach(lat, 6)).To(Succeed())
		before := lat.Copy()
		Expect(eng.Advance(lat, nil, 5, 3.0, 0)).To(Succeed())
		Expect(lat.Spins()).NotTo(Equal(before))
		Expect(lat.Validate()).To(Succeed())
		Expect(eng.Name()).To(Equal("external:cpu"))
	})

	It("refuses a lattice it was not attached to", func() {
		eng := newExternal()
		Expect(eng.Advance(randomLattice(4, 1), nil, 1, 2.0, 0)).To(MatchError(ising.ErrResource))

		Expect(eng.Attach(randomLattice(4, 1), 1)).To(Succeed())
		Expect(eng.Advance(randomLattice(4, 1), nil, 1, 2.0, 0)).To(MatchError(ising.ErrResource))
	})

	It("validates temperature before dividing", func() {
		eng := newExternal()
		lat := randomLattice(4, 1)
		Expect(eng.Attach(lat, 1)).To(Succeed())
		Expect(eng.Advance(lat, nil, 1, 0, 0)).To(MatchError(ising.ErrDomain))
	})

	It("matches the sequential engine statistically", func() {
		const temperature, l = 2.5, 2
		want := exactMeanEnergy(l, temperature, 0)
		eng := newExternal()
		lat := randomLattice(l, 12)
		Expect(eng.Attach(lat, 12)).To(Succeed())
		acc, err := run(eng, lat, nil, 200, 40000, temperature, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(acc.meanE()).To(BeNumerically("~", want, 0.25))
	})
})

var _ = Describe("Engine registry", func() {
	It("parses engine kinds", func() {
		k, err := engines.ParseKind("checkerboard")
		Expect(err).NotTo(HaveOccurred())
		Expect(k).To(Equal(engines.KindCheckerboard))

		k, err = engines.ParseKind("")
		Expect(err).NotTo(HaveOccurred())
		Expect(k).To(Equal(engines.KindSequential))

		_, err = engines.ParseKind("gpu")
		Expect(err).To(MatchError(ising.ErrDomain))
	})

	It("builds each kind", func() {
		for _, k := range engines.Kinds() {
			eng, err := engines.New(engines.Options{Kind: k, Length: 4})
			Expect(err).NotTo(HaveOccurred())
			Expect(eng.Name()).To(HavePrefix(string(k)))
		}
	})

	It("surfaces construction errors", func() {
		_, err := engines.New(engines.Options{Kind: engines.KindCheckerboard, Length: 5})
		Expect(err).To(MatchError(ising.ErrDomain))

		_, err = engines.New(engines.Options{Kind: engines.KindExternal, Length: 4, Backend: "tpu"})
		Expect(err).To(MatchError(ising.ErrResource))
	})
})
