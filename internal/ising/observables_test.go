package ising

import "testing"

// energyAllBonds counts all four neighbours per site and halves the total.
func energyAllBonds(lat *Lattice) int {
	e := 0
	for i := 0; i < lat.Len(); i++ {
		for j := 0; j < lat.Len(); j++ {
			e += int(lat.Get(i, j)) * lat.NeighborSum(i, j)
		}
	}
	return -e / 2
}

func TestEnergy_Uniform(t *testing.T) {
	tests := []struct {
		l      int
		energy int
	}{
		{2, -8},
		{4, -32},
		{5, -50},
	}

	for _, tt := range tests {
		lat := mustLattice(t, tt.l)
		if got := Energy(lat); got != tt.energy {
			t.Errorf("L=%d: Energy = %d, want %d", tt.l, got, tt.energy)
		}
		if got := Magnetization(lat); got != tt.l*tt.l {
			t.Errorf("L=%d: Magnetization = %d, want %d", tt.l, got, tt.l*tt.l)
		}
	}
}

func TestEnergy_Antiferromagnet(t *testing.T) {
	lat := mustLattice(t, 4)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if (i+j)%2 == 1 {
				_ = lat.Set(i, j, -1)
			}
		}
	}
	if got := Energy(lat); got != 32 {
		t.Errorf("Energy = %d, want 32", got)
	}
	if got := Magnetization(lat); got != 0 {
		t.Errorf("Magnetization = %d, want 0", got)
	}
}

func TestEnergy_SingleDefect(t *testing.T) {
	lat := mustLattice(t, 4)
	lat.Flip(1, 1)
	// Four broken bonds: -32 + 4*2.
	if got := Energy(lat); got != -24 {
		t.Errorf("Energy = %d, want -24", got)
	}
	if got := Magnetization(lat); got != 14 {
		t.Errorf("Magnetization = %d, want 14", got)
	}
}

func TestEnergy_MatchesAllBondCount(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42} {
		lat := mustLattice(t, 6)
		lat.InitializeRandom(NewSource(seed))
		if got, want := Energy(lat), energyAllBonds(lat); got != want {
			t.Errorf("seed %d: forward energy %d != all-bond energy %d", seed, got, want)
		}
	}
}

func TestObservables_PureFunctions(t *testing.T) {
	a := mustLattice(t, 8)
	a.InitializeRandom(NewSource(11))

	// Reach the same content through a different history.
	b := mustLattice(t, 8)
	b.InitializeRandom(NewSource(99))
	for k, v := range a.Spins() {
		b.Spins()[k] = v
	}

	if Energy(a) != Energy(b) || Magnetization(a) != Magnetization(b) {
		t.Error("observables depend on more than lattice content")
	}
	if Energy(a) != Energy(a) {
		t.Error("Energy is not deterministic")
	}
}

func TestEnergy_GlobalFlipInvariant(t *testing.T) {
	lat := mustLattice(t, 8)
	lat.InitializeRandom(NewSource(5))
	e, m := Energy(lat), Magnetization(lat)

	lat.Invert()
	if got := Energy(lat); got != e {
		t.Errorf("energy changed under global flip: %d -> %d", e, got)
	}
	if got := Magnetization(lat); got != -m {
		t.Errorf("magnetization = %d, want %d", got, -m)
	}
}
