package ising

// Energy returns -Σ σ(i,j)·(σ(i,j+1) + σ(i+1,j)): every bond counted once via
// the east and south neighbours, with periodic wrap.
func Energy(lat *Lattice) int {
	l := lat.l
	s := lat.spins
	e := 0
	for i := 0; i < l; i++ {
		south := i + 1
		if south == l {
			south = 0
		}
		row := i * l
		for j := 0; j < l; j++ {
			east := j + 1
			if east == l {
				east = 0
			}
			e += int(s[row+j]) * (int(s[row+east]) + int(s[south*l+j]))
		}
	}
	return -e
}

// Magnetization returns the sum of all spins.
func Magnetization(lat *Lattice) int {
	m := 0
	for _, v := range lat.spins {
		m += int(v)
	}
	return m
}
