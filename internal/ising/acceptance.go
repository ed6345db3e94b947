package ising

import "math"

// AcceptanceTable holds exp(-(2nσ + 2hσ)/T) for every neighbour sum
// n ∈ {-4,-2,0,2,4} and spin σ ∈ {-1,+1}. The flip of a spin σ with neighbour sum n is
// accepted when the table value exceeds a uniform draw, so values ≥ 1 always
// accept.
type AcceptanceTable struct {
	temperature float64
	field       float64
	p           [5][2]float64
	ready       bool
}

func NewAcceptanceTable(temperature, field float64) (*AcceptanceTable, error) {
	t := &AcceptanceTable{}
	if err := t.Reset(temperature, field); err != nil {
		return nil, err
	}
	return t, nil
}

// Reset recomputes the table when (temperature, field) differ from the cached
// pair.
func (t *AcceptanceTable) Reset(temperature, field float64) error {
	if err := ValidateParams("acceptance table", temperature, field); err != nil {
		return err
	}
	if t.ready && t.temperature == temperature && t.field == field {
		return nil
	}
	for k := 0; k < 5; k++ {
		n := float64(2*k - 4)
		for s := 0; s < 2; s++ {
			sigma := float64(2*s - 1)
			de := 2.0*n*sigma + 2.0*field*sigma
			t.p[k][s] = math.Exp(-de / temperature)
		}
	}
	t.temperature, t.field, t.ready = temperature, field, true
	return nil
}

// P returns the acceptance value for neighbour sum n and spin sigma.
func (t *AcceptanceTable) P(n int, sigma int8) float64 {
	return t.p[(n+4)>>1][(sigma+1)>>1]
}

func (t *AcceptanceTable) Temperature() float64 { return t.temperature }
func (t *AcceptanceTable) Field() float64       { return t.field }
