package analysis

import (
	"math"
	"sync"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/isingsim/internal/metrics"
)

// windowFactor is the Sokal self-consistent window constant.
const windowFactor = 6

// Autocorrelation returns the normalized autocorrelation ρ(t) of series for
// t in [0, len). It is computed through a zero-padded FFT, so the cost is
// O(n log n). A constant series yields ρ(0) = 1 and zeros elsewhere.
func Autocorrelation(series []float64) []float64 {
	n := len(series)
	if n == 0 {
		return nil
	}
	mean := Mean(series)
	padded := make([]float64, 2*n)
	for k, v := range series {
		padded[k] = v - mean
	}

	power := fft.FFTReal(padded)
	for k, c := range power {
		re, im := real(c), imag(c)
		power[k] = complex(re*re+im*im, 0)
	}
	raw := fft.IFFT(power)

	rho := make([]float64, n)
	c0 := real(raw[0])
	if c0 <= 0 {
		rho[0] = 1
		return rho
	}
	for t := range rho {
		rho[t] = real(raw[t]) / c0
	}
	return rho
}

// IntegratedTime estimates τ_int = 1/2 + Σ ρ(t) with the smallest window W
// satisfying W ≥ 6 τ_int(W). Uncorrelated data gives about 0.5.
func IntegratedTime(series []float64) float64 {
	rho := Autocorrelation(series)
	if len(rho) < 2 {
		return 0.5
	}
	tau := 0.5
	for w := 1; w < len(rho); w++ {
		tau += rho[w]
		if float64(w) >= windowFactor*tau {
			break
		}
	}
	return math.Max(tau, 0.5)
}

// CorrelatedError is the standard error of the mean of a correlated series,
// σ √(2 τ_int / n).
func CorrelatedError(series []float64) float64 {
	n := len(series)
	if n < 2 {
		return 0
	}
	m := Mean(series)
	ss := 0.0
	for _, v := range series {
		d := v - m
		ss += d * d
	}
	variance := ss / float64(n-1)
	return math.Sqrt(2 * IntegratedTime(series) * variance / float64(n))
}

// Trace records the synchronized energy and magnetization after every
// update it observes. It is safe for concurrent use.
type Trace struct {
	mu     sync.Mutex
	energy []float64
	magnet []float64
}

func NewTrace() *Trace { return &Trace{} }

func (t *Trace) OnUpdate(u metrics.Update) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.energy = append(t.energy, float64(u.Energy))
	t.magnet = append(t.magnet, float64(u.Magnetization))
}

func (t *Trace) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.energy)
}

// Energy returns a copy of the recorded energies.
func (t *Trace) Energy() []float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]float64(nil), t.energy...)
}

// AbsMagnet returns |M| for every recorded update.
func (t *Trace) AbsMagnet() []float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]float64, len(t.magnet))
	for k, m := range t.magnet {
		out[k] = math.Abs(m)
	}
	return out
}

func (t *Trace) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.energy = t.energy[:0]
	t.magnet = t.magnet[:0]
}
