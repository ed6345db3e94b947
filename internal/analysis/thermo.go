package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/isingsim/internal/sim"
)

// CriticalTemperature is the Onsager value 2/ln(1+√2) for J = 1.
var CriticalTemperature = 2 / math.Log(1+math.Sqrt2)

// Point holds per-site thermodynamics at one (T, h).
type Point struct {
	Temperature    float64 `json:"temperature"`
	Field          float64 `json:"field"`
	Length         int     `json:"length"`
	Energy         float64 `json:"energy"`
	Magnetization  float64 `json:"magnetization"`
	AbsMagnet      float64 `json:"absMagnetization"`
	SpecificHeat   float64 `json:"specificHeat"`
	Susceptibility float64 `json:"susceptibility"`
}

// Derive converts a record of lattice totals to per-site values. Specific
// heat is (⟨E²⟩−⟨E⟩²)/(N T²) and susceptibility is (⟨M²⟩−⟨M⟩²)/(N T),
// using ⟨|M|⟩ for the finite-lattice order parameter.
func Derive(r sim.Record) Point {
	n := float64(r.Length * r.Length)
	p := Point{
		Temperature: r.Temperature,
		Field:       r.Field,
		Length:      r.Length,
	}
	if n == 0 || r.Temperature <= 0 {
		return p
	}
	t := r.Temperature
	p.Energy = r.Energy1 / n
	p.Magnetization = r.Magnet1 / n
	p.AbsMagnet = r.MagnetAbs / n
	p.SpecificHeat = variance(r.Energy2, r.Energy1) / (n * t * t)
	p.Susceptibility = variance(r.Magnet2, r.MagnetAbs) / (n * t)
	return p
}

func DeriveAll(records []sim.Record) []Point {
	out := make([]Point, len(records))
	for k, r := range records {
		out[k] = Derive(r)
	}
	return out
}

// variance clamps tiny negative values from float cancellation to zero.
func variance(second, first float64) float64 {
	v := second - first*first
	if v < 0 {
		return 0
	}
	return v
}

// Observable names one column of a Point.
type Observable int

const (
	Energy Observable = iota
	Magnetization
	AbsMagnet
	SpecificHeat
	Susceptibility
)

var observableNames = map[Observable]string{
	Energy:         "energy",
	Magnetization:  "magnetization",
	AbsMagnet:      "abs-magnetization",
	SpecificHeat:   "specific-heat",
	Susceptibility: "susceptibility",
}

func (o Observable) String() string {
	if s, ok := observableNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Observable(%d)", int(o))
}

func ParseObservable(s string) (Observable, error) {
	for o, name := range observableNames {
		if strings.EqualFold(s, name) {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown observable %q (want energy, magnetization, abs-magnetization, specific-heat or susceptibility)", s)
}

func (p Point) Value(o Observable) float64 {
	switch o {
	case Energy:
		return p.Energy
	case Magnetization:
		return p.Magnetization
	case AbsMagnet:
		return p.AbsMagnet
	case SpecificHeat:
		return p.SpecificHeat
	case Susceptibility:
		return p.Susceptibility
	}
	return math.NaN()
}

// Curve extracts one observable across points.
func Curve(points []Point, o Observable) []float64 {
	out := make([]float64, len(points))
	for k, p := range points {
		out[k] = p.Value(o)
	}
	return out
}

// PeakIndex returns the index of the largest value, or -1 for empty input.
func PeakIndex(values []float64) int {
	best := -1
	for k, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if best < 0 || v > values[best] {
			best = k
		}
	}
	return best
}

func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StandardError is the sample standard deviation over √n.
func StandardError(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	m := Mean(values)
	ss := 0.0
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss/float64(n-1)) / math.Sqrt(float64(n))
}
