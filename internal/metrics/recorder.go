package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "isingsim"

// Update describes one synchronized update of a simulation.
type Update struct {
	Engine        string
	Length        int
	Temperature   float64
	Field         float64
	Steps         int
	Age           int
	Energy        int
	Magnetization int
	AcceptedFlips int64
}

// Recorder exports simulation progress to Prometheus. It is safe for
// concurrent use by the simulations of one sweep.
type Recorder struct {
	sweeps   *prometheus.CounterVec
	flips    *prometheus.CounterVec
	samples  *prometheus.CounterVec
	energy   *prometheus.GaugeVec
	magnet   *prometheus.GaugeVec
	lastStep *prometheus.GaugeVec
}

// NewRecorder registers the collectors on reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		sweeps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweeps_total",
			Help:      "Monte Carlo sweeps completed by engine",
		}, []string{"engine"}),
		flips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "accepted_flips_total",
			Help:      "Accepted spin flips by engine",
		}, []string{"engine"}),
		samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_total",
			Help:      "Observations folded into sampling records",
		}, []string{"engine"}),
		energy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "energy_per_site",
			Help:      "Energy per site at the last synchronization point",
		}, []string{"engine", "temperature"}),
		magnet: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "magnetization_per_site",
			Help:      "Magnetization per site at the last synchronization point",
		}, []string{"engine", "temperature"}),
		lastStep: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "age_sweeps",
			Help:      "Age of the simulation in sweeps",
		}, []string{"engine", "temperature"}),
	}

	for _, c := range []prometheus.Collector{r.sweeps, r.flips, r.samples, r.energy, r.magnet, r.lastStep} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// OnUpdate records one synchronized update.
func (r *Recorder) OnUpdate(u Update) {
	sites := float64(u.Length * u.Length)
	if sites == 0 {
		return
	}
	t := strconv.FormatFloat(u.Temperature, 'f', 4, 64)

	r.sweeps.WithLabelValues(u.Engine).Add(float64(u.Steps))
	if u.AcceptedFlips > 0 {
		r.flips.WithLabelValues(u.Engine).Add(float64(u.AcceptedFlips))
	}
	r.energy.WithLabelValues(u.Engine, t).Set(float64(u.Energy) / sites)
	r.magnet.WithLabelValues(u.Engine, t).Set(float64(u.Magnetization) / sites)
	r.lastStep.WithLabelValues(u.Engine, t).Set(float64(u.Age))
}

// OnSample counts observations folded into a record.
func (r *Recorder) OnSample(engine string, n int) {
	r.samples.WithLabelValues(engine).Add(float64(n))
}
