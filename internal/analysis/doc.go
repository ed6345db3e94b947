// Package analysis derives thermodynamic quantities from sampling records.
//
// The package works on the raw lattice totals of a [sim.Record]:
//
//   - [Derive]: per-site energy and magnetization, specific heat, susceptibility
//   - [Curve]: one observable across a temperature sweep
//   - [PeakIndex]: the sweep point where a curve is largest
//   - [Mean], [StandardError]: statistics over independent runs
//
// # Locating the transition
//
// On a finite lattice the specific heat and susceptibility peak close to the
// Onsager temperature:
//
//	points := analysis.DeriveAll(records)
//	k := analysis.PeakIndex(analysis.Curve(points, analysis.SpecificHeat))
//	fmt.Println(points[k].Temperature, analysis.CriticalTemperature)
package analysis
