package export

import (
	"fmt"
	"strings"
)

// LatticeToSVG draws decoded snapshot bits as an L×L grid of squares, up
// spins in upColor on a dark background.
func LatticeToSVG(bits []uint8, l int, scale float64, upColor string) (string, error) {
	if l <= 0 || len(bits) < l*l {
		return "", fmt.Errorf("export: %d bits cannot fill a %dx%d lattice", len(bits), l, l)
	}
	if scale <= 0 {
		scale = 8
	}
	size := float64(l) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, size, size, size, size, upColor))

	for i := 0; i < l; i++ {
		for j := 0; j < l; j++ {
			if bits[i*l+j] == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>
`, float64(j)*scale, float64(i)*scale, scale, scale))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String(), nil
}

// CurveToSVG plots ys against xs as a polyline, for example an observable
// across a temperature sweep.
func CurveToSVG(xs, ys []float64, width, height int, strokeColor string) string {
	if len(xs) < 2 || len(xs) != len(ys) {
		return ""
	}

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for k := range xs {
		minX, maxX = min(minX, xs[k]), max(maxX, xs[k])
		minY, maxY = min(minY, ys[k]), max(maxY, ys[k])
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for k := range xs {
		x := (xs[k] - minX) / rangeX * float64(width)
		y := float64(height) - (ys[k]-minY)/rangeY*float64(height)

		if k == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
