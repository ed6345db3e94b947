package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/isingsim/internal/snapshot"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	peakStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	upStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	downStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
)

func header(s string) string { return headerStyle.Render(s) }

func kv(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

// renderLattice draws decoded bits as one glyph per site.
func renderLattice(data []byte, l int) (string, error) {
	bits, err := snapshot.Decode(data, l*l)
	if err != nil {
		return "", err
	}
	up, down := upStyle.Render("█"), downStyle.Render("·")

	var b strings.Builder
	for i := 0; i < l; i++ {
		for j := 0; j < l; j++ {
			if bits[i*l+j] == 1 {
				b.WriteString(up)
			} else {
				b.WriteString(down)
			}
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}
