// Package snapshot packs a lattice into one bit per spin.
//
// Spins map -1 → 0 and +1 → 1, taken row-major, eight cells per byte, most
// significant bit first. When L² is not a multiple of eight the final byte is
// completed according to a [Padding] policy.
package snapshot

import (
	"fmt"

	"github.com/san-kum/isingsim/internal/ising"
)

// Padding selects how the low bits of a final partial byte are filled.
type Padding int

const (
	// ZeroPad leaves the unused bits clear.
	ZeroPad Padding = iota
	// WrapRead keeps reading past the last cell from cell 0 onward.
	WrapRead
)

func (p Padding) String() string {
	switch p {
	case ZeroPad:
		return "zero"
	case WrapRead:
		return "wrap"
	}
	return fmt.Sprintf("Padding(%d)", int(p))
}

func ParsePadding(s string) (Padding, error) {
	switch s {
	case "zero", "":
		return ZeroPad, nil
	case "wrap":
		return WrapRead, nil
	}
	return 0, ising.DomainErrorf("parse padding", "unknown padding %q (want zero or wrap)", s)
}

// Size returns the packed length of n cells.
func Size(n int) int { return (n + 7) / 8 }

// Encode packs spins. The input is not retained.
func Encode(spins []int8, p Padding) []byte {
	n := len(spins)
	out := make([]byte, Size(n))
	for b := range out {
		var v byte
		for k := 0; k < 8; k++ {
			idx := b*8 + k
			if idx >= n {
				if p != WrapRead {
					break
				}
				idx %= n
			}
			if spins[idx] > 0 {
				v |= 0x80 >> k
			}
		}
		out[b] = v
	}
	return out
}

// Decode unpacks the first cells bits of data as 0/1 values.
func Decode(data []byte, cells int) ([]uint8, error) {
	if cells < 0 {
		return nil, ising.DomainErrorf("decode", "cell count must be non-negative, got %d", cells)
	}
	if len(data) < Size(cells) {
		return nil, ising.ConsistencyErrorf("decode", "%d bytes cannot hold %d cells", len(data), cells)
	}
	bits := make([]uint8, cells)
	for idx := range bits {
		bits[idx] = (data[idx/8] >> (7 - idx%8)) & 1
	}
	return bits, nil
}

// Spins maps decoded bits back to ±1.
func Spins(bits []uint8) []int8 {
	out := make([]int8, len(bits))
	for k, b := range bits {
		out[k] = int8(b)*2 - 1
	}
	return out
}
