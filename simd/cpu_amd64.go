//go:build amd64

package simd

import "golang.org/x/sys/cpu"

// hasAVX2 gates the wide-lane scanning path: a 32-byte-at-a-time
// portable loop over the baseline 8-byte SWAR loop. Both paths produce
// identical results; the gate only trades chunk width.
var hasAVX2 = cpu.X86.HasAVX2

// laneWidth is the chunk size the wide scanning path processes per
// iteration when hasAVX2 is true.
const laneWidth = 32
