//go:build !amd64

package simd

// hasAVX2 is always false off amd64; the baseline 8-byte SWAR loop is the
// only path.
const hasAVX2 = false

const laneWidth = 16
