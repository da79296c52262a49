package kernel

import (
	"cmp"

	"github.com/matzehuels/oddkernel/pkg/bigdag"
	"github.com/matzehuels/oddkernel/pkg/errors"
)

// ReduceSelf computes the symmetric nx×nx kernel matrix of the nx sources
// folded into b. Only the upper triangle is accumulated; the lower triangle is
// mirrored from it.
//
// b must be in vector mode and hold exactly nx sources, otherwise ReduceSelf
// returns INVALID_INPUT.
func ReduceSelf[L cmp.Ordered](b *bigdag.BigDAG[L], nx int) (*Matrix, error) {
	if err := checkSources(b, nx); err != nil {
		return nil, err
	}

	m := NewMatrix(nx, nx)
	var nz []int
	for _, n := range b.Nodes() {
		if n.Weight == 0 {
			continue
		}
		c := float64(n.Weight)
		nz = nonzero(nz[:0], n.Freq, 0, nx)
		for a, i := range nz {
			fi := float64(n.Freq.At(i))
			for _, j := range nz[a:] {
				m.add(i, j, fi*float64(n.Freq.At(j))*c)
			}
		}
	}

	for i := 0; i < nx; i++ {
		for j := i + 1; j < nx; j++ {
			m.Set(j, i, m.At(i, j))
		}
	}
	return m, nil
}

// ReduceCross computes the ny×nx kernel matrix between the first nx sources
// of b (collection X, columns) and the following ny sources (collection Y,
// rows).
//
// b must be in vector mode and hold exactly nx+ny sources, otherwise
// ReduceCross returns INVALID_INPUT.
func ReduceCross[L cmp.Ordered](b *bigdag.BigDAG[L], nx, ny int) (*Matrix, error) {
	if ny < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "negative source count %d", ny)
	}
	if err := checkSources(b, nx+ny); err != nil {
		return nil, err
	}

	m := NewMatrix(ny, nx)
	var xs, ys []int
	for _, n := range b.Nodes() {
		if n.Weight == 0 {
			continue
		}
		c := float64(n.Weight)
		xs = nonzero(xs[:0], n.Freq, 0, nx)
		ys = nonzero(ys[:0], n.Freq, nx, nx+ny)
		for _, i := range ys {
			fi := float64(n.Freq.At(i))
			for _, j := range xs {
				m.add(i-nx, j, fi*float64(n.Freq.At(j))*c)
			}
		}
	}
	return m, nil
}

func checkSources[L cmp.Ordered](b *bigdag.BigDAG[L], n int) error {
	if b.Mode() != bigdag.Vector {
		return errors.New(errors.ErrCodeInvalidInput, "kernel reduction needs a vector-mode Big DAG, got %s", b.Mode())
	}
	if n < 0 || b.Sources() != n {
		return errors.New(errors.ErrCodeInvalidInput, "Big DAG holds %d sources, expected %d", b.Sources(), n)
	}
	return nil
}

// nonzero appends the slots in [lo, hi) with a non-zero count to dst.
func nonzero(dst []int, f bigdag.Frequency, lo, hi int) []int {
	for i := lo; i < hi; i++ {
		if f.At(i) != 0 {
			dst = append(dst, i)
		}
	}
	return dst
}
