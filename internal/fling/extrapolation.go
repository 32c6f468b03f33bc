// SPDX-License-Identifier: Unlicense OR MIT

package fling

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Extrapolation computes a 1-dimensional velocity estimate
// for a set of timestamped points using the least squares
// fit of a 2nd order polynomial. The same method is used
// by Android.
type Extrapolation struct {
	// Index into samples.
	idx int
	// Circular buffer of samples.
	samples []sample
	// Pre-allocated cache for samples.
	cache [historySize]sample

	// Filtered values and times.
	values [historySize]float32
	times  [historySize]float32
}

type sample struct {
	t time.Duration
	v float32
}

// Estimate is the result of an Extrapolation.
type Estimate struct {
	// Velocity in units per second.
	Velocity float32
	// Distance covered by the samples used for the estimate.
	Distance float32
}

// matrix is a dense, row-major matrix.
type matrix struct {
	rows, cols int
	data       []float32
}

type coefficients [degree + 1]float32

const (
	degree       = 2
	historySize  = 20
	maxAge       = 100 * time.Millisecond
	maxSampleGap = 40 * time.Millisecond
)

// Sample adds an absolute sample to the estimation.
func (e *Extrapolation) Sample(t time.Duration, val float32) {
	if e.samples == nil {
		e.samples = e.cache[:0]
	}
	s := sample{t: t, v: val}
	if e.idx == len(e.samples) && e.idx < cap(e.samples) {
		e.samples = append(e.samples, s)
	} else {
		e.samples[e.idx] = s
	}
	e.idx++
	if e.idx == cap(e.samples) {
		e.idx = 0
	}
}

// Estimate returns an estimate of the implied velocity and
// distance for the points sampled, or zero if the estimation method
// failed.
func (e *Extrapolation) Estimate() Estimate {
	if len(e.samples) == 0 {
		return Estimate{}
	}
	values := e.values[:0]
	times := e.times[:0]
	first := e.get(0)
	t := first.t
	// Walk backwards collecting samples.
	for i := 0; i < len(e.samples); i++ {
		p := e.get(-i)
		age := first.t - p.t
		if age >= maxAge || t-p.t >= maxSampleGap {
			// Samples too old or too far apart are
			// not part of the fling.
			break
		}
		t = p.t
		values = append(values, p.v-first.v)
		times = append(times, float32((-age).Seconds()))
	}
	coef, ok := polyFit(times, values)
	if !ok {
		return Estimate{}
	}
	dist := values[0] - values[len(values)-1]
	return Estimate{
		Velocity: coef[1],
		Distance: dist,
	}
}

// get returns the sample i steps from the newest.
func (e *Extrapolation) get(i int) sample {
	idx := (e.idx + i - 1 + len(e.samples)) % len(e.samples)
	return e.samples[idx]
}

// polyFit computes the least squares polynomial fit for
// the set of points in X, Y. If the fitting fails
// because of contradicting or insufficient data,
// polyFit returns false.
func polyFit(X, Y []float32) (coefficients, bool) {
	if len(X) != len(Y) {
		panic("X and Y lengths differ")
	}
	if len(X) <= degree {
		// Not enough points to fit a curve.
		return coefficients{}, false
	}

	// Expand X to the Vandermonde matrix A where A[i][j] = X[i]^j.
	A := newMatrix(len(X), degree+1)
	for i, x := range X {
		A.set(i, 0, 1)
		for j := 1; j < A.cols; j++ {
			A.set(i, j, A.get(i, j-1)*x)
		}
	}

	Q, R, ok := decomposeQR(A)
	if !ok {
		return coefficients{}, false
	}
	// Solve R*B = transpose(Q)*Y. R is upper triangular so
	// proceed from the last coefficient upwards.
	var B coefficients
	for i := R.rows - 1; i >= 0; i-- {
		B[i] = dot(Q.col(i), Y)
		for j := i + 1; j < R.cols; j++ {
			B[i] -= R.get(i, j) * B[j]
		}
		B[i] /= R.get(i, i)
	}
	return B, true
}

// decomposeQR computes Q, R where Q*R = A, if possible. The
// columns of Q are orthonormal and R is square and upper triangular.
func decomposeQR(A *matrix) (*matrix, *matrix, bool) {
	// Gram-Schmidt on the columns of A.
	Q := newMatrix(A.rows, A.cols)
	R := newMatrix(A.cols, A.cols)
	for i := 0; i < A.cols; i++ {
		for k := 0; k < A.rows; k++ {
			Q.set(k, i, A.get(k, i))
		}
		// Subtract the projections onto the previous columns, which
		// are already normalized.
		for j := 0; j < i; j++ {
			d := dot(Q.col(j), A.col(i))
			R.set(j, i, d)
			for k := 0; k < Q.rows; k++ {
				Q.set(k, i, Q.get(k, i)-d*Q.get(k, j))
			}
		}
		n := norm(Q.col(i))
		if n < 0.000001 {
			// Degenerate data, no solution.
			return nil, nil, false
		}
		R.set(i, i, n)
		invNorm := 1 / n
		for k := 0; k < Q.rows; k++ {
			Q.set(k, i, Q.get(k, i)*invNorm)
		}
	}
	return Q, R, true
}

func newMatrix(rows, cols int) *matrix {
	return &matrix{
		rows: rows,
		cols: cols,
		data: make([]float32, rows*cols),
	}
}

func (m *matrix) set(row, col int, v float32) {
	if row < 0 || row >= m.rows {
		panic("row out of range")
	}
	if col < 0 || col >= m.cols {
		panic("col out of range")
	}
	m.data[row*m.cols+col] = v
}

func (m *matrix) get(row, col int) float32 {
	if row < 0 || row >= m.rows {
		panic("row out of range")
	}
	if col < 0 || col >= m.cols {
		panic("col out of range")
	}
	return m.data[row*m.cols+col]
}

// col returns a copy of column c.
func (m *matrix) col(c int) []float32 {
	v := make([]float32, m.rows)
	for r := range v {
		v[r] = m.get(r, c)
	}
	return v
}

func (m *matrix) transpose() *matrix {
	t := newMatrix(m.cols, m.rows)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			t.set(c, r, m.get(r, c))
		}
	}
	return t
}

func (m *matrix) mul(m2 *matrix) *matrix {
	if m.cols != m2.rows {
		panic("mismatched matrices")
	}
	mm := newMatrix(m.rows, m2.cols)
	for r := 0; r < mm.rows; r++ {
		for c := 0; c < mm.cols; c++ {
			var v float32
			for i := 0; i < m.cols; i++ {
				v += m.get(r, i) * m2.get(i, c)
			}
			mm.set(r, c, v)
		}
	}
	return mm
}

func (m *matrix) approxEqual(m2 *matrix) bool {
	if m.rows != m2.rows || m.cols != m2.cols {
		return false
	}
	for i, v := range m.data {
		if !approxEqual(v, m2.data[i]) {
			return false
		}
	}
	return true
}

func (m *matrix) String() string {
	var b strings.Builder
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			fmt.Fprintf(&b, "%f ", m.get(r, c))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (c coefficients) approxEqual(c2 coefficients) bool {
	for i, v := range c {
		if !approxEqual(v, c2[i]) {
			return false
		}
	}
	return true
}

func approxEqual(v1, v2 float32) bool {
	const eps = 0.001
	scale := float32(1)
	if a := abs(v1); a > scale {
		scale = a
	}
	if a := abs(v2); a > scale {
		scale = a
	}
	return abs(v1-v2) <= eps*scale
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func norm(x []float32) float32 {
	return float32(math.Sqrt(float64(dot(x, x))))
}

func dot(x, y []float32) float32 {
	var d float32
	for i := range x {
		d += x[i] * y[i]
	}
	return d
}
