// SPDX-License-Identifier: Unlicense OR MIT

package fling

import (
	"testing"
	"time"
)

func TestDecomposeQR(t *testing.T) {
	A := &matrix{
		rows: 3, cols: 3,
		data: []float32{
			12, -51, 4,
			6, 167, -68,
			-4, 24, -41,
		},
	}
	Q, R, ok := decomposeQR(A)
	if !ok {
		t.Fatal("decomposeQR failed")
	}
	QR := Q.mul(R)
	if !A.approxEqual(QR) {
		t.Log("A\n", A)
		t.Log("Q\n", Q)
		t.Log("R\n", R)
		t.Log("QR\n", QR)
		t.Fatal("Q*R not approximately equal to A")
	}
	id := &matrix{rows: 3, cols: 3, data: []float32{1, 0, 0, 0, 1, 0, 0, 0, 1}}
	if QtQ := Q.transpose().mul(Q); !id.approxEqual(QtQ) {
		t.Fatalf("Q is not orthonormal:\n%v", QtQ)
	}
	for r := 1; r < R.rows; r++ {
		for c := 0; c < r; c++ {
			if R.get(r, c) != 0 {
				t.Fatalf("R is not upper triangular:\n%v", R)
			}
		}
	}
}

func TestDecomposeDegenerate(t *testing.T) {
	A := &matrix{
		rows: 2, cols: 2,
		data: []float32{
			1, 3,
			0, 0,
		},
	}
	if _, _, ok := decomposeQR(A); ok {
		t.Fatal("decomposeQR succeeded on a singular matrix")
	}
}

func TestFit(t *testing.T) {
	X := []float32{-1, 0, 1}
	Y := []float32{2, 0, 2}

	got, ok := polyFit(X, Y)
	if !ok {
		t.Fatal("polyFit failed")
	}
	want := coefficients{0, 0, 2}
	if !got.approxEqual(want) {
		t.Fatalf("polyFit: got %v want %v", got, want)
	}
}

func TestFitTooFewPoints(t *testing.T) {
	if _, ok := polyFit([]float32{0, 1}, []float32{0, 1}); ok {
		t.Fatal("polyFit succeeded with two points")
	}
}

func TestEstimateConstantVelocity(t *testing.T) {
	var e Extrapolation
	// 1000 units per second, sampled every 10ms.
	for i := 0; i < 8; i++ {
		ts := time.Duration(i) * 10 * time.Millisecond
		e.Sample(ts, float32(i)*10)
	}
	est := e.Estimate()
	if !approxEqual(est.Velocity, 1000) {
		t.Errorf("velocity: got %v want 1000", est.Velocity)
	}
	if !approxEqual(est.Distance, 70) {
		t.Errorf("distance: got %v want 70", est.Distance)
	}
}

func TestEstimateDropsStaleSamples(t *testing.T) {
	var e Extrapolation
	e.Sample(0, 0)
	e.Sample(10*time.Millisecond, 100)
	e.Sample(20*time.Millisecond, 200)
	// A long pause breaks the fling.
	e.Sample(500*time.Millisecond, 200)
	if est := e.Estimate(); est != (Estimate{}) {
		t.Errorf("got %+v for a single recent sample, want zero", est)
	}
}

func TestEstimateWrapsHistory(t *testing.T) {
	var e Extrapolation
	for i := 0; i < 3*historySize; i++ {
		ts := time.Duration(i) * 5 * time.Millisecond
		e.Sample(ts, -float32(i)*2)
	}
	est := e.Estimate()
	if !approxEqual(est.Velocity, -400) {
		t.Errorf("velocity: got %v want -400", est.Velocity)
	}
}
