package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/advdiff/internal/field"
)

func TestNormsOfIdenticalGrids(t *testing.T) {
	g := field.New(8, 8)
	g.Populate(field.InitGauss)

	l2, err := L2Diff(g, g.Clone())
	if err != nil {
		t.Fatalf("L2Diff failed: %v", err)
	}
	if l2 != 0 {
		t.Errorf("expected zero L2 distance, got %v", l2)
	}

	max, err := MaxDiff(g, g.Clone())
	if err != nil {
		t.Fatalf("MaxDiff failed: %v", err)
	}
	if max != 0 {
		t.Errorf("expected zero max distance, got %v", max)
	}
}

func TestNormsRejectShapeMismatch(t *testing.T) {
	a := field.New(8, 8)
	b := field.New(4, 8)

	if _, err := L2Diff(a, b); !errors.Is(err, field.ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
	if _, err := MaxDiff(a, b); !errors.Is(err, field.ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestSinusDiagonalAtTimeZero(t *testing.T) {
	exact := SinusDiagonal(16, 16, 0, 0)

	g := field.New(16, 16)
	g.Populate(field.InitSinus)

	want := g.Interior()
	for i, v := range exact.Interior() {
		if v != want[i] {
			t.Errorf("value %d: analytic %v vs preset %v", i, v, want[i])
		}
	}
}

func TestConvergenceIsFourthOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping convergence study in short mode")
	}

	// dt is held fixed across levels and sits well inside the
	// stability limit, so the spatial truncation error dominates
	samples, err := Convergence(context.Background(), []int{16, 32}, 0.01, 20, 0)
	if err != nil {
		t.Fatalf("convergence study failed: %v", err)
	}

	if samples[0].ErrL2 <= samples[1].ErrL2 {
		t.Fatalf("error did not decrease: %v vs %v", samples[0].ErrL2, samples[1].ErrL2)
	}
	if samples[0].ErrL2 > 1e-3 {
		t.Errorf("coarse error suspiciously large: %v", samples[0].ErrL2)
	}

	orders := Orders(samples)
	if len(orders) != 1 {
		t.Fatalf("expected one order estimate, got %d", len(orders))
	}
	// halving h should cut the error by about 2^4
	if orders[0] < 3.3 || orders[0] > 4.7 {
		t.Errorf("observed order %.2f outside fourth-order range", orders[0])
	}
}
