package anomaly

import (
	"math"
	"testing"

	"drawbias/domain/core"
)

func TestOutcomeCorrelation_DiagonalAndSymmetry(t *testing.T) {
	draws := []int{0, 1, 2, 0, 2, 1, 1, 0, 2, 2}

	matrix, err := OutcomeCorrelation(draws, 3)
	if err != nil {
		t.Fatalf("correlation: %v", err)
	}
	if len(matrix) != 3 {
		t.Fatalf("expected 3x3 matrix, got %d rows", len(matrix))
	}

	for i := range matrix {
		if math.Abs(matrix[i][i]-1.0) > 1e-12 {
			t.Fatalf("diagonal [%d][%d] = %v, want 1", i, i, matrix[i][i])
		}
		for j := range matrix[i] {
			if matrix[i][j] != matrix[j][i] {
				t.Fatalf("matrix not symmetric at [%d][%d]", i, j)
			}
			if math.IsNaN(matrix[i][j]) {
				t.Fatalf("NaN leaked at [%d][%d]", i, j)
			}
		}
	}
}

func TestOutcomeCorrelation_ZeroVarianceColumnIsZeroed(t *testing.T) {
	// Outcome 2 never occurs: its indicator column has zero variance and
	// every correlation involving it must be substituted with 0.
	draws := []int{0, 1, 0, 1, 0, 1}

	matrix, err := OutcomeCorrelation(draws, 3)
	if err != nil {
		t.Fatalf("correlation: %v", err)
	}
	for j := 0; j < 3; j++ {
		if matrix[2][j] != 0 || matrix[j][2] != 0 {
			t.Fatalf("expected zeroed row/column for absent outcome, got row %v", matrix[2])
		}
	}

	// Two complementary indicators over two outcomes are perfectly
	// anti-correlated.
	if math.Abs(matrix[0][1]+1.0) > 1e-9 {
		t.Fatalf("expected correlation -1 between complementary outcomes, got %v", matrix[0][1])
	}
}

func TestOutcomeCorrelation_Validation(t *testing.T) {
	if _, err := OutcomeCorrelation([]int{0, 1}, 1); !core.IsConfigError(err) {
		t.Fatalf("expected config error for one outcome, got %v", err)
	}
	if _, err := OutcomeCorrelation(nil, 3); !core.IsInputError(err) {
		t.Fatalf("expected input error for empty draws, got %v", err)
	}
	if _, err := OutcomeCorrelation([]int{0, 5}, 3); !core.IsInputError(err) {
		t.Fatalf("expected input error for out-of-range draw, got %v", err)
	}
}
