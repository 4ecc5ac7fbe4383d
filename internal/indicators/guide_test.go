package indicators

import (
	"context"
	"testing"

	"github.com/granjasoft/avicore/internal/domain/models"
)

func TestMemoizeGuide_SingleCallPerKey(t *testing.T) {
	calls := 0
	lookup := memoizeGuide(func(ctx context.Context, breed string, year, ageDays int) (*models.GuideReference, error) {
		calls++
		if ageDays == 8 {
			return nil, nil
		}
		return &models.GuideReference{Breed: breed, Year: year, AgeDays: ageDays, Weight: 90}, nil
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ref, err := lookup(ctx, "cobb500", 2023, 1)
		if err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
		if ref == nil || ref.Weight != 90 {
			t.Fatalf("expected cached reference, got %v", ref)
		}
	}
	// Misses are cached too.
	for i := 0; i < 3; i++ {
		if ref, _ := lookup(ctx, "cobb500", 2023, 8); ref != nil {
			t.Fatalf("expected cached miss, got %v", ref)
		}
	}

	if calls != 2 {
		t.Errorf("expected 2 underlying calls (one per key), got %d", calls)
	}
}

func TestDeviationPct(t *testing.T) {
	if dev := deviationPct(110, 100); dev == nil || *dev != 10 {
		t.Errorf("expected deviation 10, got %v", dev)
	}
	if dev := deviationPct(90, 100); dev == nil || *dev != -10 {
		t.Errorf("expected deviation -10, got %v", dev)
	}
	if dev := deviationPct(50, 0); dev != nil {
		t.Errorf("zero guide must yield nil, got %v", *dev)
	}
}
