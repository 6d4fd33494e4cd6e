package progress_test

import (
	"testing"

	"github.com/daybreak-app/daybreak/internal/app/progress"
	"github.com/daybreak-app/daybreak/internal/domain"
)

func catalog(thresholds ...int) []domain.Milestone {
	out := make([]domain.Milestone, len(thresholds))
	for i, d := range thresholds {
		out[i] = domain.Milestone{ThresholdDays: d, Label: "m", Icon: "·"}
	}
	return out
}

func TestMilestoneProgress_Midway(t *testing.T) {
	got := progress.MilestoneProgress(catalog(30, 60, 90), 45)

	if got.Achieved {
		t.Error("unexpectedly achieved")
	}
	if got.NextThreshold == nil || got.NextThreshold.ThresholdDays != 60 {
		t.Fatalf("NextThreshold = %+v, want 60", got.NextThreshold)
	}
	if got.DaysUntil != 15 {
		t.Errorf("DaysUntil = %d, want 15", got.DaysUntil)
	}
	if got.ProgressPercentage != 50 {
		t.Errorf("ProgressPercentage = %d, want 50", got.ProgressPercentage)
	}
}

func TestMilestoneProgress_BeforeFirst(t *testing.T) {
	got := progress.MilestoneProgress(catalog(30, 60, 90), 10)

	if got.NextThreshold == nil || got.NextThreshold.ThresholdDays != 30 {
		t.Fatalf("NextThreshold = %+v, want 30", got.NextThreshold)
	}
	if got.ProgressPercentage != 33 {
		t.Errorf("ProgressPercentage = %d, want 33", got.ProgressPercentage)
	}
}

func TestMilestoneProgress_AllPassed(t *testing.T) {
	got := progress.MilestoneProgress(catalog(30, 60, 90), 90)

	if !got.Achieved {
		t.Error("expected all milestones achieved at 90 days")
	}
	if got.NextThreshold != nil {
		t.Errorf("achieved implies no next threshold, got %+v", got.NextThreshold)
	}
	if got.ProgressPercentage != 100 {
		t.Errorf("ProgressPercentage = %d, want 100", got.ProgressPercentage)
	}
}

func TestMilestoneProgress_ExactThresholdAdvances(t *testing.T) {
	// Reaching a threshold means it is met; the next unmet one becomes
	// the target.
	got := progress.MilestoneProgress(catalog(30, 60, 90), 30)
	if got.NextThreshold == nil || got.NextThreshold.ThresholdDays != 60 {
		t.Fatalf("NextThreshold = %+v, want 60", got.NextThreshold)
	}
	if got.ProgressPercentage != 0 {
		t.Errorf("ProgressPercentage = %d, want 0", got.ProgressPercentage)
	}
}

func TestMilestoneProgress_UnsortedCatalogNormalized(t *testing.T) {
	got := progress.MilestoneProgress(catalog(90, 30, 60, 60, 0), 45)
	if got.NextThreshold == nil || got.NextThreshold.ThresholdDays != 60 {
		t.Fatalf("NextThreshold = %+v, want 60 after normalization", got.NextThreshold)
	}
	if got.ProgressPercentage != 50 {
		t.Errorf("ProgressPercentage = %d, want 50", got.ProgressPercentage)
	}
}

func TestMilestoneProgress_EmptyCatalog(t *testing.T) {
	got := progress.MilestoneProgress(nil, 5)
	if !got.Achieved {
		t.Error("empty catalog should report achieved")
	}
}

func TestDefaultMilestones_Ascending(t *testing.T) {
	cat := progress.DefaultMilestones()
	if len(cat) == 0 {
		t.Fatal("empty default catalog")
	}
	for i := 1; i < len(cat); i++ {
		if cat[i].ThresholdDays <= cat[i-1].ThresholdDays {
			t.Errorf("catalog not strictly ascending at %d: %d then %d",
				i, cat[i-1].ThresholdDays, cat[i].ThresholdDays)
		}
	}
	if cat[0].ThresholdDays != 1 {
		t.Errorf("first milestone = %d days, want 1", cat[0].ThresholdDays)
	}
}
