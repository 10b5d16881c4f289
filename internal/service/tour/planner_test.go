package tour

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/caredomi/homecare-backend-go/internal/domain/tour"
)

func TestPlannerSession_StagingTransitions(t *testing.T) {
	sess := newPlannerSession(func() {})
	defer sess.stop()

	if sess.hasStaged() {
		t.Error("fresh session reports staged changes")
	}

	sess.stageAssign("e1")
	sess.stageTimeChange("e2", tour.TimeOverride{NewStart: 540, NewEnd: 600})
	if !sess.hasStaged() {
		t.Error("session does not report staged changes")
	}

	assign, remove, overrides := sess.snapshot()
	if !assign["e1"] || len(remove) != 0 || len(overrides) != 1 {
		t.Errorf("snapshot = assign %v remove %v overrides %v", assign, remove, overrides)
	}

	// Removing a staged assignment drops it and its override.
	sess.stageRemove("e1")
	sess.stageRemove("e2")
	assign, remove, overrides = sess.snapshot()
	if len(assign) != 0 {
		t.Errorf("assign = %v, want empty after removal", assign)
	}
	if !remove["e1"] || !remove["e2"] {
		t.Errorf("remove = %v, want e1 and e2", remove)
	}
	if len(overrides) != 0 {
		t.Errorf("overrides = %v, want empty: removal discards the staged time", overrides)
	}

	// Re-assigning clears the staged removal.
	sess.stageAssign("e1")
	_, remove, _ = sess.snapshot()
	if remove["e1"] {
		t.Error("staged removal survived a re-assign")
	}
}

func TestPlannerSession_CancelIsMapClear(t *testing.T) {
	sess := newPlannerSession(func() {})
	defer sess.stop()

	sess.stageAssign("e1")
	sess.stageRemove("e2")
	sess.stageTimeChange("e3", tour.TimeOverride{NewStart: 540, NewEnd: 600})

	sess.clear()
	if sess.hasStaged() {
		t.Error("session reports staged changes after cancel")
	}
}

func TestPlannerSession_SnapshotIsACopy(t *testing.T) {
	sess := newPlannerSession(func() {})
	defer sess.stop()

	sess.stageAssign("e1")
	assign, _, _ := sess.snapshot()
	delete(assign, "e1")

	got, _, _ := sess.snapshot()
	if !got["e1"] {
		t.Error("mutating a snapshot leaked into the session")
	}
}

func TestPlannerSession_DebouncedRevalidation(t *testing.T) {
	var calls atomic.Int32
	sess := newPlannerSession(func() { calls.Add(1) })
	defer sess.stop()

	// A burst of staged changes coalesces into one validation pass.
	for i := 0; i < 5; i++ {
		sess.stageTimeChange("e1", tour.TimeOverride{NewStart: 540, NewEnd: 600})
		sess.scheduleRevalidate()
	}

	time.Sleep(revalidateDelay + 200*time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("revalidate ran %d times, want 1", got)
	}
}

func TestPlannerSession_StaleValidationOutcomeDropped(t *testing.T) {
	sess := newPlannerSession(func() {})
	defer sess.stop()

	first := sess.nextValidationSeq()
	second := sess.nextValidationSeq()

	// The newer request resolves first; the older response must not
	// overwrite it.
	if !sess.applyValidationOutcome(second, tour.ValidationOutcome{IsValid: true}) {
		t.Fatal("newest outcome rejected")
	}
	if sess.applyValidationOutcome(first, tour.ValidationOutcome{IsValid: false}) {
		t.Error("stale outcome applied over a newer one")
	}

	outcome := sess.latestOutcome()
	if outcome == nil || !outcome.IsValid {
		t.Error("latest outcome does not reflect the newest response")
	}
}
