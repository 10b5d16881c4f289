package tour

import (
	"sync"
	"time"

	"github.com/caredomi/homecare-backend-go/internal/domain/tour"
	"github.com/caredomi/homecare-backend-go/internal/pkg/debounce"
)

// revalidateDelay batches staged-change bursts into one validation
// round-trip.
const revalidateDelay = 500 * time.Millisecond

// plannerSession is the staged working state of one tour: assignments
// and removals not yet persisted, plus time overrides consulted by
// every computation instead of mutating the canonical events. Cancel is
// a map-clear.
type plannerSession struct {
	mu        sync.Mutex
	toAssign  map[string]bool
	toRemove  map[string]bool
	overrides map[string]tour.TimeOverride

	// Validation responses may return out of order; only the outcome of
	// the newest request is applied.
	validationSeq uint64
	appliedSeq    uint64
	lastOutcome   *tour.ValidationOutcome
	debouncer     *debounce.Debouncer
}

func newPlannerSession(revalidate func()) *plannerSession {
	s := &plannerSession{
		toAssign:  make(map[string]bool),
		toRemove:  make(map[string]bool),
		overrides: make(map[string]tour.TimeOverride),
	}
	s.debouncer = debounce.New(revalidateDelay, revalidate)
	return s
}

func (s *plannerSession) stageAssign(eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.toRemove, eventID)
	s.toAssign[eventID] = true
}

func (s *plannerSession) stageRemove(eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.toAssign, eventID)
	delete(s.overrides, eventID)
	s.toRemove[eventID] = true
}

func (s *plannerSession) stageTimeChange(eventID string, ov tour.TimeOverride) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[eventID] = ov
}

// snapshot returns copies of the staged maps so reads merge the overlay
// without racing later mutations.
func (s *plannerSession) snapshot() (assign, remove map[string]bool, overrides map[string]tour.TimeOverride) {
	s.mu.Lock()
	defer s.mu.Unlock()

	assign = make(map[string]bool, len(s.toAssign))
	for id := range s.toAssign {
		assign[id] = true
	}
	remove = make(map[string]bool, len(s.toRemove))
	for id := range s.toRemove {
		remove[id] = true
	}
	overrides = make(map[string]tour.TimeOverride, len(s.overrides))
	for id, ov := range s.overrides {
		overrides[id] = ov
	}
	return assign, remove, overrides
}

func (s *plannerSession) hasStaged() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.toAssign)+len(s.toRemove)+len(s.overrides) > 0
}

func (s *plannerSession) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toAssign = make(map[string]bool)
	s.toRemove = make(map[string]bool)
	s.overrides = make(map[string]tour.TimeOverride)
}

func (s *plannerSession) scheduleRevalidate() {
	s.debouncer.Trigger()
}

func (s *plannerSession) stop() {
	s.debouncer.Stop()
}

// nextValidationSeq reserves a sequence number for an outgoing
// validation request.
func (s *plannerSession) nextValidationSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.validationSeq++
	return s.validationSeq
}

// applyValidationOutcome stores the outcome unless a newer request has
// already been applied.
func (s *plannerSession) applyValidationOutcome(seq uint64, outcome tour.ValidationOutcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.appliedSeq {
		return false
	}
	s.appliedSeq = seq
	s.lastOutcome = &outcome
	return true
}

func (s *plannerSession) latestOutcome() *tour.ValidationOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastOutcome
}
