package reminder

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"medreminder/internal/model"
)

type countingMedicineSource struct {
	calls atomic.Int32
}

func (s *countingMedicineSource) ListAllActive(ctx context.Context) ([]model.Medicine, error) {
	s.calls.Add(1)
	return nil, nil
}

func TestRunner_StartStop(t *testing.T) {
	src := &countingMedicineSource{}
	e := NewEvaluator(src, newTestLedger(), nil, nil, 60*time.Second, zap.NewNop())

	r := NewRunner(e, 10*time.Millisecond, zap.NewNop())
	r.Start(context.Background())

	// The first pass runs immediately; a few ticks should follow.
	time.Sleep(60 * time.Millisecond)
	r.Stop()

	got := src.calls.Load()
	if got < 2 {
		t.Fatalf("expected at least 2 passes, got %d", got)
	}

	// No passes after Stop returns.
	time.Sleep(30 * time.Millisecond)
	if after := src.calls.Load(); after != got {
		t.Errorf("passes continued after Stop: %d -> %d", got, after)
	}
}

func TestRunner_StopWithoutStart(t *testing.T) {
	e := NewEvaluator(&countingMedicineSource{}, newTestLedger(), nil, nil, 60*time.Second, zap.NewNop())
	r := NewRunner(e, time.Minute, zap.NewNop())
	r.Stop() // must not panic
}
