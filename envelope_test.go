// envelope_test.go - Envelope state machine, per spec.md §4.2

package sfsynth

import (
	"math"
	"testing"
)

func TestTimecentsToSamples(t *testing.T) {
	if n := timecentsToSamples(-12000, 44100); n != 0 {
		t.Errorf("timecentsToSamples(-12000) = %d, want 0", n)
	}
	// 0 timecents = 1 second.
	if n := timecentsToSamples(0, 44100); n != 44100 {
		t.Errorf("timecentsToSamples(0) = %d, want 44100", n)
	}
	// 1200 timecents = 2 seconds.
	if n := timecentsToSamples(1200, 44100); n != 88200 {
		t.Errorf("timecentsToSamples(1200) = %d, want 88200", n)
	}
}

func TestKeyScaleZeroIsIdentity(t *testing.T) {
	if s := keyScale(90, 0); s != 1 {
		t.Errorf("keyScale(_, 0) = %v, want 1", s)
	}
}

func TestKeyScaleAtKey60IsIdentity(t *testing.T) {
	if s := keyScale(60, 100); math.Abs(s-1) > 1e-9 {
		t.Errorf("keyScale(60, 100) = %v, want 1", s)
	}
}

func TestNewEnvelopeStateSkipsZeroDelay(t *testing.T) {
	times := envelopeTimes{delaySamples: 0, attackSamples: 10}
	s := newEnvelopeState(&times)
	if s.stage != envAttack {
		t.Errorf("stage = %v, want envAttack when delaySamples=0", s.stage)
	}
}

func TestNewEnvelopeStateHonorsDelay(t *testing.T) {
	times := envelopeTimes{delaySamples: 10, attackSamples: 5}
	s := newEnvelopeState(&times)
	if s.stage != envDelay || s.counter != 10 {
		t.Errorf("stage=%v counter=%d, want envDelay/10", s.stage, s.counter)
	}
}

func TestEnvelopeAdvancesThroughAllStages(t *testing.T) {
	times := envelopeTimes{
		delaySamples: 4, attackSamples: 4, holdSamples: 4, decaySamples: 4,
		sustainLevel: 60, // -6dB
	}
	s := newEnvelopeState(&times)
	if s.stage != envDelay {
		t.Fatalf("expected envDelay, got %v", s.stage)
	}
	s.advance(&times, 4) // delay -> attack
	if s.stage != envAttack {
		t.Fatalf("expected envAttack, got %v", s.stage)
	}
	s.advance(&times, 4) // attack -> hold
	if s.stage != envHold {
		t.Fatalf("expected envHold, got %v", s.stage)
	}
	s.advance(&times, 4) // hold -> decay
	if s.stage != envDecay {
		t.Fatalf("expected envDecay, got %v", s.stage)
	}
	s.advance(&times, 4) // decay -> sustain
	if s.stage != envSustain {
		t.Fatalf("expected envSustain, got %v", s.stage)
	}
	if db := s.currentVolDB(&times); math.Abs(db-(-6)) > 1e-6 {
		t.Errorf("currentVolDB at sustain = %v, want -6", db)
	}
	// Sustain never advances on its own.
	s.advance(&times, 1000)
	if s.stage != envSustain {
		t.Errorf("stage after long advance in sustain = %v, want envSustain", s.stage)
	}
}

func TestEnvelopeReleaseReachesFinished(t *testing.T) {
	times := envelopeTimes{releaseSamples: 10}
	s := envelopeState{stage: envSustain}
	s.enterRelease(&times, true, false, 44100)
	if s.stage != envRelease || s.counter != 10 {
		t.Fatalf("enterRelease: stage=%v counter=%d", s.stage, s.counter)
	}
	s.advance(&times, 10)
	if !s.finished() {
		t.Error("expected envelope finished after release completes")
	}
	if db := s.currentVolDB(&times); db != -100 {
		t.Errorf("currentVolDB after Finished = %v, want -100", db)
	}
}

func TestEnvelopeHardReleaseIsShort(t *testing.T) {
	times := envelopeTimes{releaseSamples: 44100} // 1 second normal release
	s := envelopeState{stage: envSustain}
	s.enterRelease(&times, true, true, 44100)
	if s.counter != 441 {
		t.Errorf("hard release counter = %d, want 441 (~10ms at 44100Hz)", s.counter)
	}
}

func TestModEnvelopeCurrentLevelBounds(t *testing.T) {
	times := envelopeTimes{attackSamples: 10, sustainLevel: 0.5}
	s := newEnvelopeState(&times)
	if lv := s.currentLevel(&times); lv != 0 {
		t.Errorf("currentLevel at attack start = %v, want 0", lv)
	}
	s.advance(&times, 10)
	if s.stage == envAttack {
		t.Fatal("attack should have completed")
	}
}
