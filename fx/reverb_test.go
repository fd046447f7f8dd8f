// reverb_test.go - Schroeder reverb tail behavior

package fx

import "testing"

func TestReverbProducesNonzeroTail(t *testing.T) {
	r := NewReverb(44100)
	wetL := make([]float32, 8192)
	wetR := make([]float32, 8192)
	wetL[0] = 1.0
	wetR[0] = 1.0
	r.Process(wetL, wetR)

	nonzero := false
	for _, v := range wetL[100:] {
		if v != 0 {
			nonzero = true
			break
		}
	}
	if !nonzero {
		t.Error("expected a nonzero reverb tail after an impulse")
	}
}

func TestReverbSilenceStaysSilent(t *testing.T) {
	r := NewReverb(44100)
	wetL := make([]float32, 1024)
	wetR := make([]float32, 1024)
	r.Process(wetL, wetR)
	for i, v := range wetL {
		if v != 0 {
			t.Fatalf("wetL[%d] = %v, want 0 on silent input", i, v)
		}
	}
}

func TestReverbScalesDelayLinesBySampleRate(t *testing.T) {
	low := newReverbChannel(22050)
	high := newReverbChannel(44100)
	if len(high.combs[0].buffer) <= len(low.combs[0].buffer) {
		t.Error("higher sample rate should produce longer (in samples) comb delay buffers")
	}
}
