// lfo_test.go - Modulation/vibrato LFO, per spec.md §4.3

package sfsynth

import (
	"math"
	"testing"
)

func TestTriangleShape(t *testing.T) {
	cases := []struct {
		phase, want float64
	}{
		{0, -1}, {0.25, 0}, {0.5, 1}, {0.75, 0},
	}
	for _, c := range cases {
		if got := triangle(c.phase); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("triangle(%v) = %v, want %v", c.phase, got, c.want)
		}
	}
}

func TestAbsoluteCentsToHz(t *testing.T) {
	// 0 absolute cents is the SF2.04-documented reference, 8.176Hz.
	if hz := absoluteCentsToHz(0); math.Abs(hz-8.176) > 1e-6 {
		t.Errorf("absoluteCentsToHz(0) = %v, want 8.176", hz)
	}
	// +1200 cents is one octave up.
	if hz := absoluteCentsToHz(1200); math.Abs(hz-8.176*2) > 1e-6 {
		t.Errorf("absoluteCentsToHz(1200) = %v, want %v", hz, 8.176*2)
	}
}

func TestLFOGatedDuringDelay(t *testing.T) {
	l := lfoState{delaySamples: 100, freqHz: 5}
	if v := l.advance(50, 44100); v != 0 {
		t.Errorf("advance during delay = %v, want 0", v)
	}
}

func TestLFOActiveAfterDelay(t *testing.T) {
	l := lfoState{delaySamples: 0, freqHz: 5}
	v := l.advance(1, 44100)
	if v < -1 || v > 1 {
		t.Errorf("advance returned %v, out of [-1,1]", v)
	}
}
