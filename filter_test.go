// filter_test.go - RBJ biquad low-pass, per spec.md §4.4

package sfsynth

import "testing"

func TestFilterBypassAtCeiling(t *testing.T) {
	var f biquadFilter
	f.setCoefficients(filterCutoffCeiling, 0, 44100)
	if !f.bypass {
		t.Fatal("expected bypass at cutoff ceiling")
	}
	if out := f.process(0.5); out != 0.5 {
		t.Errorf("bypassed filter modified input: got %v, want 0.5", out)
	}
}

func TestFilterBelowCeilingIsActive(t *testing.T) {
	var f biquadFilter
	f.setCoefficients(8000, 0, 44100)
	if f.bypass {
		t.Fatal("expected active filter below ceiling")
	}
}

func TestFilterClampsLowCutoff(t *testing.T) {
	var f biquadFilter
	f.setCoefficients(0, 0, 44100) // below the 1500 absolute-cents floor
	if f.bypass {
		t.Fatal("filter should not bypass at a clamped-low cutoff")
	}
}

func TestFilterResetClearsState(t *testing.T) {
	var f biquadFilter
	f.setCoefficients(5000, 0, 44100)
	for i := 0; i < 100; i++ {
		f.process(1.0)
	}
	if f.z1 == 0 && f.z2 == 0 {
		t.Fatal("expected nonzero filter state after processing")
	}
	f.reset()
	if f.z1 != 0 || f.z2 != 0 {
		t.Errorf("reset left z1=%v z2=%v, want 0,0", f.z1, f.z2)
	}
	if f.bypass {
		t.Error("reset should clear bypass")
	}
}

func TestFilterDCGainNearUnity(t *testing.T) {
	var f biquadFilter
	f.setCoefficients(8000, 0, 44100)
	var out float32
	for i := 0; i < 2000; i++ {
		out = f.process(1.0)
	}
	if out < 0.9 || out > 1.1 {
		t.Errorf("steady-state DC output = %v, want close to 1.0", out)
	}
}
