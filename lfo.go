// lfo.go - Modulation and vibrato LFOs
//
// Grounded on spec.md §4.3: each LFO has a timecent delay, an absolute-cents
// frequency (f = 8.176*2^(ac/1200) Hz), and produces a triangle wave in
// [-1, 1]. Phase advances by frequency/sampleRate each sample.

package sfsynth

import "math"

type lfoState struct {
	delaySamples int
	freqHz       float64
	elapsed      int     // samples since note-on
	phase        float64 // [0, 1)
}

func absoluteCentsToHz(ac int) float64 {
	return 8.176 * math.Exp2(float64(ac)/1200.0)
}

func newLFOState(delayTimecents, freqAbsCents, sampleRate int) lfoState {
	return lfoState{
		delaySamples: timecentsToSamples(delayTimecents, sampleRate),
		freqHz:       absoluteCentsToHz(freqAbsCents),
	}
}

// advance moves the LFO forward n samples and returns its value at the end
// of that span, in [-1, 1]. Before the delay elapses the value is 0.
func (l *lfoState) advance(n int, sampleRate int) float64 {
	l.elapsed += n
	if l.elapsed <= l.delaySamples {
		return 0
	}
	active := float64(l.elapsed - l.delaySamples)
	l.phase = math.Mod(active*l.freqHz/float64(sampleRate), 1.0)
	return triangle(l.phase)
}

// triangle maps a [0,1) phase to a triangle wave in [-1,1]: rising from -1
// at phase 0 to +1 at phase 0.5, falling back to -1 at phase 1.
func triangle(phase float64) float64 {
	if phase < 0.5 {
		return -1 + 4*phase
	}
	return 3 - 4*phase
}
