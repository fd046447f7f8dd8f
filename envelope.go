// envelope.go - Volume and modulation envelope state machines
//
// Grounded on spec.md §4.2: Delay -> Attack -> Hold -> Decay -> Sustain ->
// Release -> Finished, shared by the volume (dB domain) and modulation
// (linear 0..1) envelopes. Timing comes from timecents; key-scaling
// generators stretch hold/decay per spec.md's 2^((60-key)/12*scale/100).

package sfsynth

import "math"

type envelopeStage uint8

const (
	envDelay envelopeStage = iota
	envAttack
	envHold
	envDecay
	envSustain
	envRelease
	envFinished
)

// envelopeTimes holds one envelope's stage durations in samples (converted
// from timecents, hold/decay already key-scaled) and its sustain level.
// Shared shape for volume and
// modulation envelopes; volEnv additionally has an initial attenuation
// baseline the dB conversion needs, tracked separately on the voice.
type envelopeTimes struct {
	delaySamples   int
	attackSamples  int
	holdSamples    int
	decaySamples   int
	releaseSamples int
	sustainLevel   float64 // volume: centibels of attenuation below full; mod: 0..1
}

// envelopeState is the live per-voice state machine. level is in the
// envelope's native domain: linear 0..1 for attack, then converted to dB
// for decay/sustain/release on the volume envelope (see currentVolDB),
// or simply linear throughout for the modulation envelope.
type envelopeState struct {
	stage      envelopeStage
	counter    int     // samples remaining in the current stage
	level      float64 // instantaneous linear level for Attack; meaningless once past Attack
	releaseDB  float64 // dB level captured at Release entry, interpolated toward -100
	releaseLin float64 // linear level captured at Release entry (modulation envelope)
}

func timecentsToSamples(tc int, sampleRate int) int {
	if tc <= -12000 {
		return 0
	}
	seconds := math.Exp2(float64(tc) / 1200.0)
	n := int(seconds * float64(sampleRate))
	if n < 0 {
		return 0
	}
	return n
}

// keyScale implements spec.md §4.2's hold/decay key-scaling stretch.
func keyScale(key int, centPerKey int) float64 {
	if centPerKey == 0 {
		return 1
	}
	return math.Exp2(float64(60-key) / 12.0 * float64(centPerKey) / 100.0)
}

func newVolEnvelopeTimes(r *region, key int, sampleRate int) envelopeTimes {
	holdScale := keyScale(key, r.keyToVolEnvHold)
	decayScale := keyScale(key, r.keyToVolEnvDecay)
	return envelopeTimes{
		delaySamples:   timecentsToSamples(r.delayVolEnv, sampleRate),
		attackSamples:  timecentsToSamples(r.attackVolEnv, sampleRate),
		holdSamples:    int(float64(timecentsToSamples(r.holdVolEnv, sampleRate)) * holdScale),
		decaySamples:   int(float64(timecentsToSamples(r.decayVolEnv, sampleRate)) * decayScale),
		releaseSamples: timecentsToSamples(r.releaseVolEnv, sampleRate),
		sustainLevel:   clamp(float64(r.sustainVolEnv), 0, 1440), // centibels, 0..144dB
	}
}

func newModEnvelopeTimes(r *region, key int, sampleRate int) envelopeTimes {
	holdScale := keyScale(key, r.keyToModEnvHold)
	decayScale := keyScale(key, r.keyToModEnvDecay)
	return envelopeTimes{
		delaySamples:   timecentsToSamples(r.delayModEnv, sampleRate),
		attackSamples:  timecentsToSamples(r.attackModEnv, sampleRate),
		holdSamples:    int(float64(timecentsToSamples(r.holdModEnv, sampleRate)) * holdScale),
		decaySamples:   int(float64(timecentsToSamples(r.decayModEnv, sampleRate)) * decayScale),
		releaseSamples: timecentsToSamples(r.releaseModEnv, sampleRate),
		sustainLevel:   clamp(1.0-float64(r.sustainModEnv)/1000.0, 0, 1), // sustainModEnv is 0.1% units
	}
}

func newEnvelopeState(t *envelopeTimes) envelopeState {
	s := envelopeState{stage: envDelay, counter: t.delaySamples}
	if t.delaySamples == 0 {
		s.stage = envAttack
		s.counter = t.attackSamples
	}
	return s
}

// enterRelease transitions to Release from whatever stage the envelope is
// currently in, capturing its current level as the release start point.
// hardRelease forces a short fixed release for voice stealing (spec.md §4.6).
func (s *envelopeState) enterRelease(t *envelopeTimes, isVolume bool, hardRelease bool, sampleRate int) {
	if isVolume {
		s.releaseDB = s.currentVolDB(t)
	} else {
		s.releaseLin = s.currentLevel(t)
	}
	s.stage = envRelease
	if hardRelease {
		s.counter = sampleRate / 100 // ~10ms hard release, spec.md §4.6
	} else {
		s.counter = t.releaseSamples
	}
}

// advance moves the envelope forward by n samples (one block), per
// spec.md §4.2's Delay->Attack->Hold->Decay->Sustain transitions.
func (s *envelopeState) advance(t *envelopeTimes, n int) {
	remaining := n
	for remaining > 0 && s.stage != envSustain && s.stage != envFinished {
		if s.counter > remaining {
			s.counter -= remaining
			if s.stage == envAttack && t.attackSamples > 0 {
				s.level += float64(remaining) / float64(t.attackSamples)
			}
			remaining = 0
			break
		}
		step := s.counter
		remaining -= step
		if s.stage == envAttack && t.attackSamples > 0 {
			s.level += float64(step) / float64(t.attackSamples)
		}
		switch s.stage {
		case envDelay:
			s.stage = envAttack
			s.counter = t.attackSamples
			s.level = 0
		case envAttack:
			s.level = 1
			s.stage = envHold
			s.counter = t.holdSamples
		case envHold:
			s.stage = envDecay
			s.counter = t.decaySamples
		case envDecay:
			s.stage = envSustain
			s.counter = 0
		case envRelease:
			s.stage = envFinished
			s.counter = 0
		}
	}
}

// currentVolDB returns the volume envelope's instantaneous level in dB
// below full scale (0 = full volume, negative = attenuated).
func (s *envelopeState) currentVolDB(t *envelopeTimes) float64 {
	switch s.stage {
	case envDelay:
		return -100
	case envAttack:
		if s.level <= 0 {
			return -100
		}
		return 20 * math.Log10(s.level)
	case envHold:
		return 0
	case envDecay:
		if t.decaySamples == 0 {
			return -t.sustainLevel / 10
		}
		frac := 1 - float64(s.counter)/float64(t.decaySamples)
		return -frac * t.sustainLevel / 10
	case envSustain:
		return -t.sustainLevel / 10
	case envRelease:
		if t.releaseSamples == 0 {
			return -100
		}
		frac := float64(s.counter) / float64(t.releaseSamples)
		return s.releaseDB - (1-frac)*(100+s.releaseDB)
	default: // envFinished
		return -100
	}
}

// currentLevel returns the modulation envelope's instantaneous linear
// level in [0, 1].
func (s *envelopeState) currentLevel(t *envelopeTimes) float64 {
	switch s.stage {
	case envDelay:
		return 0
	case envAttack:
		return clamp(s.level, 0, 1)
	case envHold:
		return 1
	case envDecay:
		if t.decaySamples == 0 {
			return t.sustainLevel
		}
		frac := 1 - float64(s.counter)/float64(t.decaySamples)
		return 1 - frac*(1-t.sustainLevel)
	case envSustain:
		return t.sustainLevel
	case envRelease:
		if t.releaseSamples == 0 {
			return 0
		}
		frac := float64(s.counter) / float64(t.releaseSamples)
		return s.releaseLin * frac
	default:
		return 0
	}
}

func (s *envelopeState) finished() bool { return s.stage == envFinished }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
