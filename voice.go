// voice.go - Per-note DSP chain and state machine
//
// Grounded on spec.md §3 (Voice fields) and §4.5 (per-block processing).
// Composed from the oscillator, envelope, LFO and filter building blocks;
// owns no heap allocation beyond construction.

package sfsynth

import (
	"math"

	"github.com/opensfsynth/sfsynth/soundfont"
)

type voiceStatus uint8

const (
	voiceIdle voiceStatus = iota
	voicePlaying
	voiceReleased // envelope in Release stage but still sounding
)

type voice struct {
	status voiceStatus

	channel  int
	note     int
	velocity int

	sample sampleSource
	osc    oscillator
	region region

	volEnvTimes envelopeTimes
	modEnvTimes envelopeTimes
	volEnv      envelopeState
	modEnv      envelopeState

	modLFO lfoState
	vibLFO lfoState

	filter biquadFilter

	startCounter uint64

	// deferredRelease marks a voice whose note-off arrived while the
	// channel's sustain pedal was held; released on pedal-up.
	deferredRelease bool

	// blockStartDB/blockEndDB/pitchRatio cache block-start parameters so
	// the per-sample inner loop can interpolate smoothly across the block
	// (spec.md §4.5).
	blockStartDB   float64
	blockEndDB     float64
	pitchRatio     float64
	panL, panR     float32
	reverbSendGain float32
	chorusSendGain float32
}

func (v *voice) isActive() bool { return v.status != voiceIdle }

// noteOn initializes the voice from a resolved region, per spec.md §4.5:
// oscillator phase at sample_start+startOffset, envelopes at Delay (or
// Attack if Delay=0), LFO phases at 0, filter state zeroed.
func (v *voice) noteOn(channel, note, vel int, sf *soundfont.SoundFont, r region, sampleRate int, startCounter uint64) {
	v.status = voicePlaying
	v.channel = channel
	v.note = note
	v.velocity = vel
	v.region = r
	v.startCounter = startCounter
	v.deferredRelease = false

	v.sample = newSampleSource(sf, r.sampleIndex)
	v.osc = newOscillator(&v.sample, &r)

	v.volEnvTimes = newVolEnvelopeTimes(&r, note, sampleRate)
	v.modEnvTimes = newModEnvelopeTimes(&r, note, sampleRate)
	v.volEnv = newEnvelopeState(&v.volEnvTimes)
	v.modEnv = newEnvelopeState(&v.modEnvTimes)

	v.modLFO = newLFOState(r.delayModLFO, r.freqModLFO, sampleRate)
	v.vibLFO = newLFOState(r.delayVibLFO, r.freqVibLFO, sampleRate)

	v.filter.reset()
}

// release transitions the voice's envelopes into Release. hard forces the
// short fixed release used by voice stealing (spec.md §4.6).
func (v *voice) release(hard bool, sampleRate int) {
	if v.status != voicePlaying && !(v.status == voiceReleased && hard) {
		return
	}
	v.volEnv.enterRelease(&v.volEnvTimes, true, hard, sampleRate)
	v.modEnv.enterRelease(&v.modEnvTimes, false, hard, sampleRate)
	v.status = voiceReleased
}

func (v *voice) finish() {
	v.status = voiceIdle
}

// currentVolAmplitude returns the volume envelope's linear amplitude
// (converted from its dB domain), used by the allocator's stealing
// priority (spec.md §4.6: "lower current volume-envelope amplitude").
func (v *voice) currentVolAmplitude() float64 {
	db := v.volEnv.currentVolDB(&v.volEnvTimes)
	return math.Pow(10, db/20)
}

// renderBlock realizes block-start parameters (pitch ratio, volume in dB,
// filter cutoff) from the envelopes and channel state, then adds n samples
// of this voice's output into left/right and the reverb/chorus send
// buses, per spec.md §4.5.
func (v *voice) renderBlock(ch *channelState, n int, sampleRate int, left, right, reverbSend, chorusSend []float32) {
	released := v.status == voiceReleased

	modLFOVal := v.modLFO.advance(n, sampleRate)
	vibLFOVal := v.vibLFO.advance(n, sampleRate)

	startDB := v.volEnv.currentVolDB(&v.volEnvTimes)
	startModLevel := v.modEnv.currentLevel(&v.modEnvTimes)

	v.volEnv.advance(&v.volEnvTimes, n)
	v.modEnv.advance(&v.modEnvTimes, n)

	endDB := v.volEnv.currentVolDB(&v.volEnvTimes)
	endModLevel := v.modEnv.currentLevel(&v.modEnvTimes)
	avgModLevel := (startModLevel + endModLevel) / 2

	// Pitch: root key + coarse/fine tune + pitch correction + channel
	// pitch bend + LFO/env pitch modulation (cents), per spec.md §4.1/§4.3.
	// CC1 (modulation wheel) sets the mod-LFO-to-pitch depth to 0..50 cents
	// scaled by 0..127 (spec.md §4.7); a region's own modLfoToPitch
	// generator sets a higher depth floor when present, per the SF2.04
	// default-modulator convention of taking the larger of the two.
	rootKey := v.region.rootKeyOrDefault(v.sample.originalKey)
	semis := float64(v.note-rootKey) * float64(v.region.scaleTuning) / 100.0
	modLfoToPitchDepth := math.Max(float64(v.region.modLfoToPitch), ch.modWheel*50)
	cents := semis*100 +
		float64(v.region.coarseTune)*100 +
		float64(v.region.fineTune) +
		float64(v.sample.pitchCorrection) +
		float64(ch.coarseTune) + float64(ch.fineTune) +
		ch.pitchBendCents() +
		modLFOVal*modLfoToPitchDepth +
		vibLFOVal*float64(v.region.vibLfoToPitch) +
		avgModLevel*float64(v.region.modEnvToPitch)
	v.pitchRatio = math.Exp2(cents/1200.0) * float64(v.sample.sampleRate) / float64(sampleRate)

	// Filter: cutoff + LFO/env modulation, recomputed once per block.
	cutoff := v.region.initialFilterFc +
		int(modLFOVal*float64(v.region.modLfoToFilterFc)) +
		int(avgModLevel*float64(v.region.modEnvToFilterFc))
	v.filter.setCoefficients(cutoff, v.region.initialFilterQ, sampleRate)

	// Gain: attenuation + channel volume/expression + velocity + mod-LFO
	// volume modulation (centibels -> dB), in dB, per spec.md §4.3.
	velAttenDB := 20 * math.Log10(math.Max(float64(v.velocity), 1)/127.0)
	channelDB := ch.gainDB()
	modLFOVolDB := modLFOVal * float64(v.region.modLfoToVolume) / 10.0
	v.blockStartDB = startDB - float64(v.region.initialAttenuation)/10.0 + velAttenDB + channelDB + modLFOVolDB
	v.blockEndDB = endDB - float64(v.region.initialAttenuation)/10.0 + velAttenDB + channelDB + modLFOVolDB

	// Pan: region pan (0.1% units, -500..500) plus channel pan, plus
	// stereo-sample hard panning (SPEC_FULL.md §9 decision 4).
	pan := clamp(float64(v.region.pan)/500.0+ch.pan, -1, 1)
	v.panL = float32(math.Sqrt((1 - pan) / 2)) * v.sample.panLeft()
	v.panR = float32(math.Sqrt((1 + pan) / 2)) * v.sample.panRight()

	v.reverbSendGain = float32(v.region.reverbSend) / 1000.0 * float32(ch.reverbSend)
	v.chorusSendGain = float32(v.region.chorusSend) / 1000.0 * float32(ch.chorusSend)

	for i := 0; i < n; i++ {
		frac := float64(i) / float64(n)
		db := v.blockStartDB + (v.blockEndDB-v.blockStartDB)*frac
		amp := float32(math.Pow(10, db/20))

		s := v.osc.next(v.pitchRatio, released)
		s = v.filter.process(s)
		s *= amp

		left[i] += s * v.panL
		right[i] += s * v.panR
		if reverbSend != nil {
			reverbSend[i] += s * v.reverbSendGain
		}
		if chorusSend != nil {
			chorusSend[i] += s * v.chorusSendGain
		}
	}

	if v.osc.isFinished() || v.volEnv.finished() {
		v.finish()
	}
}
