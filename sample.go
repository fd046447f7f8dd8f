// sample.go - Immutable sample source handle

package sfsynth

import "github.com/opensfsynth/sfsynth/soundfont"

// sampleSource is an immutable handle to one decoded PCM region shared by
// reference across every voice that plays it. It never mutates after
// construction; the backing PCM16 slice belongs to the *soundfont.SoundFont
// the engine was built from and outlives every voice.
type sampleSource struct {
	pcm             []int16
	start           uint32
	end             uint32
	loopStart       uint32
	loopEnd         uint32
	sampleRate      uint32
	originalKey     uint8
	pitchCorrection int8
	sampleType      soundfont.SampleType
}

func newSampleSource(sf *soundfont.SoundFont, sampleIndex int) sampleSource {
	sh := sf.Samples[sampleIndex]
	return sampleSource{
		pcm:             sf.PCM16,
		start:           sh.Start,
		end:             sh.End,
		loopStart:       sh.LoopStart,
		loopEnd:         sh.LoopEnd,
		sampleRate:      sh.SampleRate,
		originalKey:     sh.OriginalKey,
		pitchCorrection: sh.PitchCorrection,
		sampleType:      sh.SampleType,
	}
}

// at returns the PCM sample at absolute index i, or 0 beyond the end of the
// shared PCM pool (the oscillator's interpolation window reads past end;
// this keeps that read in-bounds without a branch at the call site). Inside
// the pool, an index past the sample's own end reads the neighbouring data.
func (s *sampleSource) at(i uint32) float32 {
	if i >= uint32(len(s.pcm)) {
		return 0
	}
	return float32(s.pcm[i]) / 32768.0
}

// panLeft/panRight report the hard-panned gain this sample contributes when
// it's one half of a stereo-linked pair (SPEC_FULL.md §9 decision 4): a voice
// playing a left or right sample is silent on the opposite side. A pair is
// never interleaved into one stereo voice, and a note-on starts a voice only
// for the first matching zone's sample.
func (s *sampleSource) panLeft() float32 {
	if s.sampleType == soundfont.SampleTypeRight || s.sampleType == soundfont.SampleTypeRomRight {
		return 0
	}
	return 1
}

func (s *sampleSource) panRight() float32 {
	if s.sampleType == soundfont.SampleTypeLeft || s.sampleType == soundfont.SampleTypeRomLeft {
		return 0
	}
	return 1
}
