// synth.go - Top-level Synthesizer: block rendering, event dispatch, mixdown
//
// Grounded on spec.md §4.8 and §6 (external interfaces). Render is the
// zero-allocation audio-path entry point; all other state here is set up
// once at construction.

package sfsynth

import (
	"github.com/opensfsynth/sfsynth/fx"
	"github.com/opensfsynth/sfsynth/soundfont"
)

// Synthesizer renders real-time polyphonic audio from a SoundFont and a
// stream of MIDI-style performance events. Not safe for concurrent use;
// events must be submitted from the same thread that calls Render, per
// spec.md §5.
type Synthesizer struct {
	sf       *soundfont.SoundFont
	settings Settings

	channels [16]channelState
	pool     voicePool

	reverb fx.Processor
	chorus fx.Processor

	masterVolume float32

	// scratch buses, sized to BlockSize, allocated once at construction.
	dryL, dryR         []float32
	reverbSend         []float32
	chorusSend         []float32
	reverbWetL, reverbWetR []float32
	chorusWetL, chorusWetR []float32
}

// New constructs a Synthesizer bound to sf with the given settings. sf is
// shared by reference and must not be mutated afterward; see spec.md §5.
func New(sf *soundfont.SoundFont, settings Settings) (*Synthesizer, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}
	if sf == nil || len(sf.Presets) == 0 || len(sf.Samples) == 0 {
		return nil, errSoundFont("soundfont has no presets or no samples")
	}
	s := &Synthesizer{
		sf:           sf,
		settings:     settings,
		pool:         newVoicePool(settings.MaximumPolyphony),
		masterVolume: 1,

		dryL:       make([]float32, settings.BlockSize),
		dryR:       make([]float32, settings.BlockSize),
		reverbSend: make([]float32, settings.BlockSize),
		chorusSend: make([]float32, settings.BlockSize),
		reverbWetL: make([]float32, settings.BlockSize),
		reverbWetR: make([]float32, settings.BlockSize),
		chorusWetL: make([]float32, settings.BlockSize),
		chorusWetR: make([]float32, settings.BlockSize),
	}
	for i := range s.channels {
		s.channels[i] = defaultChannelState()
	}
	if settings.EnableReverbAndChorus {
		s.reverb = fx.NewReverb(settings.SampleRate)
		s.chorus = fx.NewChorus(settings.SampleRate)
	}
	return s, nil
}

// NewFromSF2 loads an SF2 file from memory and constructs a Synthesizer
// from it in one step, wrapping loader errors per spec.md §7.
func NewFromSF2(data []byte, settings Settings) (*Synthesizer, error) {
	sf, err := soundfont.Load(data)
	if err != nil {
		return nil, errSoundFont(err.Error())
	}
	return New(sf, settings)
}

// ProcessMIDIMessage submits one performance event, per spec.md §6. Events
// take effect immediately but are only realized into DSP parameters at the
// next block boundary inside Render.
func (s *Synthesizer) ProcessMIDIMessage(channel, command, data1, data2 byte) {
	if int(channel) >= len(s.channels) {
		return
	}
	ch := &s.channels[channel]
	switch command & 0xF0 {
	case midiNoteOn:
		if data2 == 0 {
			s.noteOff(int(channel), int(data1))
		} else {
			s.noteOn(int(channel), int(data1), int(data2))
		}
	case midiNoteOff:
		s.noteOff(int(channel), int(data1))
	case midiControlChange:
		allSoundOff, allNotesOff, sustainReleased := ch.controlChange(data1, data2)
		if allSoundOff {
			s.pool.finishChannel(int(channel))
		}
		if allNotesOff {
			s.pool.releaseChannel(int(channel), s.settings.SampleRate)
		}
		if sustainReleased {
			s.pool.releaseSustained(int(channel), s.settings.SampleRate)
		}
	case midiProgramChange:
		ch.program = uint16(data1)
	case midiPitchBend:
		ch.pitchBend = int(data1) | int(data2)<<7
	case midiPolyAftertouch, midiChannelPressure:
		// spec.md §6/§9: no-op, preserved deliberately.
	}
}

func (s *Synthesizer) noteOn(channel, note, vel int) {
	ch := &s.channels[channel]
	preset := selectPreset(s.sf, ch.bank, ch.program, ch.isPercussion(channel))
	if preset == nil {
		return
	}
	r, _, ok := resolveNote(s.sf, preset, note, vel)
	if !ok {
		return
	}
	// spec.md §4.5: a note-on for a note already sounding on this channel
	// releases the older voice unconditionally, before allocation — not
	// only when the pool is full.
	s.pool.releaseChannelNote(channel, note, s.settings.SampleRate)
	v := s.pool.allocate(channel, note, s.settings.SampleRate)
	v.noteOn(channel, note, vel, s.sf, r, s.settings.SampleRate, s.pool.counter)
}

func (s *Synthesizer) noteOff(channel, note int) {
	ch := &s.channels[channel]
	if ch.sustain {
		for i := range s.pool.voices {
			v := &s.pool.voices[i]
			if v.status == voicePlaying && v.channel == channel && v.note == note {
				v.deferredRelease = true
			}
		}
		return
	}
	s.pool.releaseChannelNote(channel, note, s.settings.SampleRate)
}

// Render writes exactly len(left) samples to left and right, replacing
// their contents, per spec.md §6. Zero allocation on this path.
func (s *Synthesizer) Render(left, right []float32) error {
	if len(left) != len(right) {
		return errRenderMismatch()
	}
	n := len(left)
	bs := s.settings.BlockSize
	offset := 0
	for offset < n {
		count := bs
		if n-offset < count {
			count = n - offset
		}
		s.renderBlock(left[offset:offset+count], right[offset:offset+count])
		offset += count
	}
	return nil
}

func (s *Synthesizer) renderBlock(left, right []float32) {
	n := len(left)
	dryL := s.dryL[:n]
	dryR := s.dryR[:n]
	reverbSend := s.reverbSend[:n]
	chorusSend := s.chorusSend[:n]
	for i := 0; i < n; i++ {
		dryL[i], dryR[i] = 0, 0
		reverbSend[i], chorusSend[i] = 0, 0
	}

	for i := range s.pool.voices {
		v := &s.pool.voices[i]
		if !v.isActive() {
			continue
		}
		v.renderBlock(&s.channels[v.channel], n, s.settings.SampleRate, dryL, dryR, reverbSend, chorusSend)
	}

	if s.settings.EnableReverbAndChorus {
		wetL, wetR := s.reverbWetL[:n], s.reverbWetR[:n]
		copy(wetL, reverbSend)
		copy(wetR, reverbSend)
		s.reverb.Process(wetL, wetR)
		for i := 0; i < n; i++ {
			dryL[i] += wetL[i]
			dryR[i] += wetR[i]
		}

		cWetL, cWetR := s.chorusWetL[:n], s.chorusWetR[:n]
		copy(cWetL, chorusSend)
		copy(cWetR, chorusSend)
		s.chorus.Process(cWetL, cWetR)
		for i := 0; i < n; i++ {
			dryL[i] += cWetL[i]
			dryR[i] += cWetR[i]
		}
	}

	for i := 0; i < n; i++ {
		left[i] = dryL[i] * s.masterVolume
		right[i] = dryR[i] * s.masterVolume
	}
}

// Reset finishes all voices immediately and returns all channel state to
// defaults, per spec.md §6.
func (s *Synthesizer) Reset() {
	s.pool.finishAll()
	for i := range s.channels {
		s.channels[i] = defaultChannelState()
	}
}

// ActiveVoiceCount reports the number of voices currently Playing or
// Released (EXPANSION, SPEC_FULL.md §6).
func (s *Synthesizer) ActiveVoiceCount() int { return s.pool.activeCount() }

// MasterVolume returns the current master output gain (EXPANSION).
func (s *Synthesizer) MasterVolume() float32 { return s.masterVolume }

// SetMasterVolume sets the master output gain applied after mixdown
// (EXPANSION).
func (s *Synthesizer) SetMasterVolume(v float32) { s.masterVolume = v }
