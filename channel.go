// channel.go - Per-channel MIDI controller state
//
// Grounded on spec.md §3/§4.7: 16 channels, channel index 9 is percussion.
// Controllers take effect immediately; the next block picks up new values.

package sfsynth

import (
	"math"

	"github.com/opensfsynth/sfsynth/soundfont"
)

type channelState struct {
	bank    uint16
	program uint16

	volume     float64 // CC7, 0..1
	expression float64 // CC11, 0..1
	pan        float64 // -1..1, CC10
	modWheel   float64 // CC1, 0..1

	pitchBend      int // 14-bit, centered at 8192
	pitchBendRange int // semitones, default 2

	sustain bool

	// reverbSend/chorusSend are channel-wide send multipliers (1 = no
	// attenuation) that combine with each voice's own region-level send
	// (spec.md §3). No standard CC is named for these in spec.md §4.7, so
	// nothing currently writes them beyond their default; they exist so a
	// future CC91/CC93 mapping has a field to land in.
	reverbSend float64
	chorusSend float64

	coarseTune int // cents
	fineTune   int // cents
}

func defaultChannelState() channelState {
	return channelState{
		volume: 1, expression: 1, pan: 0, modWheel: 0,
		pitchBend: 8192, pitchBendRange: 2,
		reverbSend: 1, chorusSend: 1,
	}
}

func (c *channelState) isPercussion(index int) bool { return index == percussionChannel }

// pitchBendCents converts the 14-bit pitch bend value to cents, scaled by
// pitchBendRange (semitones).
func (c *channelState) pitchBendCents() float64 {
	norm := float64(c.pitchBend-8192) / 8192.0
	return norm * float64(c.pitchBendRange) * 100.0
}

// gainDB folds channel volume and expression into a dB offset.
func (c *channelState) gainDB() float64 {
	v := c.volume * c.expression
	if v <= 0 {
		return -100
	}
	return 20 * math.Log10(v)
}

// controlChange applies CC7/10/11/64/120/121/123/1, per spec.md §4.7.
// allNotesOff/allSoundOff are reported back to the caller (the
// synthesizer) since they act on voices, not channel state.
func (c *channelState) controlChange(cc, value byte) (allSoundOff, allNotesOff, sustainReleased bool) {
	v7 := float64(value) / 127.0
	switch cc {
	case ccModulationWheel:
		c.modWheel = v7
	case ccVolume:
		c.volume = v7
	case ccExpression:
		c.expression = v7
	case ccPan:
		c.pan = float64(value)/63.5 - 1
	case ccSustainPedal:
		wasOn := c.sustain
		c.sustain = value >= 64
		if wasOn && !c.sustain {
			sustainReleased = true
		}
	case ccAllSoundOff:
		allSoundOff = true
	case ccAllNotesOff:
		allNotesOff = true
	case ccResetAllControl:
		c.resetControllers()
	}
	return
}

// resetControllers implements spec.md §4.7's reset-all-controllers:
// returns controller-derived values to GM defaults but preserves program,
// bank, and volume.
func (c *channelState) resetControllers() {
	preservedVolume := c.volume
	preservedBank := c.bank
	preservedProgram := c.program
	*c = defaultChannelState()
	c.volume = preservedVolume
	c.bank = preservedBank
	c.program = preservedProgram
}

// selectPreset implements spec.md §4.7's program-change fallback chain:
// exact (bank,program) match, else (0,program), else (0,0). Percussion
// channels always look in the percussion bank.
func selectPreset(sf *soundfont.SoundFont, bank, program uint16, percussion bool) *soundfont.Preset {
	if percussion {
		bank = percussionBank
	}
	if p := sf.FindPreset(bank, program); p != nil {
		return p
	}
	if !percussion {
		if p := sf.FindPreset(0, program); p != nil {
			return p
		}
		if p := sf.FindPreset(0, 0); p != nil {
			return p
		}
	}
	return nil
}
