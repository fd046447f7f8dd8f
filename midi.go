// midi.go - MIDI command constants
//
// Grounded on spec.md §6's recognized command set.

package sfsynth

const (
	midiNoteOff         byte = 0x80
	midiNoteOn          byte = 0x90
	midiPolyAftertouch  byte = 0xA0
	midiControlChange   byte = 0xB0
	midiProgramChange   byte = 0xC0
	midiChannelPressure byte = 0xD0
	midiPitchBend       byte = 0xE0
)

const (
	ccModulationWheel   byte = 1
	ccVolume            byte = 7
	ccPan               byte = 10
	ccExpression        byte = 11
	ccSustainPedal      byte = 64
	ccAllSoundOff       byte = 120
	ccResetAllControl   byte = 121
	ccAllNotesOff       byte = 123
)

const percussionChannel = 9
const percussionBank = 128
