// types.go - Parsed SoundFont 2 data model
//
// This package is a loader, not a DSP engine: it turns a SoundFont 2 file
// into ready-to-use tables. Generator/modulator combination across preset
// and instrument zones, and everything downstream of that, lives in the
// sfsynth package.

package soundfont

// ModSource identifies a modulator's controlling source per SF2.04 §8.2.
type ModSource uint16

// ModTransform is the curve applied to a modulator source before scaling.
type ModTransform uint16

// Modulator is a raw pmod/imod record. The loader retains these for
// completeness; sfsynth evaluates only the handful of default/CC-driven
// modulators spec.md names explicitly.
type Modulator struct {
	SrcOper      ModSource
	DestOper     Generator
	Amount       int16
	AmtSrcOper   ModSource
	SrcTransform ModTransform
}

// GeneratorAmount is the union SF2 generators use: most are a signed
// amount, GenKeyRange/GenVelRange pack two bytes (low, high).
type GeneratorAmount struct {
	Amount   int16
	RangeLo  uint8
	RangeHi  uint8
	IsRange  bool
}

// GeneratorRecord is a raw pgen/igen record.
type GeneratorRecord struct {
	Oper   Generator
	Amount GeneratorAmount
}

// Zone is a preset or instrument zone: a generator/modulator list,
// optionally scoped to a key/velocity range by a GenKeyRange/GenVelRange
// generator. The first zone in a preset or instrument may be a "global"
// zone carrying defaults with no instrument/sample reference.
type Zone struct {
	Generators []GeneratorRecord
	Modulators []Modulator
}

// Gen returns the raw amount for oper and whether the zone sets it.
func (z *Zone) Gen(oper Generator) (GeneratorAmount, bool) {
	for _, g := range z.Generators {
		if g.Oper == oper {
			return g.Amount, true
		}
	}
	return GeneratorAmount{}, false
}

// Preset is a fully resolved preset (program): a list of zones, each
// referencing an instrument and optionally scoped by key/velocity range.
type Preset struct {
	Name    string
	Program uint16
	Bank    uint16
	Zones   []Zone
	// InstrumentOf maps zone index -> instrument index into SoundFont.Instruments,
	// or -1 for the global zone (if any, always zone 0).
	InstrumentOf []int
}

// Instrument is a list of zones, each referencing a sample and optionally
// scoped by key/velocity range.
type Instrument struct {
	Name  string
	Zones []Zone
	// SampleOf maps zone index -> sample index into SoundFont.Samples,
	// or -1 for the global zone.
	SampleOf []int
}

// SampleMode is the GenSampleModes value (low two bits significant).
type SampleMode uint8

const (
	SampleModeNoLoop           SampleMode = 0
	SampleModeLoop             SampleMode = 1
	SampleModeUnusedNoLoop     SampleMode = 2
	SampleModeLoopUntilRelease SampleMode = 3
)

// SampleType bits from shdr, used to detect stereo links (EXPANSION, §3).
type SampleType uint16

const (
	SampleTypeMono       SampleType = 1
	SampleTypeRight      SampleType = 2
	SampleTypeLeft       SampleType = 4
	SampleTypeLinked     SampleType = 8
	SampleTypeRomMono    SampleType = 0x8001
	SampleTypeRomRight   SampleType = 0x8002
	SampleTypeRomLeft    SampleType = 0x8004
	SampleTypeRomLinked  SampleType = 0x8008
)

// SampleHeader describes one sample's extent within the shared PCM pool
// and its native pitch. Immutable once loaded; shared by reference across
// every voice that plays it.
type SampleHeader struct {
	Name       string
	Start      uint32
	End        uint32
	LoopStart  uint32
	LoopEnd    uint32
	SampleRate uint32
	// OriginalKey is the MIDI key number the sample was recorded at.
	OriginalKey uint8
	// PitchCorrection is in cents, applied on top of OriginalKey.
	PitchCorrection int8
	SampleLink      uint16
	SampleType      SampleType
}

// SoundFont is the fully parsed, read-only result of loading an SF2 file.
// A *SoundFont is shared by reference across every Synthesizer built from
// it; nothing in sfsynth mutates it after construction.
type SoundFont struct {
	Name        string
	Presets     []Preset
	Instruments []Instrument
	Samples     []SampleHeader
	// PCM16 is the entire sdta/smpl sample pool, shared by reference.
	// SampleHeader.Start/End/LoopStart/LoopEnd index directly into it.
	PCM16 []int16
}

// FindPreset returns the preset matching (bank, program), or nil.
func (sf *SoundFont) FindPreset(bank, program uint16) *Preset {
	for i := range sf.Presets {
		if sf.Presets[i].Bank == bank && sf.Presets[i].Program == program {
			return &sf.Presets[i]
		}
	}
	return nil
}
