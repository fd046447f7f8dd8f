// synthetic.go - In-memory SoundFont construction for tests
//
// SPEC_FULL.md §8 (EXPANSION): voice/envelope/filter/oscillator tests don't
// depend on a real .sf2 file on disk. NewSynthetic builds the tables the
// loader would have produced, directly.

package soundfont

import "math"

// SyntheticOptions customizes NewSynthetic's single instrument/preset.
type SyntheticOptions struct {
	Bank, Program     uint16
	RootKey           uint8
	SampleRate        uint32
	LoopLengthSamples int
	// Generators overrides/adds generator amounts on the instrument zone,
	// e.g. {GenSustainVolEnv: 100} for a -10dB sustain.
	Generators map[Generator]int16
}

// NewSynthetic builds a minimal one-sample, one-instrument, one-preset
// SoundFont: a single band-limited sawtooth cycle, looped across its
// entire extent, at opts.RootKey (default 60). Good enough to drive the
// full voice lifecycle without shipping a binary fixture.
func NewSynthetic(opts SyntheticOptions) *SoundFont {
	if opts.RootKey == 0 {
		opts.RootKey = 60
	}
	if opts.SampleRate == 0 {
		opts.SampleRate = 44100
	}
	if opts.LoopLengthSamples == 0 {
		opts.LoopLengthSamples = 256
	}

	pcm := make([]int16, opts.LoopLengthSamples+4) // +4 guard samples for interpolation
	for i := 0; i < opts.LoopLengthSamples; i++ {
		phase := float64(i) / float64(opts.LoopLengthSamples)
		// Band-limited-ish sawtooth via a handful of harmonics; exact
		// spectral purity doesn't matter, determinism does.
		v := 0.0
		for h := 1; h <= 8; h++ {
			v += math.Sin(2*math.Pi*float64(h)*phase) / float64(h)
		}
		v *= 2.0 / math.Pi
		pcm[i] = int16(clampF(v, -1, 1) * 32000)
	}
	for i := 0; i < 4; i++ {
		pcm[opts.LoopLengthSamples+i] = pcm[i]
	}

	sh := SampleHeader{
		Name:        "synthetic-saw",
		Start:       0,
		End:         uint32(opts.LoopLengthSamples),
		LoopStart:   0,
		LoopEnd:     uint32(opts.LoopLengthSamples),
		SampleRate:  opts.SampleRate,
		OriginalKey: opts.RootKey,
	}

	gens := []GeneratorRecord{
		{Oper: GenSampleModes, Amount: GeneratorAmount{Amount: int16(SampleModeLoop)}},
		{Oper: GenSampleID, Amount: GeneratorAmount{Amount: 0}},
	}
	for g, v := range opts.Generators {
		gens = append(gens, GeneratorRecord{Oper: g, Amount: GeneratorAmount{Amount: v}})
	}

	inst := Instrument{
		Name:     "synthetic-instrument",
		Zones:    []Zone{{Generators: gens}},
		SampleOf: []int{0},
	}

	preset := Preset{
		Name:    "synthetic-preset",
		Program: opts.Program,
		Bank:    opts.Bank,
		Zones: []Zone{{Generators: []GeneratorRecord{
			{Oper: GenInstrument, Amount: GeneratorAmount{Amount: 0}},
		}}},
		InstrumentOf: []int{0},
	}

	return &SoundFont{
		Name:        "synthetic",
		Presets:     []Preset{preset},
		Instruments: []Instrument{inst},
		Samples:     []SampleHeader{sh},
		PCM16:       pcm,
	}
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
