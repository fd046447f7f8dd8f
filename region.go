// region.go - SoundFont 2.04 preset+instrument generator combination
//
// Grounded on spec.md §3/§4 and SF2.04 §9.4: instrument-zone generators are
// layered over preset-zone generators. Additive generators sum; the small
// set of absolute (categorical) generators take the instrument value
// outright; key/velocity ranges intersect. Global zones (a zone with no
// structural reference, always zone 0 if present) supply defaults that
// apply to every other zone in that preset/instrument.

package sfsynth

import "github.com/opensfsynth/sfsynth/soundfont"

// region is the resolved parameter bundle for one triggered note: spec.md
// §3's "Region parameters". All fields carry their native SoundFont units
// (timecents, absolute cents, centibels, 0.1% units) — conversion to DSP
// units happens where each parameter is consumed (envelope.go, lfo.go,
// filter.go, oscillator.go).
type region struct {
	sampleIndex int

	rootKey         int
	coarseTune      int
	fineTune        int
	scaleTuning     int
	pitchCorrection int

	startOffset      int
	endOffset        int
	loopStartOffset  int
	loopEndOffset    int
	sampleMode       soundfont.SampleMode
	exclusiveClass   int

	initialAttenuation int // centibels
	pan                int // -500..500, 0.1% units

	initialFilterFc int // absolute cents
	initialFilterQ  int // centibels

	delayVolEnv, attackVolEnv, holdVolEnv, decayVolEnv, releaseVolEnv int // timecents
	sustainVolEnv                                                     int // centibels
	keyToVolEnvHold, keyToVolEnvDecay                                 int

	delayModEnv, attackModEnv, holdModEnv, decayModEnv, releaseModEnv int
	sustainModEnv                                                     int
	keyToModEnvHold, keyToModEnvDecay                                 int
	modEnvToPitch, modEnvToFilterFc                                   int

	delayModLFO, freqModLFO   int
	modLfoToPitch             int
	modLfoToFilterFc          int
	modLfoToVolume            int
	delayVibLFO, freqVibLFO   int
	vibLfoToPitch             int

	chorusSend, reverbSend int // 0.1% units
}

// defaultRegion carries SF2.04's documented generator defaults (§8.1.3):
// everything not explicitly set by a zone keeps these values.
func defaultRegion() region {
	return region{
		sampleIndex:     -1,
		rootKey:         -1, // -1 means "use the sample's own OriginalKey"
		scaleTuning:     100,
		sustainVolEnv:   0,
		sustainModEnv:   0,
		initialFilterFc: 13500,
		// SF2.04 §8.1.3: every envelope timing generator (delay, attack,
		// hold, decay, release) defaults to -12000 timecents (~1ms,
		// effectively instantaneous) unless a zone overrides it.
		delayVolEnv: -12000, attackVolEnv: -12000, holdVolEnv: -12000,
		decayVolEnv: -12000, releaseVolEnv: -12000,
		delayModEnv: -12000, attackModEnv: -12000, holdModEnv: -12000,
		decayModEnv: -12000, releaseModEnv: -12000,
		delayModLFO: -12000, delayVibLFO: -12000,
		pan: 0,
	}
}

// resolveRegion layers an instrument zone's generators (and that
// instrument's global zone, if any) over a preset zone's generators (and
// that preset's global zone, if any) into one region, per SF2.04 §9.4.
func resolveRegion(sf *soundfont.SoundFont, presetGlobal, presetZone, instGlobal, instZone *soundfont.Zone) region {
	r := defaultRegion()
	// Additive generators apply in increasing order of specificity so a
	// more specific zone's contribution is summed in last; absolute
	// generators are simply overwritten by whichever zone sets them last.
	for _, z := range []*soundfont.Zone{presetGlobal, presetZone, instGlobal, instZone} {
		if z == nil {
			continue
		}
		applyZone(&r, z)
	}
	return r
}

func applyZone(r *region, z *soundfont.Zone) {
	for _, g := range z.Generators {
		amt := int(g.Amount.Amount)
		switch g.Oper {
		case soundfont.GenSampleID:
			r.sampleIndex = amt
		case soundfont.GenOverridingRootKey:
			r.rootKey = amt
		case soundfont.GenCoarseTune:
			addOrSet(&r.coarseTune, amt, g.Oper)
		case soundfont.GenFineTune:
			addOrSet(&r.fineTune, amt, g.Oper)
		case soundfont.GenScaleTuning:
			addOrSet(&r.scaleTuning, amt, g.Oper)
		case soundfont.GenStartAddrsOffset:
			r.startOffset += amt
		case soundfont.GenStartAddrsCoarseOffset:
			r.startOffset += amt * 32768
		case soundfont.GenEndAddrsOffset:
			r.endOffset += amt
		case soundfont.GenEndAddrsCoarseOffset:
			r.endOffset += amt * 32768
		case soundfont.GenStartloopAddrsOffset:
			r.loopStartOffset += amt
		case soundfont.GenStartloopAddrsCoarseOff:
			r.loopStartOffset += amt * 32768
		case soundfont.GenEndloopAddrsOffset:
			r.loopEndOffset += amt
		case soundfont.GenEndloopAddrsCoarseOff:
			r.loopEndOffset += amt * 32768
		case soundfont.GenSampleModes:
			r.sampleMode = soundfont.SampleMode(amt)
		case soundfont.GenExclusiveClass:
			r.exclusiveClass = amt
		case soundfont.GenInitialAttenuation:
			r.initialAttenuation += amt
		case soundfont.GenPan:
			r.pan += amt
		case soundfont.GenInitialFilterFc:
			r.initialFilterFc += amt
		case soundfont.GenInitialFilterQ:
			r.initialFilterQ += amt
		case soundfont.GenDelayVolEnv:
			r.delayVolEnv += amt
		case soundfont.GenAttackVolEnv:
			r.attackVolEnv += amt
		case soundfont.GenHoldVolEnv:
			r.holdVolEnv += amt
		case soundfont.GenDecayVolEnv:
			r.decayVolEnv += amt
		case soundfont.GenSustainVolEnv:
			r.sustainVolEnv += amt
		case soundfont.GenReleaseVolEnv:
			r.releaseVolEnv += amt
		case soundfont.GenKeynumToVolEnvHold:
			r.keyToVolEnvHold += amt
		case soundfont.GenKeynumToVolEnvDecay:
			r.keyToVolEnvDecay += amt
		case soundfont.GenDelayModEnv:
			r.delayModEnv += amt
		case soundfont.GenAttackModEnv:
			r.attackModEnv += amt
		case soundfont.GenHoldModEnv:
			r.holdModEnv += amt
		case soundfont.GenDecayModEnv:
			r.decayModEnv += amt
		case soundfont.GenSustainModEnv:
			r.sustainModEnv += amt
		case soundfont.GenReleaseModEnv:
			r.releaseModEnv += amt
		case soundfont.GenKeynumToModEnvHold:
			r.keyToModEnvHold += amt
		case soundfont.GenKeynumToModEnvDecay:
			r.keyToModEnvDecay += amt
		case soundfont.GenModEnvToPitch:
			r.modEnvToPitch += amt
		case soundfont.GenModEnvToFilterFc:
			r.modEnvToFilterFc += amt
		case soundfont.GenDelayModLFO:
			r.delayModLFO += amt
		case soundfont.GenFreqModLFO:
			r.freqModLFO += amt
		case soundfont.GenModLfoToPitch:
			r.modLfoToPitch += amt
		case soundfont.GenModLfoToFilterFc:
			r.modLfoToFilterFc += amt
		case soundfont.GenModLfoToVolume:
			r.modLfoToVolume += amt
		case soundfont.GenDelayVibLFO:
			r.delayVibLFO += amt
		case soundfont.GenFreqVibLFO:
			r.freqVibLFO += amt
		case soundfont.GenVibLfoToPitch:
			r.vibLfoToPitch += amt
		case soundfont.GenChorusEffectsSend:
			r.chorusSend += amt
		case soundfont.GenReverbEffectsSend:
			r.reverbSend += amt
		}
	}
}

// addOrSet exists for the handful of generators whose "additive" status is
// nominal (coarse/fine tune, scale tuning) — SF2.04 §9.4 does sum these,
// but a zone that sets them is rare enough the distinction is academic.
// Kept as a named seam rather than inlined += for readability at call sites.
func addOrSet(dst *int, amt int, _ soundfont.Generator) {
	*dst += amt
}

// rootKeyOrDefault resolves the effective root key: an explicit
// OverridingRootKey generator, else the sample's own recorded pitch.
func (r *region) rootKeyOrDefault(sampleOriginalKey uint8) int {
	if r.rootKey >= 0 {
		return r.rootKey
	}
	return int(sampleOriginalKey)
}

// keyVelInRange reports whether (key, vel) falls inside a zone's
// GenKeyRange/GenVelRange, treating an absent range generator as
// unrestricted (SF2.04 default: 0..127).
func keyVelInRange(z *soundfont.Zone, key, vel int) bool {
	if amt, ok := z.Gen(soundfont.GenKeyRange); ok && amt.IsRange {
		if key < int(amt.RangeLo) || key > int(amt.RangeHi) {
			return false
		}
	}
	if amt, ok := z.Gen(soundfont.GenVelRange); ok && amt.IsRange {
		if vel < int(amt.RangeLo) || vel > int(amt.RangeHi) {
			return false
		}
	}
	return true
}

// findInstrumentZone picks the first non-global instrument zone whose
// key/velocity range contains (key, vel), along with the instrument's
// global zone if one is present (always zone 0, identified by SampleOf==-1).
func findInstrumentZone(inst *soundfont.Instrument, key, vel int) (global, matched *soundfont.Zone) {
	for i := range inst.Zones {
		z := &inst.Zones[i]
		if inst.SampleOf[i] < 0 {
			global = z
			continue
		}
		if keyVelInRange(z, key, vel) {
			return global, z
		}
	}
	return global, nil
}

// findPresetZone picks the index of the first non-global preset zone whose
// key/velocity range contains (key, vel), along with the preset's global
// zone if present. Returns matchedIdx -1 if no zone matches.
func findPresetZone(preset *soundfont.Preset, key, vel int) (global *soundfont.Zone, matchedIdx int) {
	matchedIdx = -1
	for i := range preset.Zones {
		z := &preset.Zones[i]
		if preset.InstrumentOf[i] < 0 {
			global = z
			continue
		}
		if matchedIdx < 0 && keyVelInRange(z, key, vel) {
			matchedIdx = i
		}
	}
	return global, matchedIdx
}

// resolveNote finds the instrument zone a (preset, key, vel) triggers and
// returns its fully combined region, or ok=false if the preset has no zone
// covering this key/velocity.
func resolveNote(sf *soundfont.SoundFont, preset *soundfont.Preset, key, vel int) (region, *soundfont.Instrument, bool) {
	presetGlobal, presetIdx := findPresetZone(preset, key, vel)
	if presetIdx < 0 {
		return region{}, nil, false
	}
	presetZone := &preset.Zones[presetIdx]
	instIdx := preset.InstrumentOf[presetIdx]
	if instIdx < 0 || instIdx >= len(sf.Instruments) {
		return region{}, nil, false
	}
	inst := &sf.Instruments[instIdx]
	instGlobal, instZone := findInstrumentZone(inst, key, vel)
	if instZone == nil {
		return region{}, nil, false
	}
	r := resolveRegion(sf, presetGlobal, presetZone, instGlobal, instZone)
	if r.sampleIndex < 0 || r.sampleIndex >= len(sf.Samples) {
		return region{}, nil, false
	}
	return r, inst, true
}
