// generator.go - SoundFont 2.04 generator enumeration

package soundfont

// Generator identifies one of the SF2.04 generator slots. Values match
// the sfGenerator enumeration in the SoundFont 2.04 specification so raw
// pgen/igen records can be indexed directly.
type Generator uint16

const (
	GenStartAddrsOffset        Generator = 0
	GenEndAddrsOffset          Generator = 1
	GenStartloopAddrsOffset    Generator = 2
	GenEndloopAddrsOffset      Generator = 3
	GenStartAddrsCoarseOffset  Generator = 4
	GenModLfoToPitch           Generator = 5
	GenVibLfoToPitch           Generator = 6
	GenModEnvToPitch           Generator = 7
	GenInitialFilterFc         Generator = 8
	GenInitialFilterQ          Generator = 9
	GenModLfoToFilterFc        Generator = 10
	GenModEnvToFilterFc        Generator = 11
	GenEndAddrsCoarseOffset    Generator = 12
	GenModLfoToVolume          Generator = 13
	GenUnused1                 Generator = 14
	GenChorusEffectsSend       Generator = 15
	GenReverbEffectsSend       Generator = 16
	GenPan                     Generator = 17
	GenUnused2                 Generator = 18
	GenUnused3                 Generator = 19
	GenUnused4                 Generator = 20
	GenDelayModLFO             Generator = 21
	GenFreqModLFO              Generator = 22
	GenDelayVibLFO             Generator = 23
	GenFreqVibLFO              Generator = 24
	GenDelayModEnv             Generator = 25
	GenAttackModEnv            Generator = 26
	GenHoldModEnv              Generator = 27
	GenDecayModEnv             Generator = 28
	GenSustainModEnv           Generator = 29
	GenReleaseModEnv           Generator = 30
	GenKeynumToModEnvHold      Generator = 31
	GenKeynumToModEnvDecay     Generator = 32
	GenDelayVolEnv             Generator = 33
	GenAttackVolEnv            Generator = 34
	GenHoldVolEnv              Generator = 35
	GenDecayVolEnv             Generator = 36
	GenSustainVolEnv           Generator = 37
	GenReleaseVolEnv           Generator = 38
	GenKeynumToVolEnvHold      Generator = 39
	GenKeynumToVolEnvDecay     Generator = 40
	GenInstrument              Generator = 41
	GenReserved1               Generator = 42
	GenKeyRange                Generator = 43
	GenVelRange                Generator = 44
	GenStartloopAddrsCoarseOff Generator = 45
	GenKeynum                  Generator = 46
	GenVelocity                Generator = 47
	GenInitialAttenuation      Generator = 48
	GenReserved2               Generator = 49
	GenEndloopAddrsCoarseOff   Generator = 50
	GenCoarseTune              Generator = 51
	GenFineTune                Generator = 52
	GenSampleID                Generator = 53
	GenSampleModes             Generator = 54
	GenReserved3               Generator = 55
	GenScaleTuning             Generator = 56
	GenExclusiveClass          Generator = 57
	GenOverridingRootKey       Generator = 58
	GenUnused5                 Generator = 59
	GenEndOper                 Generator = 60
)

// additiveGenerators lists generators that combine by summing preset-zone
// and instrument-zone values, per SF2.04 §9.4. GenKeyRange, GenVelRange,
// GenInstrument and GenSampleID are structural (not summed; handled
// specially by the loader/resolver) and are not in this set.
var additiveGenerators = map[Generator]bool{
	GenModLfoToPitch: true, GenVibLfoToPitch: true, GenModEnvToPitch: true,
	GenInitialFilterFc: true, GenInitialFilterQ: true,
	GenModLfoToFilterFc: true, GenModEnvToFilterFc: true,
	GenModLfoToVolume: true, GenChorusEffectsSend: true, GenReverbEffectsSend: true,
	GenPan:            true,
	GenDelayModLFO:    true, GenFreqModLFO: true, GenDelayVibLFO: true, GenFreqVibLFO: true,
	GenDelayModEnv:    true, GenAttackModEnv: true, GenHoldModEnv: true, GenDecayModEnv: true,
	GenSustainModEnv:  true, GenReleaseModEnv: true,
	GenKeynumToModEnvHold: true, GenKeynumToModEnvDecay: true,
	GenDelayVolEnv:    true, GenAttackVolEnv: true, GenHoldVolEnv: true, GenDecayVolEnv: true,
	GenSustainVolEnv:  true, GenReleaseVolEnv: true,
	GenKeynumToVolEnvHold: true, GenKeynumToVolEnvDecay: true,
	GenStartAddrsOffset: true, GenEndAddrsOffset: true,
	GenStartloopAddrsOffset: true, GenEndloopAddrsOffset: true,
	GenStartAddrsCoarseOffset: true, GenEndAddrsCoarseOffset: true,
	GenStartloopAddrsCoarseOff: true, GenEndloopAddrsCoarseOff: true,
	GenInitialAttenuation: true, GenCoarseTune: true, GenFineTune: true,
	GenScaleTuning: true,
}

// IsAdditive reports whether a generator's preset-zone and instrument-zone
// values are summed rather than the instrument-zone value replacing the
// preset-zone value outright.
func (g Generator) IsAdditive() bool { return additiveGenerators[g] }

// absoluteGenerators are categorical rather than numeric: they are not
// summed, and the instrument zone's value replaces any preset-zone value
// for the same slot (which well-formed files never set).
var absoluteGenerators = map[Generator]bool{
	GenSampleModes: true, GenExclusiveClass: true, GenOverridingRootKey: true,
	GenKeynum: true, GenVelocity: true,
}

// IsAbsolute reports whether a generator takes its value from the
// instrument zone outright instead of being summed or range-intersected.
func (g Generator) IsAbsolute() bool { return absoluteGenerators[g] }
