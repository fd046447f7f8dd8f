// region_test.go - SF2.04 generator combination rules, per spec.md §3/§4

package sfsynth

import (
	"testing"

	"github.com/opensfsynth/sfsynth/soundfont"
)

func zoneWith(gens ...soundfont.GeneratorRecord) soundfont.Zone {
	return soundfont.Zone{Generators: gens}
}

func gen(op soundfont.Generator, amt int16) soundfont.GeneratorRecord {
	return soundfont.GeneratorRecord{Oper: op, Amount: soundfont.GeneratorAmount{Amount: amt}}
}

func TestApplyZoneAdditiveGeneratorsSum(t *testing.T) {
	r := defaultRegion()
	z1 := zoneWith(gen(soundfont.GenCoarseTune, 2))
	z2 := zoneWith(gen(soundfont.GenCoarseTune, 3))
	applyZone(&r, &z1)
	applyZone(&r, &z2)
	if r.coarseTune != 5 {
		t.Errorf("coarseTune = %d, want 5 (additive)", r.coarseTune)
	}
}

func TestApplyZoneStructuralGeneratorIsAbsolute(t *testing.T) {
	r := defaultRegion()
	z1 := zoneWith(gen(soundfont.GenSampleID, 3))
	z2 := zoneWith(gen(soundfont.GenSampleID, 7))
	applyZone(&r, &z1)
	applyZone(&r, &z2)
	if r.sampleIndex != 7 {
		t.Errorf("sampleIndex = %d, want 7 (last write wins)", r.sampleIndex)
	}
}

func TestDefaultRegionEnvelopeDefaultsAreInstantaneous(t *testing.T) {
	r := defaultRegion()
	if r.delayVolEnv != -12000 || r.attackVolEnv != -12000 ||
		r.holdVolEnv != -12000 || r.decayVolEnv != -12000 || r.releaseVolEnv != -12000 {
		t.Errorf("expected all vol envelope timing generators to default to -12000tc, got %+v", r)
	}
}

func TestKeyVelInRangeDefaultsUnrestricted(t *testing.T) {
	z := zoneWith(gen(soundfont.GenPan, 0))
	if !keyVelInRange(&z, 0, 0) || !keyVelInRange(&z, 127, 127) {
		t.Error("zone with no range generators should accept any key/velocity")
	}
}

func TestKeyVelInRangeRespectsExplicitRange(t *testing.T) {
	z := soundfont.Zone{Generators: []soundfont.GeneratorRecord{
		{Oper: soundfont.GenKeyRange, Amount: soundfont.GeneratorAmount{IsRange: true, RangeLo: 60, RangeHi: 72}},
	}}
	if keyVelInRange(&z, 59, 100) {
		t.Error("key 59 should fall outside [60,72]")
	}
	if !keyVelInRange(&z, 60, 100) || !keyVelInRange(&z, 72, 100) {
		t.Error("key range bounds should be inclusive")
	}
}

func TestFindPresetZoneSkipsGlobalZone(t *testing.T) {
	global := zoneWith(gen(soundfont.GenPan, 0))
	zoned := soundfont.Zone{Generators: []soundfont.GeneratorRecord{
		{Oper: soundfont.GenKeyRange, Amount: soundfont.GeneratorAmount{IsRange: true, RangeLo: 0, RangeHi: 127}},
	}}
	preset := soundfont.Preset{
		Zones:        []soundfont.Zone{global, zoned},
		InstrumentOf: []int{-1, 0},
	}
	g, idx := findPresetZone(&preset, 60, 100)
	if g == nil {
		t.Fatal("expected global zone to be returned")
	}
	if idx != 1 {
		t.Errorf("matchedIdx = %d, want 1", idx)
	}
}

func TestFindPresetZoneNoMatch(t *testing.T) {
	zoned := soundfont.Zone{Generators: []soundfont.GeneratorRecord{
		{Oper: soundfont.GenKeyRange, Amount: soundfont.GeneratorAmount{IsRange: true, RangeLo: 0, RangeHi: 10}},
	}}
	preset := soundfont.Preset{Zones: []soundfont.Zone{zoned}, InstrumentOf: []int{0}}
	_, idx := findPresetZone(&preset, 60, 100)
	if idx != -1 {
		t.Errorf("matchedIdx = %d, want -1 for out-of-range note", idx)
	}
}

func TestRootKeyOrDefaultFallsBackToSample(t *testing.T) {
	r := defaultRegion()
	if got := r.rootKeyOrDefault(48); got != 48 {
		t.Errorf("rootKeyOrDefault = %d, want sample's OriginalKey 48", got)
	}
	r.rootKey = 72
	if got := r.rootKeyOrDefault(48); got != 72 {
		t.Errorf("rootKeyOrDefault = %d, want explicit override 72", got)
	}
}

func TestResolveNoteOnSyntheticFont(t *testing.T) {
	sf := soundfont.NewSynthetic(soundfont.SyntheticOptions{RootKey: 60})
	r, inst, ok := resolveNote(sf, &sf.Presets[0], 60, 100)
	if !ok {
		t.Fatal("resolveNote should succeed on the synthetic font")
	}
	if inst == nil {
		t.Fatal("expected a resolved instrument")
	}
	if r.sampleIndex != 0 {
		t.Errorf("sampleIndex = %d, want 0", r.sampleIndex)
	}
}
