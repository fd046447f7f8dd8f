// loader_test.go - Tests for the SF2.04 RIFF loader

package soundfont

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// buildChunk writes id (4 bytes) + size + body, padded to an even length,
// mirroring the RIFF layout riff.go parses.
func buildChunk(buf *bytes.Buffer, id string, body []byte) {
	buf.WriteString(id)
	binary.Write(buf, binary.LittleEndian, uint32(len(body)))
	buf.Write(body)
	if len(body)%2 == 1 {
		buf.WriteByte(0)
	}
}

func le16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

func le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func cstr(s string, width int) []byte {
	b := make([]byte, width)
	copy(b, s)
	return b
}

// buildMinimalSF2 hand-assembles a one-sample, one-instrument, one-preset
// SF2 file byte-for-byte, exercising the same chunk layout a real
// SoundFont editor would emit.
func buildMinimalSF2(t *testing.T) []byte {
	t.Helper()

	// sdta: one 4-sample mono PCM16 region.
	var smpl bytes.Buffer
	for _, s := range []int16{100, 200, -100, -200} {
		binary.Write(&smpl, binary.LittleEndian, s)
	}
	var sdtaBody bytes.Buffer
	sdtaBody.WriteString("sdta")
	buildChunk(&sdtaBody, "smpl", smpl.Bytes())

	// phdr: one real preset + terminal record.
	var phdr bytes.Buffer
	phdr.Write(cstr("TestPreset", 20))
	phdr.Write(le16(0))  // preset
	phdr.Write(le16(0))  // bank
	phdr.Write(le16(0))  // PresetBagNdx
	phdr.Write(le32(0))  // library
	phdr.Write(le32(0))  // genre
	phdr.Write(le32(0))  // morphology
	phdr.Write(cstr("EOP", 20))
	phdr.Write(le16(0))
	phdr.Write(le16(0))
	phdr.Write(le16(1)) // terminal BagNdx
	phdr.Write(le32(0))
	phdr.Write(le32(0))
	phdr.Write(le32(0))

	// pbag: one bag pointing at pgen[0], pmod[0]; terminal bag.
	var pbag bytes.Buffer
	pbag.Write(le16(0))
	pbag.Write(le16(0))
	pbag.Write(le16(1)) // terminal genNdx
	pbag.Write(le16(0)) // terminal modNdx

	var pmod bytes.Buffer // no preset modulators

	// pgen: one generator (instrument=0).
	var pgen bytes.Buffer
	pgen.Write(le16(uint16(GenInstrument)))
	pgen.Write(le16(0))

	// inst: one real instrument + terminal record.
	var inst bytes.Buffer
	inst.Write(cstr("TestInstrument", 20))
	inst.Write(le16(0))
	inst.Write(cstr("EOI", 20))
	inst.Write(le16(1))

	// ibag: one bag spanning igen[0:2] (sampleModes + sampleID); terminal bag.
	var ibag bytes.Buffer
	ibag.Write(le16(0))
	ibag.Write(le16(0))
	ibag.Write(le16(2))
	ibag.Write(le16(0))

	var imod bytes.Buffer // no instrument modulators

	// igen: sampleModes=loop, sampleID=0.
	var igen bytes.Buffer
	igen.Write(le16(uint16(GenSampleModes)))
	igen.Write(le16(uint16(SampleModeLoop)))
	igen.Write(le16(uint16(GenSampleID)))
	igen.Write(le16(0))

	// shdr: one real sample + terminal record.
	var shdr bytes.Buffer
	shdr.Write(cstr("TestSample", 20))
	shdr.Write(le32(0))
	shdr.Write(le32(4))
	shdr.Write(le32(0))
	shdr.Write(le32(4))
	shdr.Write(le32(44100))
	shdr.WriteByte(60) // original key
	shdr.WriteByte(0)  // pitch correction
	shdr.Write(le16(0))
	shdr.Write(le16(uint16(SampleTypeMono)))
	shdr.Write(cstr("EOS", 20))
	shdr.Write(make([]byte, 26))

	var pdtaBody bytes.Buffer
	pdtaBody.WriteString("pdta")
	buildChunk(&pdtaBody, "phdr", phdr.Bytes())
	buildChunk(&pdtaBody, "pbag", pbag.Bytes())
	buildChunk(&pdtaBody, "pmod", pmod.Bytes())
	buildChunk(&pdtaBody, "pgen", pgen.Bytes())
	buildChunk(&pdtaBody, "inst", inst.Bytes())
	buildChunk(&pdtaBody, "ibag", ibag.Bytes())
	buildChunk(&pdtaBody, "imod", imod.Bytes())
	buildChunk(&pdtaBody, "igen", igen.Bytes())
	buildChunk(&pdtaBody, "shdr", shdr.Bytes())

	var infoBody bytes.Buffer
	infoBody.WriteString("INFO")
	buildChunk(&infoBody, "INAM", append([]byte("unit-test-bank"), 0))

	var sfbk bytes.Buffer
	sfbk.WriteString("sfbk")
	buildChunk(&sfbk, "LIST", infoBody.Bytes())
	buildChunk(&sfbk, "LIST", sdtaBody.Bytes())
	buildChunk(&sfbk, "LIST", pdtaBody.Bytes())

	var riff bytes.Buffer
	buildChunk(&riff, "RIFF", sfbk.Bytes())
	return riff.Bytes()
}

func TestLoadMinimalSF2(t *testing.T) {
	sf, err := Load(buildMinimalSF2(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sf.Name != "unit-test-bank" {
		t.Errorf("Name = %q, want unit-test-bank", sf.Name)
	}
	if len(sf.Presets) != 1 {
		t.Fatalf("len(Presets) = %d, want 1", len(sf.Presets))
	}
	if len(sf.Instruments) != 1 {
		t.Fatalf("len(Instruments) = %d, want 1", len(sf.Instruments))
	}
	if len(sf.Samples) != 1 {
		t.Fatalf("len(Samples) = %d, want 1", len(sf.Samples))
	}
	if len(sf.PCM16) != 4 {
		t.Fatalf("len(PCM16) = %d, want 4", len(sf.PCM16))
	}

	preset := sf.Presets[0]
	if preset.Name != "TestPreset" || len(preset.Zones) != 1 {
		t.Fatalf("unexpected preset: %+v", preset)
	}
	if preset.InstrumentOf[0] != 0 {
		t.Errorf("preset zone instrument ref = %d, want 0", preset.InstrumentOf[0])
	}

	inst := sf.Instruments[0]
	if len(inst.Zones) != 1 || inst.SampleOf[0] != 0 {
		t.Fatalf("unexpected instrument: %+v", inst)
	}
	amt, ok := inst.Zones[0].Gen(GenSampleModes)
	if !ok || amt.Amount != int16(SampleModeLoop) {
		t.Errorf("sampleModes = %+v, ok=%v", amt, ok)
	}

	sh := sf.Samples[0]
	if sh.Name != "TestSample" || sh.End != 4 || sh.OriginalKey != 60 {
		t.Errorf("unexpected sample header: %+v", sh)
	}

	found := sf.FindPreset(0, 0)
	if found == nil || found.Name != "TestPreset" {
		t.Errorf("FindPreset(0,0) = %v", found)
	}
	if sf.FindPreset(0, 99) != nil {
		t.Errorf("FindPreset(0,99) should be nil")
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	if _, err := Load([]byte("not a soundfont")); err == nil {
		t.Fatal("Load should reject non-RIFF data")
	}
	if _, err := Load(nil); err == nil {
		t.Fatal("Load should reject empty data")
	}
}

func TestNewSynthetic(t *testing.T) {
	sf := NewSynthetic(SyntheticOptions{RootKey: 69})
	if len(sf.Presets) != 1 || len(sf.Instruments) != 1 || len(sf.Samples) != 1 {
		t.Fatalf("unexpected synthetic soundfont shape: %+v", sf)
	}
	if sf.Samples[0].OriginalKey != 69 {
		t.Errorf("OriginalKey = %d, want 69", sf.Samples[0].OriginalKey)
	}
	if len(sf.PCM16) < int(sf.Samples[0].End) {
		t.Errorf("PCM16 too short for sample extent")
	}
}
