// loader.go - SoundFont 2.04 binary loader
//
// Parses the fixed-size little-endian records the SF2.04 spec defines for
// phdr/pbag/pmod/pgen/inst/ibag/imod/igen/shdr. This is explicitly a
// loader, not part of the synthesis core: its only job is to produce the
// ready-to-use tables in types.go. See SPEC_FULL.md §4.9.

package soundfont

import (
	"encoding/binary"
	"io"
)

const (
	phdrRecordSize = 38
	bagRecordSize  = 4
	modRecordSize  = 10
	genRecordSize  = 4
	instRecordSize = 22
	shdrRecordSize = 46
)

type rawBag struct {
	GenNdx, ModNdx uint16
}

type rawGen struct {
	Oper   uint16
	Amount uint16
}

type rawMod struct {
	SrcOper, DestOper          uint16
	Amount                     int16
	AmtSrcOper, SrcTransform   uint16
}

type rawPresetHdr struct {
	Name         string
	Preset, Bank uint16
	BagNdx       uint16
}

type rawInstHdr struct {
	Name   string
	BagNdx uint16
}

// Load parses a complete SoundFont 2 file from memory.
func Load(data []byte) (*SoundFont, error) {
	top, _, err := readChunk(data)
	if err != nil {
		return nil, errInvalid("reading RIFF header: %v", err)
	}
	if top.id != "RIFF" {
		return nil, errInvalid("not a RIFF file (got %q)", top.id)
	}
	if len(top.data) < 4 {
		return nil, errInvalid("RIFF body too short")
	}
	if string(top.data[0:4]) != "sfbk" {
		return nil, errInvalid("unexpected RIFF form %q (want sfbk)", string(top.data[0:4]))
	}

	subs, err := splitSubchunks(top.data[4:])
	if err != nil {
		return nil, errInvalid("walking top-level chunks: %v", err)
	}

	var infoBody, sdtaBody, pdtaBody []byte
	for _, c := range subs {
		f, b, err := listForm(c)
		if err != nil {
			return nil, errInvalid("top-level chunk: %v", err)
		}
		switch f {
		case "INFO":
			infoBody = b
		case "sdta":
			sdtaBody = b
		case "pdta":
			pdtaBody = b
		}
	}
	if pdtaBody == nil {
		return nil, errInvalid("missing pdta chunk")
	}

	name := readInfoName(infoBody)

	pcm, err := readSampleData(sdtaBody)
	if err != nil {
		return nil, err
	}

	sf := &SoundFont{Name: name, PCM16: pcm}
	if err := loadPdta(sf, pdtaBody); err != nil {
		return nil, err
	}
	if len(sf.Presets) == 0 {
		return nil, errInvalid("soundfont has no presets")
	}
	if len(sf.Samples) == 0 {
		return nil, errInvalid("soundfont has no samples")
	}
	return sf, nil
}

// LoadReader reads r fully and parses it with Load.
func LoadReader(r io.Reader) (*SoundFont, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errInvalid("reading stream: %v", err)
	}
	return Load(data)
}

func readInfoName(infoBody []byte) string {
	chunks, err := splitSubchunks(infoBody)
	if err != nil {
		return ""
	}
	for _, c := range chunks {
		if c.id == "INAM" {
			return trimCString(c.data)
		}
	}
	return ""
}

func readSampleData(sdtaBody []byte) ([]int16, error) {
	if sdtaBody == nil {
		return nil, errInvalid("missing sdta chunk")
	}
	chunks, err := splitSubchunks(sdtaBody)
	if err != nil {
		return nil, errInvalid("walking sdta: %v", err)
	}
	for _, c := range chunks {
		if c.id == "smpl" {
			pcm := make([]int16, len(c.data)/2)
			for i := range pcm {
				pcm[i] = int16(binary.LittleEndian.Uint16(c.data[i*2 : i*2+2]))
			}
			return pcm, nil
		}
	}
	return nil, errInvalid("missing smpl sub-chunk")
}

func loadPdta(sf *SoundFont, pdtaBody []byte) error {
	chunks, err := splitSubchunks(pdtaBody)
	if err != nil {
		return errInvalid("walking pdta: %v", err)
	}
	byID := map[string][]byte{}
	for _, c := range chunks {
		byID[c.id] = c.data
	}
	required := []string{"phdr", "pbag", "pmod", "pgen", "inst", "ibag", "imod", "igen", "shdr"}
	for _, id := range required {
		if _, ok := byID[id]; !ok {
			return errInvalid("missing pdta sub-chunk %q", id)
		}
	}

	presetHdrs, err := parsePresetHeaders(byID["phdr"])
	if err != nil {
		return err
	}
	instHdrs, err := parseInstHeaders(byID["inst"])
	if err != nil {
		return err
	}
	pbags := parseBags(byID["pbag"])
	ibags := parseBags(byID["ibag"])
	pgens := parseGens(byID["pgen"])
	igens := parseGens(byID["igen"])
	pmods := parseMods(byID["pmod"])
	imods := parseMods(byID["imod"])
	shdrs, err := parseSampleHeaders(byID["shdr"])
	if err != nil {
		return err
	}
	sf.Samples = shdrs

	instruments, err := buildInstruments(instHdrs, ibags, igens, imods)
	if err != nil {
		return err
	}
	sf.Instruments = instruments

	presets, err := buildPresets(presetHdrs, pbags, pgens, pmods)
	if err != nil {
		return err
	}
	sf.Presets = presets
	return nil
}

func parsePresetHeaders(data []byte) ([]rawPresetHdr, error) {
	if len(data)%phdrRecordSize != 0 || len(data) < phdrRecordSize {
		return nil, errInvalid("phdr size %d not a multiple of %d", len(data), phdrRecordSize)
	}
	n := len(data) / phdrRecordSize
	out := make([]rawPresetHdr, n)
	for i := 0; i < n; i++ {
		r := data[i*phdrRecordSize : (i+1)*phdrRecordSize]
		out[i] = rawPresetHdr{
			Name:    trimCString(r[0:20]),
			Preset:  binary.LittleEndian.Uint16(r[20:22]),
			Bank:    binary.LittleEndian.Uint16(r[22:24]),
			BagNdx:  binary.LittleEndian.Uint16(r[24:26]),
		}
	}
	return out, nil
}

func parseInstHeaders(data []byte) ([]rawInstHdr, error) {
	if len(data)%instRecordSize != 0 || len(data) < instRecordSize {
		return nil, errInvalid("inst size %d not a multiple of %d", len(data), instRecordSize)
	}
	n := len(data) / instRecordSize
	out := make([]rawInstHdr, n)
	for i := 0; i < n; i++ {
		r := data[i*instRecordSize : (i+1)*instRecordSize]
		out[i] = rawInstHdr{
			Name:   trimCString(r[0:20]),
			BagNdx: binary.LittleEndian.Uint16(r[20:22]),
		}
	}
	return out, nil
}

func parseBags(data []byte) []rawBag {
	n := len(data) / bagRecordSize
	out := make([]rawBag, n)
	for i := 0; i < n; i++ {
		r := data[i*bagRecordSize : (i+1)*bagRecordSize]
		out[i] = rawBag{
			GenNdx: binary.LittleEndian.Uint16(r[0:2]),
			ModNdx: binary.LittleEndian.Uint16(r[2:4]),
		}
	}
	return out
}

func parseGens(data []byte) []rawGen {
	n := len(data) / genRecordSize
	out := make([]rawGen, n)
	for i := 0; i < n; i++ {
		r := data[i*genRecordSize : (i+1)*genRecordSize]
		out[i] = rawGen{
			Oper:   binary.LittleEndian.Uint16(r[0:2]),
			Amount: binary.LittleEndian.Uint16(r[2:4]),
		}
	}
	return out
}

func parseMods(data []byte) []rawMod {
	n := len(data) / modRecordSize
	out := make([]rawMod, n)
	for i := 0; i < n; i++ {
		r := data[i*modRecordSize : (i+1)*modRecordSize]
		out[i] = rawMod{
			SrcOper:      binary.LittleEndian.Uint16(r[0:2]),
			DestOper:     binary.LittleEndian.Uint16(r[2:4]),
			Amount:       int16(binary.LittleEndian.Uint16(r[4:6])),
			AmtSrcOper:   binary.LittleEndian.Uint16(r[6:8]),
			SrcTransform: binary.LittleEndian.Uint16(r[8:10]),
		}
	}
	return out
}

func parseSampleHeaders(data []byte) ([]SampleHeader, error) {
	if len(data)%shdrRecordSize != 0 || len(data) < shdrRecordSize {
		return nil, errInvalid("shdr size %d not a multiple of %d", len(data), shdrRecordSize)
	}
	n := len(data)/shdrRecordSize - 1 // drop terminal record
	out := make([]SampleHeader, 0, n)
	for i := 0; i < n; i++ {
		r := data[i*shdrRecordSize : (i+1)*shdrRecordSize]
		out = append(out, SampleHeader{
			Name:            trimCString(r[0:20]),
			Start:           binary.LittleEndian.Uint32(r[20:24]),
			End:             binary.LittleEndian.Uint32(r[24:28]),
			LoopStart:       binary.LittleEndian.Uint32(r[28:32]),
			LoopEnd:         binary.LittleEndian.Uint32(r[32:36]),
			SampleRate:      binary.LittleEndian.Uint32(r[36:40]),
			OriginalKey:     r[40],
			PitchCorrection: int8(r[41]),
			SampleLink:      binary.LittleEndian.Uint16(r[42:44]),
			SampleType:      SampleType(binary.LittleEndian.Uint16(r[44:46])),
		})
	}
	return out, nil
}

// buildZones resolves the bag range [bagLo, bagHi) belonging to one preset
// or instrument header into its zones — one zone per bag entry, each
// reading its generators/modulators out of the gen/mod tables via the
// generator/modulator index that bag and its successor name. refGen is
// the generator that carries the structural reference (GenInstrument for
// presets, GenSampleID for instruments); the returned ref is -1 for a
// zone that sets no such generator (a global zone, always zone 0 if
// present).
func buildZones(bagLo, bagHi uint16, bags []rawBag, gens []rawGen, mods []rawMod, refGen Generator) ([]Zone, []int, error) {
	if int(bagHi) >= len(bags) || bagLo > bagHi {
		return nil, nil, errInvalid("bag index out of range (%d..%d of %d)", bagLo, bagHi, len(bags))
	}
	zoneCount := int(bagHi - bagLo)
	zones := make([]Zone, 0, zoneCount)
	refs := make([]int, 0, zoneCount)
	for b := bagLo; b < bagHi; b++ {
		bag := bags[b]
		next := bags[b+1]
		var z Zone
		ref := -1
		for g := bag.GenNdx; g < next.GenNdx && int(g) < len(gens); g++ {
			rec := gens[g]
			oper := Generator(rec.Oper)
			amt := decodeAmount(oper, rec.Amount)
			if oper == refGen {
				ref = int(int16(rec.Amount))
			}
			z.Generators = append(z.Generators, GeneratorRecord{Oper: oper, Amount: amt})
		}
		for m := bag.ModNdx; m < next.ModNdx && int(m) < len(mods); m++ {
			rm := mods[m]
			z.Modulators = append(z.Modulators, Modulator{
				SrcOper:      ModSource(rm.SrcOper),
				DestOper:     Generator(rm.DestOper),
				Amount:       rm.Amount,
				AmtSrcOper:   ModSource(rm.AmtSrcOper),
				SrcTransform: ModTransform(rm.SrcTransform),
			})
		}
		zones = append(zones, z)
		refs = append(refs, ref)
	}
	return zones, refs, nil
}

func decodeAmount(oper Generator, raw uint16) GeneratorAmount {
	if oper == GenKeyRange || oper == GenVelRange {
		return GeneratorAmount{RangeLo: uint8(raw), RangeHi: uint8(raw >> 8), IsRange: true}
	}
	return GeneratorAmount{Amount: int16(raw)}
}

func buildInstruments(hdrs []rawInstHdr, ibags []rawBag, igens []rawGen, imods []rawMod) ([]Instrument, error) {
	if len(hdrs) < 2 {
		return nil, errInvalid("inst table has no real instruments")
	}
	bagNdx := make([]uint16, len(hdrs))
	for i, h := range hdrs {
		bagNdx[i] = h.BagNdx
	}
	instCount := len(hdrs) - 1
	out := make([]Instrument, 0, instCount)
	for i := 0; i < instCount; i++ {
		zones, refs, err := buildZones(bagNdx[i], bagNdx[i+1], ibags, igens, imods, GenSampleID)
		if err != nil {
			return nil, err
		}
		out = append(out, Instrument{Name: hdrs[i].Name, Zones: zones, SampleOf: refs})
	}
	return out, nil
}

func buildPresets(hdrs []rawPresetHdr, pbags []rawBag, pgens []rawGen, pmods []rawMod) ([]Preset, error) {
	if len(hdrs) < 2 {
		return nil, errInvalid("phdr table has no real presets")
	}
	bagNdx := make([]uint16, len(hdrs))
	for i, h := range hdrs {
		bagNdx[i] = h.BagNdx
	}
	presetCount := len(hdrs) - 1
	out := make([]Preset, 0, presetCount)
	for i := 0; i < presetCount; i++ {
		zones, refs, err := buildZones(bagNdx[i], bagNdx[i+1], pbags, pgens, pmods, GenInstrument)
		if err != nil {
			return nil, err
		}
		out = append(out, Preset{
			Name: hdrs[i].Name, Program: hdrs[i].Preset, Bank: hdrs[i].Bank,
			Zones: zones, InstrumentOf: refs,
		})
	}
	return out, nil
}

func trimCString(b []byte) string {
	end := len(b)
	for i, c := range b {
		if c == 0 {
			end = i
			break
		}
	}
	return string(b[:end])
}
