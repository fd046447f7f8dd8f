// main.go - Demo player: loads an SF2 file and a scripted event list,
// renders through the engine, and plays it back via ebitengine/oto.
//
// Grounded on SPEC_FULL.md §4.11 and the teacher's audio_backend_oto.go
// oto-wrapping pattern: a pull-based Reader that the oto.Player drains,
// backed here by one Synthesizer.Render call per read instead of a
// register-mapped SoundChip.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/opensfsynth/sfsynth"
)

type scriptEvent struct {
	delayMs int
	channel byte
	command byte
	data1   byte
	data2   byte
}

func main() {
	sf2Path := flag.String("sf2", "", "path to a SoundFont 2 (.sf2) file (required)")
	scriptPath := flag.String("script", "", "path to a plain-text event script")
	rate := flag.Int("rate", 44100, "sample rate in Hz")
	block := flag.Int("block", 64, "render block size in samples")
	poly := flag.Int("poly", 64, "maximum polyphony")
	noFx := flag.Bool("no-fx", false, "disable reverb/chorus send")
	flag.Parse()

	if err := run(*sf2Path, *scriptPath, *rate, *block, *poly, *noFx); err != nil {
		fmt.Fprintln(os.Stderr, "sfplay:", err)
		os.Exit(1)
	}
}

func run(sf2Path, scriptPath string, rate, block, poly int, noFx bool) error {
	if sf2Path == "" {
		return fmt.Errorf("-sf2 is required")
	}
	data, err := os.ReadFile(sf2Path)
	if err != nil {
		return fmt.Errorf("reading soundfont: %w", err)
	}

	settings := sfsynth.DefaultSettings()
	settings.SampleRate = rate
	settings.BlockSize = block
	settings.MaximumPolyphony = poly
	settings.EnableReverbAndChorus = !noFx

	synth, err := sfsynth.NewFromSF2(data, settings)
	if err != nil {
		return fmt.Errorf("constructing synthesizer: %w", err)
	}

	var events []scriptEvent
	if scriptPath != "" {
		events, err = loadScript(scriptPath)
		if err != nil {
			return fmt.Errorf("loading script: %w", err)
		}
	}

	player, err := newPlayer(synth, rate, events)
	if err != nil {
		return fmt.Errorf("starting audio output: %w", err)
	}
	defer player.Close()

	player.Start()
	player.WaitUntilDrained()
	return nil
}

// loadScript parses lines of "channel cmd data1 data2 delayMs" (hex or
// decimal; a leading "0x" on cmd/data is accepted) into scriptEvent.
func loadScript(path string) ([]scriptEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var events []scriptEvent
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 5 {
			return nil, fmt.Errorf("line %d: expected 5 fields, got %d", lineNo, len(fields))
		}
		vals := make([]int64, 5)
		for i, f := range fields {
			v, err := strconv.ParseInt(f, 0, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: field %d: %w", lineNo, i+1, err)
			}
			vals[i] = v
		}
		events = append(events, scriptEvent{
			channel: byte(vals[0]),
			command: byte(vals[1]),
			data1:   byte(vals[2]),
			data2:   byte(vals[3]),
			delayMs: int(vals[4]),
		})
	}
	return events, scanner.Err()
}

// player drives the synthesizer from an oto.Context: Read is called by
// oto on its own goroutine and pulls rendered audio directly from
// Synthesizer.Render, scheduling scripted events at their delay offsets
// based on elapsed sample count.
type player struct {
	synth      *sfsynth.Synthesizer
	sampleRate int
	events     []scriptEvent
	eventAtMs  []int64 // absolute offset of each event, precomputed
	nextEvent  int
	sampleClk  int64

	ctx       *oto.Context
	otoPlayer *oto.Player

	left, right []float32

	drainAt int64 // sample clock at which the script+release tail is done
	done    chan struct{}
	closed  bool
}

func newPlayer(synth *sfsynth.Synthesizer, sampleRate int, events []scriptEvent) (*player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4096,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	p := &player{
		synth:      synth,
		sampleRate: sampleRate,
		events:     events,
		eventAtMs:  make([]int64, len(events)),
		left:       make([]float32, 512),
		right:      make([]float32, 512),
		done:       make(chan struct{}),
	}
	var elapsed int64
	for i, e := range events {
		elapsed += int64(e.delayMs)
		p.eventAtMs[i] = elapsed
	}
	p.drainAt = int64(sampleRate) * (elapsed + 5000) / 1000 // +5s release tail

	p.ctx = ctx
	p.otoPlayer = ctx.NewPlayer(p)
	return p, nil
}

// Read renders one chunk of interleaved stereo float32 audio, applying any
// scripted events whose absolute offset has elapsed by the end of this
// chunk.
func (p *player) Read(buf []byte) (int, error) {
	n := len(buf) / 8 // 2 channels * 4 bytes
	if n == 0 {
		return 0, nil
	}
	if len(p.left) < n {
		p.left = make([]float32, n)
		p.right = make([]float32, n)
	}
	left, right := p.left[:n], p.right[:n]

	endMs := (p.sampleClk + int64(n)) * 1000 / int64(p.sampleRate)
	for p.nextEvent < len(p.events) && p.eventAtMs[p.nextEvent] <= endMs {
		e := p.events[p.nextEvent]
		p.synth.ProcessMIDIMessage(e.channel, e.command, e.data1, e.data2)
		p.nextEvent++
	}

	if err := p.synth.Render(left, right); err != nil {
		return 0, err
	}
	p.sampleClk += int64(n)

	for i := 0; i < n; i++ {
		off := i * 8
		putFloat32LE(buf[off:], left[i])
		putFloat32LE(buf[off+4:], right[i])
	}

	if p.sampleClk >= p.drainAt && !p.closed {
		p.closed = true
		close(p.done)
	}
	return n * 8, nil
}

func (p *player) Start() { p.otoPlayer.Play() }

func (p *player) WaitUntilDrained() {
	<-p.done
	// give the backend's internal buffer a moment to flush.
	time.Sleep(200 * time.Millisecond)
}

func (p *player) Close() {
	if p.otoPlayer != nil {
		p.otoPlayer.Close()
	}
}

func putFloat32LE(b []byte, v float32) {
	bits := math.Float32bits(v)
	b[0] = byte(bits)
	b[1] = byte(bits >> 8)
	b[2] = byte(bits >> 16)
	b[3] = byte(bits >> 24)
}
