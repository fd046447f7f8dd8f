// chorus.go - Modulated delay line chorus
//
// The teacher repo has no chorus effect to ground on; this implements the
// standard single-voice modulated delay line (a fixed base delay swept by
// a triangle LFO, linear-interpolated) using the same phase-accumulator
// and triangle-wave shape as sfsynth's own LFOs, for texture consistency
// within this module.

package fx

const (
	chorusBaseDelayMS  = 15
	chorusDepthMS      = 4
	chorusRateHz       = 0.8
	chorusFeedback     = 0.15
	chorusMix          = 0.5
)

type chorusChannel struct {
	buffer []float32
	pos    int
	phase  float64
	rate   float64 // cycles per sample
	base   float64 // samples
	depth  float64 // samples
}

func newChorusChannel(sampleRate int) chorusChannel {
	base := chorusBaseDelayMS * float64(sampleRate) / 1000.0
	depth := chorusDepthMS * float64(sampleRate) / 1000.0
	size := int(base+depth) + 4
	return chorusChannel{
		buffer: make([]float32, size),
		rate:   chorusRateHz / float64(sampleRate),
		base:   base,
		depth:  depth,
	}
}

func (c *chorusChannel) process(input float32) float32 {
	c.buffer[c.pos] = input

	tri := triangleWave(c.phase)
	delaySamples := c.base + c.depth*tri
	readPos := float64(c.pos) - delaySamples
	for readPos < 0 {
		readPos += float64(len(c.buffer))
	}

	i0 := int(readPos) % len(c.buffer)
	i1 := (i0 + 1) % len(c.buffer)
	frac := float32(readPos - float64(int(readPos)))
	delayed := c.buffer[i0]*(1-frac) + c.buffer[i1]*frac

	c.buffer[c.pos] += delayed * chorusFeedback
	c.pos = (c.pos + 1) % len(c.buffer)
	c.phase += c.rate
	if c.phase >= 1 {
		c.phase -= 1
	}

	return input*(1-chorusMix) + delayed*chorusMix
}

func triangleWave(phase float64) float64 {
	if phase < 0.5 {
		return -1 + 4*phase
	}
	return 3 - 4*phase
}

// Chorus implements Processor with independent left/right modulated delay
// lines started at opposite LFO phases, giving the effect stereo width.
type Chorus struct {
	left, right chorusChannel
}

func NewChorus(sampleRate int) *Chorus {
	c := &Chorus{
		left:  newChorusChannel(sampleRate),
		right: newChorusChannel(sampleRate),
	}
	c.right.phase = 0.5
	return c
}

func (c *Chorus) Process(wetL, wetR []float32) {
	for i := range wetL {
		wetL[i] = c.left.process(wetL[i])
	}
	for i := range wetR {
		wetR[i] = c.right.process(wetR[i])
	}
}
