// reverb.go - Schroeder reverberator
//
// Ported from the teacher's SoundChip.applyReverb (audio_chip.go): a
// pre-delay, a bank of four parallel comb filters at distinct fixed delay
// lengths with independent decay, feeding two series allpass filters for
// diffusion. Adapted here to run independently on left/right channels and
// to scale its delay lengths to the engine's sample rate rather than the
// teacher's fixed SAMPLE_RATE.

package fx

const (
	preDelayMS = 8

	combDelay1, combDecay1 = 1687, 0.97
	combDelay2, combDecay2 = 1601, 0.95
	combDelay3, combDecay3 = 2053, 0.93
	combDelay4, combDecay4 = 2251, 0.91

	allpassDelay1 = 389
	allpassDelay2 = 307
	allpassCoef   = 0.5

	reverbAttenuation = 0.3
)

type combFilter struct {
	buffer []float32
	decay  float32
	pos    int
}

type allpassFilter struct {
	buffer []float32
	pos    int
}

type reverbChannel struct {
	preDelayBuf []float32
	preDelayPos int
	combs       [4]combFilter
	allpasses   [2]allpassFilter
}

func newReverbChannel(sampleRate int) reverbChannel {
	scale := float64(sampleRate) / 44100.0
	scaled := func(n int) int {
		v := int(float64(n) * scale)
		if v < 1 {
			v = 1
		}
		return v
	}
	rc := reverbChannel{
		preDelayBuf: make([]float32, scaled(preDelayMS*44100/1000)),
	}
	delays := [4]int{scaled(combDelay1), scaled(combDelay2), scaled(combDelay3), scaled(combDelay4)}
	decays := [4]float32{combDecay1, combDecay2, combDecay3, combDecay4}
	for i := range rc.combs {
		rc.combs[i] = combFilter{buffer: make([]float32, delays[i]), decay: decays[i]}
	}
	apDelays := [2]int{scaled(allpassDelay1), scaled(allpassDelay2)}
	for i := range rc.allpasses {
		rc.allpasses[i] = allpassFilter{buffer: make([]float32, apDelays[i])}
	}
	return rc
}

func (rc *reverbChannel) process(input float32) float32 {
	delayed := rc.preDelayBuf[rc.preDelayPos]
	rc.preDelayBuf[rc.preDelayPos] = input
	rc.preDelayPos = (rc.preDelayPos + 1) % len(rc.preDelayBuf)

	var out float32
	for i := range rc.combs {
		c := &rc.combs[i]
		cDelay := c.buffer[c.pos]
		c.buffer[c.pos] = delayed + cDelay*c.decay
		out += cDelay
		c.pos = (c.pos + 1) % len(c.buffer)
	}

	for i := range rc.allpasses {
		a := &rc.allpasses[i]
		aDelay := a.buffer[a.pos]
		a.buffer[a.pos] = out + aDelay*allpassCoef
		out = aDelay - out
		a.pos = (a.pos + 1) % len(a.buffer)
	}

	return out * reverbAttenuation
}

// Reverb implements Processor with one reverbChannel per stereo side, so
// left/right sends develop independent tails rather than sharing one mono
// reverb (EXPANSION over the teacher's single-channel SoundChip, which only
// ever produced one mono voice at a time).
type Reverb struct {
	left, right reverbChannel
}

func NewReverb(sampleRate int) *Reverb {
	return &Reverb{
		left:  newReverbChannel(sampleRate),
		right: newReverbChannel(sampleRate),
	}
}

func (r *Reverb) Process(wetL, wetR []float32) {
	for i := range wetL {
		wetL[i] = r.left.process(wetL[i])
	}
	for i := range wetR {
		wetR[i] = r.right.process(wetR[i])
	}
}
