// pool.go - Fixed-size voice pool and stealing allocator
//
// Grounded on spec.md §4.6 and §9's "pre-allocated pool" design note: a
// fixed-size array of voices, Idle/Active tracked by a status field, no
// dynamic containers on the audio path.

package sfsynth

type voicePool struct {
	voices  []voice
	counter uint64
}

func newVoicePool(size int) voicePool {
	return voicePool{voices: make([]voice, size)}
}

func (p *voicePool) activeCount() int {
	n := 0
	for i := range p.voices {
		if p.voices[i].isActive() {
			n++
		}
	}
	return n
}

// allocate implements spec.md §4.6's policy: prefer an Idle slot; else
// steal the lowest-priority voice, with same-(channel,note) voices stolen
// first to avoid doubling. The unconditional same-note release spec.md
// §4.5 requires on retrigger happens in Synthesizer.noteOn before this is
// called, regardless of whether a slot is free; the same-note-first
// preference here is the pool-exhausted fallback that picks the
// just-released voice over other stealable ones. The returned voice is
// claimed: Playing, with channel, note and startCounter set. A stolen voice
// gets a hard release and is then finished and reused within this call, so
// it stops without a fade.
func (p *voicePool) allocate(channel, note int, sampleRate int) *voice {
	for i := range p.voices {
		if !p.voices[i].isActive() {
			return p.claim(&p.voices[i], channel, note)
		}
	}

	sameNote := -1
	worst := -1
	for i := range p.voices {
		v := &p.voices[i]
		if v.channel == channel && v.note == note {
			sameNote = i
			break
		}
		if worst < 0 || stealPriority(v, &p.voices[worst]) < 0 {
			worst = i
		}
	}
	victim := worst
	if sameNote >= 0 {
		victim = sameNote
	}
	p.voices[victim].release(true, sampleRate)
	p.voices[victim].finish()
	return p.claim(&p.voices[victim], channel, note)
}

// claim marks v Playing for (channel, note) with the next start counter.
func (p *voicePool) claim(v *voice, channel, note int) *voice {
	p.counter++
	v.status = voicePlaying
	v.channel = channel
	v.note = note
	v.startCounter = p.counter
	return v
}

// stealPriority returns <0 if a is a worse (more stealable) candidate than
// b, 0 if equal priority, >0 otherwise. Release-stage voices are always
// preferred over Playing ones; among equals, lower volume-envelope
// amplitude; among equals, older voice-start counter.
func stealPriority(a, b *voice) int {
	aReleased := a.status == voiceReleased
	bReleased := b.status == voiceReleased
	if aReleased != bReleased {
		if aReleased {
			return -1
		}
		return 1
	}
	aAmp := a.currentVolAmplitude()
	bAmp := b.currentVolAmplitude()
	if aAmp != bAmp {
		if aAmp < bAmp {
			return -1
		}
		return 1
	}
	if a.startCounter != b.startCounter {
		if a.startCounter < b.startCounter {
			return -1
		}
		return 1
	}
	return 0
}

func (p *voicePool) releaseAll(sampleRate int) {
	for i := range p.voices {
		if p.voices[i].isActive() {
			p.voices[i].release(false, sampleRate)
		}
	}
}

func (p *voicePool) finishAll() {
	for i := range p.voices {
		p.voices[i].finish()
	}
}

func (p *voicePool) releaseChannelNote(channel, note int, sampleRate int) {
	for i := range p.voices {
		v := &p.voices[i]
		if v.status == voicePlaying && v.channel == channel && v.note == note {
			v.release(false, sampleRate)
		}
	}
}

func (p *voicePool) releaseChannel(channel int, sampleRate int) {
	for i := range p.voices {
		v := &p.voices[i]
		if v.isActive() && v.channel == channel {
			v.release(false, sampleRate)
		}
	}
}

func (p *voicePool) finishChannel(channel int) {
	for i := range p.voices {
		v := &p.voices[i]
		if v.isActive() && v.channel == channel {
			v.finish()
		}
	}
}

// releaseSustained releases any voice on channel that was deferred by
// sustain, per spec.md §4.5's note-off policy.
func (p *voicePool) releaseSustained(channel int, sampleRate int) {
	for i := range p.voices {
		v := &p.voices[i]
		if v.isActive() && v.channel == channel && v.deferredRelease {
			v.deferredRelease = false
			v.release(false, sampleRate)
		}
	}
}
