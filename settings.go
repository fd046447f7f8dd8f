// settings.go - Synthesizer construction settings

package sfsynth

// Settings configures a Synthesizer at construction time. Zero-value
// Settings is invalid; use DefaultSettings and override fields as needed.
type Settings struct {
	// SampleRate is the output sample rate in Hz. Range [16000, 192000].
	SampleRate int
	// BlockSize is the number of samples processed per inner rendering
	// block. Range [8, 1024]. Controller and envelope parameters are
	// realized once per block, not per sample.
	BlockSize int
	// MaximumPolyphony is the size of the pre-allocated voice pool.
	// Range [8, 256].
	MaximumPolyphony int
	// EnableReverbAndChorus turns on the post-mix effects send.
	EnableReverbAndChorus bool
}

// DefaultSettings returns the engine's documented defaults.
func DefaultSettings() Settings {
	return Settings{
		SampleRate:            44100,
		BlockSize:             64,
		MaximumPolyphony:      64,
		EnableReverbAndChorus: true,
	}
}

func (s Settings) validate() error {
	if s.SampleRate < 16000 || s.SampleRate > 192000 {
		return errSampleRate(s.SampleRate)
	}
	if s.BlockSize < 8 || s.BlockSize > 1024 {
		return errBlockSize(s.BlockSize)
	}
	if s.MaximumPolyphony < 8 || s.MaximumPolyphony > 256 {
		return errPolyphony(s.MaximumPolyphony)
	}
	return nil
}
