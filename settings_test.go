// settings_test.go - Construction-time validation

package sfsynth

import "testing"

func TestDefaultSettingsValid(t *testing.T) {
	if err := DefaultSettings().validate(); err != nil {
		t.Fatalf("DefaultSettings().validate() = %v, want nil", err)
	}
}

func TestSettingsOutOfRange(t *testing.T) {
	cases := []struct {
		name string
		mk   func() Settings
		kind ErrorKind
	}{
		{"sample rate too low", func() Settings { s := DefaultSettings(); s.SampleRate = 100; return s }, ErrSampleRateOutOfRange},
		{"sample rate too high", func() Settings { s := DefaultSettings(); s.SampleRate = 500000; return s }, ErrSampleRateOutOfRange},
		{"block size too low", func() Settings { s := DefaultSettings(); s.BlockSize = 1; return s }, ErrBlockSizeOutOfRange},
		{"block size too high", func() Settings { s := DefaultSettings(); s.BlockSize = 4096; return s }, ErrBlockSizeOutOfRange},
		{"polyphony too low", func() Settings { s := DefaultSettings(); s.MaximumPolyphony = 1; return s }, ErrMaximumPolyphonyOutOfRange},
		{"polyphony too high", func() Settings { s := DefaultSettings(); s.MaximumPolyphony = 1000; return s }, ErrMaximumPolyphonyOutOfRange},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.mk().validate()
			if err == nil {
				t.Fatal("validate() = nil, want error")
			}
			se, ok := err.(*Error)
			if !ok {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if se.Kind != c.kind {
				t.Errorf("Kind = %v, want %v", se.Kind, c.kind)
			}
		})
	}
}
