// errors.go - Loader error reporting

package soundfont

import "fmt"

// InvalidError reports why a SoundFont file could not be parsed. sfsynth's
// SoundFontInvalid construction error wraps the Detail string from this
// type.
type InvalidError struct {
	Detail string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("soundfont: invalid file: %s", e.Detail)
}

func errInvalid(format string, args ...any) error {
	return &InvalidError{Detail: fmt.Sprintf(format, args...)}
}
