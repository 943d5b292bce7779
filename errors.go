// errors.go
package voiceprefs

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input parameters")
	ErrInvalidKey           = errors.New("invalid preference key")
	ErrInvalidValue         = errors.New("invalid preference value")
	ErrPreferenceNotDefined = errors.New("preference not defined")
	ErrProvider             = errors.New("provider request failed")
	ErrNotConfigured        = errors.New("required dependency not configured")
)
