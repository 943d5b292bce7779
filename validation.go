// validation.go
package voiceprefs

import (
	"fmt"
)

func validateValue(value string, def PreferenceDefinition) error {
	if len(def.AllowedValues) == 0 {
		return nil
	}
	for _, allowed := range def.AllowedValues {
		if value == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: %q not in allowed values for %q", ErrInvalidValue, value, def.Key)
}
