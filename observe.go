package voiceprefs

import (
	"time"
)

// slowOpThreshold is the duration above which a successful operation is
// logged even outside debug level.
const slowOpThreshold = time.Second

// Instrument runs op and reports its outcome and duration to the logger.
// Failures are always logged; successes are logged only when they exceed
// slowOpThreshold. This is the explicit instrumentation boundary for
// operations that reach external providers.
func Instrument(l Logger, name string, op func() error) error {
	if l == nil {
		l = NopLogger()
	}
	start := time.Now()
	err := op()
	elapsed := time.Since(start)
	if err != nil {
		l.Error("operation failed", "op", name, "elapsed_ms", elapsed.Milliseconds(), "error", err)
		return err
	}
	if elapsed > slowOpThreshold {
		l.Info("slow operation", "op", name, "elapsed_ms", elapsed.Milliseconds())
	}
	return nil
}
