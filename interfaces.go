// Package voiceprefs defines the provider interfaces consumed by the
// session core. Concrete implementations live in their own packages (see
// elevenlabs) and are injected at construction.
package voiceprefs

import (
	"context"

	"github.com/zerotts/voiceprefs/catalog"
)

// VoiceCatalogProvider lists the selectable voices offered by the external
// TTS service. Implementations fail with an error wrapping ErrProvider on
// network or authorization problems.
type VoiceCatalogProvider interface {
	Voices(ctx context.Context) ([]catalog.VoiceRecord, error)
}

// QuotaProvider reports the remaining character budget of the external TTS
// account. A response that lacks usable quota fields is not a failure; it
// yields an unknown Quota. Network failures wrap ErrProvider.
type QuotaProvider interface {
	RemainingQuota(ctx context.Context) (Quota, error)
}
