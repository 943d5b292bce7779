package voiceprefs

// Preference keys understood by the session layer. These are registered as
// definitions on every new Manager; additional keys can be defined by the
// embedding application.
const (
	// PrefVoiceID is the selected voice identifier. Empty until the user
	// picks a voice.
	PrefVoiceID = "voice_id"
	// PrefSSMLMode is the text pre-processing style applied before
	// synthesis.
	PrefSSMLMode = "ssml_mode"
	// PrefRespFormat is the audio response format delivered to the user.
	PrefRespFormat = "resp_format"
)

// Allowed values for PrefSSMLMode.
const (
	SSMLModeOff            = "off"
	SSMLModeAnnouncer      = "announcer"
	SSMLModeConversational = "conversational"
)

// Allowed values for PrefRespFormat.
const (
	FormatOGG  = "ogg"
	FormatMP3  = "mp3"
	FormatBoth = "both"
)

// PreferenceDefinition declares a known preference key: its default and,
// optionally, the closed set of values it accepts. Definitions are
// registered with Manager.DefinePreference; SetPreference rejects keys
// without a definition.
type PreferenceDefinition struct {
	// Key is the unique string identifier for the preference.
	Key string `json:"key"`
	// DefaultValue is returned by GetPreference when the user has not set
	// the preference and the caller supplied no fallback.
	DefaultValue string `json:"default_value,omitempty"`
	// AllowedValues, if non-empty, restricts the preference to one of the
	// listed values.
	AllowedValues []string `json:"allowed_values,omitempty"`
}

// defaultDefinitions are the preference keys every Manager starts with.
func defaultDefinitions() []PreferenceDefinition {
	return []PreferenceDefinition{
		{Key: PrefVoiceID},
		{
			Key:          PrefSSMLMode,
			DefaultValue: SSMLModeOff,
			AllowedValues: []string{
				SSMLModeOff, SSMLModeAnnouncer, SSMLModeConversational,
			},
		},
		{
			Key:          PrefRespFormat,
			DefaultValue: FormatBoth,
			AllowedValues: []string{FormatOGG, FormatMP3, FormatBoth},
		},
	}
}
