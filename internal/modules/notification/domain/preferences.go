package domain

// Preferences are the four independent per-user channel toggles, derived
// from the user settings aggregate.
type Preferences struct {
	EmailEnabled bool `json:"email_enabled"`
	SMSEnabled   bool `json:"sms_enabled"`
	PushEnabled  bool `json:"push_enabled"`
	InAppEnabled bool `json:"in_app_enabled"`
}

// DefaultPreferences are applied when a user has no stored settings.
func DefaultPreferences() Preferences {
	return Preferences{
		EmailEnabled: true,
		SMSEnabled:   false,
		PushEnabled:  false,
		InAppEnabled: true,
	}
}

// FallbackPreferences are applied when the settings lookup itself fails.
// More restrictive than the defaults: only the cheap real-time channel
// stays on.
func FallbackPreferences() Preferences {
	return Preferences{
		EmailEnabled: false,
		SMSEnabled:   false,
		PushEnabled:  false,
		InAppEnabled: true,
	}
}
