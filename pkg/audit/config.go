package audit

// Config controls the moderation history.
type Config struct {
	Enabled       bool // Whether status changes are recorded
	RetentionDays int  // Default 90; zero keeps events forever
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		RetentionDays: 90,
	}
}
