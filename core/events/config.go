package events

// Config holds configuration for the NATS event publisher.
type Config struct {
	// URL is the NATS server URL. Empty disables publishing.
	URL string `mapstructure:"url" default:""`
	// Token is the optional NATS auth token.
	Token string `mapstructure:"token" default:""`
	// SubjectPrefix prefixes every published subject.
	SubjectPrefix string `mapstructure:"subject_prefix" default:"reconciler"`
}

// Enabled reports whether a NATS server is configured.
func (c Config) Enabled() bool {
	return c.URL != ""
}
