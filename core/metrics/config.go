package metrics

// Config holds configuration for the Prometheus endpoint.
type Config struct {
	// Enabled exposes the metrics endpoint on the HTTP server.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Namespace prefixes every metric name.
	Namespace string `mapstructure:"namespace" default:"reconciler"`
	// Path is the HTTP path of the metrics endpoint.
	Path string `mapstructure:"path" default:"/metrics"`
}
