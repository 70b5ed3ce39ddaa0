package reconcile

import "time"

// Config holds the reconciliation settings loaded from the environment.
type Config struct {
	// ChunkSize is the number of records per chunk.
	ChunkSize int `mapstructure:"chunk_size" default:"1000"`
	// Workers is the number of chunk pairs matched concurrently.
	Workers int `mapstructure:"workers" default:"4"`
	// TimeoutSeconds bounds a whole run. 0 disables the timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"0"`
	// Delimiter separates fields on a line.
	Delimiter string `mapstructure:"delimiter" default:","`
	// FieldPolicy is "strict" or "pad".
	FieldPolicy string `mapstructure:"field_policy" default:"strict"`
	// Pairing is "positional" or "hash".
	Pairing string `mapstructure:"pairing" default:"positional"`
	// InputA is the default location of source A.
	InputA string `mapstructure:"input_a" default:""`
	// InputB is the default location of source B.
	InputB string `mapstructure:"input_b" default:""`
	// Output is the default location of the reconciled file.
	Output string `mapstructure:"output" default:""`
	// CacheTTLSeconds keeps HTTP results for reuse. 0 disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"0"`
}

// Options converts the configuration into engine options.
func (c Config) Options() Options {
	return Options{
		ChunkSize:   c.ChunkSize,
		Workers:     c.Workers,
		Delimiter:   c.Delimiter,
		FieldPolicy: FieldPolicy(c.FieldPolicy),
		Pairing:     Pairing(c.Pairing),
		Timeout:     time.Duration(c.TimeoutSeconds) * time.Second,
		SourceA:     c.InputA,
		SourceB:     c.InputB,
	}
}

// CacheTTL returns the result cache lifetime.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
