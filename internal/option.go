package internal

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	dryRun bool
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithDryRun forces dry-run mode regardless of the configured value.
func WithDryRun() Option {
	return func(a *application) {
		a.dryRun = true
	}
}
