package app

// Config holds everything needed to construct an App.
type Config struct {
	ConfigPath string // .hcl file; empty means "use built-in defaults"

	HealthcheckPort int // overrides config.Model.Healthcheck.Port if > 0

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg. Unlike the teacher's grid/modules paths,
// nothing here is strictly required: a scheduler with no config file, no
// monitor, and no healthcheck server is still a valid, fully functional
// TaskQueue host.
func NewConfig(cfg Config) (*Config, error) {
	return &cfg, nil
}
