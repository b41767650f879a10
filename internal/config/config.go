package config

// Config is the processor process configuration.
type Config struct {
	// Endpoint is the validator address, e.g. tcp://localhost:4004 or
	// ws://localhost:8080/validator.
	Endpoint string `yaml:"endpoint"`

	Log LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}
