package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/shorsim/internal/quantum"
	"github.com/san-kum/shorsim/internal/shor"
)

const (
	DefaultN                 = 15
	DefaultMaxBase           = 20
	DefaultMaxAttempts       = 5
	DefaultSeed              = 42
	DefaultParallelThreshold = 1 << 12
	DefaultRuns              = 16
	DefaultDataDir           = ".shorsim"
)

type Config struct {
	N           int            `yaml:"n" validate:"gte=4,lte=255"`
	MaxBase     int            `yaml:"max_base" validate:"gte=3"`
	MaxAttempts int            `yaml:"max_attempts" validate:"gte=1,lte=1000"`
	Seed        uint64         `yaml:"seed"`
	RegisterA   int            `yaml:"register_a" validate:"gte=0,lte=20"`
	Engine      EngineConfig   `yaml:"engine"`
	Ensemble    EnsembleConfig `yaml:"ensemble"`
	Log         LogConfig      `yaml:"log"`
	DataDir     string         `yaml:"data_dir" validate:"required"`
}

type EngineConfig struct {
	Workers           int `yaml:"workers" validate:"gte=0,lte=256"`
	ParallelThreshold int `yaml:"parallel_threshold" validate:"gte=0"`
}

type EnsembleConfig struct {
	Runs        int `yaml:"runs" validate:"gte=1,lte=10000"`
	Concurrency int `yaml:"concurrency" validate:"gte=0"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"loglevel"`
	Pretty bool   `yaml:"pretty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("loglevel", validateLogLevel); err != nil {
		panic(err)
	}
}

func validateLogLevel(fl validator.FieldLevel) bool {
	_, err := zerolog.ParseLevel(fl.Field().String())
	return err == nil
}

func DefaultConfig() *Config {
	return &Config{
		N:           DefaultN,
		MaxBase:     DefaultMaxBase,
		MaxAttempts: DefaultMaxAttempts,
		Seed:        DefaultSeed,
		Engine: EngineConfig{
			ParallelThreshold: DefaultParallelThreshold,
		},
		Ensemble: EnsembleConfig{
			Runs: DefaultRuns,
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
		DataDir: DefaultDataDir,
	}
}

// Validate checks the struct tags and that N fits the simulator.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := shor.SizeFor(c.N, c.RegisterA); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// NewEngine returns the gate engine described by the config. Zero workers
// keeps the host default.
func (c *Config) NewEngine() *quantum.Engine {
	e := quantum.NewEngine()
	if c.Engine.Workers > 0 {
		e.Workers = c.Engine.Workers
	}
	e.ParallelThreshold = c.Engine.ParallelThreshold
	return e
}

// Factorizer maps the config onto the driver's retry policy.
func (c *Config) Factorizer(logger zerolog.Logger) shor.Config {
	return shor.Config{
		MaxBase:     c.MaxBase,
		MaxAttempts: c.MaxAttempts,
		Seed:        c.Seed,
		RegisterA:   c.RegisterA,
		Engine:      c.NewEngine(),
		Logger:      logger,
	}
}
