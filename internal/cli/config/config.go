// File: config.go
// Role: CLI configuration: gemflux.yaml discovery, GEMFLUX_* environment
//       overrides, and validated defaults for the solver knobs.

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/katalvlaran/gemflux/fba"
)

// Config is the gemflux CLI configuration. Values come from gemflux.yaml in
// the working directory (or an explicit --config path), with GEMFLUX_*
// environment variables taking precedence; nested keys use underscores,
// e.g. GEMFLUX_SOLVER_WORKERS=8.
type Config struct {
	// NoColor disables colored terminal output, same as --no-color.
	NoColor bool `mapstructure:"no_color"`

	// Verbose enables structured debug logs, same as --verbose.
	Verbose bool `mapstructure:"verbose"`

	// Solver carries the LP defaults applied when a command flag is unset.
	Solver SolverConfig `mapstructure:"solver"`

	// Reconstruct locates the external reconstruction tool.
	Reconstruct ReconstructConfig `mapstructure:"reconstruct"`
}

// SolverConfig mirrors the fba.Options knobs every analysis command shares.
type SolverConfig struct {
	Epsilon           float64 `mapstructure:"epsilon"`
	FractionOfOptimum float64 `mapstructure:"fraction_of_optimum"`
	Workers           int     `mapstructure:"workers"`
}

// ReconstructConfig names the reconstruction binary and any extra arguments
// passed on every invocation.
type ReconstructConfig struct {
	Binary string   `mapstructure:"binary"`
	Args   []string `mapstructure:"args"`
}

// Load reads the configuration. An explicit path must exist and parse;
// without one, a missing gemflux.yaml is fine and the defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults track the library's single-source-of-truth constants.
	v.SetDefault("no_color", false)
	v.SetDefault("verbose", false)
	v.SetDefault("solver.epsilon", fba.DefaultEpsilon)
	v.SetDefault("solver.fraction_of_optimum", fba.DefaultFractionOfOptimum)
	v.SetDefault("solver.workers", fba.DefaultWorkers)
	v.SetDefault("reconstruct.binary", "carve")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("gemflux")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("GEMFLUX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Only the implicit ./gemflux.yaml may be absent.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || path != "" {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate rejects values the solvers would refuse later, with a clearer
// message up front.
func (c *Config) validate() error {
	if c.Solver.Epsilon <= 0 {
		return fmt.Errorf("config: solver.epsilon must be positive, got %g", c.Solver.Epsilon)
	}
	if f := c.Solver.FractionOfOptimum; f <= 0 || f > 1 {
		return fmt.Errorf("config: solver.fraction_of_optimum must be in (0,1], got %g", f)
	}
	if c.Solver.Workers < 1 {
		return fmt.Errorf("config: solver.workers must be at least 1, got %d", c.Solver.Workers)
	}
	if c.Reconstruct.Binary == "" {
		return fmt.Errorf("config: reconstruct.binary must not be empty")
	}

	return nil
}
