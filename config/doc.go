// Package config loads the engine's tunables (noisy-OR parameters,
// convergence limits, taxonomy service settings) from environment
// variables and an optional YAML file into an immutable Config value,
// via github.com/spf13/viper.
package config
