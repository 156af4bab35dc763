package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix every environment variable override uses, e.g.
// PEPTONIZER_ALPHA, PEPTONIZER_UNIPEPT_URL.
const EnvPrefix = "PEPTONIZER"

// Load builds a Config from the engine's documented defaults, an
// optional YAML file at path (skipped if path is empty; a non-empty path
// that cannot be read is an error), and any
// PEPTONIZER_-prefixed environment variable overrides, in that order of
// increasing precedence.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	def := defaults()
	v.SetDefault("alpha", def.Alpha)
	v.SetDefault("beta", def.Beta)
	v.SetDefault("regularized", def.Regularized)
	v.SetDefault("prior", def.Prior)
	v.SetDefault("max_iter", def.MaxIter)
	v.SetDefault("tol", def.Tol)
	v.SetDefault("unipept_url", def.UnipeptURL)
	v.SetDefault("taxonomy_batch_size", def.TaxonomyBatchSize)
	v.SetDefault("target_rank", def.TargetRank)
	v.SetDefault("max_taxa", def.MaxTaxa)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
			}
		}
	}

	return Config{
		Alpha:             v.GetFloat64("alpha"),
		Beta:              v.GetFloat64("beta"),
		Regularized:       v.GetBool("regularized"),
		Prior:             v.GetFloat64("prior"),
		MaxIter:           v.GetInt("max_iter"),
		Tol:               v.GetFloat64("tol"),
		UnipeptURL:        v.GetString("unipept_url"),
		TaxonomyBatchSize: v.GetInt("taxonomy_batch_size"),
		TargetRank:        v.GetString("target_rank"),
		MaxTaxa:           v.GetInt("max_taxa"),
	}, nil
}
