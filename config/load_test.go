package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 10000, cfg.MaxIter)
	require.InDelta(t, 0.006, cfg.Tol, 1e-12)
	require.Equal(t, "http://api.unipept.ugent.be", cfg.UnipeptURL)
}

func TestLoad_YAMLFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "peptonizer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("alpha: 0.9\nbeta: 0.01\nprior: 0.3\nmax_taxa: 50\ntarget_rank: genus\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.InDelta(t, 0.9, cfg.Alpha, 1e-12)
	require.InDelta(t, 0.01, cfg.Beta, 1e-12)
	require.InDelta(t, 0.3, cfg.Prior, 1e-12)
	require.Equal(t, 50, cfg.MaxTaxa)
	require.Equal(t, "genus", cfg.TargetRank)
	require.Equal(t, 10000, cfg.MaxIter, "unset fields keep their default")
}

func TestLoad_EnvVarOverridesFileAndDefault(t *testing.T) {
	t.Setenv("PEPTONIZER_TOL", "0.01")
	path := filepath.Join(t.TempDir(), "peptonizer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tol: 0.5\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.InDelta(t, 0.01, cfg.Tol, 1e-12)
}

func TestLoad_MissingExplicitFileReturnsError(t *testing.T) {
	_, err := Load("/nonexistent/peptonizer.yaml")
	require.Error(t, err)
}
