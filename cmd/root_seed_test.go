package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/callcenter-sim/sim"
	"github.com/inference-sim/callcenter-sim/sim/experiment"
)

func runRecords(t *testing.T, cfg experiment.Config) []sim.ReplicationRecord {
	t.Helper()
	records, err := experiment.Run(context.Background(), cfg)
	require.NoError(t, err)
	return records
}

// TestSeedOverride_DifferentSeeds_DifferentRecords verifies that when the
// CLI seed overrides the file seed, different seeds produce different records.
func TestSeedOverride_DifferentSeeds_DifferentRecords(t *testing.T) {
	// GIVEN an experiment file with seed 42
	path := writeFile(t, "exp.yaml", "seed: 42\nreplications: 3\nagent_counts: [2]\n")

	// WHEN --seed overrides it to different values
	cfg1, err := resolveConfig(newRunConfig(t, "--config", path, "--seed", "100"))
	require.NoError(t, err)
	cfg2, err := resolveConfig(newRunConfig(t, "--config", path, "--seed", "200"))
	require.NoError(t, err)

	// THEN the records differ
	assert.Equal(t, int64(100), cfg1.Seed)
	assert.Equal(t, int64(200), cfg2.Seed)
	assert.NotEqual(t, runRecords(t, cfg1), runRecords(t, cfg2))
}

// TestSeedOverride_SameSeed_IdenticalRecords verifies determinism: the same
// seed reproduces identical records.
func TestSeedOverride_SameSeed_IdenticalRecords(t *testing.T) {
	cfg1, err := resolveConfig(newRunConfig(t, "--seed", "123", "--replications", "3"))
	require.NoError(t, err)
	cfg2, err := resolveConfig(newRunConfig(t, "--seed", "123", "--replications", "3"))
	require.NoError(t, err)

	assert.Equal(t, runRecords(t, cfg1), runRecords(t, cfg2))
}

// TestSeedOverride_FileSeedPreserved_WhenCLINotSpecified verifies that when
// --seed is not passed, the file seed governs the experiment.
func TestSeedOverride_FileSeedPreserved_WhenCLINotSpecified(t *testing.T) {
	// GIVEN a file seed of 7 and no --seed flag
	path := writeFile(t, "exp.yaml", "seed: 7\nreplications: 2\n")
	cfg, err := resolveConfig(newRunConfig(t, "--config", path))
	require.NoError(t, err)

	// THEN the file seed is used, not the flag default
	assert.Equal(t, int64(7), cfg.Seed)
	direct := experiment.DefaultConfig()
	direct.Seed = 7
	direct.Replications = 2
	assert.Equal(t, runRecords(t, direct), runRecords(t, cfg))
}

func TestSeedOverride_Environment(t *testing.T) {
	t.Setenv("CALLCENTER_SEED", "9")
	cfg, err := resolveConfig(newRunConfig(t))
	require.NoError(t, err)
	assert.Equal(t, int64(9), cfg.Seed)

	// An explicit flag beats the environment
	cfg, err = resolveConfig(newRunConfig(t, "--seed", "11"))
	require.NoError(t, err)
	assert.Equal(t, int64(11), cfg.Seed)
}
