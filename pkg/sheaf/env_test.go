package sheaf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvName(t *testing.T) {
	assert.Equal(t, "APP_LOG_LEVEL", EnvName("app", "log", "level"))
	assert.Equal(t, "LOG_LEVEL", EnvName("", "log", "level"))
}

func TestUpdateFromEnv(t *testing.T) {
	cfg, err := testSchema().Default()
	require.NoError(t, err)

	t.Setenv("TEST_A_OPTA", "12")
	t.Setenv("TEST_B_NAME", "b")
	t.Setenv("TEST_A_CLI_ONLY", "true")

	applied, err := cfg.UpdateFromEnv("test")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A.optA", "B.name"}, applied)

	v, _ := cfg.MustSection("A").Get("optA")
	assert.Equal(t, 12, v)
	v, _ = cfg.MustSection("B").Get("name")
	assert.Equal(t, "b", v)
	v, _ = cfg.MustSection("A").Get("cli_only")
	assert.Equal(t, false, v, "options excluded from files ignore the environment")
}

func TestUpdateFromEnv_Invalid(t *testing.T) {
	cfg, err := testSchema().Default()
	require.NoError(t, err)

	t.Setenv("TEST_A_OPTA", "twelve")
	_, err = cfg.UpdateFromEnv("test")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}
