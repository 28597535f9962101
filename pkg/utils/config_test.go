package utils

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("with nil values", func(t *testing.T) {
		config := NewConfig(nil)
		require.NotNil(t, config)
		assert.False(t, config.Has("anything"))
	})

	t.Run("with values", func(t *testing.T) {
		values := map[string]string{
			"key1": "value1",
			"key2": "value2",
		}
		config := NewConfig(values)

		assert.Equal(t, "value1", config.Get("key1"))
		assert.Equal(t, "value2", config.Get("key2"))

		// Verify it's a copy, not a reference
		values["key1"] = "modified"
		assert.NotEqual(t, "modified", config.Get("key1"))
	})
}

func TestNewConfigFromEnv(t *testing.T) {
	// Create a temporary .env file for testing
	envContent := "TEST_KEY1=test_value1\nTEST_KEY2=test_value2\n"
	tmpFile, err := os.CreateTemp("", "test_env_*.env")
	require.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	_, err = tmpFile.WriteString(envContent)
	require.NoError(t, err)
	tmpFile.Close()

	config := NewConfigFromEnv(tmpFile.Name())

	require.NotNil(t, config)
}

func TestConfigGetWithDefault(t *testing.T) {
	config := NewConfig(map[string]string{
		"existing": "value",
		"empty":    "",
	})

	t.Run("existing key", func(t *testing.T) {
		assert.Equal(t, "value", config.GetWithDefault("existing", "fallback"))
	})

	t.Run("missing key", func(t *testing.T) {
		assert.Equal(t, "fallback", config.GetWithDefault("missing", "fallback"))
	})

	t.Run("empty value falls back", func(t *testing.T) {
		assert.Equal(t, "fallback", config.GetWithDefault("empty", "fallback"))
	})
}

func TestConfigGetBool(t *testing.T) {
	config := NewConfig(map[string]string{
		"true_val":  "true",
		"false_val": "false",
		"yes_val":   "yes",
		"on_val":    "on",
		"junk_val":  "junk",
	})

	assert.True(t, config.GetBool("true_val"))
	assert.False(t, config.GetBool("false_val"))
	assert.True(t, config.GetBool("yes_val"))
	assert.True(t, config.GetBool("on_val"))
	assert.False(t, config.GetBool("junk_val"))
	assert.False(t, config.GetBool("missing"))
}

func TestConfigSet(t *testing.T) {
	config := NewConfig(nil)

	config.Set("key", "value")
	assert.Equal(t, "value", config.Get("key"))
	assert.True(t, config.Has("key"))
}
