package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEnvInt(t *testing.T) {
	defer os.Unsetenv("GRIDSNAKE_TEST_INT")

	require.Equal(t, 7, getEnvInt("GRIDSNAKE_TEST_INT", 7))

	os.Setenv("GRIDSNAKE_TEST_INT", "42")
	require.Equal(t, 42, getEnvInt("GRIDSNAKE_TEST_INT", 7))

	os.Setenv("GRIDSNAKE_TEST_INT", "forty two")
	require.Equal(t, 7, getEnvInt("GRIDSNAKE_TEST_INT", 7))
}

func TestGetEnvString(t *testing.T) {
	defer os.Unsetenv("GRIDSNAKE_TEST_STRING")

	require.Equal(t, "default", getEnvString("GRIDSNAKE_TEST_STRING", "default"))

	os.Setenv("GRIDSNAKE_TEST_STRING", "")
	require.Equal(t, "", getEnvString("GRIDSNAKE_TEST_STRING", "default"))

	os.Setenv("GRIDSNAKE_TEST_STRING", "#00ff00")
	require.Equal(t, "#00ff00", getEnvString("GRIDSNAKE_TEST_STRING", "default"))
}
