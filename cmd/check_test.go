// Copyright © 2026 The elmguard authors

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henriquecbuss/elmguard/lint"
)

func loadConfigYAML(t *testing.T, content string) (lint.Config, error) {
	t.Helper()
	logger = zerolog.Nop()
	path := filepath.Join(t.TempDir(), ".elmguard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	viper.Reset()
	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())
	return loadRuleConfig()
}

func TestLoadRuleConfig(t *testing.T) {
	cfg, err := loadConfigYAML(t, `forbidden:
  - functions: Html.input
    allowed-modules: View.Input
  - functions: [NativeModule.unsafeFunction, NativeModule.otherUnsafe]
    allowed-modules: [SomeModule, SomeOtherModule]
`)
	require.NoError(t, err)
	require.Len(t, cfg.Bindings, 2)
	// Scalar values stand in for one-element lists.
	assert.Equal(t, lint.Binding{
		Functions: []string{"Html.input"},
		Modules:   []string{"View.Input"},
	}, cfg.Bindings[0])
	assert.Equal(t, lint.Binding{
		Functions: []string{"NativeModule.unsafeFunction", "NativeModule.otherUnsafe"},
		Modules:   []string{"SomeModule", "SomeOtherModule"},
	}, cfg.Bindings[1])
}

func TestLoadRuleConfig_Empty(t *testing.T) {
	cfg, err := loadConfigYAML(t, "")
	require.NoError(t, err)
	assert.Empty(t, cfg.Bindings)
}

func TestLoadRuleConfig_Invalid(t *testing.T) {
	_, err := loadConfigYAML(t, `forbidden:
  - functions: input
    allowed-modules: View.Input
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a module-qualified")
}

func TestLoadRuleConfig_MissingAllowList(t *testing.T) {
	_, err := loadConfigYAML(t, `forbidden:
  - functions: Html.input
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no allowed modules")
}
