package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	config := DefaultConfig()
	config.ProjectName = "Test Project"
	return config
}

func TestConfigManager_ValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty project name",
			mutate:  func(c *Config) { c.ProjectName = "" },
			wantErr: true,
		},
		{
			name:    "empty chunk",
			mutate:  func(c *Config) { c.Rules = append(c.Rules, Rule{}) },
			wantErr: true,
		},
		{
			name: "duplicate rule",
			mutate: func(c *Config) {
				c.Rules = append(c.Rules, Rule{Chunk: c.Rules[0].Chunk})
			},
			wantErr: true,
		},
		{
			name: "same chunk with different mode",
			mutate: func(c *Config) {
				c.Rules = append(c.Rules, Rule{Chunk: c.Rules[0].Chunk, Spanning: true, Style: StyleSpec{Size: 12}})
			},
		},
		{
			name:    "rule without style",
			mutate:  func(c *Config) { c.Rules = append(c.Rules, Rule{Chunk: "x"}) },
			wantErr: true,
		},
		{
			name:    "invalid default color",
			mutate:  func(c *Config) { c.DefaultStyle.Color = "#12345" },
			wantErr: true,
		},
		{
			name:    "invalid highlight",
			mutate:  func(c *Config) { c.Rules[0].Style.Highlight = "yellow" },
			wantErr: true,
		},
		{
			name:   "highlight none",
			mutate: func(c *Config) { c.Rules[0].Style.Highlight = "None" },
		},
		{
			name:    "unknown underline",
			mutate:  func(c *Config) { c.Rules[0].Style.Underline = "zigzag" },
			wantErr: true,
		},
		{
			name:    "suffix with separator",
			mutate:  func(c *Config) { c.Output.Suffix = "out/x" },
			wantErr: true,
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.Processing.MaxConcurrentFiles = 0 },
			wantErr: true,
		},
		{
			name:    "bad exclude pattern",
			mutate:  func(c *Config) { c.Processing.ExcludePatterns = []string{"[a-"} },
			wantErr: true,
		},
	}

	manager := NewConfigManager()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.mutate(config)

			err := manager.ValidateConfig(config)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigManager_ValidateNil(t *testing.T) {
	assert.Error(t, NewConfigManager().ValidateConfig(nil))
}

func TestRule_IsEnabled(t *testing.T) {
	on, off := true, false
	assert.True(t, Rule{}.IsEnabled())
	assert.True(t, Rule{Enabled: &on}.IsEnabled())
	assert.False(t, Rule{Enabled: &off}.IsEnabled())
}
