package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treesmith/treesmith/pkg/errors"
)

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Branch: "main",
			Sources: []SourceConfig{
				{Name: "platform", Manifest: "m.json", Lockfile: "l.json"},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing branch",
			mutate:  func(c *Config) { c.Branch = "" },
			wantErr: true,
		},
		{
			name: "no sources and no dirs",
			mutate: func(c *Config) {
				c.Sources = nil
			},
			wantErr: true,
		},
		{
			name: "dirs only is allowed",
			mutate: func(c *Config) {
				c.Sources = nil
				c.Dirs = map[string]DirConfig{"kernel": {}}
			},
		},
		{
			name: "source without manifest",
			mutate: func(c *Config) {
				c.Sources[0].Manifest = ""
			},
			wantErr: true,
		},
		{
			name: "source without lockfile",
			mutate: func(c *Config) {
				c.Sources[0].Lockfile = ""
			},
			wantErr: true,
		},
		{
			name: "duplicate source names",
			mutate: func(c *Config) {
				c.Sources = append(c.Sources, SourceConfig{Name: "platform", Manifest: "m2.json", Lockfile: "l2.json"})
			},
			wantErr: true,
		},
		{
			name: "invalid dir name",
			mutate: func(c *Config) {
				c.Dirs = map[string]DirConfig{"../escape": {}}
			},
			wantErr: true,
		},
		{
			name: "invalid dir relpath",
			mutate: func(c *Config) {
				c.Dirs = map[string]DirConfig{"kernel": {RelPath: "/abs"}}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestToDirectoryIndependence(t *testing.T) {
	enable := true
	dc := DirConfig{
		Enable:    &enable,
		Patches:   []string{"a.patch"},
		Copyfiles: map[string]string{"LICENSE": "LICENSE"},
	}

	d := dc.ToDirectory("vendor/x")

	// The directory must not alias the config's maps and slices.
	d.Patches[0] = "b.patch"
	d.Copyfiles["LICENSE"] = "COPYING"
	*d.Enable = false

	assert.Equal(t, "a.patch", dc.Patches[0])
	assert.Equal(t, "LICENSE", dc.Copyfiles["LICENSE"])
	assert.True(t, *dc.Enable)
}

func TestGlobalAccess(t *testing.T) {
	Initialize(&Config{Branch: "main"})
	assert.Equal(t, "main", Get().Branch)

	Initialize(nil)
	assert.Equal(t, "build", Get().OutputDir)
}
