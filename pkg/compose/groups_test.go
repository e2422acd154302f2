package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/treesmith/treesmith/pkg/types"
)

func TestGroupFilter(t *testing.T) {
	tests := []struct {
		name    string
		include []string
		exclude []string
		groups  []string
		enabled bool
	}{
		{
			name:    "no filters enables everything",
			groups:  []string{"core"},
			enabled: true,
		},
		{
			name:    "exclude match disables",
			exclude: []string{"darwin"},
			groups:  []string{"core", "darwin"},
			enabled: false,
		},
		{
			name:    "exclude miss keeps enabled",
			exclude: []string{"darwin"},
			groups:  []string{"core"},
			enabled: true,
		},
		{
			name:    "include match enables",
			include: []string{"core"},
			groups:  []string{"core", "pdk"},
			enabled: true,
		},
		{
			name:    "include miss disables",
			include: []string{"core"},
			groups:  []string{"pdk"},
			enabled: false,
		},
		{
			name:    "include wins over exclude",
			include: []string{"core"},
			exclude: []string{"core"},
			groups:  []string{"core"},
			enabled: true,
		},
		// A directory with no groups is enabled under exclude filtering
		// (vacuous non-intersection) but excluded under include
		// filtering (it can never intersect the allowlist).
		{
			name:    "groupless enabled with empty include",
			exclude: []string{"darwin"},
			groups:  nil,
			enabled: true,
		},
		{
			name:    "groupless excluded with non-empty include",
			include: []string{"core"},
			groups:  nil,
			enabled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewGroupFilter(tt.include, tt.exclude)
			d := &types.Directory{Name: "d", Groups: tt.groups}
			assert.Equal(t, tt.enabled, f.Enabled(d))
		})
	}
}

func TestGroupFilterExplicitOverride(t *testing.T) {
	f := NewGroupFilter(nil, []string{"darwin"})

	off := false
	d := &types.Directory{Name: "d", Groups: []string{"core"}, Enable: &off}
	assert.False(t, f.Enabled(d), "explicit enable=false wins over group computation")

	on := true
	d2 := &types.Directory{Name: "d2", Groups: []string{"darwin"}, Enable: &on}
	assert.True(t, f.Enabled(d2), "explicit enable=true wins over exclusion")
}
