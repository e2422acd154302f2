package config

import (
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/treesmith/treesmith/pkg/errors"
)

// starterConfig is the example configuration rendered by init. The toml
// tags match the koanf keys the loader reads, so the template and the
// loader cannot drift apart.
type starterConfig struct {
	Branch        string          `toml:"branch"`
	OutputDir     string          `toml:"output_dir"`
	ExcludeGroups []string        `toml:"exclude_groups"`
	Source        []starterSource `toml:"source"`
}

type starterSource struct {
	Name     string `toml:"name"`
	Manifest string `toml:"manifest"`
	Lockfile string `toml:"lockfile"`
}

const configHeader = `# treesmith workspace configuration.
#
# Uncomment and edit the values below, then run "treesmith resolve" to
# inspect the composed tree. See "treesmith help manifests" for the
# full format.

`

// GenerateConfigContent renders the starter configuration file content
// with every value commented out
func GenerateConfigContent() (string, error) {
	content, err := starterContent()
	if err != nil {
		return "", err
	}
	return configHeader + commentOutValues(content), nil
}

// starterContent marshals the example configuration to TOML.
func starterContent() (string, error) {
	starter := starterConfig{
		Branch:        "main",
		OutputDir:     "build",
		ExcludeGroups: []string{"nonfree"},
		Source: []starterSource{
			{
				Name:     "platform",
				Manifest: "manifests/platform.json",
				Lockfile: "manifests/platform.lock.json",
			},
		},
	}

	data, err := toml.Marshal(starter)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render starter configuration")
	}
	return string(data), nil
}

// commentOutValues comments out every non-blank, non-comment line.
// Table headers are commented too: an uncommented [[source]] would
// declare a real, empty source entry.
func commentOutValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}
		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
