package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ProjectFileName is the optional per-project configuration file.
const ProjectFileName = "saffron.yaml"

// DefaultPollIntervalMs is the scheduler's multiplexed-wait quantum.
const DefaultPollIntervalMs = 200

// Project is the parsed saffron.yaml configuration.
type Project struct {
	// ModulePaths are extra directories searched for imports, relative
	// to the project root.
	ModulePaths []string `yaml:"module_paths"`

	// PollIntervalMs overrides the scheduler poll quantum.
	PollIntervalMs int `yaml:"poll_interval_ms"`
}

// LoadProject reads saffron.yaml from dir. A missing file yields the
// defaults rather than an error.
func LoadProject(dir string) (*Project, error) {
	p := &Project{PollIntervalMs: DefaultPollIntervalMs}

	data, err := os.ReadFile(filepath.Join(dir, ProjectFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return nil, fmt.Errorf("reading %s: %w", ProjectFileName, err)
	}

	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ProjectFileName, err)
	}
	if p.PollIntervalMs <= 0 {
		p.PollIntervalMs = DefaultPollIntervalMs
	}
	return p, nil
}

// PollInterval returns the poll quantum as a duration.
func (p *Project) PollInterval() time.Duration {
	return time.Duration(p.PollIntervalMs) * time.Millisecond
}
