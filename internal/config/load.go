package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Paths probed when no --config flag is given.
var defaultPaths = []string{
	"snap-restore.yaml",
	"/etc/snap-restore/config.yaml",
}

// Env files loaded (if present) before the config file, so that $(VAR)
// placeholders and bare environment defaults resolve.
var envFiles = []string{
	".env",
	"/etc/snap-restore.env",
}

// matches $(VAR_NAME)
var envPattern = regexp.MustCompile(`\$\(([A-Za-z0-9_]+)\)`)

// replaces $(VAR) with os.Getenv(VAR)
func expandEnvVars(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(m string) string {
		key := mapEnvKey(envPattern.FindStringSubmatch(m)[1])
		return os.Getenv(key)
	})
}

// Load reads the configuration file at path. An empty path probes the
// default locations; a missing default file just yields Default().
// An explicitly named file must exist.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	explicit := path != ""
	candidates := []string{path}
	if !explicit {
		candidates = defaultPaths
	}

	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if err != nil {
			if os.IsNotExist(err) && !explicit {
				continue
			}
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		// expand $(ENV_VAR) placeholders
		expanded := expandEnvVars(string(data))

		cfg := Default()
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("unmarshalling yaml: %w", err)
		}
		return cfg, nil
	}

	return Default(), nil
}

// loadEnvFiles populates the process environment from the well-known env
// files. Existing variables win, matching godotenv semantics.
func loadEnvFiles() {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		_ = godotenv.Load(f)
	}
}
