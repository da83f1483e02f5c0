package config

type Config struct {
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Restore  RestoreConfig  `yaml:"restore"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type SnapshotConfig struct {
	Dir        string `yaml:"dir"`        // base directory holding instances
	SearchPath string `yaml:"searchPath"` // optional search root inside an instance
	AutoDetect bool   `yaml:"autoDetect"` // scan mounts for snapshot roots
}

type RestoreConfig struct {
	DestRoot   string `yaml:"destRoot"`   // re-root destinations here ("" = original path)
	Link       bool   `yaml:"link"`       // hard-link instead of copy
	Parallel   int    `yaml:"parallel"`   // concurrent deep-search walkers
	MaxDepth   int    `yaml:"maxDepth"`   // shallow search depth
	MaxResults int    `yaml:"maxResults"` // cap on merged search results
}

type LoggingConfig struct {
	Dir      string `yaml:"dir"`      // where summary logs land
	KeepRuns int    `yaml:"keepRuns"` // summary logs retained, newest first
	Verbose  bool   `yaml:"verbose"`
}

// Default returns the built-in configuration. Flags and the config file
// override these.
func Default() *Config {
	return &Config{
		Snapshot: SnapshotConfig{},
		Restore: RestoreConfig{
			Parallel:   4,
			MaxDepth:   3,
			MaxResults: 10,
		},
		Logging: LoggingConfig{
			Dir:      "/var/log/snap-restore",
			KeepRuns: 20,
		},
	}
}
