package main

import "github.com/BurntSushi/toml"

// arborConfig holds arborctl's optional on-disk defaults, the same role
// tqw's marshaledtypes play for tqi: flags always win over the file, and
// the file is itself optional.
type arborConfig struct {
	DefaultDepth int    `toml:"default_depth"`
	OutputWidth  int    `toml:"output_width"`
	FixtureDir   string `toml:"fixture_dir"`
}

func defaultConfig() arborConfig {
	return arborConfig{
		DefaultDepth: 8,
		OutputWidth:  80,
		FixtureDir:   ".",
	}
}

func loadConfig(path string) (arborConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}
