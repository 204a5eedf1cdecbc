// Package config loads configuration structs from a file, a .env file and
// environment variables using Viper.
//
// Sources are applied in this order, later ones winning: registered
// defaults, the config file (YAML, JSON or TOML, by extension), then
// environment variables. A .env file is loaded into the process
// environment first and never overrides variables that are already set.
//
// # Usage
//
//	var cfg MyConfig
//	err := config.Load(&cfg,
//	    config.WithConfigFile("catlog.yml"),
//	    config.WithEnvPrefix("CATLOG"),
//	    config.WithDefaults(map[string]any{"min_level": "info"}),
//	)
//
// Environment variables use the prefix and upper-case keys with dots
// replaced by underscores (CATLOG_MIN_LEVEL). Only keys that have a
// default or appear in the file are bound from the environment.
package config
