// Package config loads the tool's settings from defaults, the JSON
// config file and PHONEBOOK_* environment variables, in that order.
package config

import "path/filepath"

type Config struct {
	Storage StorageConfig
	Server  ServerConfig
	Log     LogConfig
}

type StorageConfig struct {
	// DataDir holds the contacts file, the history database and the log.
	DataDir string
	// ContactsFile is the persistence CSV, relative to DataDir unless
	// absolute.
	ContactsFile string
}

type ServerConfig struct {
	Port int
}

type LogConfig struct {
	Level string
	// File is the log destination, relative to DataDir unless absolute.
	// Empty means stderr.
	File string
}

func defaults() Config {
	return Config{
		Storage: StorageConfig{
			DataDir:      defaultDataDir(),
			ContactsFile: "contacts.csv",
		},
		Server: ServerConfig{
			Port: 4280,
		},
		Log: LogConfig{
			Level: "info",
			File:  "phonebook.log",
		},
	}
}

// Load reads configuration from the JSON file at
// $XDG_CONFIG_HOME/phonebook/config.json, then applies PHONEBOOK_*
// environment overrides.
func Load() (Config, error) {
	return loadWith(newFileBackend())
}

func loadWith(b ConfigBackend) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

// ContactsPath resolves the contacts file against the data dir.
func (c Config) ContactsPath() string {
	if filepath.IsAbs(c.Storage.ContactsFile) {
		return c.Storage.ContactsFile
	}
	return filepath.Join(c.Storage.DataDir, c.Storage.ContactsFile)
}

// LogPath resolves the log file against the data dir; empty stays empty.
func (c Config) LogPath() string {
	if c.Log.File == "" || filepath.IsAbs(c.Log.File) {
		return c.Log.File
	}
	return filepath.Join(c.Storage.DataDir, c.Log.File)
}
