package config

import (
	"path/filepath"
)

var (
	// DefaultSourceURL is the default location of the NCBI taxonomy dump.
	DefaultSourceURL = "https://ftp.ncbi.nih.gov/pub/taxonomy/taxdump.tar.gz"

	// AppName is used in generating file system paths.
	AppName = "gntree"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gntree by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/gntree by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gntree/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
