package config

import (
	"os"
	"path/filepath"
)

// findProjectConfigFile returns the project config file in dir, if any.
func findProjectConfigFile(dir string) string {
	return firstFile(
		filepath.Join(dir, ProjectConfigName),
		filepath.Join(dir, "."+ProjectConfigName),
	)
}

// findUserConfigFile returns ~/.tudu/tudu.toml, or tudu/tudu.toml under the
// OS config directory when the former does not exist.
func findUserConfigFile() string {
	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".tudu", ProjectConfigName))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "tudu", ProjectConfigName))
	}
	return firstFile(candidates...)
}

func firstFile(paths ...string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}
