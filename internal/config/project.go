package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ProjectFile is the name of the optional per-project config file.
const ProjectFile = ".apiview.toml"

// ProjectConfigPath returns the path of the project config file in
// projectRoot, or an empty string if the file does not exist or is empty.
func ProjectConfigPath(projectRoot string) (string, error) {
	path := filepath.Join(projectRoot, ProjectFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", nil
	}
	return path, nil
}
