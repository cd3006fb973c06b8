package repository

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Project represents information about a detected JavaScript project
type Project struct {
	RootPath     string // Absolute path to the project root directory
	Marker       string // Marker file that identified the root
	Name         string // Name of the project (package.json "name" or directory name)
	RelativePath string // Path from project root to the specified file
}

// Detector identifies project root folders
type Detector struct {
	// Project root marker files, most specific first
	markers []string
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		markers: []string{
			ConfigFile,     // testid.yaml
			SWCConfigFile,  // .swcrc
			"package.json", // JavaScript/Node projects
			".git",         // Generic VCS marker
		},
	}
}

// DetectProject identifies the project root for the given file path and returns project info
func (d *Detector) DetectProject(filePath string) (*Project, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}

	// If it's a file, start from its parent directory
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	info := &Project{RootPath: startDir}
	if rootPath, marker := d.findProjectRoot(startDir); rootPath != "" {
		info.RootPath = rootPath
		info.Marker = marker
	}

	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)
	info.Name = extractPackageName(info.RootPath)
	return info, nil
}

// findProjectRoot searches up from the start directory for project markers
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, marker
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// We've reached the filesystem root with no match
			break
		}
		dir = parent
	}
	return "", ""
}

// extractPackageName reads the package.json "name" field, falling back to the directory name
func extractPackageName(rootPath string) string {
	data, err := os.ReadFile(filepath.Join(rootPath, "package.json"))
	if err != nil {
		return filepath.Base(rootPath)
	}
	manifest := struct {
		Name string `yaml:"name"`
	}{}
	if err := yaml.Unmarshal(data, &manifest); err != nil || manifest.Name == "" {
		return filepath.Base(rootPath)
	}
	return manifest.Name
}
