package site

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dgallion1/docpage/internal/page"
)

// File is the site.yaml schema.
type File struct {
	page.Site `yaml:",inline"`

	// Page id served at "/".
	Index      string          `yaml:"index"`
	Navigation page.Navigation `yaml:"navigation"`

	// Snippet paths, relative to the content dir.
	Footer string `yaml:"footer"`
	Logo   string `yaml:"logo"`
}

// ReadFile parses a site file. A missing file yields the zero File.
func ReadFile(path string) (File, error) {
	var f File
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return f, fmt.Errorf("read site file: %w", err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parse site file %s: %w", path, err)
	}
	return f, nil
}
