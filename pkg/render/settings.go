package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gardar/shipdoc/pkg/bol"
	"github.com/gardar/shipdoc/pkg/layout"
)

// Settings is the YAML configuration file shared by the commands.
// Relative paths are resolved against the directory of the file.
type Settings struct {
	Layout      layout.Config `yaml:"layout"`
	Format      string        `yaml:"format"`
	Logo        string        `yaml:"logo"`        // Path of the default branch logo
	Stationery  string        `yaml:"stationery"`  // Path of a one-page background PDF
	Credentials string        `yaml:"credentials"` // Service account file for gs:// outputs
	Addr        string        `yaml:"addr"`        // Listen address of blserver
	Validate    bool          `yaml:"validate"`
	Scale       float64       `yaml:"scale"` // Pixels per point of PNG output
}

// DefaultSettings returns settings with the default layout.
func DefaultSettings() Settings {
	return Settings{
		Layout: layout.DefaultConfig(),
		Format: string(FormatPDF),
		Addr:   ":8080",
	}
}

// LoadSettings reads a YAML settings file over the defaults. An empty path
// returns the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read settings: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return s, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for _, p := range []*string{&s.Logo, &s.Stationery, &s.Credentials} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	return s, s.Layout.Validate()
}

// Options turns the settings into render options, reading the logo and
// stationery files.
func (s Settings) Options() (Options, error) {
	format, err := ParseFormat(s.Format)
	if err != nil {
		return Options{}, err
	}
	opts := Options{Format: format, Layout: s.Layout, Validate: s.Validate, Scale: s.Scale}

	if s.Logo != "" {
		if opts.Layout.DefaultBranch.Logo, err = os.ReadFile(s.Logo); err != nil {
			return opts, fmt.Errorf("failed to read logo: %w", err)
		}
	}
	if s.Stationery != "" {
		if opts.Stationery, err = os.ReadFile(s.Stationery); err != nil {
			return opts, fmt.Errorf("failed to read stationery: %w", err)
		}
	}
	return opts, nil
}

// ParseInput decodes a document input from YAML or JSON. JSON input is
// decoded the way blserver decodes request bodies, so a base64 branch logo
// is honoured; YAML input carries no logo.
func ParseInput(data []byte) (bol.DocumentInput, error) {
	var in bol.DocumentInput
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		if err := dec.Decode(&in); err != nil {
			return in, fmt.Errorf("failed to parse JSON input: %w", err)
		}
		return in, in.Validate()
	}

	if err := yaml.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("failed to parse input: %w", err)
	}
	return in, in.Validate()
}
