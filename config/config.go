// Package config reads the optional YAML file that presets the runner's options.
package config

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"github.com/webgpu-cts/cts-harness/framework/query"

	"gopkg.in/yaml.v3"
)

// File is the runner configuration. Command-line flags override it.
type File struct {
	Queries  []string `yaml:"queries"`
	Run      []string `yaml:"run"`
	Skip     []string `yaml:"skip"`
	Debug    bool     `yaml:"debug"`
	DebugAll bool     `yaml:"debugAll"`
	Verbose  bool     `yaml:"verbose"`
	Serve    string   `yaml:"serve"`
}

func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if len(bytes.TrimSpace(data)) == 0 {
			return File{}, nil
		}
		return File{}, fmt.Errorf("parse config: %w", err)
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

func (f File) Validate() error {
	for _, q := range f.Queries {
		if _, err := query.Parse(q); err != nil {
			return fmt.Errorf("config queries: %w", err)
		}
	}
	for _, list := range [][]string{f.Run, f.Skip} {
		for _, p := range list {
			if _, err := regexp.Compile(p); err != nil {
				return fmt.Errorf("config pattern %q: %w", p, err)
			}
		}
	}
	return nil
}
