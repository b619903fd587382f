package project

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Files are the settings file names looked up in a directory, in order.
var Files = []string{"pcomb.toml", "pcomb.yaml", "pcomb.yml"}

// Settings hold the per-directory defaults of the pcomb commands.
// Command-line flags take precedence over them.
type Settings struct {
	Grammar    string `toml:"grammar" yaml:"grammar"`
	Format     string `toml:"format" yaml:"format"`
	RequireEOF bool   `toml:"require_eof" yaml:"require_eof"`
	Prune      bool   `toml:"prune" yaml:"prune"`
	// Color is one of auto, always or never.
	Color     string `toml:"color" yaml:"color"`
	Verbosity int    `toml:"verbosity" yaml:"verbosity"`

	// Path is the file the settings were read from, empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

func Defaults() *Settings {
	return &Settings{
		Format:     "tree",
		RequireEOF: true,
		Prune:      true,
		Color:      "auto",
	}
}

// Load reads the settings of the current directory.
func Load() (*Settings, error) {
	return LoadFrom(".")
}

// LoadFrom reads the first settings file found in dir on top of the
// defaults and applies the PCOMB_* environment overrides. A directory
// without a settings file yields the defaults.
func LoadFrom(dir string) (*Settings, error) {
	s := Defaults()

	for _, name := range Files {
		path := filepath.Join(dir, name)
		content, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read settings: %w", err)
		}
		if err := s.decode(path, content); err != nil {
			return nil, err
		}
		s.Path = path
		break
	}

	if err := s.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings %s: %w", s.source(), err)
	}
	return s, nil
}

func (s *Settings) decode(path string, content []byte) error {
	switch filepath.Ext(path) {
	case ".toml":
		md, err := toml.Decode(string(content), s)
		if err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return fmt.Errorf("decode %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return nil
}

func (s *Settings) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("PCOMB_GRAMMAR"); ok && v != "" {
		s.Grammar = v
	}
	if v, ok := lookup("PCOMB_FORMAT"); ok && v != "" {
		s.Format = v
	}
	if v, ok := lookup("PCOMB_VERBOSITY"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse PCOMB_VERBOSITY: %w", err)
		}
		s.Verbosity = n
	}
	return nil
}

func (s *Settings) Validate() error {
	switch s.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", s.Color)
	}
	if s.Verbosity < 0 {
		return fmt.Errorf("verbosity must not be negative, got %d", s.Verbosity)
	}
	if s.Format == "" {
		return errors.New("format must not be empty")
	}
	return nil
}

func (s *Settings) source() string {
	if s.Path == "" {
		return "(defaults)"
	}
	return s.Path
}
