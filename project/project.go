package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// ConfigFile is the name of the project configuration file.
const ConfigFile = "phpast.toml"

// Project is a directory tree of PHP sources.
type Project struct {
	RootDir    string
	ConfigPath string // empty when no phpast.toml was found
	Config     Config
}

// Config is the content of phpast.toml.
type Config struct {
	Include    []string    `toml:"include"`    // directories to scan, relative to the root
	Exclude    []string    `toml:"exclude"`    // glob patterns matched against relative paths and base names
	Extensions []string    `toml:"extensions"` // file extensions treated as PHP
	Workers    int         `toml:"workers"`    // parallel parses in check
	Output     string      `toml:"output"`     // default format for parse
	Watch      WatchConfig `toml:"watch"`
}

type WatchConfig struct {
	Interval Duration `toml:"interval"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Load finds the project containing the current directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom walks up from dir looking for phpast.toml. Without one, dir
// itself is the root and the defaults apply.
func LoadFrom(dir string) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}

	for d := abs; ; d = filepath.Dir(d) {
		path := filepath.Join(d, ConfigFile)
		if _, err := os.Stat(path); err == nil {
			cfg, err := LoadConfig(path)
			if err != nil {
				return nil, err
			}
			return &Project{RootDir: d, ConfigPath: path, Config: *cfg}, nil
		}
		if filepath.Dir(d) == d {
			break
		}
	}

	cfg := Config{}
	cfg.applyDefaults()
	return &Project{RootDir: abs, Config: cfg}, nil
}

// LoadConfig reads a configuration file and fills in defaults.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse %s: unknown key %s", path, undecoded[0])
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Include) == 0 {
		c.Include = []string{"."}
	}
	if len(c.Exclude) == 0 {
		c.Exclude = []string{"vendor", "node_modules", ".*"}
	}
	if len(c.Extensions) == 0 {
		c.Extensions = []string{".php"}
	}
	for i, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			c.Extensions[i] = "." + ext
		}
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Output == "" {
		c.Output = "tree"
	}
	if c.Watch.Interval.Duration <= 0 {
		c.Watch.Interval.Duration = time.Second
	}
}

func (c *Config) validate() error {
	for _, pattern := range c.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
	}
	for _, dir := range c.Include {
		if filepath.IsAbs(dir) {
			return fmt.Errorf("include %q: must be relative to the project root", dir)
		}
	}
	return nil
}

// IsSource reports whether path has one of the configured extensions.
func (p *Project) IsSource(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range p.Config.Extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// Excluded reports whether a path relative to the root matches an
// exclude pattern, either as a whole or by one of its elements.
func (p *Project) Excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return false
	}
	for _, pattern := range p.Config.Exclude {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		for _, elem := range strings.Split(rel, "/") {
			if ok, _ := filepath.Match(pattern, elem); ok {
				return true
			}
		}
	}
	return false
}

// Files returns the PHP files of the project, in lexical order per
// include directory.
func (p *Project) Files() ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, inc := range p.Config.Include {
		dir := filepath.Join(p.RootDir, inc)
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) && path == dir {
					return nil
				}
				return err
			}
			rel, err := filepath.Rel(p.RootDir, path)
			if err != nil {
				return err
			}
			if p.Excluded(rel) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !p.IsSource(path) || seen[path] {
				return nil
			}
			seen[path] = true
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan php files in %s: %w", dir, err)
		}
	}

	return files, nil
}
