// Package config loads cxxpy.toml.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"cxxpy/internal/lines"
	"cxxpy/internal/lower"
	"cxxpy/internal/naming"
)

// FileName is the configuration file looked up next to the inputs.
const FileName = "cxxpy.toml"

// Config is the effective configuration.
type Config struct {
	Output   OutputConfig      `toml:"output"`
	Lowering LoweringConfig    `toml:"lowering"`
	Types    map[string]string `toml:"types"`
	Rename   []RenameRule      `toml:"rename"`

	// Path is the file the configuration came from, empty for defaults.
	Path string `toml:"-"`
}

type OutputConfig struct {
	UseTabs     bool `toml:"use_tabs"`
	IndentWidth int  `toml:"indent_width"`
	Headers     bool `toml:"headers"`
}

type LoweringConfig struct {
	StrictMulParens bool `toml:"strict_mul_parens"`
}

type RenameRule struct {
	Target  string `toml:"target"`
	Pattern string `toml:"pattern"`
	Replace string `toml:"replace"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Output: OutputConfig{UseTabs: true, IndentWidth: 4, Headers: true},
		Types:  naming.DefaultTypes(),
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest FileName above startDir, or defaults.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load decodes path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if meta.IsDefined("output", "indent_width") && cfg.Output.IndentWidth <= 0 {
		return Config{}, fmt.Errorf("%s: [output].indent_width must be positive", path)
	}
	// таблица [types] дополняет встроенную, а не заменяет её
	merged := naming.DefaultTypes()
	for k, v := range cfg.Types {
		if strings.TrimSpace(k) == "" || strings.TrimSpace(v) == "" {
			return Config{}, fmt.Errorf("%s: [types] entries must be non-empty", path)
		}
		merged[k] = v
	}
	cfg.Types = merged
	if _, err := cfg.Renamer(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// IndentUnit is the indentation unit for generated code.
func (c Config) IndentUnit() string {
	return lines.IndentUnit(c.Output.UseTabs, c.Output.IndentWidth)
}

// Renamer compiles the naming policy.
func (c Config) Renamer() (*naming.Renamer, error) {
	rules := make([]naming.Rule, len(c.Rename))
	for i, r := range c.Rename {
		rules[i] = naming.Rule{Target: naming.Target(r.Target), Pattern: r.Pattern, Replace: r.Replace}
	}
	return naming.New(c.Types, rules)
}

// LowerOptions builds engine options. Reporter and Tracer are left to the
// caller.
func (c Config) LowerOptions() (lower.Options, error) {
	names, err := c.Renamer()
	if err != nil {
		return lower.Options{}, err
	}
	return lower.Options{
		IndentUnit:      c.IndentUnit(),
		Renamer:         names,
		StrictMulParens: c.Lowering.StrictMulParens,
	}, nil
}

// Fingerprint is a stable hash of everything that changes generated text.
func (c Config) Fingerprint() string {
	h := sha256.New()
	fmt.Fprintf(h, "unit=%q headers=%t strict=%t\n", c.IndentUnit(), c.Output.Headers, c.Lowering.StrictMulParens)
	keys := make([]string, 0, len(c.Types))
	for k := range c.Types {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(h, "type %q=%q\n", k, c.Types[k])
	}
	for _, r := range c.Rename {
		fmt.Fprintf(h, "rule %q %q %q\n", r.Target, r.Pattern, r.Replace)
	}
	return hex.EncodeToString(h.Sum(nil))
}
