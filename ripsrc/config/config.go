// Package config loads blame settings from a TOML file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/yonasBSD/gitoxide/ripsrc/incblame"
)

const (
	FormatAnnotate = "annotate"
	FormatRecords  = "records"
	FormatMsgp     = "msgp"

	DiffDifflib = "difflib"
	DiffGit     = "git"
)

type Config struct {
	Blame  Blame  `toml:"blame"`
	Output Output `toml:"output"`
	Cache  Cache  `toml:"cache"`
	Log    Log    `toml:"log"`
}

type Blame struct {
	Parallelism   int `toml:"parallelism"`
	BlobCacheSize int `toml:"blob_cache_size"`
	// Since is a date (2006-01-02) or RFC3339 time. Empty means no limit.
	Since string `toml:"since"`
	// Ranges are 1-based inclusive line ranges, same as git blame -L: "10,20" or "10,+5".
	Ranges []string `toml:"ranges,omitempty"`
	// Diff selects the line diff implementation, difflib or git.
	Diff string `toml:"diff"`
	// DiffAlgorithm is passed to git diff when Diff is git.
	DiffAlgorithm string `toml:"diff_algorithm"`
}

type Output struct {
	Format string `toml:"format"`
	Color  bool   `toml:"color"`
}

type Cache struct {
	// Path is the SQLite database file. Empty disables caching.
	Path string `toml:"path"`
}

type Log struct {
	Debug bool `toml:"debug"`
}

func Default() Config {
	return Config{
		Blame: Blame{
			Parallelism:   4,
			BlobCacheSize: 64,
			Diff:          DiffDifflib,
		},
		Output: Output{
			Format: FormatAnnotate,
			Color:  true,
		},
	}
}

// Load reads config file on top of defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %v: %w", path, err)
	}
	return cfg, nil
}

// Marshal returns config as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

func (c Config) Validate() error {
	if c.Blame.Parallelism < 1 {
		return fmt.Errorf("blame.parallelism must be positive, got %v", c.Blame.Parallelism)
	}
	if c.Blame.BlobCacheSize < 1 {
		return fmt.Errorf("blame.blob_cache_size must be positive, got %v", c.Blame.BlobCacheSize)
	}
	switch c.Blame.Diff {
	case DiffDifflib, DiffGit:
	default:
		return fmt.Errorf("blame.diff must be %v or %v, got %q", DiffDifflib, DiffGit, c.Blame.Diff)
	}
	switch c.Output.Format {
	case FormatAnnotate, FormatRecords, FormatMsgp:
	default:
		return fmt.Errorf("output.format must be one of %v, %v, %v, got %q", FormatAnnotate, FormatRecords, FormatMsgp, c.Output.Format)
	}
	_, err := c.EngineOpts()
	return err
}

// EngineOpts converts blame settings into engine options. Logger and rename follower are left for the caller.
func (c Config) EngineOpts() (res incblame.Opts, _ error) {
	res.Parallelism = c.Blame.Parallelism
	res.BlobCacheSize = c.Blame.BlobCacheSize
	if c.Blame.Since != "" {
		t, err := ParseTime(c.Blame.Since)
		if err != nil {
			return res, err
		}
		res.Since = t
	}
	for _, s := range c.Blame.Ranges {
		r, err := ParseRange(s)
		if err != nil {
			return res, err
		}
		res.Ranges = append(res.Ranges, r)
	}
	return res, nil
}

// ParseTime accepts a date or RFC3339 time.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return t, fmt.Errorf("invalid time %q, expected 2006-01-02 or RFC3339", s)
	}
	return t, nil
}

// ParseRange converts 1-based inclusive "start,end" or "start,+count" into a half-open 0-based range.
func ParseRange(s string) (incblame.LineRange, error) {
	rerr := func() (incblame.LineRange, error) {
		return incblame.LineRange{}, fmt.Errorf("invalid line range %q, expected start,end or start,+count", s)
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return rerr()
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || start < 1 {
		return rerr()
	}
	endS := strings.TrimSpace(parts[1])
	if strings.HasPrefix(endS, "+") {
		n, err := strconv.Atoi(endS[1:])
		if err != nil || n < 1 {
			return rerr()
		}
		return incblame.Range(start-1, start-1+n), nil
	}
	end, err := strconv.Atoi(endS)
	if err != nil || end < start {
		return rerr()
	}
	return incblame.Range(start-1, end), nil
}
