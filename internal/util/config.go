package util

import (
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	DefaultPrompt       = ">> "
	DefaultHistoryLimit = 500
	HistoryFileName     = "history.db"
)

// Configuration is assembled in three layers: defaults, an optional TOML
// file, then flags given explicitly on the command line.
type Configuration struct {
	Version   string `toml:"-"`
	BuildDate string `toml:"-"`
	Commit    string `toml:"-"`
	SexprHome string `toml:"-"`

	Prompt       string `toml:"prompt"`
	Interactive  bool   `toml:"interactive"`
	File         string `toml:"file"`
	HistoryDSN   string `toml:"history_dsn"`
	HistoryLimit int    `toml:"history_limit"`
	DebugAST     string `toml:"debug_ast"` // "", "text" or "json"
	Color        bool   `toml:"color"`
	LogLevel     string `toml:"log_level"`
	LogFile      string `toml:"log_file"`
}

func DefaultConfiguration(home string) Configuration {
	return Configuration{
		SexprHome:    home,
		Prompt:       DefaultPrompt,
		HistoryDSN:   DefaultHistoryDSN(home),
		HistoryLimit: DefaultHistoryLimit,
		Color:        true,
		LogLevel:     "error",
	}
}

// DefaultHistoryDSN places the history database under home. Without a home
// directory history is kept in memory only.
func DefaultHistoryDSN(home string) string {
	if home == "" {
		return ""
	}
	return "sqlite://" + filepath.Join(home, HistoryFileName)
}

// LoadConfigFile overlays the keys present in a TOML file onto cfg. Keys
// absent from the file keep their current value.
func LoadConfigFile(path string, cfg *Configuration) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return errors.Wrapf(err, "reading config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

func (c Configuration) Validate() error {
	switch c.DebugAST {
	case "", "text", "json":
	default:
		return errors.Errorf("invalid debug-ast mode %q (want text or json)", c.DebugAST)
	}
	if c.HistoryLimit < 0 {
		return errors.Errorf("history limit must not be negative, got %d", c.HistoryLimit)
	}
	if !c.Interactive && c.File == "" {
		return errors.New("no input: pass -i for an interactive session or a file path")
	}
	return nil
}
