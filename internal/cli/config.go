package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/pdfscope/pdfscope/pkg/errors"
	"github.com/pdfscope/pdfscope/pkg/tree"
)

// fileConfig mirrors ~/.config/pdfscope/config.toml. Every field is a
// pointer so an absent key leaves the built-in default untouched. CLI flags
// override the file, the file overrides built-in defaults.
type fileConfig struct {
	Tree struct {
		MaxDepth            *int  `toml:"max_depth"`
		DisplayTypeNames    *bool `toml:"display_type_names"`
		ArrayDisplayLimit   *int  `toml:"array_display_limit"`
		HexDisplayLimit     *int  `toml:"hex_display_limit"`
		DisplayLegend       *bool `toml:"display_legend"`
		DisplayFont         *bool `toml:"display_font"`
		DisplayParent       *bool `toml:"display_parent"`
		EnhancedOperations  *bool `toml:"enhanced_operations"`
		OperatorInfo        *bool `toml:"operator_info"`
		ForceStreamDecoding *bool `toml:"force_stream_decoding"`
	} `toml:"tree"`
	Cursor struct {
		LineNumbers       *bool `toml:"line_numbers"`
		LineNumberPadding *int  `toml:"line_number_padding"`
	} `toml:"cursor"`
	Plain *bool `toml:"plain"`
}

// loadConfig reads the config file. A missing file is not an error; a
// malformed one is.
func loadConfig() (*fileConfig, error) {
	dir, err := configDir()
	if err != nil {
		return nil, nil
	}
	path := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}

	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	return &cfg, nil
}

// applySettings copies the config file's values over the built-in defaults.
func (cfg *fileConfig) applySettings(settings *tree.Settings, cursor *tree.CursorSettings, plain *bool) {
	if cfg == nil {
		return
	}
	t := cfg.Tree
	setInt(t.MaxDepth, &settings.MaxDepth)
	setBool(t.DisplayTypeNames, &settings.DisplayTypeNames)
	setInt(t.ArrayDisplayLimit, &settings.ArrayDisplayLimit)
	setInt(t.HexDisplayLimit, &settings.HexDisplayLimit)
	setBool(t.DisplayLegend, &settings.DisplayLegend)
	setBool(t.DisplayFont, &settings.DisplayFont)
	setBool(t.DisplayParent, &settings.DisplayParent)
	setBool(t.EnhancedOperations, &settings.EnhancedOperations)
	setBool(t.OperatorInfo, &settings.OperatorInfo)
	setBool(t.ForceStreamDecoding, &settings.ForceStreamDecoding)

	setBool(cfg.Cursor.LineNumbers, &cursor.PrintLineNumbers)
	setInt(cfg.Cursor.LineNumberPadding, &cursor.LineNumberPadding)

	setBool(cfg.Plain, plain)
}

func setInt(src *int, dst *int) {
	if src != nil {
		*dst = *src
	}
}

func setBool(src *bool, dst *bool) {
	if src != nil {
		*dst = *src
	}
}
