// Package lexcfg loads a lexer's regex terminal overrides from a TOML file,
// the on-disk sibling of the in-memory regexMap the lex package's New takes
// directly. Grounded in the teacher's internal/tqw file-loading style,
// which also reads structured config off disk with github.com/BurntSushi/toml.
package lexcfg

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// document is the on-disk shape: a single [terminals] table mapping a
// terminal name to the regex pattern that should override its literal
// matching in the lexer.
//
//	[terminals]
//	ident = "[A-Za-z_][A-Za-z0-9_]*"
//	number = "[0-9]+"
type document struct {
	Terminals map[string]string `toml:"terminals"`
}

// Load reads path and returns its [terminals] table, ready to pass as the
// regexMap argument of lex.New. An empty or absent [terminals] table loads
// as a non-nil empty map, not an error.
func Load(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lexcfg: reading %q: %w", path, err)
	}

	var doc document
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("lexcfg: decoding %q: %w", path, err)
	}

	if doc.Terminals == nil {
		return map[string]string{}, nil
	}
	return doc.Terminals, nil
}
