// Package patfile has functions for loading named regex patterns from
// pattern-set files, a TOML-based format used to preload the matcher shell
// with expressions.
//
// A pattern-set file looks like this:
//
//	format = "relfa"
//	type = "patterns"
//
//	[[pattern]]
//	name = "binary"
//	expr = "(0|1)(0|1)*"
//
//	[[pattern]]
//	name = "ab-then-cd-or-ef"
//	expr = "ab(cd|ef)*"
package patfile

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// CurrentFormat is the format identifier all pattern-set files must declare.
const CurrentFormat = "relfa"

// TypePatterns is the only file type currently defined for the format.
const TypePatterns = "patterns"

// Pattern is a single named pattern from a pattern-set file. The expression
// is not compiled or validated here; that is the caller's concern.
type Pattern struct {
	Name string `toml:"name"`
	Expr string `toml:"expr"`
}

// Set is the full contents of a pattern-set file.
type Set struct {
	Patterns []Pattern
}

// FileInfo contains the essential information all pattern-set files must
// contain. It can be obtained from a file by reading it into memory and
// calling ParseFileInfo on the bytes.
type FileInfo struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`
}

type topLevelPatternSet struct {
	Format   string    `toml:"format"`
	Type     string    `toml:"type"`
	Patterns []Pattern `toml:"pattern"`
}

// ParseFileInfo parses the header of the given file data so that the
// caller can check the format and type before a full decode is attempted.
func ParseFileInfo(data []byte) (FileInfo, error) {
	var info FileInfo
	if err := toml.Unmarshal(data, &info); err != nil {
		return info, fmt.Errorf("decode header: %w", err)
	}
	return info, nil
}

// LoadFile loads a pattern set from the pattern-set file at the given path.
// The file's header is validated before the patterns are decoded, and
// duplicate pattern names are rejected.
func LoadFile(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("read pattern-set file: %w", err)
	}

	return Decode(data)
}

// Decode decodes a pattern set from the bytes of a pattern-set file.
func Decode(data []byte) (Set, error) {
	info, err := ParseFileInfo(data)
	if err != nil {
		return Set{}, err
	}

	if info.Format != CurrentFormat {
		return Set{}, fmt.Errorf("file does not appear to be a %s file; format is %q", CurrentFormat, info.Format)
	}
	if info.Type != TypePatterns {
		return Set{}, fmt.Errorf("unsupported file type %q", info.Type)
	}

	var tlps topLevelPatternSet
	if err := toml.Unmarshal(data, &tlps); err != nil {
		return Set{}, fmt.Errorf("decode pattern set: %w", err)
	}

	seen := map[string]bool{}
	for i := range tlps.Patterns {
		p := tlps.Patterns[i]
		if p.Name == "" {
			return Set{}, fmt.Errorf("pattern %d: name must not be empty", i+1)
		}
		if p.Expr == "" {
			return Set{}, fmt.Errorf("pattern %q: expr must not be empty", p.Name)
		}
		if seen[p.Name] {
			return Set{}, fmt.Errorf("pattern %q is defined more than once", p.Name)
		}
		seen[p.Name] = true
	}

	return Set{Patterns: tlps.Patterns}, nil
}
