// Package strategy chooses one direction per turn from a grid snapshot.
package strategy

import (
	"fmt"
	"strings"
)

// Style selects how a Selector picks directions.
type Style int

const (
	StyleRandom Style = iota + 1
	StyleBlind
	StyleMinimax
)

// DefaultStyle is used when no style is configured.
const DefaultStyle = StyleMinimax

var styleNames = map[Style]string{
	StyleRandom:  "random",
	StyleBlind:   "blind",
	StyleMinimax: "minimax",
}

// String returns the style name.
func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle parses a style name, case-insensitively.
func ParseStyle(name string) (Style, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range styleNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown style %q (want random, blind or minimax)", name)
}

// UnmarshalText implements encoding.TextUnmarshaler so styles can be read
// straight from YAML config.
func (s *Style) UnmarshalText(text []byte) error {
	parsed, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Style) MarshalText() ([]byte, error) {
	if _, ok := styleNames[s]; !ok {
		return nil, fmt.Errorf("unknown style %d", int(s))
	}
	return []byte(s.String()), nil
}
