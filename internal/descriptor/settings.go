package descriptor

import (
	"errors"
	"fmt"
	"strings"
)

// Wildcard marks an empty key or value slot in the shared settings list.
const Wildcard = "*"

// ErrOddSettings is returned when the shared settings list has an odd
// number of tokens.
var ErrOddSettings = errors.New("shared settings must be key/value pairs (use '*' if only a key is needed)")

// SplitSettings splits a space-separated settings string into tokens.
func SplitSettings(s string) []string {
	return strings.Fields(s)
}

// ParseSharedSettings pairs up alternating key and value tokens. A wildcard
// key drops its pair; a wildcard value yields an empty value.
func ParseSharedSettings(tokens []string) ([]Setting, error) {
	if len(tokens)%2 != 0 {
		return nil, fmt.Errorf("%w: got %d tokens", ErrOddSettings, len(tokens))
	}

	var settings []Setting
	for i := 0; i < len(tokens); i += 2 {
		key, value := tokens[i], tokens[i+1]
		if key == Wildcard {
			continue
		}
		if value == Wildcard {
			value = ""
		}
		settings = append(settings, Setting{Key: key, Value: value})
	}
	return settings, nil
}

// ParseConcrete maps "yes" and "no", in any case, to a Concrete value. Any
// other input returns ConcreteUnset and false.
func ParseConcrete(s string) (Concrete, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes":
		return ConcreteTrue, true
	case "no":
		return ConcreteFalse, true
	default:
		return ConcreteUnset, false
	}
}
