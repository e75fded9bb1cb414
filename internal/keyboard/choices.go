// Package keyboard captures timed key responses for a trial.
package keyboard

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sentinel key-set names accepted in trial files.
const (
	AllKeys = "ALL_KEYS"
	NoKeys  = "NO_KEYS"
)

type choiceMode int

const (
	modeAll choiceMode = iota
	modeNone
	modeList
)

// Choices is the set of keys that count as a response. The zero value accepts
// every key.
type Choices struct {
	mode choiceMode
	keys []string
}

// All accepts any key.
func All() Choices { return Choices{mode: modeAll} }

// None disables responses entirely.
func None() Choices { return Choices{mode: modeNone} }

// Keys accepts only the listed keys.
func Keys(keys ...string) Choices { return Choices{mode: modeList, keys: keys} }

// IsNone reports whether responses are disabled.
func (c Choices) IsNone() bool { return c.mode == modeNone }

// List returns the explicit keys, or nil for ALL_KEYS and NO_KEYS.
func (c Choices) List() []string {
	if c.mode != modeList {
		return nil
	}
	return c.keys
}

// Allows reports whether key is a valid response.
func (c Choices) Allows(key string) bool {
	switch c.mode {
	case modeAll:
		return true
	case modeNone:
		return false
	}
	for _, k := range c.keys {
		if CompareKeys(k, key) {
			return true
		}
	}
	return false
}

func (c Choices) String() string {
	switch c.mode {
	case modeAll:
		return AllKeys
	case modeNone:
		return NoKeys
	}
	return "[" + strings.Join(c.keys, " ") + "]"
}

// UnmarshalYAML accepts ALL_KEYS, NO_KEYS, a single key or a sequence of keys.
func (c *Choices) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		switch value.Value {
		case AllKeys:
			*c = All()
		case NoKeys:
			*c = None()
		default:
			*c = Keys(value.Value)
		}
		return nil
	case yaml.SequenceNode:
		var keys []string
		if err := value.Decode(&keys); err != nil {
			return fmt.Errorf("decoding choices: %w", err)
		}
		*c = Keys(keys...)
		return nil
	}
	return fmt.Errorf("choices: unsupported YAML node at line %d", value.Line)
}

// MarshalJSON writes the sentinel name or the key list.
func (c Choices) MarshalJSON() ([]byte, error) {
	switch c.mode {
	case modeAll:
		return json.Marshal(AllKeys)
	case modeNone:
		return json.Marshal(NoKeys)
	}
	keys := c.keys
	if keys == nil {
		keys = []string{}
	}
	return json.Marshal(keys)
}

// CompareKeys reports whether two key identifiers name the same key. The
// comparison ignores case, so "a" and "A" match.
func CompareKeys(expected, actual string) bool {
	if expected == "" || actual == "" {
		return false
	}
	return strings.EqualFold(expected, actual)
}
