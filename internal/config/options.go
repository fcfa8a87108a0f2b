package config

import (
	"errors"
	"fmt"
)

// Option errors.
var (
	ErrUnknownOption = errors.New("unknown option")
	ErrBadValue      = errors.New("invalid option value")
)

// Options are the interpreter settings the composer consults.
type Options struct {
	// ShiftWidth is the indent width for > and <.
	ShiftWidth int

	// TabStop is the display width of a tab.
	TabStop int

	// IgnoreCase makes ex substitution patterns case-insensitive by
	// default.
	IgnoreCase bool
}

// Defaults returns the standard option values.
func Defaults() *Options {
	return &Options{
		ShiftWidth: 4,
		TabStop:    4,
	}
}

// Set assigns an option by name. Numeric options accept integers,
// boolean options accept booleans.
func (o *Options) Set(name string, value any) error {
	switch name {
	case "shiftwidth", "sw":
		n, ok := toInt(value)
		if !ok || n < 1 {
			return fmt.Errorf("%w: %s=%v", ErrBadValue, name, value)
		}
		o.ShiftWidth = n
	case "tabstop", "ts":
		n, ok := toInt(value)
		if !ok || n < 1 {
			return fmt.Errorf("%w: %s=%v", ErrBadValue, name, value)
		}
		o.TabStop = n
	case "ignorecase", "ic":
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s=%v", ErrBadValue, name, value)
		}
		o.IgnoreCase = b
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}
	return nil
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
