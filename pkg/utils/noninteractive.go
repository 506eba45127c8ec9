package utils

import (
	"strings"
)

// NonInteractiveConfig represents the configuration for non-interactive mode
type NonInteractiveConfig struct {
	IsNonInteractive bool
	PredefinedAnswer string // "y" or "n" for yes/no prompts, or custom value for other prompts
}

// ParseNonInteractive parses a NON_INTERACTIVE value.
//
//	""  "0"  "false"  "no"  -> interactive
//	"1" "true" "yes"        -> non-interactive, default answers
//	"y" "n"                 -> non-interactive, answer "y" or "n" to prompts
//	anything else           -> non-interactive, the value is the answer
func ParseNonInteractive(value string) NonInteractiveConfig {
	value = strings.ToLower(strings.TrimSpace(value))

	switch value {
	case "", "0", "false", "no":
		return NonInteractiveConfig{IsNonInteractive: false}
	case "1", "true", "yes":
		return NonInteractiveConfig{IsNonInteractive: true}
	default:
		return NonInteractiveConfig{IsNonInteractive: true, PredefinedAnswer: value}
	}
}

// Confirmed reports whether a yes/no prompt is answered yes without asking.
func (c NonInteractiveConfig) Confirmed() bool {
	return c.IsNonInteractive && c.PredefinedAnswer != "n"
}
