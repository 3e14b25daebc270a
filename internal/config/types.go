package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration for YAML and environment decoding. A bare
// integer is read as a number of seconds, which is how Action inputs are
// written; anything else must be a Go duration string such as "90s".
type Duration time.Duration

// Decode implements envconfig.Decoder. An empty value keeps the current
// setting, since the runner exports unset inputs as empty strings.
func (d *Duration) Decode(value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parsed, err := parseDuration(value)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.Decode(s)
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return parsed, nil
}

// Check names one of the verifications the action can run.
type Check string

const (
	CheckBuild    Check = "build"
	CheckResponse Check = "response"
)

// Checks is the set of enabled checks.
type Checks []Check

// Has reports whether c is enabled.
func (cs Checks) Has(c Check) bool {
	for _, check := range cs {
		if check == c {
			return true
		}
	}
	return false
}

// Decode implements envconfig.Decoder for a comma-separated list. An empty
// value keeps the current setting.
func (cs *Checks) Decode(value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var out Checks
	for _, part := range splitList(value) {
		out = append(out, Check(strings.ToLower(part)))
	}
	*cs = out
	return nil
}

// UnmarshalYAML accepts either a YAML list or a comma-separated string.
func (cs *Checks) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		return cs.Decode(strings.Join(items, ","))
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return cs.Decode(s)
}

// StatusCodes is a list of HTTP status codes, "200,302" in text form.
type StatusCodes []int

// Decode implements envconfig.Decoder. An empty value keeps the current
// setting.
func (sc *StatusCodes) Decode(value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var out StatusCodes
	for _, part := range splitList(value) {
		code, err := strconv.Atoi(part)
		if err != nil {
			return fmt.Errorf("invalid status code %q", part)
		}
		out = append(out, code)
	}
	*sc = out
	return nil
}

// UnmarshalYAML accepts either a YAML list of integers or a comma-separated
// string.
func (sc *StatusCodes) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var codes []int
		if err := node.Decode(&codes); err != nil {
			return err
		}
		*sc = codes
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return sc.Decode(s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
