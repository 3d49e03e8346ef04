package crptapi

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultURL is the document creation endpoint of the registry
const DefaultURL = "https://ismp.crpt.ru/api/v3/lk/documents/create"

// Policy decides when an admission is given back to the window
type Policy int

const (
	// PolicyWindow never refunds; capacity returns only when the window resets.
	PolicyWindow Policy = iota
	// PolicyRelease refunds the admission once the exchange completes (enter/exit).
	PolicyRelease
)

func (p Policy) String() string {
	switch p {
	case PolicyWindow:
		return "window"
	case PolicyRelease:
		return "release"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy parses "window" or "release"
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "window":
		return PolicyWindow, nil
	case "release":
		return PolicyRelease, nil
	default:
		return 0, newInvalidConfigError("unknown policy %q", s)
	}
}

// Config is the immutable quota and endpoint configuration of a Client
type Config struct {
	URL          string
	RequestLimit int
	Window       time.Duration
	Policy       Policy

	// SmoothingRate, when positive, spaces sends within a window
	SmoothingRate  rate.Limit
	SmoothingBurst int
}

// Validate validates the entire configuration
func (c Config) Validate() error {
	if c.RequestLimit <= 0 {
		return newInvalidConfigError("request limit must be positive, got %d", c.RequestLimit)
	}
	if c.Window <= 0 {
		return newInvalidConfigError("window must be positive, got %v", c.Window)
	}
	if err := validateURL(c.URL); err != nil {
		return err
	}
	if c.Policy != PolicyWindow && c.Policy != PolicyRelease {
		return newInvalidConfigError("unknown policy %s", c.Policy)
	}
	if c.SmoothingRate < 0 {
		return newInvalidConfigError("smoothing rate cannot be negative, got %v", c.SmoothingRate)
	}
	if c.SmoothingRate > 0 && c.SmoothingBurst <= 0 {
		return newInvalidConfigError("smoothing burst must be positive, got %d", c.SmoothingBurst)
	}
	return nil
}

func validateURL(raw string) error {
	if raw == "" {
		return newInvalidConfigError("url cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return newInvalidConfigError("url %q: %v", raw, err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return newInvalidConfigError("url %q must use http or https", raw)
	}
	if u.Host == "" {
		return newInvalidConfigError("url %q has no host", raw)
	}
	return nil
}
