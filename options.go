package crptapi

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ajiwo/crptapi/metrics"
	"github.com/ajiwo/crptapi/receipts"
	"golang.org/x/time/rate"
)

// Option is a functional option for configuring the client
type Option func(*settings) error

type settings struct {
	config    Config
	encoder   Encoder
	transport Transport
	journal   *receipts.Journal
	logger    *slog.Logger
	metrics   metrics.Recorder
}

// WithURL overrides the document creation endpoint
func WithURL(rawURL string) Option {
	return func(s *settings) error {
		if err := validateURL(rawURL); err != nil {
			return err
		}
		s.config.URL = rawURL
		return nil
	}
}

// WithEncoder replaces the JSON document encoder
func WithEncoder(encoder Encoder) Option {
	return func(s *settings) error {
		if encoder == nil {
			return fmt.Errorf("encoder cannot be nil")
		}
		s.encoder = encoder
		return nil
	}
}

// WithTransport replaces the HTTP transport
func WithTransport(transport Transport) Option {
	return func(s *settings) error {
		if transport == nil {
			return fmt.Errorf("transport cannot be nil")
		}
		s.transport = transport
		return nil
	}
}

// WithHTTPClient sends requests through client
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) error {
		if client == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		s.transport = NewHTTPTransport(client)
		return nil
	}
}

// WithLogger sets the logger. Without it the client is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		s.logger = logger
		return nil
	}
}

// WithMetrics sets the recorder for admission and request events
func WithMetrics(recorder metrics.Recorder) Option {
	return func(s *settings) error {
		if recorder == nil {
			return fmt.Errorf("metrics recorder cannot be nil")
		}
		s.metrics = recorder
		return nil
	}
}

// WithReleasePolicy selects when admissions are given back
func WithReleasePolicy(policy Policy) Option {
	return func(s *settings) error {
		s.config.Policy = policy
		return nil
	}
}

// WithSmoothing spaces admitted sends to at most r per second with the given burst
func WithSmoothing(r rate.Limit, burst int) Option {
	return func(s *settings) error {
		s.config.SmoothingRate = r
		s.config.SmoothingBurst = burst
		return nil
	}
}

// WithReceipts records every completed exchange in journal
func WithReceipts(journal *receipts.Journal) Option {
	return func(s *settings) error {
		if journal == nil {
			return fmt.Errorf("receipt journal cannot be nil")
		}
		s.journal = journal
		return nil
	}
}
