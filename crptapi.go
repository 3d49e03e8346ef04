package crptapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/ajiwo/crptapi/gate"
	"github.com/ajiwo/crptapi/metrics"
	"github.com/ajiwo/crptapi/receipts"
	"golang.org/x/time/rate"
)

// Client submits documents to the registry, admitting at most RequestLimit
// submissions per window across all goroutines sharing it.
type Client struct {
	config    Config
	gate      *gate.Gate
	scheduler *gate.Scheduler
	smoother  *rate.Limiter
	encoder   Encoder
	transport Transport
	journal   *receipts.Journal
	logger    *slog.Logger
	metrics   metrics.Recorder
	closeOnce sync.Once
	closeErr  error
}

// New creates a client allowing requestLimit requests per interval*timeUnit
// and starts the window reset scheduler. The first reset fires immediately.
func New(timeUnit time.Duration, requestLimit int, interval int64, opts ...Option) (*Client, error) {
	if timeUnit <= 0 {
		return nil, newInvalidConfigError("time unit must be positive, got %v", timeUnit)
	}
	if interval <= 0 {
		return nil, newInvalidConfigError("interval must be positive, got %d", interval)
	}
	if interval > math.MaxInt64/int64(timeUnit) {
		return nil, newInvalidConfigError("window %d x %v overflows", interval, timeUnit)
	}

	s := settings{
		config: Config{
			URL:          DefaultURL,
			RequestLimit: requestLimit,
			Window:       time.Duration(interval) * timeUnit,
			Policy:       PolicyWindow,
		},
		encoder: JSONEncoder{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: metrics.Noop{},
	}

	for _, opt := range opts {
		if err := opt(&s); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return newClient(s)
}

func newClient(s settings) (*Client, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	if s.transport == nil {
		s.transport = NewHTTPTransport(nil)
	}

	g, err := gate.New(s.config.RequestLimit, gate.WithWaitObserver(s.metrics.Waiting))
	if err != nil {
		return nil, fmt.Errorf("failed to create gate: %w", err)
	}

	c := &Client{
		config:    s.config,
		gate:      g,
		encoder:   s.encoder,
		transport: s.transport,
		journal:   s.journal,
		logger:    s.logger,
		metrics:   s.metrics,
	}
	if s.config.SmoothingRate > 0 {
		c.smoother = rate.NewLimiter(s.config.SmoothingRate, s.config.SmoothingBurst)
	}

	c.scheduler, err = gate.NewScheduler(s.config.Window, c.resetWindow, gate.WithSchedulerLogger(s.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create reset scheduler: %w", err)
	}
	c.scheduler.Start()

	return c, nil
}

// CreateDocument waits for quota, then encodes doc and posts it with the
// given signature. The admission is spent even if encoding or the request
// fails; only the next window reset gives it back (unless PolicyRelease).
// A non-2xx answer is returned as a Response, not as an error.
func (c *Client) CreateDocument(ctx context.Context, doc *Document, signature string) (*Response, error) {
	docID := documentID(doc)
	c.logger.Info("creating document", "doc_id", docID)

	if err := c.admit(ctx); err != nil {
		return nil, err
	}
	if c.config.Policy == PolicyRelease {
		defer c.release()
	}

	if c.smoother != nil {
		if err := c.smoother.Wait(ctx); err != nil {
			c.metrics.WaitInterrupted()
			return nil, gate.NewInterruptedWaitError(err)
		}
	}

	body, err := c.encoder.Encode(doc)
	if err != nil {
		c.metrics.RequestFailed("encoding")
		return nil, NewEncodingError(docID, err)
	}

	req := &Request{
		URL:         c.config.URL,
		ContentType: contentTypeJSON,
		Signature:   signature,
		Body:        body,
	}

	c.logger.Debug("sending request", "url", req.URL)
	start := time.Now()
	resp, err := c.transport.Send(ctx, req)
	if err != nil {
		c.metrics.RequestFailed("transport")
		return nil, NewTransportError(req.URL, err)
	}
	c.metrics.RequestCompleted(resp.StatusCode, time.Since(start))

	c.logger.Info("received response", "doc_id", docID, "status_code", resp.StatusCode)
	c.logger.Debug("response body", "body", string(resp.Body))

	c.recordReceipt(ctx, doc, resp)

	return resp, nil
}

// admit blocks in the gate until the caller is counted against the window
func (c *Client) admit(ctx context.Context) error {
	start := time.Now()
	err := c.gate.Acquire(ctx)

	if err != nil {
		if errors.Is(err, gate.ErrInterruptedWait) {
			c.metrics.WaitInterrupted()
		}
		return err
	}

	c.metrics.Admitted(time.Since(start))
	c.logger.Debug("request count incremented", "count", c.gate.Count())
	return nil
}

func (c *Client) release() {
	c.gate.Release()
	c.logger.Debug("request count decremented", "count", c.gate.Count())
}

// resetWindow is the scheduler task
func (c *Client) resetWindow() {
	c.gate.Reset()
	c.metrics.WindowReset()
	c.logger.Info("request count reset to 0")
}

func (c *Client) recordReceipt(ctx context.Context, doc *Document, resp *Response) {
	if c.journal == nil {
		return
	}
	if documentID(doc) == "" {
		c.logger.Warn("skipping receipt for document without id")
		return
	}

	_, err := c.journal.Record(ctx, receipts.Receipt{
		DocumentID:   doc.DocID,
		DocumentType: doc.DocType,
		StatusCode:   resp.StatusCode,
		Body:         string(resp.Body),
	})
	if err != nil {
		c.logger.Warn("failed to record receipt", "doc_id", doc.DocID, "error", err)
	}
}

// AdmittedCount returns the admissions in the current window
func (c *Client) AdmittedCount() int {
	return c.gate.Count()
}

// Config returns the client configuration
func (c *Client) Config() Config {
	return c.config
}

// Shutdown stops the window reset scheduler. Callers already blocked
// waiting for quota stay blocked until their context ends or Close is called.
func (c *Client) Shutdown() {
	c.scheduler.Stop()
}

// Close stops the scheduler, releases blocked callers with ErrClosed and
// closes the receipt journal.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.Shutdown()
		c.gate.Close()
		if c.journal != nil {
			if err := c.journal.Close(); err != nil {
				c.closeErr = fmt.Errorf("failed to close receipt journal: %w", err)
			}
		}
	})
	return c.closeErr
}
