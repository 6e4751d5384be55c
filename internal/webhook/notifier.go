package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// EventHeader names the event type of a delivery.
const EventHeader = "X-Lifescore-Event"

// EventLeadCaptured is sent once per stored submission.
const EventLeadCaptured = "lead.captured"

// LeadEvent is the JSON body of a lead notification.
type LeadEvent struct {
	SubmissionID string          `json:"submission_id"`
	Email        string          `json:"email"`
	Timestamp    time.Time       `json:"timestamp"`
	Source       string          `json:"source"`
	Audience     string          `json:"audience"`
	Age          int             `json:"age"`
	Answers      json.RawMessage `json:"answers"`
	TotalScore   float64         `json:"total_score"`
}

// Options configures a Notifier.
type Options struct {
	URL     string
	Secret  string
	Timeout time.Duration // per delivery; 10s when zero
	Client  *http.Client
	Logger  *zap.Logger
}

// Notifier delivers lead events in the background. Deliveries are best
// effort: failures are logged and never reported to the caller.
type Notifier struct {
	url     string
	secret  []byte
	timeout time.Duration
	client  *http.Client
	logger  *zap.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewNotifier creates a Notifier. With an empty URL every Notify is a no-op.
func NewNotifier(opts Options) *Notifier {
	n := &Notifier{
		url:     opts.URL,
		secret:  []byte(opts.Secret),
		timeout: opts.Timeout,
		client:  opts.Client,
		logger:  opts.Logger,
	}
	if n.timeout <= 0 {
		n.timeout = 10 * time.Second
	}
	if n.client == nil {
		n.client = &http.Client{}
	}
	if n.logger == nil {
		n.logger = zap.NewNop()
	}
	return n
}

// Enabled reports whether a destination is configured.
func (n *Notifier) Enabled() bool {
	return n != nil && n.url != ""
}

// Notify queues a delivery and returns immediately. The delivery outlives
// ctx cancellation but not its own timeout.
func (n *Notifier) Notify(ctx context.Context, event LeadEvent) {
	if !n.Enabled() {
		return
	}

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		n.logger.Warn("webhook notifier closed, dropping event", zap.String("submission_id", event.SubmissionID))
		return
	}
	n.wg.Add(1)
	n.mu.Unlock()

	go func() {
		defer n.wg.Done()
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
		defer cancel()

		if err := n.Send(sendCtx, event); err != nil {
			n.logger.Warn("webhook delivery failed",
				zap.String("submission_id", event.SubmissionID),
				zap.Error(err),
			)
			return
		}
		n.logger.Debug("webhook delivered", zap.String("submission_id", event.SubmissionID))
	}()
}

// Send delivers one event synchronously.
func (n *Notifier) Send(ctx context.Context, event LeadEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "lifescore-webhook/1")
	req.Header.Set(EventHeader, EventLeadCaptured)
	if len(n.secret) > 0 {
		req.Header.Set(SignatureHeader, Sign(body, n.secret))
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded %s", resp.Status)
	}
	return nil
}

// Close stops accepting events and waits for pending deliveries or ctx.
func (n *Notifier) Close(ctx context.Context) error {
	if n == nil {
		return nil
	}
	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for webhook deliveries: %w", ctx.Err())
	}
}
