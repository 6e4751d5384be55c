package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lifescore/lifescore/internal/leads"
	"github.com/lifescore/lifescore/internal/webhook"
	"github.com/lifescore/lifescore/pkg/scoring"
	"github.com/lifescore/lifescore/pkg/surface"
)

var (
	// ErrUnknownAudience is returned for a request that names no questionnaire.
	ErrUnknownAudience = errors.New("unknown audience")
	// ErrMissingAnswers is returned when the answers for the named audience
	// are absent.
	ErrMissingAnswers = errors.New("missing answers")
)

// Notifier delivers lead events. *webhook.Notifier implements it.
type Notifier interface {
	Notify(ctx context.Context, event webhook.LeadEvent)
}

// Request is one completed questionnaire with the contact to attach it to.
type Request struct {
	Email    string                `json:"email"`
	Source   string                `json:"source,omitempty"`
	Audience surface.Audience      `json:"audience"`
	Adult    *scoring.AdultAnswers `json:"adult,omitempty"`
	Child    *scoring.ChildAnswers `json:"child,omitempty"`
}

// Outcome is what Submit produced.
type Outcome struct {
	SubmissionID string               `json:"submission_id"`
	LeadID       string               `json:"lead_id"`
	Adult        *scoring.AdultResult `json:"adult,omitempty"`
	Child        *scoring.ChildResult `json:"child,omitempty"`
	ReportRef    string               `json:"report_ref,omitempty"`
}

// ReportFile is a rendered report ready to download.
type ReportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Service orchestrates the submission pipeline.
type Service struct {
	leads    *leads.Service
	storage  StorageClient
	notifier Notifier
	adult    *scoring.AdultEngine
	child    *scoring.ChildEngine
	source   string
	logger   *zap.Logger
}

// NewService creates a new intake Service. storage and notifier may be nil.
func NewService(leadStore *leads.Service, storage StorageClient, notifier Notifier, adult *scoring.AdultEngine, child *scoring.ChildEngine, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		leads:    leadStore,
		storage:  storage,
		notifier: notifier,
		adult:    adult,
		child:    child,
		source:   "lifescore",
		logger:   logger,
	}
}

// WithSource sets the default lead source recorded when a request has none.
func (s *Service) WithSource(source string) *Service {
	if source != "" {
		s.source = source
	}
	return s
}

// Submit scores a questionnaire, stores the lead and the submission, exports
// the Markdown report and queues the webhook. Only scoring and persistence
// failures are returned; export and notification failures are logged.
func (s *Service) Submit(ctx context.Context, req Request) (*Outcome, error) {
	email, err := leads.NormalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	source := req.Source
	if source == "" {
		source = s.source
	}

	// 1. Score
	out := &Outcome{}
	var (
		age     int
		total   float64
		answers any
		result  any
	)
	switch req.Audience {
	case surface.AudienceAdult:
		if req.Adult == nil {
			return nil, fmt.Errorf("%w: audience %q needs an %q object", ErrMissingAnswers, req.Audience, "adult")
		}
		r, err := s.adult.Evaluate(*req.Adult)
		if err != nil {
			return nil, err
		}
		out.Adult = r
		age, total, answers, result = req.Adult.Age, r.TotalScore, req.Adult, r
	case surface.AudienceChild:
		if req.Child == nil {
			return nil, fmt.Errorf("%w: audience %q needs a %q object", ErrMissingAnswers, req.Audience, "child")
		}
		r, err := s.child.Evaluate(*req.Child)
		if err != nil {
			return nil, err
		}
		out.Child = r
		age, total, answers, result = req.Child.Age, r.TotalScore, req.Child, r
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownAudience, req.Audience)
	}

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("marshal answers: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}

	// 2. Persist
	lead, err := s.leads.UpsertLead(ctx, email, source)
	if err != nil {
		return nil, fmt.Errorf("store lead: %w", err)
	}
	sub, err := s.leads.CreateSubmission(ctx, leads.Submission{
		LeadID:     &lead.ID,
		Audience:   string(req.Audience),
		Age:        age,
		Answers:    answersJSON,
		TotalScore: total,
		Result:     resultJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("store submission: %w", err)
	}
	out.SubmissionID, out.LeadID = sub.ID, lead.ID

	// 3. Export
	if ref, err := s.exportReport(ctx, sub, email); err != nil {
		s.logger.Warn("report export failed", zap.String("submission_id", sub.ID), zap.Error(err))
	} else {
		out.ReportRef = ref
	}

	// 4. Notify
	if s.notifier != nil {
		s.notifier.Notify(ctx, webhook.LeadEvent{
			SubmissionID: sub.ID,
			Email:        email,
			Timestamp:    sub.CreatedAt,
			Source:       source,
			Audience:     sub.Audience,
			Age:          age,
			Answers:      answersJSON,
			TotalScore:   total,
		})
	}

	s.logger.Info("submission stored",
		zap.String("submission_id", sub.ID),
		zap.String("audience", sub.Audience),
		zap.Float64("total_score", total),
	)
	return out, nil
}

func (s *Service) exportReport(ctx context.Context, sub *leads.Submission, email string) (string, error) {
	if s.storage == nil {
		return "", nil
	}
	report, err := BuildReport(sub)
	if err != nil {
		return "", err
	}
	report.Email = email

	key := ReportKey(sub.ID, "md")
	if err := s.storage.PutReport(ctx, key, []byte(surface.BuildMarkdown(report))); err != nil {
		return "", fmt.Errorf("put report blob: %w", err)
	}
	if err := s.leads.SetReportRef(ctx, sub.ID, key); err != nil {
		return "", fmt.Errorf("record report ref: %w", err)
	}
	return key, nil
}

// BuildReport rebuilds the report document of a stored submission.
func BuildReport(sub *leads.Submission) (*surface.Report, error) {
	var report *surface.Report
	switch surface.Audience(sub.Audience) {
	case surface.AudienceAdult:
		var r scoring.AdultResult
		if err := json.Unmarshal(sub.Result, &r); err != nil {
			return nil, fmt.Errorf("decode adult result: %w", err)
		}
		report = surface.FromAdult(&r, sub.CreatedAt)
	case surface.AudienceChild:
		var r scoring.ChildResult
		if err := json.Unmarshal(sub.Result, &r); err != nil {
			return nil, fmt.Errorf("decode child result: %w", err)
		}
		report = surface.FromChild(&r, sub.CreatedAt)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownAudience, sub.Audience)
	}
	report.Email = sub.Email
	return report, nil
}

// Report renders the report of a stored submission in the given format
// ("markdown" or "json"). Markdown is served from storage when exported.
func (s *Service) Report(ctx context.Context, submissionID, format string) (*ReportFile, error) {
	if format == "" {
		format = "markdown"
	}
	ext := map[string]string{"markdown": "md", "md": "md", "json": "json"}[format]
	if ext == "" {
		return nil, fmt.Errorf("unsupported report format %q", format)
	}

	sub, err := s.leads.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	name := surface.Filename(surface.Audience(sub.Audience), ext, sub.CreatedAt)

	if ext == "md" && sub.ReportRef != "" && s.storage != nil {
		data, err := s.storage.GetReport(ctx, sub.ReportRef)
		if err == nil {
			return &ReportFile{Name: name, ContentType: ContentType(sub.ReportRef), Data: data}, nil
		}
		s.logger.Warn("stored report unavailable, rendering", zap.String("submission_id", sub.ID), zap.Error(err))
	}

	report, err := BuildReport(sub)
	if err != nil {
		return nil, err
	}
	renderer, err := surface.RendererFor(format, false)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := renderer.Render(&buf, report); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return &ReportFile{Name: name, ContentType: ContentType(name), Data: buf.Bytes()}, nil
}
