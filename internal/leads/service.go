// Package leads stores captured leads (email addresses) and the scored
// submissions attached to them.
package leads

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lifescore/lifescore/internal/platform"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrInvalidEmail is returned for addresses that do not parse.
	ErrInvalidEmail = errors.New("invalid email address")
)

// Service provides lead and submission management backed by SQL.
type Service struct {
	db  *platform.DB
	now func() time.Time
}

// Lead is one captured email address.
type Lead struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// Submission is one scored questionnaire.
type Submission struct {
	ID         string          `json:"id"`
	LeadID     *string         `json:"lead_id,omitempty"`
	Email      string          `json:"email,omitempty"` // filled by list queries
	Audience   string          `json:"audience"`
	Age        int             `json:"age"`
	Answers    json.RawMessage `json:"answers"`
	TotalScore float64         `json:"total_score"`
	Result     json.RawMessage `json:"result"`
	ReportRef  string          `json:"report_ref,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ListOptions filters and pages ListSubmissions.
type ListOptions struct {
	Audience string
	Limit    int
	Offset   int
}

// AudienceStats summarizes the submissions of one audience.
type AudienceStats struct {
	Audience     string  `json:"audience"`
	Count        int     `json:"count"`
	AverageScore float64 `json:"average_score"`
}

// NewService creates a new leads Service.
func NewService(db *platform.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// NormalizeEmail trims and lowercases an address after checking it parses.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return email, nil
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// UpsertLead records an email address, returning the existing lead when the
// address was already captured.
func (s *Service) UpsertLead(ctx context.Context, email, source string) (*Lead, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, s.db.Rebind(
		`INSERT INTO leads (id, email, source, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (email) DO NOTHING`),
		uuid.NewString(), email, source, s.timestamp(),
	)
	if err != nil {
		return nil, fmt.Errorf("upsert lead: %w", err)
	}
	return s.GetLeadByEmail(ctx, email)
}

// GetLeadByEmail looks up a lead by its normalized address.
func (s *Service) GetLeadByEmail(ctx context.Context, email string) (*Lead, error) {
	l := &Lead{}
	err := s.db.QueryRowContext(ctx, s.db.Rebind(
		`SELECT id, email, source, created_at
		 FROM leads WHERE email = $1`),
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&l.ID, &l.Email, &l.Source, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get lead %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get lead %s: %w", email, err)
	}
	return l, nil
}

// CreateSubmission stores a scored questionnaire. ID and CreatedAt are
// assigned here.
func (s *Service) CreateSubmission(ctx context.Context, sub Submission) (*Submission, error) {
	sub.ID = uuid.NewString()
	sub.CreatedAt = s.timestamp()
	if len(sub.Answers) == 0 {
		sub.Answers = json.RawMessage("{}")
	}
	if len(sub.Result) == 0 {
		sub.Result = json.RawMessage("{}")
	}

	_, err := s.db.ExecContext(ctx, s.db.Rebind(
		`INSERT INTO submissions (id, lead_id, audience, age, answers, total_score, result, report_ref, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`),
		sub.ID, sub.LeadID, sub.Audience, sub.Age, string(sub.Answers),
		sub.TotalScore, string(sub.Result), sub.ReportRef, sub.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}
	return &sub, nil
}

// SetReportRef records where the exported report of a submission lives.
func (s *Service) SetReportRef(ctx context.Context, id, ref string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(
		`UPDATE submissions SET report_ref = $1 WHERE id = $2`),
		ref, id,
	)
	if err != nil {
		return fmt.Errorf("set report ref %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("set report ref %s: %w", id, ErrNotFound)
	}
	return nil
}

const submissionColumns = `s.id, s.lead_id, l.email, s.audience, s.age, s.answers,
		        s.total_score, s.result, s.report_ref, s.created_at`

func scanSubmission(row interface{ Scan(...any) error }) (*Submission, error) {
	var (
		sub             Submission
		leadID, email   sql.NullString
		answers, result []byte
	)
	if err := row.Scan(
		&sub.ID, &leadID, &email, &sub.Audience, &sub.Age, &answers,
		&sub.TotalScore, &result, &sub.ReportRef, &sub.CreatedAt,
	); err != nil {
		return nil, err
	}
	sub.Answers, sub.Result = answers, result
	if leadID.Valid {
		sub.LeadID = &leadID.String
	}
	sub.Email = email.String
	return &sub, nil
}

// GetSubmission returns a single submission by ID.
func (s *Service) GetSubmission(ctx context.Context, id string) (*Submission, error) {
	row := s.db.QueryRowContext(ctx, s.db.Rebind(
		`SELECT `+submissionColumns+`
		 FROM submissions s LEFT JOIN leads l ON l.id = s.lead_id
		 WHERE s.id = $1`),
		id,
	)
	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get submission %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get submission %s: %w", id, err)
	}
	return sub, nil
}

// ListSubmissions returns submissions newest first.
func (s *Service) ListSubmissions(ctx context.Context, opts ListOptions) ([]Submission, error) {
	limit := opts.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(
		`SELECT `+submissionColumns+`
		 FROM submissions s LEFT JOIN leads l ON l.id = s.lead_id
		 WHERE ($1 = '' OR s.audience = $1)
		 ORDER BY s.created_at DESC, s.id
		 LIMIT $2 OFFSET $3`),
		opts.Audience, limit, max(opts.Offset, 0),
	)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var subs []Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		subs = append(subs, *sub)
	}
	return subs, rows.Err()
}

// Stats returns submission counts and average scores per audience.
func (s *Service) Stats(ctx context.Context) ([]AudienceStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT audience, COUNT(*), AVG(total_score)
		 FROM submissions GROUP BY audience ORDER BY audience`,
	)
	if err != nil {
		return nil, fmt.Errorf("submission stats: %w", err)
	}
	defer rows.Close()

	var stats []AudienceStats
	for rows.Next() {
		var st AudienceStats
		if err := rows.Scan(&st.Audience, &st.Count, &st.AverageScore); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}
