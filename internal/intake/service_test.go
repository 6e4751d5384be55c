package intake

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifescore/lifescore/internal/leads"
	"github.com/lifescore/lifescore/internal/platform"
	"github.com/lifescore/lifescore/internal/webhook"
	"github.com/lifescore/lifescore/pkg/catalog"
	"github.com/lifescore/lifescore/pkg/scoring"
	"github.com/lifescore/lifescore/pkg/surface"
)

type fakeNotifier struct {
	mu     sync.Mutex
	events []webhook.LeadEvent
}

func (f *fakeNotifier) Notify(ctx context.Context, event webhook.LeadEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

type failingStorage struct{}

func (failingStorage) PutReport(ctx context.Context, key string, data []byte) error {
	return errors.New("bucket unavailable")
}

func (failingStorage) GetReport(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("bucket unavailable")
}

func newLeadStore(t *testing.T) *leads.Service {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "intake.db") + "?_pragma=foreign_keys(1)"
	db, err := platform.Open(context.Background(), platform.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, platform.AutoMigrate(db))
	return leads.NewService(db)
}

func newTestService(t *testing.T, storage StorageClient, notifier Notifier) (*Service, *leads.Service) {
	t.Helper()
	store := newLeadStore(t)
	picker := scoring.WithPicker(scoring.FixedPicker(0))
	svc := NewService(store, storage, notifier,
		scoring.NewAdultEngine(picker), scoring.NewChildEngine(picker), nil)
	return svc, store
}

func adultRequest() Request {
	answers := scoring.MidpointAnswers(catalog.Default(), 30)
	return Request{Email: "Jeanne@Example.com", Audience: surface.AudienceAdult, Adult: &answers}
}

func TestSubmitAdult(t *testing.T) {
	notifier := &fakeNotifier{}
	storage := NewLocalStorage(t.TempDir())
	svc, store := newTestService(t, storage, notifier)
	ctx := context.Background()

	out, err := svc.Submit(ctx, adultRequest())
	require.NoError(t, err)
	require.NotNil(t, out.Adult)
	assert.Equal(t, 73.5, out.Adult.TotalScore)
	assert.Equal(t, ReportKey(out.SubmissionID, "md"), out.ReportRef)

	sub, err := store.GetSubmission(ctx, out.SubmissionID)
	require.NoError(t, err)
	assert.Equal(t, "adult", sub.Audience)
	assert.Equal(t, 30, sub.Age)
	assert.Equal(t, "jeanne@example.com", sub.Email)
	assert.Equal(t, out.ReportRef, sub.ReportRef)

	blob, err := storage.GetReport(ctx, out.ReportRef)
	require.NoError(t, err)
	assert.Contains(t, string(blob), "_Rapport préparé pour jeanne@example.com_")

	require.Len(t, notifier.events, 1)
	ev := notifier.events[0]
	assert.Equal(t, out.SubmissionID, ev.SubmissionID)
	assert.Equal(t, "jeanne@example.com", ev.Email)
	assert.Equal(t, "lifescore", ev.Source)
	assert.Equal(t, 73.5, ev.TotalScore)

	var answers map[string]any
	require.NoError(t, json.Unmarshal(ev.Answers, &answers))
	assert.Equal(t, 30.0, answers["age"])
}

func TestSubmitChild(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)

	out, err := svc.WithSource("quiz-ecrans").Submit(context.Background(), Request{
		Email:    "parent@example.com",
		Audience: surface.AudienceChild,
		Child:    &scoring.ChildAnswers{Age: 8, ScreenHours: 10, Devices: []string{"smartphone"}},
	})
	require.NoError(t, err)
	require.NotNil(t, out.Child)
	assert.Equal(t, 0.0, out.Child.TotalScore)
	assert.Empty(t, out.ReportRef, "no storage configured")
}

func TestSubmitRejectsBadInput(t *testing.T) {
	svc, store := newTestService(t, nil, nil)
	ctx := context.Background()

	bad := adultRequest()
	bad.Email = "not-an-email"
	_, err := svc.Submit(ctx, bad)
	assert.ErrorIs(t, err, leads.ErrInvalidEmail)

	young := adultRequest()
	young.Adult.Age = 10
	_, err = svc.Submit(ctx, young)
	assert.ErrorIs(t, err, scoring.ErrInvalidAnswers)

	mismatch := adultRequest()
	mismatch.Audience = surface.AudienceChild
	_, err = svc.Submit(ctx, mismatch)
	assert.ErrorIs(t, err, ErrMissingAnswers)
	assert.ErrorContains(t, err, `"child"`)

	noAdult := adultRequest()
	noAdult.Adult = nil
	_, err = svc.Submit(ctx, noAdult)
	assert.ErrorIs(t, err, ErrMissingAnswers)
	assert.NotErrorIs(t, err, ErrUnknownAudience)

	unknown := adultRequest()
	unknown.Audience = surface.Audience("teen")
	_, err = svc.Submit(ctx, unknown)
	assert.ErrorIs(t, err, ErrUnknownAudience)

	subs, err := store.ListSubmissions(ctx, leads.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, subs, "rejected requests store nothing")
}

func TestSubmitSurvivesStorageFailure(t *testing.T) {
	notifier := &fakeNotifier{}
	svc, _ := newTestService(t, failingStorage{}, notifier)

	out, err := svc.Submit(context.Background(), adultRequest())
	require.NoError(t, err)
	assert.Empty(t, out.ReportRef)
	assert.Len(t, notifier.events, 1)
}

func TestReportFormats(t *testing.T) {
	storage := NewLocalStorage(t.TempDir())
	svc, _ := newTestService(t, storage, nil)
	ctx := context.Background()

	out, err := svc.Submit(ctx, adultRequest())
	require.NoError(t, err)

	md, err := svc.Report(ctx, out.SubmissionID, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(md.Name, "diagnostic-adult-"))
	assert.True(t, strings.HasSuffix(md.Name, ".md"))
	assert.Equal(t, "text/markdown; charset=utf-8", md.ContentType)
	assert.Contains(t, string(md.Data), "## Score : 74/100 (Bon)")

	js, err := svc.Report(ctx, out.SubmissionID, "json")
	require.NoError(t, err)
	assert.Equal(t, "application/json", js.ContentType)
	var report surface.Report
	require.NoError(t, json.Unmarshal(js.Data, &report))
	assert.Equal(t, 73.5, report.Score)
	assert.Equal(t, "jeanne@example.com", report.Email)

	_, err = svc.Report(ctx, out.SubmissionID, "pdf")
	assert.Error(t, err)

	_, err = svc.Report(ctx, "00000000-0000-0000-0000-000000000000", "json")
	assert.ErrorIs(t, err, leads.ErrNotFound)
}

func TestReportRendersWhenBlobMissing(t *testing.T) {
	dir := t.TempDir()
	svc, store := newTestService(t, NewLocalStorage(dir), nil)
	ctx := context.Background()

	out, err := svc.Submit(ctx, Request{
		Email:    "parent@example.com",
		Audience: surface.AudienceChild,
		Child:    &scoring.ChildAnswers{Age: 5, ScreenHours: 2, Devices: []string{"tv"}},
	})
	require.NoError(t, err)
	require.NoError(t, store.SetReportRef(ctx, out.SubmissionID, "reports/missing.md"))

	md, err := svc.Report(ctx, out.SubmissionID, "markdown")
	require.NoError(t, err)
	assert.Contains(t, string(md.Data), "# Diagnostic écrans")
}
