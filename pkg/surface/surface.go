// Package surface renders scoring results as reports: terminal, Markdown and
// JSON. A Report is the audience-neutral document every renderer consumes.
package surface

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/lifescore/lifescore/pkg/scoring"
)

// Renderer produces formatted output from a Report.
type Renderer interface {
	// Render writes the formatted report to the writer.
	Render(w io.Writer, report *Report) error
}

// Audience selects the questionnaire a report comes from.
type Audience string

const (
	AudienceAdult Audience = "adult"
	AudienceChild Audience = "child"
)

// Report is a display-ready view of a result.
type Report struct {
	Audience        Audience           `json:"audience"`
	Title           string             `json:"title"`
	Email           string             `json:"email,omitempty"`
	Score           float64            `json:"score"`
	Band            string             `json:"band"`
	BandColor       string             `json:"band_color"`
	Summary         string             `json:"summary"`
	ShockPhrase     string             `json:"shock_phrase"`
	Sections        []Section          `json:"sections"`
	Comparison      scoring.Comparison `json:"comparison"`
	ComparisonUnit  string             `json:"comparison_unit"`
	Recommendations []string           `json:"recommendations"`
	Details         []Detail           `json:"details,omitempty"`
	GeneratedAt     time.Time          `json:"generated_at"`
}

// Section is one sub-impact.
type Section struct {
	Name        string   `json:"name"`
	Score       float64  `json:"score"`
	Description string   `json:"description,omitempty"`
	Lines       []string `json:"lines,omitempty"`
}

// Detail is a titled paragraph of long-form guidance.
type Detail struct {
	Heading string `json:"heading"`
	Text    string `json:"text"`
}

// FromAdult builds the report of an adult result.
func FromAdult(r *scoring.AdultResult, now time.Time) *Report {
	rep := &Report{
		Audience:        AudienceAdult,
		Title:           "Diagnostic sédentarité",
		Score:           r.TotalScore,
		Band:            r.HealthRisk.Level,
		BandColor:       r.HealthRisk.Color,
		Summary:         r.HealthRisk.Description,
		ShockPhrase:     r.ShockPhrase,
		Comparison:      r.Comparison,
		ComparisonUnit:  "/100",
		Recommendations: r.Recommendations,
		GeneratedAt:     now,
	}
	for _, imp := range r.Impacts {
		rep.Sections = append(rep.Sections, Section{
			Name:        imp.Name,
			Score:       imp.Score,
			Description: imp.Description,
			Lines:       imp.Effects,
		})
	}
	if r.DetailedAnalysis != "" {
		rep.Details = append(rep.Details, Detail{Heading: "Analyse détaillée", Text: r.DetailedAnalysis})
	}
	return rep
}

// FromChild builds the report of a child result.
func FromChild(r *scoring.ChildResult, now time.Time) *Report {
	band, color := childBand(r.TotalScore)
	rep := &Report{
		Audience:        AudienceChild,
		Title:           "Diagnostic écrans",
		Score:           r.TotalScore,
		Band:            band,
		BandColor:       color,
		Summary:         fmt.Sprintf("%sh d'écran par jour pour une moyenne de %.1fh à %d ans.", formatHours(r.Answers.ScreenHours), r.ReferenceHours, r.Answers.Age),
		ShockPhrase:     r.ShockPhrase,
		Comparison:      r.Comparison,
		ComparisonUnit:  "h/jour",
		Recommendations: r.Recommendations,
		GeneratedAt:     now,
	}
	for _, imp := range r.Impacts {
		rep.Sections = append(rep.Sections, Section{
			Name:        imp.Name,
			Score:       imp.Score,
			Description: imp.Description,
			Lines:       childFigureLines(imp),
		})
	}

	d := r.Detailed
	for _, dev := range d.Devices {
		rep.Details = append(rep.Details, Detail{Heading: fmt.Sprintf("%s (%s)", dev.Device, d.AgeGroup), Text: dev.Text})
	}
	if d.General != "" {
		rep.Details = append(rep.Details, Detail{Heading: "Recommandations générales", Text: d.General})
	}
	if d.Alternatives != "" {
		rep.Details = append(rep.Details, Detail{Heading: "Activités alternatives", Text: d.Alternatives})
	}
	return rep
}

// Filename names an exported report: diagnostic-<audience>-<unix ms>.<ext>.
func Filename(a Audience, ext string, t time.Time) string {
	return fmt.Sprintf("diagnostic-%s-%d.%s", a, t.UnixMilli(), ext)
}

func childBand(score float64) (string, string) {
	switch {
	case score >= 80:
		return "Excellent", "green"
	case score >= 60:
		return "Correct", "blue"
	case score >= 40:
		return "À surveiller", "orange"
	default:
		return "Préoccupant", "red"
	}
}

func childFigureLines(imp scoring.ImpactResult) []string {
	f := imp.Figures
	switch imp.Key {
	case "sleep":
		return []string{
			fmt.Sprintf("%.1fh de sommeil perdues par nuit", f["hours_lost_per_night"]),
			fmt.Sprintf("%.0fh par an, %.0fh d'ici 18 ans", f["yearly_hours_lost"], f["total_hours_until_18"]),
		}
	case "attention":
		return []string{fmt.Sprintf("Concentration réduite de %.0f%%", f["concentration_decrease"])}
	case "family":
		return []string{
			fmt.Sprintf("%.1fh de temps familial perdues par jour", f["lost_family_time_per_day"]),
			fmt.Sprintf("%.0fh par an", f["yearly_family_time_lost"]),
		}
	}
	return nil
}

// whole rounds a score half away from zero, as the scoring messages do.
func whole(v float64) float64 {
	return math.Round(v)
}

func formatHours(h float64) string {
	if h == math.Trunc(h) {
		return fmt.Sprintf("%.0f", h)
	}
	return fmt.Sprintf("%.1f", h)
}
