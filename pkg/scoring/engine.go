package scoring

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/lifescore/lifescore/pkg/catalog"
)

// Age domains accepted by the engines.
const (
	MinAdultAge = 18
	MaxAdultAge = 99
	MinChildAge = 1
	MaxChildAge = 18

	MaxChildScreenHours = 12.0
)

// Option configures an engine.
type Option func(*options)

type options struct {
	logger  *zap.Logger
	picker  Picker
	catalog *catalog.Catalog
}

// WithLogger routes diagnostics (skipped answers) to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithPicker pins the random choices.
func WithPicker(p Picker) Option {
	return func(o *options) { o.picker = p }
}

// WithCatalog replaces the embedded static tables.
func WithCatalog(c *catalog.Catalog) Option {
	return func(o *options) { o.catalog = c }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.picker == nil {
		o.picker = randomPicker()
	}
	if o.catalog == nil {
		o.catalog = catalog.Default()
	}
	return o
}

// Validate checks the answers against the catalog domains.
func (a AdultAnswers) Validate(c *catalog.Catalog) error {
	var problems []error
	if a.Age < MinAdultAge || a.Age > MaxAdultAge {
		problems = append(problems, fmt.Errorf("age %d outside %d-%d", a.Age, MinAdultAge, MaxAdultAge))
	}
	for _, id := range AdultQuestions {
		v, _ := a.Value(id)
		q, ok := c.Question(string(id))
		if !ok {
			continue
		}
		if math.IsNaN(v) || !q.Contains(v) {
			problems = append(problems, fmt.Errorf("%s: %s outside %s-%s", id, formatNumber(v), formatNumber(q.Min), formatNumber(q.Max)))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidAnswers, errors.Join(problems...))
	}
	return nil
}

// Validate checks the child answers.
func (a ChildAnswers) Validate() error {
	var problems []error
	if a.Age < MinChildAge || a.Age > MaxChildAge {
		problems = append(problems, fmt.Errorf("age %d outside %d-%d", a.Age, MinChildAge, MaxChildAge))
	}
	if math.IsNaN(a.ScreenHours) || a.ScreenHours < 0 || a.ScreenHours > MaxChildScreenHours {
		problems = append(problems, fmt.Errorf("screen_hours: %s outside 0-%s", formatNumber(a.ScreenHours), formatNumber(MaxChildScreenHours)))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidAnswers, errors.Join(problems...))
	}
	return nil
}

// formatNumber prints v without trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
