package scoring

import (
	"sort"

	"go.uber.org/zap"
)

// AnswerPoints is one answer's contribution to the total.
type AnswerPoints struct {
	Question QuestionID `json:"question"`
	Bucket   Bucket     `json:"bucket"`
	Points   float64    `json:"points"`
}

// Breakdown is the detailed output of an aggregation.
type Breakdown struct {
	Score   float64        `json:"score"`
	Total   float64        `json:"total"`
	Max     float64        `json:"max"`
	Scored  []AnswerPoints `json:"scored"`
	Skipped []AnswerPoints `json:"skipped,omitempty"`
}

// Aggregator turns bucketed answers into a 0-100 score.
type Aggregator struct {
	anchors AnchorTable
	logger  *zap.Logger
}

// NewAggregator creates an aggregator over anchors. A nil logger discards
// skip diagnostics.
func NewAggregator(anchors AnchorTable, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{anchors: anchors, logger: logger}
}

// Score returns round1(total/max*100), or 0 when nothing could be scored.
func (a *Aggregator) Score(age float64, answers BucketedAnswers) float64 {
	return a.ScoreDetailed(age, answers).Score
}

// ScoreDetailed scores answers and reports each contribution. Answers whose
// question or bucket is unknown are skipped and logged; they count toward
// neither the total nor the maximum.
func (a *Aggregator) ScoreDetailed(age float64, answers BucketedAnswers) Breakdown {
	table := a.anchors.Build(age)

	var b Breakdown
	for _, id := range orderedQuestions(answers) {
		bucket := answers[id]
		points, ok := table.Points(id, bucket)
		if !ok {
			a.logger.Warn("skipping unscorable answer",
				zap.String("question", string(id)),
				zap.String("bucket", string(bucket)),
				zap.Float64("age", age),
			)
			b.Skipped = append(b.Skipped, AnswerPoints{Question: id, Bucket: bucket})
			continue
		}
		b.Total += points
		b.Max += MaxPoints
		b.Scored = append(b.Scored, AnswerPoints{Question: id, Bucket: bucket, Points: points})
	}

	if b.Max > 0 {
		b.Score = round1(b.Total / b.Max * 100)
	}
	return b
}

// orderedQuestions yields known questions in canonical order, then any
// unknown ids sorted.
func orderedQuestions(answers BucketedAnswers) []QuestionID {
	ids := make([]QuestionID, 0, len(answers))
	known := make(map[QuestionID]bool, len(AdultQuestions))
	for _, id := range AdultQuestions {
		known[id] = true
		if _, ok := answers[id]; ok {
			ids = append(ids, id)
		}
	}

	var extra []QuestionID
	for id := range answers {
		if !known[id] {
			extra = append(extra, id)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(ids, extra...)
}
