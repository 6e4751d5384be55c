package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseQuestions decodes a questions YAML document.
func ParseQuestions(r io.Reader) ([]Question, error) {
	var doc struct {
		Questions []Question `yaml:"questions"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	if len(doc.Questions) == 0 {
		return nil, errors.New("no questions defined")
	}
	for _, q := range doc.Questions {
		if q.ID == "" {
			return nil, errors.New("question with empty id")
		}
		if q.Max < q.Min {
			return nil, fmt.Errorf("question %s: max %v below min %v", q.ID, q.Max, q.Min)
		}
	}
	return doc.Questions, nil
}

// ParseReference reads an "age,value" CSV with a header row. Every value is
// multiplied by scale. Ages must be contiguous.
func ParseReference(r io.Reader, scale float64) (*ReferenceTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) < 2 {
		return nil, errors.New("reference table has no rows")
	}

	t := &ReferenceTable{}
	for i, rec := range records[1:] {
		age, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad age %q: %w", i+2, rec[0], err)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad value %q: %w", i+2, rec[1], err)
		}
		if i == 0 {
			t.first = age
		} else if age != t.first+i {
			return nil, fmt.Errorf("row %d: age %d breaks the sequence (want %d)", i+2, age, t.first+i)
		}
		t.values = append(t.values, v*scale)
	}
	return t, nil
}

// ParseRecommendations decodes the bracketed recommendation YAML.
func ParseRecommendations(r io.Reader) (*RecommendationTable, error) {
	var t RecommendationTable
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	if len(t.Brackets) == 0 {
		return nil, errors.New("no brackets defined")
	}
	for i, b := range t.Brackets {
		if i > 0 && b.Upper <= t.Brackets[i-1].Upper {
			return nil, fmt.Errorf("bracket %q: upper %d not above previous bracket", b.Label, b.Upper)
		}
		for _, c := range DeviceCategories {
			if b.Devices[c] == "" {
				return nil, fmt.Errorf("bracket %q: missing text for %s", b.Label, c)
			}
		}
	}
	return &t, nil
}
