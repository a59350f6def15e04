// Package models holds the records returned by the query endpoint.
package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/progressboard/internal/common"
)

// Number is a lenient numeric field. JSON numbers and numeric strings are
// accepted; null, absent, non-numeric or non-finite values leave Valid
// false.
type Number struct {
	Value float64
	Valid bool
}

// Num builds a valid Number.
func Num(v float64) Number { return Number{Value: v, Valid: true} }

func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{}

	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	s := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	*n = Number{Value: v, Valid: true}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Object is the activity a transaction or progress record refers to.
type Object struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// IsProject reports whether the object type is "project", case-insensitively.
func (o *Object) IsProject() bool {
	return o != nil && strings.EqualFold(o.Type, common.ProjectType)
}

// Transaction is one experience award.
type Transaction struct {
	ID        int       `json:"id"`
	Amount    Number    `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
	Path      string    `json:"path"`
	Object    *Object   `json:"object"`
}

// Status of a graded activity.
type Status string

const (
	StatusPassed     Status = "Passed"
	StatusFailed     Status = "Failed"
	StatusInProgress Status = "In Progress"
)

// ProgressRecord is one attempt at an activity. An invalid Grade means the
// attempt is still in progress.
type ProgressRecord struct {
	ID        int       `json:"id"`
	Grade     Number    `json:"grade"`
	CreatedAt time.Time `json:"createdAt"`
	Path      string    `json:"path"`
	Object    *Object   `json:"object"`
}

// Status classifies the record by grade.
func (p ProgressRecord) Status() Status {
	switch {
	case !p.Grade.Valid:
		return StatusInProgress
	case p.Grade.Value >= common.PassThreshold:
		return StatusPassed
	default:
		return StatusFailed
	}
}

// Projects keeps the records whose object is a project.
func Projects(records []ProgressRecord) []ProgressRecord {
	out := make([]ProgressRecord, 0, len(records))
	for _, r := range records {
		if r.Object.IsProject() {
			out = append(out, r)
		}
	}
	return out
}
