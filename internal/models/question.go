package models

import "time"

// Example is a worked input/output pair shown with a question.
type Example struct {
	Input       string `json:"input" bson:"input"`
	Output      string `json:"output" bson:"output"`
	Explanation string `json:"explanation,omitempty" bson:"explanation,omitempty"`
}

// TestCase is a single judged case. Hidden cases are judged but never
// returned to the client.
type TestCase struct {
	Input          string `json:"input" bson:"input"`
	ExpectedOutput string `json:"expectedOutput" bson:"expectedOutput"`
	IsHidden       bool   `json:"isHidden,omitempty" bson:"isHidden,omitempty"`
}

// Question is a coding-challenge specification. It is created once by the
// generation workflow (or seeded manually) and immutable afterwards.
type Question struct {
	ID          string     `json:"id" bson:"_id"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Difficulty  string     `json:"difficulty" bson:"difficulty"`
	Category    string     `json:"category" bson:"category"`
	Tags        []string   `json:"tags,omitempty" bson:"tags,omitempty"`
	Examples    []Example  `json:"examples" bson:"examples"`
	Constraints []string   `json:"constraints" bson:"constraints"`
	TestCases   []TestCase `json:"testCases" bson:"testCases"`
	CreatedBy   string     `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// Redacted returns a copy safe to hand to a client: hidden test cases are
// stripped, everything else is untouched. Callers keep the original for
// judging and caching.
func (q *Question) Redacted() *Question {
	if q == nil {
		return nil
	}
	out := *q
	visible := make([]TestCase, 0, len(q.TestCases))
	for _, tc := range q.TestCases {
		if tc.IsHidden {
			continue
		}
		visible = append(visible, tc)
	}
	out.TestCases = visible
	return &out
}

// PublicTestCases returns the at most two cases a client is allowed to see.
func (q *Question) PublicTestCases() []TestCase {
	visible := make([]TestCase, 0, 2)
	for _, tc := range q.TestCases {
		if tc.IsHidden {
			continue
		}
		visible = append(visible, tc)
		if len(visible) == 2 {
			break
		}
	}
	return visible
}
