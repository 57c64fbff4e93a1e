package models

// uniform error payload
type ErrorResponse struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	RemainingMs int64  `json:"remainingMs,omitempty"`
	Detail      string `json:"detail,omitempty"`
}

func (e *ErrorResponse) Error() string { return e.Message }

// InterviewResponse pairs an interview with the job it was started from.
type InterviewResponse struct {
	Success   bool       `json:"success"`
	Interview *Interview `json:"interview"`
	Job       *Job       `json:"job,omitempty"`
	Question  *Question  `json:"question,omitempty"`
}

// QuestionResponse wraps a generated or fetched question.
type QuestionResponse struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message,omitempty"`
	Question *Question `json:"question"`
}

// TestCasesResponse carries the client-visible cases for a question.
type TestCasesResponse struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message,omitempty"`
	TestCases []TestCase `json:"testCases"`
}

// StatisticsResponse summarizes a user's interview history.
type StatisticsResponse struct {
	TotalInterviews     int64   `json:"totalInterviews"`
	CompletedInterviews int64   `json:"completedInterviews"`
	AverageScore        float64 `json:"averageScore"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	User    *User  `json:"user,omitempty"`
}
