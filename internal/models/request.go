package models

import "strings"

// StartInterviewRequest begins a mock interview against a job posting.
type StartInterviewRequest struct {
	JobID      string `json:"jobId"`
	Complexity string `json:"complexity"`
}

// implements the Validator interface
func (r *StartInterviewRequest) Validate() error {
	if strings.TrimSpace(r.JobID) == "" {
		return &ErrorResponse{Code: "missing_job_id", Message: "jobId field is required"}
	}
	if r.Complexity == "" {
		r.Complexity = "medium"
	}
	r.Complexity = strings.ToLower(strings.TrimSpace(r.Complexity))
	if !ValidComplexities[r.Complexity] {
		return &ErrorResponse{
			Code:    "invalid_complexity",
			Message: "Complexity must be one of: easy, medium, hard",
		}
	}
	return nil
}

// SubmitRequest carries a candidate's final solution.
type SubmitRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

func (r *SubmitRequest) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return &ErrorResponse{Code: "missing_code", Message: "Code field is required"}
	}
	r.Language = strings.ToLower(strings.TrimSpace(r.Language))
	if r.Language == "" {
		return &ErrorResponse{Code: "missing_language", Message: "Language field is required"}
	}
	if !SupportedLanguages[r.Language] {
		return &ErrorResponse{
			Code:    "unsupported_language",
			Message: "Language not supported. Supported languages: " + strings.Join(SupportedLanguagesList(), ", "),
		}
	}
	return nil
}

// UpdateInterviewRequest saves in-flight progress on an interview: the
// working code, a language switch, or a move into active/in_progress.
type UpdateInterviewRequest struct {
	Code     string `json:"code,omitempty"`
	Language string `json:"language,omitempty"`
	Status   string `json:"status,omitempty"`
}

func (r *UpdateInterviewRequest) Validate() error {
	if r.Code == "" && r.Language == "" && r.Status == "" {
		return &ErrorResponse{Code: "empty_update", Message: "Nothing to update"}
	}
	if r.Language != "" {
		r.Language = strings.ToLower(strings.TrimSpace(r.Language))
		if !SupportedLanguages[r.Language] {
			return &ErrorResponse{
				Code:    "unsupported_language",
				Message: "Language not supported. Supported languages: " + strings.Join(SupportedLanguagesList(), ", "),
			}
		}
	}
	if r.Status != "" {
		r.Status = strings.ToLower(strings.TrimSpace(r.Status))
		switch InterviewStatus(r.Status) {
		case StatusActive, StatusInProgress:
		default:
			return &ErrorResponse{
				Code:    "invalid_status",
				Message: "Status can only be moved to active or in_progress here",
			}
		}
	}
	return nil
}

// FeedbackRequest asks for feedback without submitting.
type FeedbackRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

func (r *FeedbackRequest) Validate() error {
	s := SubmitRequest{Code: r.Code, Language: r.Language}
	if err := s.Validate(); err != nil {
		return err
	}
	r.Language = s.Language
	return nil
}

// GenerateQuestionRequest asks the AI to produce a coding question for a job.
type GenerateQuestionRequest struct {
	JobDescription string `json:"jobDescription"`
	JobTitle       string `json:"jobTitle"`
	Difficulty     string `json:"difficulty"`
	InterviewID    string `json:"interviewId,omitempty"`
}

func (r *GenerateQuestionRequest) Validate() error {
	if strings.TrimSpace(r.JobTitle) == "" {
		return &ErrorResponse{Code: "missing_job_title", Message: "jobTitle field is required"}
	}
	if r.Difficulty == "" {
		r.Difficulty = "medium"
	}
	r.Difficulty = strings.ToLower(strings.TrimSpace(r.Difficulty))
	if !ValidComplexities[r.Difficulty] {
		return &ErrorResponse{
			Code:    "invalid_difficulty",
			Message: "Difficulty must be one of: easy, medium, hard",
		}
	}
	return nil
}

// GetTestCasesRequest fetches the visible cases for a question.
type GetTestCasesRequest struct {
	QuestionID string `json:"questionId"`
}

func (r *GetTestCasesRequest) Validate() error {
	if strings.TrimSpace(r.QuestionID) == "" {
		return &ErrorResponse{Code: "missing_question_id", Message: "questionId field is required"}
	}
	return nil
}

// ExecuteRequest runs a piece of code once against optional stdin.
type ExecuteRequest struct {
	Code           string `json:"code"`
	Language       string `json:"language"`
	Input          string `json:"input,omitempty"`
	ExpectedOutput string `json:"expectedOutput,omitempty"`
}

func (r *ExecuteRequest) Validate() error {
	if r.Code == "" {
		return &ErrorResponse{Code: "missing_code", Message: "No code provided"}
	}
	r.Language = strings.ToLower(strings.TrimSpace(r.Language))
	if !SupportedLanguages[r.Language] {
		return &ErrorResponse{Code: "unsupported_language", Message: "Unsupported language"}
	}
	return nil
}

// TestRunRequest runs a solution against a batch of test cases.
type TestRunRequest struct {
	Code      string     `json:"code"`
	Language  string     `json:"language"`
	TestCases []TestCase `json:"testCases"`
}

func (r *TestRunRequest) Validate() error {
	if r.Code == "" {
		return &ErrorResponse{Code: "missing_code", Message: "Code field is required"}
	}
	r.Language = strings.ToLower(strings.TrimSpace(r.Language))
	if !SupportedLanguages[r.Language] {
		return &ErrorResponse{Code: "unsupported_language", Message: "Unsupported language"}
	}
	if len(r.TestCases) == 0 {
		return &ErrorResponse{Code: "missing_test_cases", Message: "Test cases array is required"}
	}
	return nil
}

// RegisterRequest creates an account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ErrorResponse{Code: "missing_name", Message: "Name is required"}
	}
	if !strings.Contains(r.Email, "@") {
		return &ErrorResponse{Code: "invalid_email", Message: "Please include a valid email"}
	}
	if len(r.Password) < 6 {
		return &ErrorResponse{Code: "weak_password", Message: "Please enter a password with 6 or more characters"}
	}
	return nil
}

// LoginRequest authenticates an account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return &ErrorResponse{Code: "missing_credentials", Message: "Email and password are required"}
	}
	return nil
}

// CreateJobRequest creates or replaces a job posting (admin only).
type CreateJobRequest struct {
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	Description    string   `json:"description"`
	Requirements   []string `json:"requirements,omitempty"`
	Salary         string   `json:"salary,omitempty"`
	JobType        string   `json:"jobType,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	ApplicationURL string   `json:"applicationUrl,omitempty"`
}

func (r *CreateJobRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return &ErrorResponse{Code: "missing_title", Message: "Title is required"}
	}
	if strings.TrimSpace(r.Company) == "" {
		return &ErrorResponse{Code: "missing_company", Message: "Company is required"}
	}
	if strings.TrimSpace(r.Location) == "" {
		return &ErrorResponse{Code: "missing_location", Message: "Location is required"}
	}
	if strings.TrimSpace(r.Description) == "" {
		return &ErrorResponse{Code: "missing_description", Message: "Description is required"}
	}
	if r.JobType == "" {
		r.JobType = "Full-time"
	}
	if !ValidJobTypes[r.JobType] {
		return &ErrorResponse{Code: "invalid_job_type", Message: "jobType must be one of: Full-time, Part-time, Contract, Internship, Remote"}
	}
	return nil
}
