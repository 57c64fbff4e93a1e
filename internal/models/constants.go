package models

import "strings"

// contains all supported programming languages (in lowercase)
var SupportedLanguages = map[string]bool{
	"javascript": true,
	"python":     true,
	"java":       true,
	"cpp":        true,
	"csharp":     true,
	"ruby":       true,
}

// contains all valid complexity/difficulty values (in lowercase)
var ValidComplexities = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
}

// contains all valid question categories
var ValidCategories = map[string]bool{
	"data structures": true,
	"algorithms":      true,
	"databases":       true,
	"system design":   true,
	"frontend":        true,
	"backend":         true,
	"devops":          true,
	"testing":         true,
}

// topics the question generator rotates through to avoid repeat questions
var QuestionTopics = []string{
	"arrays",
	"linked lists",
	"trees",
	"graphs",
	"dynamic programming",
	"sorting",
	"searching",
}

// NormalizeComplexity lowercases the value and falls back to medium when the
// model answers with something outside the accepted set.
func NormalizeComplexity(complexity string) string {
	c := strings.ToLower(strings.TrimSpace(complexity))
	if ValidComplexities[c] {
		return c
	}
	return "medium"
}

// NormalizeCategory lowercases the value and falls back to algorithms.
func NormalizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	if ValidCategories[c] {
		return c
	}
	return "algorithms"
}

func SupportedLanguagesList() []string {
	return []string{"javascript", "python", "java", "cpp", "csharp", "ruby"}
}

func ValidComplexitiesList() []string {
	return []string{"easy", "medium", "hard"}
}
