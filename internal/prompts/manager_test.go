package prompts

import (
	"strings"
	"testing"
)

func TestPromptManagerBuildQuestionPrompt(t *testing.T) {
	pm, err := NewPromptManager()
	if err != nil {
		t.Fatalf("NewPromptManager error: %v", err)
	}

	data := map[string]string{
		"Topic":          "graphs",
		"Difficulty":     "easy",
		"JobTitle":       "Backend Engineer",
		"JobDescription": "Build APIs",
		"Timestamp":      "2026-01-01T00:00:00Z",
	}
	prompt, err := pm.BuildPrompt("question", "default", data)
	if err != nil {
		t.Fatalf("BuildPrompt error: %v", err)
	}

	for _, term := range []string{"graphs", "easy", "Backend Engineer", "Build APIs", "testCases"} {
		if !strings.Contains(prompt, term) {
			t.Fatalf("prompt missing %q: %s", term, prompt)
		}
	}
	if strings.Contains(prompt, "{{.") {
		t.Fatalf("unsubstituted placeholder left in prompt: %s", prompt)
	}
}

func TestPromptManagerBuildFeedbackPrompt(t *testing.T) {
	pm, err := NewPromptManager()
	if err != nil {
		t.Fatalf("NewPromptManager error: %v", err)
	}

	prompt, err := pm.BuildPrompt("feedback", "default", map[string]string{
		"Title":       "Two Sum",
		"Description": "Find two numbers",
		"Language":    "python",
		"Code":        "print(1)",
	})
	if err != nil {
		t.Fatalf("BuildPrompt error: %v", err)
	}
	if !strings.Contains(prompt, "Two Sum") || !strings.Contains(prompt, "overallScore") {
		t.Fatalf("feedback prompt incomplete: %s", prompt)
	}
}

func TestPromptManagerUnknownMode(t *testing.T) {
	pm, err := NewPromptManager()
	if err != nil {
		t.Fatalf("NewPromptManager error: %v", err)
	}
	if _, err := pm.BuildPrompt("unknown", "default", nil); err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if _, err := pm.BuildPrompt("question", "missing", nil); err == nil {
		t.Fatal("expected error for missing variant")
	}
	if len(pm.Modes()) < 2 {
		t.Fatalf("expected question and feedback templates, got %v", pm.Modes())
	}
}
