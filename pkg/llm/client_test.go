package llm

import (
	"errors"
	"testing"
)

func TestParseSeparation_WellFormed(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantTitle  string
		wantPrompt string
		wantOutput string
	}{
		{
			name:       "plain JSON",
			content:    `{"title":"Simple Math","prompt":"What is 2+2?","output":"4"}`,
			wantTitle:  "Simple Math",
			wantPrompt: "What is 2+2?",
			wantOutput: "4",
		},
		{
			name:       "empty string values",
			content:    `{"title":"","prompt":"","output":""}`,
			wantTitle:  "",
			wantPrompt: "",
			wantOutput: "",
		},
		{
			name:       "fenced block",
			content:    "```json\n{\"title\":\"Greeting\",\"prompt\":\"hi\",\"output\":\"hello\"}\n```",
			wantTitle:  "Greeting",
			wantPrompt: "hi",
			wantOutput: "hello",
		},
		{
			name:       "surrounding prose",
			content:    `Here is the split: {"title":"Greeting","prompt":"hi","output":"hello"} Hope that helps!`,
			wantTitle:  "Greeting",
			wantPrompt: "hi",
			wantOutput: "hello",
		},
		{
			name:       "whitespace preserved in values",
			content:    "{\"title\":\"T\",\"prompt\":\"line one\\n\\nline two\",\"output\":\"  indented\"}",
			wantTitle:  "T",
			wantPrompt: "line one\n\nline two",
			wantOutput: "  indented",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSeparation(tt.content, "test-model")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Title != tt.wantTitle {
				t.Errorf("title: got %q, want %q", got.Title, tt.wantTitle)
			}
			if got.Prompt != tt.wantPrompt {
				t.Errorf("prompt: got %q, want %q", got.Prompt, tt.wantPrompt)
			}
			if got.Output != tt.wantOutput {
				t.Errorf("output: got %q, want %q", got.Output, tt.wantOutput)
			}
			if got.ModelUsed != "test-model" {
				t.Errorf("model: got %q, want %q", got.ModelUsed, "test-model")
			}
		})
	}
}

func TestParseSeparation_ParseError(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid JSON", content: `{"title": "broken`},
		{name: "not an object", content: `"just a string"`},
		{name: "missing title", content: `{"prompt":"p","output":"o"}`},
		{name: "missing prompt", content: `{"title":"t","output":"o"}`},
		{name: "missing output", content: `{"title":"t","prompt":"p"}`},
		{name: "null literal", content: `null`},
		{name: "empty content", content: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSeparation(tt.content, "test-model")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if got != nil {
				t.Errorf("expected nil result on parse failure, got %+v", got)
			}
		})
	}
}
