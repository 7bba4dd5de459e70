package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

type SeparationInput struct {
	Text string
}

type SeparationResult struct {
	Title         string
	Prompt        string
	Output        string
	PromptVersion string
	ModelUsed     string
}

// Separator splits one combined conversation block into its original
// prompt, output, and a suggested title.
type Separator interface {
	Separate(input SeparationInput) (*SeparationResult, error)
}

// ExternalServiceError means the completion request itself did not complete:
// network failure, auth failure, rate limit, or an upstream error. No
// response content is parsed when this is returned.
type ExternalServiceError struct {
	Provider string
	Err      error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s API error: %v", e.Provider, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// ParseError means the completion arrived but its content was not the
// expected JSON object with title, prompt, and output keys.
type ParseError struct {
	Content string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse response: %v, content: %s", e.Err, e.Content)
}

func (e *ParseError) Unwrap() error { return e.Err }

var errMissingKeys = errors.New("missing one of title, prompt, output")

// parseSeparation parses a model reply strictly. All three keys must be
// present; empty string values are fine. No heuristic splitting on failure.
func parseSeparation(content, modelName string) (*SeparationResult, error) {
	cleaned := cleanJSONResponse(content)

	var parsed struct {
		Title  *string `json:"title"`
		Prompt *string `json:"prompt"`
		Output *string `json:"output"`
	}

	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, &ParseError{Content: content, Err: err}
	}

	if parsed.Title == nil || parsed.Prompt == nil || parsed.Output == nil {
		return nil, &ParseError{Content: content, Err: errMissingKeys}
	}

	return &SeparationResult{
		Title:         *parsed.Title,
		Prompt:        *parsed.Prompt,
		Output:        *parsed.Output,
		PromptVersion: promptVersion,
		ModelUsed:     modelName,
	}, nil
}

// NewFromEnv builds the provider named by LLM_PROVIDER (default "openai").
func NewFromEnv() (Separator, error) {
	switch provider := os.Getenv("LLM_PROVIDER"); provider {
	case "", "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return nil, errors.New("OPENAI_API_KEY is not set")
		}
		return NewOpenAIClient(key), nil
	case "anthropic":
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			return nil, errors.New("ANTHROPIC_API_KEY is not set")
		}
		return NewAnthropicClient(key), nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER: %q", provider)
	}
}
