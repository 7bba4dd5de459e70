package llm

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/option"
)

func newCompletionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"chatcmpl-test","object":"chat.completion","model":"gpt-4o-mini","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":%q}}]}`,
			content)
	}))
}

func newTestOpenAIClient(baseURL string) *OpenAIClient {
	return NewOpenAIClient("test-key",
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	)
}

func TestOpenAISeparate_Success(t *testing.T) {
	srv := newCompletionServer(t, `{"title":"Simple Math","prompt":"What is 2+2?","output":"4"}`)
	defer srv.Close()

	client := newTestOpenAIClient(srv.URL)

	result, err := client.Separate(SeparationInput{Text: "Q: What is 2+2? A: 4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Title != "Simple Math" {
		t.Errorf("title: got %q, want %q", result.Title, "Simple Math")
	}
	if result.Prompt != "What is 2+2?" {
		t.Errorf("prompt: got %q, want %q", result.Prompt, "What is 2+2?")
	}
	if result.Output != "4" {
		t.Errorf("output: got %q, want %q", result.Output, "4")
	}
	if result.ModelUsed != "gpt-4o-mini" {
		t.Errorf("model: got %q, want %q", result.ModelUsed, "gpt-4o-mini")
	}
}

func TestOpenAISeparate_MalformedContent(t *testing.T) {
	srv := newCompletionServer(t, "Sure! The prompt seems to be the first part.")
	defer srv.Close()

	client := newTestOpenAIClient(srv.URL)

	_, err := client.Separate(SeparationInput{Text: "some conversation"})
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
}

func TestOpenAISeparate_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestOpenAIClient(srv.URL)

	_, err := client.Separate(SeparationInput{Text: "some conversation"})
	var svcErr *ExternalServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *ExternalServiceError, got %T: %v", err, err)
	}
	if svcErr.Provider != "openai" {
		t.Errorf("provider: got %q, want %q", svcErr.Provider, "openai")
	}
}

func TestOpenAISeparate_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := newTestOpenAIClient(srv.URL)

	_, err := client.Separate(SeparationInput{Text: "some conversation"})
	var svcErr *ExternalServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *ExternalServiceError, got %T: %v", err, err)
	}
}
