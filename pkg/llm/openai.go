package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const promptVersion = "v1"
const systemPrompt = `You are a text separator. Your ONLY job is to split the input text into its original prompt and response components.

CRITICAL RULES:
- DO NOT summarize or modify ANY text
- Return the EXACT original text split into two parts
- Make NO changes to the content
- Preserve ALL formatting and whitespace

Output as JSON only, no other text:
{
  "title": "brief descriptive title (max 6 words)",
  "prompt": "the EXACT, COMPLETE first part of the conversation",
  "output": "the EXACT, COMPLETE response/answer part"
}`

type OpenAIClient struct {
	client    *openai.Client
	model     openai.ChatModel
	modelName string
}

func NewOpenAIClient(apiKey string, opts ...option.RequestOption) *OpenAIClient {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := openai.NewClient(opts...)
	return &OpenAIClient{
		client:    &client,
		model:     openai.ChatModelGPT4oMini,
		modelName: "gpt-4o-mini",
	}
}

func (c *OpenAIClient) Separate(input SeparationInput) (*SeparationResult, error) {
	userPrompt := fmt.Sprintf("Split this text into its original parts with NO modifications: %s", input.Text)

	resp, err := c.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
		Model:       c.model,
		Temperature: openai.Float(0),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})

	if err != nil {
		return nil, &ExternalServiceError{Provider: "openai", Err: err}
	}

	if len(resp.Choices) == 0 {
		return nil, &ExternalServiceError{Provider: "openai", Err: errors.New("no choices in completion")}
	}

	return parseSeparation(resp.Choices[0].Message.Content, c.modelName)
}
