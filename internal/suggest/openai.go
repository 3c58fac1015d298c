package suggest

import (
	"context"
	"errors"
	"strings"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"

	"github.com/huangsam/sprintlens/internal/contract"
)

// OpenAIClient asks a chat completion model for suggestions.
type OpenAIClient struct {
	key   string
	model string
	cli   openai.Client
}

var _ contract.Suggester = (*OpenAIClient)(nil)

// NewOpenAIClient creates a client. Extra options are appended after the API key.
func NewOpenAIClient(key, model string, opts ...option.RequestOption) *OpenAIClient {
	if strings.TrimSpace(model) == "" {
		model = contract.DefaultOpenAIModel
	}
	opts = append([]option.RequestOption{option.WithAPIKey(key)}, opts...)
	return &OpenAIClient{key: key, model: model, cli: openai.NewClient(opts...)}
}

// Suggest sends the summary and returns the first choice.
func (c *OpenAIClient) Suggest(ctx context.Context, summary string) (string, error) {
	if strings.TrimSpace(c.key) == "" {
		return "", errors.New("openai: missing key")
	}
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt(summary)),
		},
	}
	resp, err := c.cli.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
