package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// fallbackModels are tried in order when the configured model is rejected by
// the provider (decommissioned or over quota).
var fallbackModels = []string{
	"llama-3.1-8b-instant",
	"llama-3.3-70b-versatile",
	"gemma2-9b-it",
}

type Client struct {
	client *openai.Client
	model  string
	apiKey string
}

// New builds a chat client against an OpenAI-compatible endpoint. apiKey may
// be empty; Configured reports whether the client can actually serve requests.
func New(apiKey, baseURL, model string) *Client {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  model,
		apiKey: apiKey,
	}
}

// Configured reports whether an API key was provided. Handlers degrade to a
// friendly message instead of erroring when it is not.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

const assistantSystemPrompt = `You are a helpful personal assistant for a second brain application.
The user saves links, notes, documents and tweets into their second brain.
When recent saved items are provided, ground your answer in them and mention
which saved items you used. Be concise and friendly.`

const documentSystemPrompt = `You answer questions strictly from the document excerpts provided.
If the excerpts do not contain the answer, say so plainly instead of guessing.
Quote or reference the excerpt you relied on.`

// Chat answers a free-form question, optionally grounded in the user's recent
// saved content.
func (c *Client) Chat(ctx context.Context, question string, recentItems []string) (string, error) {
	userMsg := question
	if len(recentItems) > 0 {
		userMsg = fmt.Sprintf("Recently saved items:\n%s\n\nQuestion: %s", strings.Join(recentItems, "\n"), question)
	}
	return c.complete(ctx, assistantSystemPrompt, userMsg, 0.7)
}

// AnswerFromDocument answers a question from retrieved document excerpts. A
// lower temperature keeps the answer close to the source text.
func (c *Client) AnswerFromDocument(ctx context.Context, question string, excerpts []string) (string, error) {
	userMsg := fmt.Sprintf("Document excerpts:\n\n%s\n\nQuestion: %s", strings.Join(excerpts, "\n\n---\n\n"), question)
	return c.complete(ctx, documentSystemPrompt, userMsg, 0.3)
}

func (c *Client) complete(ctx context.Context, systemMsg, userMsg string, temperature float32) (string, error) {
	models := []string{c.model}
	for _, m := range fallbackModels {
		if m != c.model {
			models = append(models, m)
		}
	}

	var lastErr error
	for _, model := range models {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemMsg,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: userMsg,
				},
			},
			Temperature: temperature,
			MaxTokens:   1024,
		})
		if err != nil {
			lastErr = err
			log.Printf("AI model %s failed: %v", model, err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("no response from AI")
			continue
		}
		return resp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("failed to call AI API: %w", lastErr)
}
