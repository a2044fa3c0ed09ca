// Package llm wraps the Anthropic API for opt-in commit message suggestions.
// The change classifier never consults it; severity and impact analysis stay
// purely heuristic.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// maxDiffChars truncates very large diffs before sending them to the API.
const maxDiffChars = 30000

// Client wraps the Anthropic API for commit message suggestions.
type Client struct {
	api   *anthropic.Client
	model anthropic.Model
}

// NewClient creates an LLM client with the given API key and model.
func NewClient(apiKey, model string) *Client {
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	client := anthropic.NewClient(opts...)
	return &Client{
		api:   &client,
		model: anthropic.Model(model),
	}
}

// buildCommitPrompt constructs the system and user prompts for a commit
// message suggestion from a staged diff.
func buildCommitPrompt(diff string) (system string, user string) {
	system = `You write git commit messages. Given a staged diff, return a single conventional commit subject line.

Rules:
- Format: "<type>: <summary>" where type is one of feat, fix, refactor, docs, test, chore
- Maximum 72 characters
- Imperative mood ("add", not "added" or "adds")
- Describe what the change does, not how
- Return ONLY the subject line, no explanation, no quotes, no markdown`

	if len(diff) > maxDiffChars {
		diff = diff[:maxDiffChars] + "\n... (diff truncated)"
	}

	var sb strings.Builder
	sb.WriteString("Suggest a commit message for this staged diff:\n\n")
	sb.WriteString(diff)
	user = sb.String()
	return
}

// SuggestCommitMessage sends the staged diff to the LLM and returns a single
// commit subject line.
func (c *Client) SuggestCommitMessage(ctx context.Context, diff string) (string, error) {
	systemPrompt, userPrompt := buildCommitPrompt(diff)

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 256,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API call: %w", err)
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return "", fmt.Errorf("no text content in API response")
	}

	// Models occasionally wrap the answer anyway; keep only the first line.
	text = strings.TrimSpace(text)
	text = strings.Trim(text, "`\"")
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = strings.TrimSpace(text[:idx])
	}
	return text, nil
}
