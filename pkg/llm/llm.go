// Package llm wraps the LLM-backed intent classifier and result summarizer.
// Both are consumed as black boxes by the orchestrator and both degrade
// instead of failing: classification falls back to the general intent, and
// summarization falls back to a locally computed extractive summary.
package llm

import (
	"context"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/rubiojr/scour/pkg/core"
	"github.com/rubiojr/scour/pkg/log"
)

// Classifier detects the intent behind a query. Implementations must not
// fail: any internal error yields core.IntentGeneral.
type Classifier interface {
	Classify(ctx context.Context, query string) core.Intent
}

// Summarizer produces a short summary of the top results. Implementations
// return a usable summary even when the backing model call fails.
type Summarizer interface {
	Summarize(ctx context.Context, query string, items []core.ResultItem, intent core.Intent) string
}

// Client implements both interfaces over the OpenAI chat API.
type Client struct {
	client openai.Client
	model  string
	logger *log.Logger
}

// NewClient builds an LLM client. model may be empty for the default.
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = string(openai.ChatModelGPT4oMini)
	}
	return &Client{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		logger: log.ForComponent("llm"),
	}
}

const classifyPrompt = `Classify the search query into exactly one of:
shopping, news, learning, videos, travel, health, tech, finance,
entertainment, food, general. Reply with the single word only.`

// Classify maps a query to an intent. Never returns an error; unknown or
// failed classifications become general.
func (c *Client) Classify(ctx context.Context, query string) core.Intent {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(classifyPrompt),
			openai.UserMessage(query),
		},
		Temperature: openai.Float(0),
	})
	if err != nil {
		c.logger.Warnf("intent classification failed, using general: %v", err)
		return core.IntentGeneral
	}
	if len(resp.Choices) == 0 {
		return core.IntentGeneral
	}
	return core.ParseIntent(strings.TrimSpace(strings.ToLower(resp.Choices[0].Message.Content)))
}

const summarizePrompt = `Summarize what these search results say about the
query in two or three sentences. Be factual; do not invent information that
is not in the snippets.`

// Summarize produces a short answer from the top results. On any model
// failure it returns the local extractive fallback instead of nothing.
func (c *Client) Summarize(ctx context.Context, query string, items []core.ResultItem, intent core.Intent) string {
	var b strings.Builder
	b.WriteString("Query: " + query + "\nIntent: " + string(intent) + "\nResults:\n")
	for i, item := range items {
		if i >= 5 {
			break
		}
		b.WriteString("- " + item.Title + ": " + item.Snippet + "\n")
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(summarizePrompt),
			openai.UserMessage(b.String()),
		},
	})
	if err != nil || len(resp.Choices) == 0 {
		c.logger.Warnf("summarization failed, using extractive fallback: %v", err)
		return FallbackSummary(query, items)
	}
	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return FallbackSummary(query, items)
	}
	return summary
}

// FallbackSummary is the locally computed basic summary: the first few
// non-empty snippets joined together. Used when the model is unavailable.
func FallbackSummary(query string, items []core.ResultItem) string {
	var snippets []string
	for _, item := range items {
		if s := strings.TrimSpace(item.Snippet); s != "" {
			snippets = append(snippets, s)
		}
		if len(snippets) == 3 {
			break
		}
	}
	if len(snippets) == 0 {
		return ""
	}
	return strings.Join(snippets, " ")
}

// IsExplanatory is the heuristic deciding whether a query deserves a
// summary at all: questions and definition-style queries do, navigational
// ones do not.
func IsExplanatory(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	if strings.HasSuffix(q, "?") {
		return true
	}
	for _, prefix := range []string{"what", "why", "how", "when", "where", "who", "which", "is ", "are ", "can ", "does ", "do ", "should ", "explain", "define", "meaning of"} {
		if strings.HasPrefix(q, prefix) {
			return true
		}
	}
	return false
}
