// Package generator calls the text-generation API to produce a code
// snippet for a prompt. Any transport error, non-success response or
// empty body is reported as an error; the caller aborts the run.
package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"snippet-bot/config"
)

const systemInstruction = `You write short, self-contained JavaScript snippets.
Respond with ONLY the code for the requested function.
Do not wrap the code in a markdown code block and do not add commentary.`

// RequestLog captures one generation call for the local ai_logs history.
type RequestLog struct {
	Prompt       string
	Response     string
	LatencyMs    int64
	ModelName    string
	ModelVersion string
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
	RequestedAt  time.Time
	CompletedAt  time.Time
}

type Generator struct {
	client *genai.Client
	cfg    config.GenerationConfig
}

func New(ctx context.Context, cfg config.GenerationConfig) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("generator: GEMINI_API_KEY is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, err
	}
	return &Generator{client: client, cfg: cfg}, nil
}

// Generate sends prompt to the model and returns the cleaned snippet text.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, *RequestLog, error) {
	requestedAt := time.Now()

	result, err := g.client.Models.GenerateContent(
		ctx,
		g.cfg.Model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
			MaxOutputTokens:   g.cfg.MaxOutputTokens,
			Temperature:       genai.Ptr(g.cfg.Temperature),
		},
	)
	if err != nil {
		return "", nil, err
	}

	snippet := CleanSnippet(result.Text())
	if snippet == "" {
		return "", nil, fmt.Errorf("generator: model returned an empty snippet")
	}

	reqLog := &RequestLog{
		Prompt:       prompt,
		Response:     snippet,
		LatencyMs:    time.Since(requestedAt).Milliseconds(),
		ModelName:    g.cfg.Model,
		ModelVersion: result.ModelVersion,
		RequestedAt:  requestedAt,
		CompletedAt:  time.Now(),
	}
	if result.UsageMetadata != nil {
		reqLog.InputTokens = int64(result.UsageMetadata.PromptTokenCount)
		reqLog.OutputTokens = int64(result.UsageMetadata.CandidatesTokenCount)
		reqLog.TotalTokens = int64(result.UsageMetadata.TotalTokenCount)
	}

	return snippet, reqLog, nil
}

// CleanSnippet trims surrounding whitespace and strips a wrapping markdown
// code fence if the model added one despite the instruction.
func CleanSnippet(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// drop an optional language tag on the fence line
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	} else {
		return strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
