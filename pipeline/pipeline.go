// Package pipeline runs one end-to-end invocation: pick a prompt,
// generate a snippet, resolve its explanation, acquire a cover image,
// assemble the post document and persist it. Steps run strictly in
// sequence; each failure follows the step's declared policy.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"snippet-bot/composer"
	"snippet-bot/config"
	"snippet-bot/eventbus"
	"snippet-bot/events"
	"snippet-bot/generator"
	"snippet-bot/logger"
	"snippet-bot/models"
	"snippet-bot/prompts"
)

// SnippetGenerator produces snippet text for a prompt (Abort on failure).
type SnippetGenerator interface {
	Generate(ctx context.Context, prompt string) (string, *generator.RequestLog, error)
}

// ImageAcquirer yields an asset ID, or "" when acquisition degraded.
type ImageAcquirer interface {
	Acquire(ctx context.Context, title string) string
}

// DocumentCreator persists the assembled post document.
type DocumentCreator interface {
	CreateDocument(ctx context.Context, doc any) (string, error)
}

// RunStore records finished invocations.
type RunStore interface {
	Insert(ctx context.Context, run *models.Run) (*mongo.InsertOneResult, error)
}

// AILogStore records generation calls.
type AILogStore interface {
	Insert(ctx context.Context, log models.AIRequestLog) (*mongo.InsertOneResult, error)
}

type Pipeline struct {
	cfg       *config.Config
	generator SnippetGenerator
	acquirer  ImageAcquirer
	store     DocumentCreator
	runs      RunStore
	aiLogs    AILogStore
	publisher eventbus.Publisher

	// injectable for tests
	pick func() prompts.Entry
	now  func() time.Time
}

func New(cfg *config.Config, gen SnippetGenerator, acq ImageAcquirer, store DocumentCreator, runs RunStore, aiLogs AILogStore, publisher eventbus.Publisher) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		generator: gen,
		acquirer:  acq,
		store:     store,
		runs:      runs,
		aiLogs:    aiLogs,
		publisher: publisher,
		pick:      prompts.Pick,
		now:       time.Now,
	}
}

// Run executes one invocation. The returned error reflects an aborted
// run; a degraded image is not an error.
func (p *Pipeline) Run(ctx context.Context) error {
	startedAt := p.now()
	entry := p.pick()

	logger.InfoWithFields("pipeline started", logger.Fields{"prompt": entry.Prompt})

	snippet, reqLog, err := p.generator.Generate(ctx, entry.Prompt)
	if err != nil {
		logger.Log.Errorf("snippet generation failed, aborting run: %v", err)
		p.recordRun(ctx, &models.Run{
			StartedAt:    startedAt,
			Prompt:       entry.Prompt,
			Status:       models.RunAborted,
			ErrorMessage: err.Error(),
		})
		return fmt.Errorf("pipeline: %s step (%s): %w", StepGenerate, Policies[StepGenerate], err)
	}
	p.recordAILog(ctx, reqLog)

	explanation := prompts.ExplanationFor(entry.Prompt)
	title := composer.TitleFor(entry.Prompt, p.now())

	assetID := p.acquirer.Acquire(ctx, title)
	if assetID == "" {
		logger.Log.Warnf("cover image unavailable, publishing post without one (title=%s)", title)
	}

	doc := composer.Compose(composer.Input{
		Title:        title,
		Snippet:      snippet,
		Explanation:  explanation,
		ImageAssetID: assetID,
		AuthorID:     p.cfg.ContentStore.AuthorID,
		CategoryID:   p.cfg.ContentStore.CategoryID,
		PublishedAt:  p.now(),
	})

	postID, err := p.store.CreateDocument(ctx, doc)
	if err != nil {
		logger.Log.Errorf("post persistence failed: %v", err)
		p.recordRun(ctx, &models.Run{
			StartedAt:     startedAt,
			Prompt:        entry.Prompt,
			Title:         title,
			Status:        models.RunAborted,
			ImageDegraded: assetID == "",
			ErrorMessage:  err.Error(),
		})
		return fmt.Errorf("pipeline: %s step (%s): %w", StepPersist, Policies[StepPersist], err)
	}

	p.recordRun(ctx, &models.Run{
		StartedAt:     startedAt,
		Prompt:        entry.Prompt,
		Title:         title,
		Status:        models.RunSucceeded,
		PostID:        postID,
		ImageDegraded: assetID == "",
	})

	event := events.NewPostCreatedEvent(postID, title, doc.Slug.Current, entry.Prompt, assetID != "")
	if err := p.publisher.Publish(ctx, event.ID, event); err != nil {
		logger.Log.Warnf("post-created event publish failed: %v", err)
	}

	logger.InfoWithFields("pipeline finished", logger.Fields{
		"post_id":        postID,
		"title":          title,
		"image_degraded": assetID == "",
		"duration":       time.Since(startedAt).String(),
	})
	return nil
}

func (p *Pipeline) recordRun(ctx context.Context, run *models.Run) {
	run.FinishedAt = p.now()
	if _, err := p.runs.Insert(ctx, run); err != nil {
		logger.Log.Warnf("run history insert failed: %v", err)
	}
}

func (p *Pipeline) recordAILog(ctx context.Context, reqLog *generator.RequestLog) {
	if reqLog == nil {
		return
	}
	_, err := p.aiLogs.Insert(ctx, models.AIRequestLog{
		ModelName:      reqLog.ModelName,
		ModelVersion:   reqLog.ModelVersion,
		InputTokens:    reqLog.InputTokens,
		OutputTokens:   reqLog.OutputTokens,
		TotalTokens:    reqLog.TotalTokens,
		DurationMs:     reqLog.LatencyMs,
		InputPrompt:    reqLog.Prompt,
		OutputResponse: reqLog.Response,
		RequestedAt:    reqLog.RequestedAt,
		CompletedAt:    reqLog.CompletedAt,
	})
	if err != nil {
		logger.Log.Warnf("ai log insert failed: %v", err)
	}
}
