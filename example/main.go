// Package main demonstrates how to use the trust moderation engine.
//
// This example shows:
// 1. Building the three signal providers from environment credentials
// 2. Wrapping providers with retry and call logging
// 3. Moderating a submission and branching on the decision
// 4. Collecting pending-review content in a review queue
// 5. Rendering content per viewer with a visibility policy
package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	trust "github.com/ajudaki/trust"
	"github.com/ajudaki/trust/classify"
	"github.com/ajudaki/trust/engine"
	"github.com/ajudaki/trust/providers"
	"github.com/ajudaki/trust/providers/llm"
	"github.com/ajudaki/trust/providers/perspective"
	"github.com/ajudaki/trust/providers/sightengine"
	"github.com/ajudaki/trust/review"
	"github.com/ajudaki/trust/visibility"
)

func main() {
	ctx := context.Background()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// ============================================================
	// Step 1: Build Providers from Environment
	// ============================================================
	// Missing credentials are fine: the engine degrades per signal
	// (safety signals force review, classification defaults to normal).
	imageScorer := sightengine.New(sightengine.ConfigFromEnv())
	textScorer := perspective.New(perspective.ConfigFromEnv())
	completer := llm.New(llm.ConfigFromEnv())

	// ============================================================
	// Step 2: Add Retry and Call Logging
	// ============================================================
	resilience := providers.DefaultResilientConfig()
	resilience.Logger = providers.NewCallLogger(logger)

	// ============================================================
	// Step 3: Wire a Review Queue via Hooks
	// ============================================================
	queue := review.NewQueue(nil)
	queue.OnTask = func(ctx context.Context, task review.Task) error {
		logger.Info("content queued for human review",
			zap.String("task_id", task.TaskID),
			zap.Strings("reasons", task.Reasons),
		)
		return nil
	}

	// ============================================================
	// Step 4: Create the Engine
	// ============================================================
	eng := engine.New(engine.Options{
		ImageScorer: providers.WrapImageScorer(imageScorer, resilience),
		TextScorer:  providers.WrapTextScorer(textScorer, resilience),
		Completer:   providers.WrapCompleter(completer, resilience),
		Hooks:       queue,
		Logger:      logger,
	})

	// ============================================================
	// Example 1: Moderate a Post
	// ============================================================
	log.Println("\n=== Example 1: Moderate a Post ===")

	decision := eng.Moderate(ctx, trust.ModerationInput{
		Title:  "Ajudem minha família",
		Body:   "Estamos passando por um momento difícil. Doações via pix: 123.456.789-00",
		Images: []trust.ImageRef{"https://example.com/photo.jpg"},
	}, nil)

	log.Printf("Decision=%s OverallScore=%.2f Category=%s (%dms)",
		decision.Decision, decision.OverallScore, decision.ContentCategory,
		decision.ProcessingTimeMs)

	switch {
	case decision.Blocked():
		log.Printf("  -> Rejecting: %v", decision.BlockedReasons)
	case decision.NeedsReview():
		log.Printf("  -> Queueing for moderators: %v", decision.ReviewReasons)
	default:
		log.Println("  -> Publishing")
	}

	// ============================================================
	// Example 2: Cheap Pre-Filter Without the Network
	// ============================================================
	log.Println("\n=== Example 2: Quick Money Check ===")

	if classify.QuickMoneyCheck("Ajudem", "aceito doações via pix") {
		log.Println("strong money-request indicator found, flagging for the classifier")
	}

	// ============================================================
	// Example 3: Batch Moderation
	// ============================================================
	log.Println("\n=== Example 3: Batch Moderation ===")

	batch := eng.ModerateBatch(ctx, engine.BatchInput{
		Items: []trust.ModerationInput{
			{Title: "Bom dia", Body: "Bom dia a todos, ótima semana!"},
			{Title: "Vendo bicicleta", Body: "Bicicleta aro 29 em bom estado, aceito propostas."},
			{Title: "Atenção", Body: "Você vai se arrepender se aparecer por aqui de novo."},
		},
		Concurrency: 2,
	})

	log.Printf("Batch: overall=%s blocked=%d review=%d",
		batch.OverallDecision, batch.BlockedCount, batch.ReviewCount)

	// ============================================================
	// Example 4: Work the Review Queue
	// ============================================================
	log.Println("\n=== Example 4: Review Queue ===")

	pending, err := queue.Pending(ctx, 10)
	if err != nil {
		log.Printf("failed to list pending tasks: %v", err)
	}
	for _, task := range pending {
		log.Printf("pending task %s: %q (%v)", task.TaskID, task.Input.Title, task.Reasons)

		// A moderator resolves the task to a final verdict.
		if _, err := queue.Resolve(ctx, task.TaskID, review.Resolution{
			Decision:  trust.DecisionApproved,
			Moderator: "moderator_01",
			Note:      "reviewed, content is fine",
		}); err != nil {
			log.Printf("failed to resolve task: %v", err)
		}
	}

	// ============================================================
	// Example 5: Render Per Viewer
	// ============================================================
	log.Println("\n=== Example 5: Visibility ===")

	for _, viewer := range []visibility.ViewerRole{
		visibility.ViewerCreator,
		visibility.ViewerPublic,
		visibility.ViewerModerator,
	} {
		view := visibility.Resolve(visibility.DefaultPolicy, decision, viewer)
		log.Printf("%s: visible=%v message=%q", viewer, view.Visible, view.Message)
	}

	log.Println("\n=== Demo Complete ===")
}
