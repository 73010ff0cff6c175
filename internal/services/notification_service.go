package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"debatecamp/internal/email"
	"debatecamp/internal/logger"
	"debatecamp/internal/models"
)

// ModerationNotifier узнает о каждом новом отзыве, ожидающем модерации.
// Доставка best-effort: ошибки только логируются и не влияют на Submit.
type ModerationNotifier interface {
	ReviewSubmitted(ctx context.Context, review *models.Review)
}

// NoopModerationNotifier используется, когда SMTP не настроен
type NoopModerationNotifier struct{}

func (NoopModerationNotifier) ReviewSubmitted(ctx context.Context, review *models.Review) {}

// EmailModerationNotifier отправляет модератору письмо в фоне
type EmailModerationNotifier struct {
	provider email.Provider
	renderer email.TemplateRenderer
	to       string

	wg sync.WaitGroup
}

func NewEmailModerationNotifier(provider email.Provider, renderer email.TemplateRenderer, moderatorEmail string) *EmailModerationNotifier {
	return &EmailModerationNotifier{
		provider: provider,
		renderer: renderer,
		to:       moderatorEmail,
	}
}

func (n *EmailModerationNotifier) ReviewSubmitted(ctx context.Context, review *models.Review) {
	snapshot := *review
	ctx = context.WithoutCancel(ctx)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.send(&snapshot); err != nil {
			logger.CtxWithError(ctx, "Failed to notify moderator", err, "review_id", snapshot.ID)
			return
		}
		logger.CtxDebug(ctx, "Moderator notified", "review_id", snapshot.ID)
	}()
}

// Wait блокируется до завершения всех начатых отправок (graceful shutdown, тесты)
func (n *EmailModerationNotifier) Wait() {
	n.wg.Wait()
}

func (n *EmailModerationNotifier) send(review *models.Review) error {
	body, err := n.renderer.Render(email.TemplateReviewPending, email.TemplateData{
		"ID":          review.ID,
		"ParentName":  review.ParentName,
		"StudentName": review.StudentName,
		"Rating":      review.Rating,
		"Comment":     review.Comment,
		"CreatedAt":   review.CreatedAt.Format(time.RFC1123),
	})
	if err != nil {
		return err
	}

	return n.provider.Send(&email.Email{
		To:       []string{n.to},
		Subject:  fmt.Sprintf("New review from %s awaiting approval", review.ParentName),
		HTMLBody: body,
	})
}
