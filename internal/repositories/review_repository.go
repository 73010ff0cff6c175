package repositories

import (
	"context"
	"errors"

	"debatecamp/internal/models"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("review id already exists")
	ErrCorruptDocument = errors.New("reviews document is corrupt")
)

// ReviewRepository - хранилище коллекции отзывов.
// Авторизацией не занимается: это забота вызывающей стороны.
type ReviewRepository interface {
	// FindAll возвращает все отзывы в порядке хранения
	FindAll(ctx context.Context) ([]models.Review, error)

	// FindApproved возвращает одобренные отзывы, новые первыми
	FindApproved(ctx context.Context) ([]models.Review, error)

	// Create добавляет новый отзыв в коллекцию
	Create(ctx context.Context, review *models.Review) error

	// UpdateApproval меняет единственное изменяемое поле отзыва
	UpdateApproval(ctx context.Context, id string, approved bool) (*models.Review, error)
}
