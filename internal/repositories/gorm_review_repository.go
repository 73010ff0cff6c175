package repositories

import (
	"context"
	"errors"
	"fmt"

	"debatecamp/internal/models"

	"gorm.io/gorm"
)

// GormReviewRepository хранит отзывы построчно в БД (postgres или sqlite).
// В отличие от документа, каждая мутация затрагивает одну строку.
type GormReviewRepository struct {
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

func (r *GormReviewRepository) FindAll(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}
	return reviews, nil
}

func (r *GormReviewRepository) FindApproved(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("approved = ?", true).
		Order("created_at DESC").
		Order("id ASC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("find approved reviews: %w", err)
	}
	return reviews, nil
}

func (r *GormReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", ErrDuplicateReview, review.ID)
		}
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

func (r *GormReviewRepository) UpdateApproval(ctx context.Context, id string, approved bool) (*models.Review, error) {
	var review models.Review

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&review, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReviewNotFound
			}
			return err
		}

		// Update по одной колонке: Save/Updates пропустили бы false как нулевое значение
		if err := tx.Model(&review).Update("approved", approved).Error; err != nil {
			return err
		}
		review.Approved = approved
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update review approval: %w", err)
	}

	return &review, nil
}
