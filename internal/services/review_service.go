package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"debatecamp/internal/logger"
	"debatecamp/internal/models"
	"debatecamp/internal/repositories"
	"debatecamp/internal/services/dto"
	"debatecamp/internal/validator"
	"debatecamp/pkg/apperrors"

	"github.com/google/uuid"
)

type ReviewService interface {
	// Public operations
	ListPublic(ctx context.Context) []*dto.ReviewResponse
	Submit(ctx context.Context, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)

	// Admin operations (authorization happens before the call)
	ListAll(ctx context.Context) []*dto.ReviewResponse
	SetApproval(ctx context.Context, id string, approved bool) (*dto.ReviewResponse, error)

	ValidateReviewRequest(req *dto.CreateReviewRequest) error
}

type reviewService struct {
	reviewRepo repositories.ReviewRepository
	validator  *validator.Validator
	notifier   ModerationNotifier

	now   func() time.Time
	newID func() (string, error)
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	v *validator.Validator,
	notifier ModerationNotifier,
) ReviewService {
	if notifier == nil {
		notifier = NoopModerationNotifier{}
	}
	return &reviewService{
		reviewRepo: reviewRepo,
		validator:  v,
		notifier:   notifier,
		now:        time.Now,
		newID:      newReviewID,
	}
}

// newReviewID - UUIDv7: растет со временем и уникален без координации
func newReviewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ---------------- Public Operations ----------------

// ListPublic never fails: a storage fault is logged and reads as an empty collection.
func (s *reviewService) ListPublic(ctx context.Context) []*dto.ReviewResponse {
	reviews, err := s.reviewRepo.FindApproved(ctx)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to read approved reviews, serving empty list", err)
		return []*dto.ReviewResponse{}
	}
	return dto.NewReviewListResponse(reviews)
}

func (s *reviewService) Submit(ctx context.Context, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if err := s.ValidateReviewRequest(req); err != nil {
		return nil, err
	}

	id, err := s.newID()
	if err != nil {
		return nil, apperrors.InternalError(fmt.Errorf("generate review id: %w", err))
	}

	review := &models.Review{
		ID:          id,
		ParentName:  req.ParentName,
		StudentName: req.StudentName,
		Rating:      req.Rating.Value,
		Comment:     req.Comment,
		CreatedAt:   s.now().UTC(),
		Approved:    false,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		logger.CtxWithError(ctx, "Failed to persist review", err, "review_id", id)
		return nil, apperrors.StorageError(err, "Failed to create review")
	}

	logger.CtxInfo(ctx, "Review submitted", "review_id", id, "rating", review.Rating)
	s.notifier.ReviewSubmitted(ctx, review)

	return dto.NewReviewResponse(review), nil
}

func (s *reviewService) ValidateReviewRequest(req *dto.CreateReviewRequest) error {
	if req == nil {
		return apperrors.NewBadRequestError("Request body is required")
	}

	err := s.validator.Validate(req)
	if err == nil {
		return nil
	}

	var vErr *validator.ValidationError
	if errors.As(err, &vErr) {
		return apperrors.ValidationError(vErr.Errors)
	}
	return apperrors.InternalError(err)
}

// ---------------- Admin Operations ----------------

// ListAll returns every review in store order; storage faults read as empty, like ListPublic.
func (s *reviewService) ListAll(ctx context.Context) []*dto.ReviewResponse {
	reviews, err := s.reviewRepo.FindAll(ctx)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to read reviews, serving empty list", err)
		return []*dto.ReviewResponse{}
	}
	return dto.NewReviewListResponse(reviews)
}

func (s *reviewService) SetApproval(ctx context.Context, id string, approved bool) (*dto.ReviewResponse, error) {
	if id == "" {
		return nil, apperrors.ErrReviewIDRequired
	}

	review, err := s.reviewRepo.UpdateApproval(ctx, id, approved)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		logger.CtxWithError(ctx, "Failed to update review approval", err, "review_id", id)
		return nil, apperrors.StorageError(err, "Failed to update review")
	}

	logger.CtxInfo(ctx, "Review moderated", "review_id", id, "approved", approved)
	return dto.NewReviewResponse(review), nil
}
