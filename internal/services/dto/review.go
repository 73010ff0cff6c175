package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"debatecamp/internal/models"
)

// ======================
// Request DTOs
// ======================

// CreateReviewRequest - публичная форма отзыва
type CreateReviewRequest struct {
	ParentName  string `json:"parentName" validate:"required"`
	StudentName string `json:"studentName" validate:"required"`
	Rating      Rating `json:"rating" validate:"rating"`
	Comment     string `json:"comment" validate:"required,min=10"`
}

// UpdateApprovalRequest - тело PUT /admin/reviews.
// ID может прийти из пути, тогда в теле он не нужен.
type UpdateApprovalRequest struct {
	ID       string `json:"id"`
	Approved bool   `json:"approved"`
}

const maxRatingMagnitude = 1 << 20

// Rating принимает число или числовую строку ("5") и приводит к int.
// Нечисловое значение не ломает разбор тела: Valid остается false,
// и валидатор сообщает об ошибке именно в поле rating.
type Rating struct {
	Value int
	Valid bool
}

// NewRating - валидный рейтинг из int
func NewRating(v int) Rating {
	return Rating{Value: v, Valid: true}
}

func (r *Rating) UnmarshalJSON(data []byte) error {
	*r = Rating{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < -maxRatingMagnitude || f > maxRatingMagnitude || f != float64(int(f)) {
		return nil
	}
	r.Value = int(f)
	r.Valid = true
	return nil
}

func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// AdminLoginRequest - вход администратора по паролю
type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// ======================
// Response DTOs
// ======================

// ReviewResponse повторяет форму записи в хранилище
type ReviewResponse struct {
	ID          string    `json:"id"`
	ParentName  string    `json:"parentName"`
	StudentName string    `json:"studentName"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"createdAt"`
	Approved    bool      `json:"approved"`
}

func NewReviewResponse(r *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:          r.ID,
		ParentName:  r.ParentName,
		StudentName: r.StudentName,
		Rating:      r.Rating,
		Comment:     r.Comment,
		CreatedAt:   r.CreatedAt,
		Approved:    r.Approved,
	}
}

func NewReviewListResponse(reviews []models.Review) []*ReviewResponse {
	out := make([]*ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, NewReviewResponse(&reviews[i]))
	}
	return out
}

// TokenResponse - выданный токен администратора
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}
