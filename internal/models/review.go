package models

import (
	"slices"
	"time"
)

// Review - отзыв родителя и ученика о лагере.
// Изменяемое поле после создания только одно: Approved.
type Review struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	ParentName  string    `json:"parentName" gorm:"not null"`
	StudentName string    `json:"studentName" gorm:"not null"`
	Rating      int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment     string    `json:"comment" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"not null;index"`
	Approved    bool      `json:"approved" gorm:"not null;default:false;index"`
}

const (
	MinRating = 1
	MaxRating = 5
)

// FilterApproved возвращает одобренные отзывы, от новых к старым.
// При равном CreatedAt сохраняется порядок хранения.
func FilterApproved(reviews []Review) []Review {
	approved := make([]Review, 0, len(reviews))
	for _, r := range reviews {
		if r.Approved {
			approved = append(approved, r)
		}
	}
	slices.SortStableFunc(approved, func(a, b Review) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return approved
}
