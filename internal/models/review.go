package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Review statuses.
const (
	ReviewApproved = "approved"
	ReviewPending  = "pending"
)

// Review is one user's review of one product. The composite unique index
// enforces at most one review per (user, product) even when two requests
// race past the application-level check.
type Review struct {
	BaseModel
	ProductID       uuid.UUID      `gorm:"type:uuid;index;uniqueIndex:idx_reviews_user_product" json:"product_id"`
	ProductCategory string         `json:"product_category"`
	UserID          uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_reviews_user_product" json:"user_id"`
	UserName        string         `json:"user_name"`
	UserEmail       string         `json:"user_email"`
	Rating          int            `json:"rating"`
	Title           string         `json:"title"`
	Comment         string         `json:"comment"`
	Images          pq.StringArray `gorm:"type:text[]" json:"images"`
	Status          string         `json:"status"`
	Helpful         int            `json:"helpful"`
	HelpfulUsers    pq.StringArray `gorm:"type:text[]" json:"-"`
}

// VotedHelpful reports whether the user is in the voter set.
func (r *Review) VotedHelpful(userID uuid.UUID) bool {
	id := userID.String()
	for _, v := range r.HelpfulUsers {
		if v == id {
			return true
		}
	}
	return false
}

// ToggleHelpful adds or removes the user's helpful vote and keeps the
// counter in step with the voter set. It returns true when the vote is now
// present.
func (r *Review) ToggleHelpful(userID uuid.UUID) bool {
	id := userID.String()
	for i, v := range r.HelpfulUsers {
		if v == id {
			r.HelpfulUsers = append(r.HelpfulUsers[:i], r.HelpfulUsers[i+1:]...)
			r.Helpful = len(r.HelpfulUsers)
			return false
		}
	}
	r.HelpfulUsers = append(r.HelpfulUsers, id)
	r.Helpful = len(r.HelpfulUsers)
	return true
}
