package entity

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

var ErrLeadNotFound = errors.New("lead not found")

// StatusAll is the list filter sentinel meaning "any status".
const StatusAll = "all"

// Entidade: Lead
type Lead struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Company     string     `json:"company" db:"company"`
	Email       string     `json:"email" db:"email"`
	Phone       string     `json:"phone" db:"phone"`
	Status      string     `json:"status" db:"status"`
	Owner       string     `json:"owner" db:"owner"`
	OwnerAvatar string     `json:"owner_avatar" db:"owner_avatar"`
	CreatedDate time.Time  `json:"created_date" db:"created_date"`
	UpdatedDate *time.Time `json:"updated_date" db:"updated_date"` // nil até o primeiro update
}

// LeadFilter carries the optional List filters. Empty fields do not filter.
type LeadFilter struct {
	Search string
	Status string
}

// HasStatus reports whether the filter restricts by status.
func (f LeadFilter) HasStatus() bool {
	return f.Status != "" && f.Status != StatusAll
}

type LeadRepositoryInterface interface {
	List(ctx context.Context, filter LeadFilter) ([]Lead, error)
	FindByID(ctx context.Context, id int64) (*Lead, error)
	// Create inserts the lead and returns the store-assigned id.
	Create(ctx context.Context, lead *Lead) (int64, error)
	// Update overwrites the editable fields. Returns false when no row matched.
	Update(ctx context.Context, lead *Lead) (bool, error)
	// Delete removes the row. Returns false when no row matched.
	Delete(ctx context.Context, id int64) (bool, error)
}

// OwnerInitials joins the first character of each whitespace separated word
// of owner. "Jane Doe" -> "JD". Case is kept as typed.
func OwnerInitials(owner string) string {
	var b strings.Builder
	for _, word := range strings.Fields(owner) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(r)
	}
	return b.String()
}

// AvatarFor returns the explicit avatar when given, otherwise the owner's initials.
func AvatarFor(owner, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return OwnerInitials(owner)
}
