package model

import (
	"fmt"
	"time"
)

type MemberNote struct {
	ID        int64        `json:"id" db:"id"`
	MemberID  int64        `json:"memberId" db:"member_id"`
	Content   string       `json:"content" db:"content"`
	CreatedBy string       `json:"createdBy" db:"created_by"`
	Category  NoteCategory `json:"category" db:"category"`
	CreatedAt time.Time    `json:"createdAt" db:"created_at"`

	// TimeAgo is computed at render time and never stored.
	TimeAgo string `json:"timeAgo" db:"-"`
}

type MemberNoteRequest struct {
	Content   string       `json:"content" binding:"required,max=5000"`
	CreatedBy string       `json:"createdBy" binding:"max=200"`
	Category  NoteCategory `json:"category" binding:"omitempty,enum"`
}

func (r *MemberNoteRequest) Apply(n *MemberNote) {
	n.Content = r.Content
	n.CreatedBy = r.CreatedBy
	if n.CreatedBy == "" {
		n.CreatedBy = "Admin"
	}
	n.Category = r.Category
	if n.Category == "" {
		n.Category = NoteCategoryGeneral
	}
}

// Stamp sets TimeAgo relative to now.
func (n *MemberNote) Stamp(now time.Time) {
	n.TimeAgo = TimeSince(n.CreatedAt, now)
}

// TimeSince renders the age of t as "just now", "5m ago", "3h ago" or "2d ago".
func TimeSince(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
}
