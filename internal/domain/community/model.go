package community

import (
	"time"

	"github.com/google/uuid"
)

// Post topics. Free text is allowed; these are the ones the mobile app
// offers as filters.
const (
	TopicGeneral      = "general"
	TopicPregnancy    = "pregnancy"
	TopicNutrition    = "nutrition"
	TopicImmunization = "immunization"
	TopicNewborn      = "newborn"
)

// Post is a caregiver-authored discussion post. AuthorName is denormalized
// from the account at creation time so listing posts does not join accounts.
type Post struct {
	ID           uuid.UUID `db:"id" json:"id"`
	AccountID    uuid.UUID `db:"account_id" json:"account_id"`
	AuthorName   string    `db:"author_name" json:"author_name"`
	Topic        string    `db:"topic" json:"topic"`
	Title        string    `db:"title" json:"title"`
	Body         string    `db:"body" json:"body"`
	CommentCount int       `db:"comment_count" json:"comment_count"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Comment is a reply on a post.
type Comment struct {
	ID         uuid.UUID `db:"id" json:"id"`
	PostID     uuid.UUID `db:"post_id" json:"post_id"`
	AccountID  uuid.UUID `db:"account_id" json:"account_id"`
	AuthorName string    `db:"author_name" json:"author_name"`
	Body       string    `db:"body" json:"body"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
