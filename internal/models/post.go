package models

import (
	"time"
)

// Like records a single user's membership in a post's like-set. A user
// appears at most once per post.
type Like struct {
	User string `json:"user" bson:"user"`
}

type Post struct {
	ID     string `json:"id" bson:"_id"`
	UserID string `json:"user" bson:"user_id"`
	Text   string `json:"text" bson:"text"`
	// Author name/avatar are captured at creation and not re-synced when the
	// author later edits their account.
	Name      string    `json:"name" bson:"name"`
	Avatar    string    `json:"avatar" bson:"avatar,omitempty"`
	Likes     []Like    `json:"likes" bson:"likes"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type CreatePostRequest struct {
	Text string `json:"text"`
}

func (r *CreatePostRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Text == "" {
		errors["text"] = "Text is required"
	}

	return errors
}
