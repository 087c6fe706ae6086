// internal/domain/models/forum_post.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ForumPost is a discussion post. Votes holds the set of voter emails;
// Count is the denormalized cardinality of Votes and every write that
// touches Votes must set Count in the same update so the two never diverge.
type ForumPost struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthorEmail string             `bson:"author_email" json:"author_email"`
	AuthorName  string             `bson:"author_name,omitempty" json:"author_name,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Body        string             `bson:"body" json:"body"`
	Votes       []string           `bson:"votes" json:"votes"`
	Count       int                `bson:"count" json:"count"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
