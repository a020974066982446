package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LikeSubject names the kind of entity a Like points at.
type LikeSubject string

const (
	LikeSubjectVideo   LikeSubject = "video"
	LikeSubjectComment LikeSubject = "comment"
	LikeSubjectTweet   LikeSubject = "tweet"
)

// Like is a relation row between a user and exactly one of a video, a
// comment or a tweet. At most one Like exists per (subject, likedBy) pair;
// the collection carries partial unique indexes to enforce that under
// concurrent toggles.
type Like struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	VideoID   *primitive.ObjectID `bson:"video,omitempty" json:"video,omitempty"`
	CommentID *primitive.ObjectID `bson:"comment,omitempty" json:"comment,omitempty"`
	TweetID   *primitive.ObjectID `bson:"tweet,omitempty" json:"tweet,omitempty"`
	LikedByID primitive.ObjectID  `bson:"likedBy" json:"likedBy"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}

// NewLike builds a Like with the field matching subject populated.
func NewLike(subject LikeSubject, subjectID, actorID primitive.ObjectID) *Like {
	like := &Like{LikedByID: actorID}
	switch subject {
	case LikeSubjectComment:
		like.CommentID = &subjectID
	case LikeSubjectTweet:
		like.TweetID = &subjectID
	default:
		like.VideoID = &subjectID
	}
	return like
}

// Subscription is a relation row recording that subscriber follows channel.
// At most one exists per (channel, subscriber) pair.
type Subscription struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChannelID    primitive.ObjectID `bson:"channel" json:"channel"`
	SubscriberID primitive.ObjectID `bson:"subscriber" json:"subscriber"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
