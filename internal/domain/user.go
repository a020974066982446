package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account, which doubles as a channel that
// other users can subscribe to.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"` // unique, stored lowercase
	Email        string             `bson:"email" json:"email"`       // unique
	FullName     string             `bson:"fullname" json:"fullname"`
	Avatar       string             `bson:"avatar" json:"avatar"`
	CoverImage   string             `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON

	// WatchHistory is a deduplicated set of video IDs; a video appears at
	// most once no matter how many times it is watched.
	WatchHistory []primitive.ObjectID `bson:"watchHistory,omitempty" json:"-"`

	// RefreshToken is the current session secret, empty when logged out.
	RefreshToken string `bson:"refreshToken,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// OwnerProjection is the restricted subset of User fields that is safe to
// embed in another entity's response. It is an explicit allowlist: fields
// added to User stay private unless they are added here too.
type OwnerProjection struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Username string             `bson:"username" json:"username"`
	FullName string             `bson:"fullname" json:"fullname"`
	Avatar   string             `bson:"avatar" json:"avatar"`
}
