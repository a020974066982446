package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video represents a published (or drafted) video in the catalog.
type Video struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VideoFile   string             `bson:"videoFile" json:"videoFile"` // media store URL
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"` // media store URL
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Duration    float64            `bson:"duration" json:"duration"` // seconds, derived by the media store

	// Views is monotonic non-decreasing. Every fetch of the video detail
	// increments it by one; there is no per-viewer deduplication.
	Views int64 `bson:"views" json:"views"`

	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	OwnerID     primitive.ObjectID `bson:"owner" json:"owner"`

	// Object keys inside the media store bucket, kept so the objects can be
	// deleted together with the video document.
	VideoKey     string `bson:"videoKey,omitempty" json:"-"`
	ThumbnailKey string `bson:"thumbnailKey,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// VideoWithOwner is a catalog row: a video joined to its owner's public
// profile. The join is produced by the repository's aggregation pipeline.
type VideoWithOwner struct {
	Video `bson:",inline"`
	Owner OwnerProjection `bson:"ownerInfo" json:"ownerInfo"`
}
