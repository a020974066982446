package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Playlist is an owner-curated, ordered sequence of videos. A video may
// appear at most once per playlist.
type Playlist struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description,omitempty" json:"description"`
	VideoIDs    []primitive.ObjectID `bson:"videos" json:"videos"`
	OwnerID     primitive.ObjectID   `bson:"owner" json:"owner"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Contains reports whether videoID is already a member of the playlist.
func (p *Playlist) Contains(videoID primitive.ObjectID) bool {
	for _, id := range p.VideoIDs {
		if id == videoID {
			return true
		}
	}
	return false
}
