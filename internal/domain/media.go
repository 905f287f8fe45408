package domain

import (
	"strings"
	"time"
)

// MediaFile is an uploaded image or video owned by exactly one entity.
type MediaFile struct {
	ID           int64     `json:"id"`
	FileName     string    `json:"fileName"`
	OriginalName string    `json:"originalName"`
	MimeType     string    `json:"mimeType"`
	Size         int64     `json:"size"`
	Bucket       string    `json:"bucket"`
	URL          string    `json:"url,omitempty"`
	EntityType   string    `json:"entityType"`
	EntityID     int64     `json:"entityId"`
	UserID       int64     `json:"userId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (m MediaFile) IsImage() bool { return strings.HasPrefix(m.MimeType, "image/") }
func (m MediaFile) IsVideo() bool { return strings.HasPrefix(m.MimeType, "video/") }

// WithoutMedia returns a copy of files minus the one with mediaID.
func WithoutMedia(files []MediaFile, mediaID int64) []MediaFile {
	out := make([]MediaFile, 0, len(files))
	for _, f := range files {
		if f.ID != mediaID {
			out = append(out, f)
		}
	}
	return out
}
