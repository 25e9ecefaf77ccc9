package models

import "time"

// ProviderFileItem is one entry of a provider folder listing.
type ProviderFileItem struct {
	Provider   Provider  `json:"provider"`
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	MimeType   string    `json:"mimeType,omitempty"`
	IsFolder   bool      `json:"isFolder"`
	Size       int64     `json:"size,omitempty"`
	ModifiedAt time.Time `json:"modifiedAt"`
	WebURL     string    `json:"webUrl,omitempty"`
}

// FilePage is a single page of a provider listing.
type FilePage struct {
	Items         []ProviderFileItem `json:"items"`
	NextPageToken string             `json:"nextPageToken,omitempty"`
}

// FileMetadata describes a single file in detail.
type FileMetadata struct {
	ProviderFileItem
	CreatedAt    time.Time `json:"createdAt,omitzero"`
	ParentID     string    `json:"parentId,omitempty"`
	IconURL      string    `json:"iconUrl,omitempty"`
	Description  string    `json:"description,omitempty"`
	OwnerName    string    `json:"ownerName,omitempty"`
	DownloadURL  string    `json:"downloadUrl,omitempty"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
}
