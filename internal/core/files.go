package core

import (
	"context"

	"github.com/Reblayzer/BachelorCode-sub000/internal/models"
)

// AccessTokenSource yields a usable bearer token for a linked account.
type AccessTokenSource interface {
	AccessToken(ctx context.Context, userID string, provider models.Provider) (string, error)
}

// FileProvider reads files from one provider on behalf of a user.
type FileProvider interface {
	Provider() models.Provider
	List(
		ctx context.Context,
		userID, folderID string,
		pageSize int,
		pageToken string,
	) (*models.FilePage, error)
	GetMetadata(ctx context.Context, userID, fileID string) (*models.FileMetadata, error)
	GetViewURL(ctx context.Context, userID, fileID string) (string, error)
}
