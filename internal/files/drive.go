package files

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	driveFolderMimeType = "application/vnd.google-apps.folder"
	driveRootFolder     = "root"

	driveListFields = "nextPageToken, files(id, name, mimeType, size, modifiedTime, webViewLink)"
	driveFileFields = "id, name, mimeType, size, modifiedTime, createdTime, webViewLink, " +
		"webContentLink, iconLink, thumbnailLink, description, parents, owners(displayName)"
)

var _ core.FileProvider = (*GoogleDrive)(nil)

// GoogleDrive reads files through the Drive v3 API.
type GoogleDrive struct {
	tokens     core.AccessTokenSource
	httpClient *http.Client
	endpoint   string
	logger     *slog.Logger
}

// DriveOption configures GoogleDrive
type DriveOption func(*GoogleDrive)

// WithDriveEndpoint points the client at a different API base URL.
func WithDriveEndpoint(endpoint string) DriveOption {
	return func(d *GoogleDrive) {
		d.endpoint = endpoint
	}
}

// NewGoogleDrive creates a Drive file provider. httpClient carries the
// retry transport; bearer tokens are layered on per call.
func NewGoogleDrive(
	tokens core.AccessTokenSource,
	httpClient *http.Client,
	logger *slog.Logger,
	opts ...DriveOption,
) *GoogleDrive {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	d := &GoogleDrive{
		tokens:     tokens,
		httpClient: httpClient,
		logger:     logger.With("provider", models.ProviderGoogle.String()),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *GoogleDrive) Provider() models.Provider {
	return models.ProviderGoogle
}

func (d *GoogleDrive) service(ctx context.Context, userID string) (*drive.Service, error) {
	token, err := d.tokens.AccessToken(ctx, userID, models.ProviderGoogle)
	if err != nil {
		return nil, err
	}

	base := context.WithValue(ctx, oauth2.HTTPClient, d.httpClient)
	authed := oauth2.NewClient(base, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))

	opts := []option.ClientOption{option.WithHTTPClient(authed)}
	if d.endpoint != "" {
		opts = append(opts, option.WithEndpoint(d.endpoint))
	}
	return drive.NewService(ctx, opts...)
}

// List returns one page of the folder's children, folders first.
func (d *GoogleDrive) List(
	ctx context.Context,
	userID, folderID string,
	pageSize int,
	pageToken string,
) (*models.FilePage, error) {
	svc, err := d.service(ctx, userID)
	if err != nil {
		return nil, err
	}

	if folderID == "" {
		folderID = driveRootFolder
	}
	query := fmt.Sprintf("'%s' in parents and trashed = false", escapeQuery(folderID))

	call := svc.Files.List().
		Q(query).
		PageSize(int64(ClampPageSize(pageSize, DriveMaxPageSize))).
		OrderBy("folder,modifiedTime desc").
		Fields(googleapi.Field(driveListFields)).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	result, err := call.Do()
	if err != nil {
		return nil, d.wrap("list", err)
	}

	page := &models.FilePage{
		Items:         make([]models.ProviderFileItem, 0, len(result.Files)),
		NextPageToken: result.NextPageToken,
	}
	for _, f := range result.Files {
		page.Items = append(page.Items, driveItem(f))
	}
	return page, nil
}

// GetMetadata returns details of a single file.
func (d *GoogleDrive) GetMetadata(ctx context.Context, userID, fileID string) (*models.FileMetadata, error) {
	svc, err := d.service(ctx, userID)
	if err != nil {
		return nil, err
	}

	f, err := svc.Files.Get(fileID).
		Fields(googleapi.Field(driveFileFields)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, d.wrap("metadata", err)
	}

	meta := &models.FileMetadata{
		ProviderFileItem: driveItem(f),
		CreatedAt:        parseTime(f.CreatedTime),
		IconURL:          f.IconLink,
		Description:      f.Description,
		DownloadURL:      f.WebContentLink,
		ThumbnailURL:     f.ThumbnailLink,
	}
	if len(f.Parents) > 0 {
		meta.ParentID = f.Parents[0]
	}
	if len(f.Owners) > 0 {
		meta.OwnerName = f.Owners[0].DisplayName
	}
	return meta, nil
}

// GetViewURL returns the browser URL of a file.
func (d *GoogleDrive) GetViewURL(ctx context.Context, userID, fileID string) (string, error) {
	svc, err := d.service(ctx, userID)
	if err != nil {
		return "", err
	}

	f, err := svc.Files.Get(fileID).Fields("webViewLink").Context(ctx).Do()
	if err != nil {
		return "", d.wrap("view_url", err)
	}
	if f.WebViewLink == "" {
		return "", fmt.Errorf("%w: file %s has no view link", ErrProviderAPI, fileID)
	}
	return f.WebViewLink, nil
}

// wrap converts Drive client errors to ErrProviderAPI, logging the details.
func (d *GoogleDrive) wrap(operation string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		d.logger.Warn("drive API error",
			"operation", operation,
			"status", gerr.Code,
			"body", truncate([]byte(gerr.Body)),
		)
		return apiError(models.ProviderGoogle, gerr.Code)
	}
	d.logger.Warn("drive request failed", "operation", operation, "error", err)
	return fmt.Errorf("%w: %w", ErrProviderAPI, err)
}

func driveItem(f *drive.File) models.ProviderFileItem {
	return models.ProviderFileItem{
		Provider:   models.ProviderGoogle,
		ID:         f.Id,
		Name:       f.Name,
		MimeType:   f.MimeType,
		IsFolder:   f.MimeType == driveFolderMimeType,
		Size:       f.Size,
		ModifiedAt: parseTime(f.ModifiedTime),
		WebURL:     f.WebViewLink,
	}
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
