package files

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"

	"github.com/tidwall/gjson"
)

const (
	// GraphBaseURL is the Microsoft Graph v1.0 endpoint
	GraphBaseURL = "https://graph.microsoft.com/v1.0"

	graphListSelect = "id,name,file,folder,size,lastModifiedDateTime,webUrl"

	// maxGraphBody bounds how much of a Graph response is read.
	maxGraphBody = 8 << 20
)

var _ core.FileProvider = (*OneDrive)(nil)

// OneDrive reads files through the Microsoft Graph drive API.
// Continuation pages are addressed by Graph's @odata.nextLink, returned
// to callers as an opaque page token.
type OneDrive struct {
	tokens     core.AccessTokenSource
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewOneDrive creates a OneDrive file provider. An empty baseURL means GraphBaseURL.
func NewOneDrive(
	tokens core.AccessTokenSource,
	httpClient *http.Client,
	baseURL string,
	logger *slog.Logger,
) *OneDrive {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = GraphBaseURL
	}
	return &OneDrive{
		tokens:     tokens,
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.With("provider", models.ProviderMicrosoft.String()),
	}
}

func (o *OneDrive) Provider() models.Provider {
	return models.ProviderMicrosoft
}

// List returns one page of the folder's children.
func (o *OneDrive) List(
	ctx context.Context,
	userID, folderID string,
	pageSize int,
	pageToken string,
) (*models.FilePage, error) {
	var endpoint string
	if pageToken != "" {
		// The next link carries the bearer token to wherever it points
		if !strings.HasPrefix(pageToken, o.baseURL+"/") {
			return nil, ErrInvalidPageToken
		}
		endpoint = pageToken
	} else {
		q := url.Values{}
		q.Set("$top", strconv.Itoa(ClampPageSize(pageSize, GraphMaxPageSize)))
		q.Set("$select", graphListSelect)
		endpoint = o.childrenURL(folderID) + "?" + q.Encode()
	}

	body, err := o.get(ctx, userID, "list", endpoint)
	if err != nil {
		return nil, err
	}

	values := gjson.GetBytes(body, "value").Array()
	page := &models.FilePage{
		Items:         make([]models.ProviderFileItem, 0, len(values)),
		NextPageToken: gjson.GetBytes(body, `\@odata\.nextLink`).String(),
	}
	for _, v := range values {
		page.Items = append(page.Items, graphItem(v))
	}
	return page, nil
}

// GetMetadata returns details of a single item, including a thumbnail when available.
func (o *OneDrive) GetMetadata(ctx context.Context, userID, fileID string) (*models.FileMetadata, error) {
	endpoint := o.itemURL(fileID) + "?$expand=thumbnails"
	body, err := o.get(ctx, userID, "metadata", endpoint)
	if err != nil {
		return nil, err
	}

	item := gjson.ParseBytes(body)
	return &models.FileMetadata{
		ProviderFileItem: graphItem(item),
		CreatedAt:        parseTime(item.Get("createdDateTime").String()),
		ParentID:         item.Get("parentReference.id").String(),
		Description:      item.Get("description").String(),
		OwnerName:        item.Get("createdBy.user.displayName").String(),
		DownloadURL:      item.Get(`\@microsoft\.graph\.downloadUrl`).String(),
		ThumbnailURL:     item.Get("thumbnails.0.medium.url").String(),
	}, nil
}

// GetViewURL returns the item's webUrl.
func (o *OneDrive) GetViewURL(ctx context.Context, userID, fileID string) (string, error) {
	body, err := o.get(ctx, userID, "view_url", o.itemURL(fileID)+"?$select=webUrl")
	if err != nil {
		return "", err
	}

	webURL := gjson.GetBytes(body, "webUrl").String()
	if webURL == "" {
		return "", fmt.Errorf("%w: item %s has no web url", ErrProviderAPI, fileID)
	}
	return webURL, nil
}

func (o *OneDrive) childrenURL(folderID string) string {
	if folderID == "" {
		return o.baseURL + "/me/drive/root/children"
	}
	return o.itemURL(folderID) + "/children"
}

func (o *OneDrive) itemURL(itemID string) string {
	return o.baseURL + "/me/drive/items/" + url.PathEscape(itemID)
}

// get performs an authorized GET and returns the body of a 2xx response.
func (o *OneDrive) get(ctx context.Context, userID, operation, endpoint string) ([]byte, error) {
	token, err := o.tokens.AccessToken(ctx, userID, models.ProviderMicrosoft)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		o.logger.Warn("graph request failed", "operation", operation, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrProviderAPI, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxGraphBody))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrProviderAPI, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		o.logger.Warn("graph API error",
			"operation", operation,
			"status", resp.StatusCode,
			"body", truncate(body),
		)
		return nil, apiError(models.ProviderMicrosoft, resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid JSON response", ErrProviderAPI)
	}
	return body, nil
}

func graphItem(v gjson.Result) models.ProviderFileItem {
	return models.ProviderFileItem{
		Provider:   models.ProviderMicrosoft,
		ID:         v.Get("id").String(),
		Name:       v.Get("name").String(),
		MimeType:   v.Get("file.mimeType").String(),
		IsFolder:   v.Get("folder").Exists(),
		Size:       v.Get("size").Int(),
		ModifiedAt: parseTime(v.Get("lastModifiedDateTime").String()),
		WebURL:     v.Get("webUrl").String(),
	}
}
