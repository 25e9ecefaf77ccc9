package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/Reblayzer/BachelorCode-sub000/internal/cache"
	"github.com/Reblayzer/BachelorCode-sub000/internal/config"
	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/files"
	"github.com/Reblayzer/BachelorCode-sub000/internal/linkstate"
	"github.com/Reblayzer/BachelorCode-sub000/internal/metrics"
	"github.com/Reblayzer/BachelorCode-sub000/internal/middleware"
	"github.com/Reblayzer/BachelorCode-sub000/internal/mocks"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"
	"github.com/Reblayzer/BachelorCode-sub000/internal/oauth"
	"github.com/Reblayzer/BachelorCode-sub000/internal/services"
	"github.com/Reblayzer/BachelorCode-sub000/internal/store"
	"github.com/Reblayzer/BachelorCode-sub000/internal/tokencrypt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testBaseURL    = "https://linker.example.com"
	testSuccessURL = "https://app.example.com/linked"
	testErrorURL   = "https://app.example.com/link-failed"
	testUser       = "user-1"
)

type testServer struct {
	router      *gin.Engine
	tokens      *services.TokenStore
	google      *mocks.MockOAuthClient
	googleFiles *mocks.MockFileProvider
}

// newTestServer wires the handlers over sqlite, the memory state store and
// gomock provider clients. Header auth keeps requests self-contained.
func newTestServer(t *testing.T, successURL, errorURL string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	logger := slog.New(slog.DiscardHandler)

	s, err := store.New("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	cipher, err := tokencrypt.New("test-secret-0123456789abcdef")
	require.NoError(t, err)
	tokens := services.NewTokenStore(s, cipher)

	google := mocks.NewMockOAuthClient(ctrl)
	google.EXPECT().Provider().Return(models.ProviderGoogle).AnyTimes()
	googleFiles := mocks.NewMockFileProvider(ctrl)
	googleFiles.EXPECT().Provider().Return(models.ProviderGoogle).AnyTimes()

	m := metrics.NewNoopMetrics()
	registry := oauth.NewRegistry(google)
	access := services.NewAccessTokenService(
		tokens, registry, cache.NewMemoryCache[models.CachedAccessToken](), m, logger,
	)
	links := services.NewLinkService(
		linkstate.NewMemory(), tokens, registry, access, linkstate.DefaultTTL, m, logger,
	)
	fileSvc := services.NewFileService(tokens, files.NewRegistry(googleFiles), time.Second, m, logger)

	linkHandler := NewLinkHandler(links, testBaseURL, successURL, errorURL, logger)
	fileHandler := NewFileHandler(fileSvc, logger)
	auth := middleware.NewAuthenticator(config.AuthModeHeader, "")

	r := gin.New()
	api := r.Group("/api")
	api.GET("/providers/:provider/callback", auth.OptionalUser(), linkHandler.Callback)

	user := api.Group("", auth.RequireUser())
	user.GET("/providers", linkHandler.ListLinked)
	user.POST("/providers/:provider/link", linkHandler.StartLink)
	user.DELETE("/providers/:provider", linkHandler.Disconnect)
	user.GET("/files", fileHandler.ListAll)
	user.GET("/files/:provider", fileHandler.ListProvider)
	user.GET("/files/:provider/:fileId", fileHandler.Metadata)
	user.GET("/files/:provider/:fileId/view", fileHandler.View)

	return &testServer{
		router:      r,
		tokens:      tokens,
		google:      google,
		googleFiles: googleFiles,
	}
}

func (ts *testServer) do(method, target, userID string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequestWithContext(context.Background(), method, target, nil)
	if userID != "" {
		req.Header.Set(middleware.DefaultUserHeader, userID)
	}
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) link(t *testing.T) {
	t.Helper()
	_, err := ts.tokens.SaveTokenSet(context.Background(), testUser, models.ProviderGoogle, &core.TokenSet{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(time.Hour),
		Scopes:       []string{"openid", "drive.readonly"},
	})
	require.NoError(t, err)
}

// startLink calls the start endpoint and returns the issued state.
func (ts *testServer) startLink(t *testing.T) string {
	t.Helper()
	var state string
	ts.google.EXPECT().
		BuildAuthorizeURL(gomock.Any(), gomock.Any(), testBaseURL+"/api/providers/google/callback", gomock.Any()).
		DoAndReturn(func(s, challenge, _ string, _ []string) string {
			state = s
			return "https://accounts.google.com/o/oauth2/auth?state=" + s + "&code_challenge=" + challenge
		})

	w := ts.do(http.MethodPost, "/api/providers/google/link", testUser)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		RedirectURL string `json:"redirectUrl"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.RedirectURL, "state="+state)
	return state
}

func TestStartLink_RequiresUser(t *testing.T) {
	ts := newTestServer(t, "", "")

	w := ts.do(http.MethodPost, "/api/providers/google/link", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStartLink_UnknownProvider(t *testing.T) {
	ts := newTestServer(t, "", "")

	w := ts.do(http.MethodPost, "/api/providers/dropbox/link", testUser)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"unknown provider"}`, w.Body.String())
}

func TestStartLink_UnregisteredProvider(t *testing.T) {
	ts := newTestServer(t, "", "")

	w := ts.do(http.MethodPost, "/api/providers/microsoft/link", testUser)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCallback_RedirectsToSuccess(t *testing.T) {
	ts := newTestServer(t, testSuccessURL, testErrorURL)
	state := ts.startLink(t)

	ts.google.EXPECT().
		Exchange(gomock.Any(), "the-code", gomock.Any(), testBaseURL+"/api/providers/google/callback", gomock.Any()).
		Return(&core.TokenSet{
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresAt:    time.Now().Add(time.Hour),
		}, nil)

	w := ts.do(http.MethodGet, "/api/providers/google/callback?state="+state+"&code=the-code", "")
	require.Equal(t, http.StatusFound, w.Code)

	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "app.example.com", loc.Host)
	assert.Equal(t, "/linked", loc.Path)
	assert.Equal(t, "google", loc.Query().Get("provider"))

	// Replay lands on the error page
	w = ts.do(http.MethodGet, "/api/providers/google/callback?state="+state+"&code=the-code", "")
	require.Equal(t, http.StatusFound, w.Code)
	loc, err = url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/link-failed", loc.Path)
	assert.Equal(t, "state_expired", loc.Query().Get("error"))
}

func TestCallback_JSONWithoutLandingPages(t *testing.T) {
	ts := newTestServer(t, "", "")

	w := ts.do(http.MethodGet, "/api/providers/google/callback?state=unknown&code=c", "")
	assert.Equal(t, http.StatusGone, w.Code)
	assert.JSONEq(t, `{"error":"link request expired or already used"}`, w.Body.String())
}

func TestCallback_ProviderError(t *testing.T) {
	ts := newTestServer(t, testSuccessURL, testErrorURL)
	state := ts.startLink(t)

	w := ts.do(http.MethodGet, "/api/providers/google/callback?state="+state+"&error=access_denied", "")
	require.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "access_denied", loc.Query().Get("error"))
	assert.Equal(t, "google", loc.Query().Get("provider"))

	// The state was consumed by the error redirect.
	w = ts.do(http.MethodGet, "/api/providers/google/callback?state="+state+"&code=late", "")
	loc, err = url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "state_expired", loc.Query().Get("error"))
}

func TestCallback_ExchangeFailure(t *testing.T) {
	ts := newTestServer(t, "", "")
	state := ts.startLink(t)

	ts.google.EXPECT().
		Exchange(gomock.Any(), "bad", gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("invalid_grant"))

	w := ts.do(http.MethodGet, "/api/providers/google/callback?state="+state+"&code=bad", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), "invalid_grant", "details stay in the log")
}

func TestCallback_UserMismatch(t *testing.T) {
	ts := newTestServer(t, "", "")
	state := ts.startLink(t)

	w := ts.do(http.MethodGet, "/api/providers/google/callback?state="+state+"&code=c", "someone-else")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListLinkedAndDisconnect(t *testing.T) {
	ts := newTestServer(t, "", "")
	ts.link(t)

	w := ts.do(http.MethodGet, "/api/providers", testUser)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "v1.", "no ciphertext in the response")
	assert.NotContains(t, w.Body.String(), "refresh")

	var linked []LinkedAccount
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &linked))
	require.Len(t, linked, 1)
	assert.Equal(t, models.ProviderGoogle, linked[0].Provider)
	assert.Equal(t, []string{"openid", "drive.readonly"}, linked[0].Scopes)

	ts.google.EXPECT().Revoke(gomock.Any(), "refresh")
	w = ts.do(http.MethodDelete, "/api/providers/google", testUser)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(http.MethodGet, "/api/providers", testUser)
	assert.JSONEq(t, `[]`, w.Body.String())

	// Disconnecting again is not an error
	w = ts.do(http.MethodDelete, "/api/providers/google", testUser)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestFiles_ListAll(t *testing.T) {
	ts := newTestServer(t, "", "")
	ts.link(t)

	modified := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	ts.googleFiles.EXPECT().List(gomock.Any(), testUser, "", 10, "").Return(&models.FilePage{
		Items: []models.ProviderFileItem{{
			Provider:   models.ProviderGoogle,
			ID:         "f1",
			Name:       "report.pdf",
			ModifiedAt: modified,
		}},
	}, nil)

	w := ts.do(http.MethodGet, "/api/files?pageSize=10", testUser)
	require.Equal(t, http.StatusOK, w.Code)

	var items []models.ProviderFileItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "report.pdf", items[0].Name)
	assert.True(t, modified.Equal(items[0].ModifiedAt))
}

func TestFiles_InvalidPageSize(t *testing.T) {
	ts := newTestServer(t, "", "")

	w := ts.do(http.MethodGet, "/api/files?pageSize=ten", testUser)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFiles_NotLinked(t *testing.T) {
	ts := newTestServer(t, "", "")

	w := ts.do(http.MethodGet, "/api/files/google", testUser)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"provider not linked"}`, w.Body.String())
}

func TestFiles_ProviderFolderPage(t *testing.T) {
	ts := newTestServer(t, "", "")
	ts.link(t)

	ts.googleFiles.EXPECT().List(gomock.Any(), testUser, "folder-9", 0, "tok").
		Return(&models.FilePage{Items: []models.ProviderFileItem{}, NextPageToken: "tok-2"}, nil)

	w := ts.do(http.MethodGet, "/api/files/Google?folderId=folder-9&pageToken=tok", testUser)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[],"nextPageToken":"tok-2"}`, w.Body.String())
}

func TestFiles_MetadataAndView(t *testing.T) {
	ts := newTestServer(t, "", "")
	ts.link(t)

	ts.googleFiles.EXPECT().GetMetadata(gomock.Any(), testUser, "f1").Return(&models.FileMetadata{
		ProviderFileItem: models.ProviderFileItem{Provider: models.ProviderGoogle, ID: "f1", Name: "a.txt"},
		OwnerName:        "Alice",
	}, nil)
	ts.googleFiles.EXPECT().GetViewURL(gomock.Any(), testUser, "f1").
		Return("https://drive.google.com/file/d/f1/view", nil)

	w := ts.do(http.MethodGet, "/api/files/google/f1", testUser)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ownerName":"Alice"`)

	w = ts.do(http.MethodGet, "/api/files/google/f1/view", testUser)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://drive.google.com/file/d/f1/view", w.Header().Get("Location"))
}

func TestFiles_ProviderAPIError(t *testing.T) {
	ts := newTestServer(t, "", "")
	ts.link(t)

	ts.googleFiles.EXPECT().GetMetadata(gomock.Any(), testUser, "gone").
		Return(nil, fmt.Errorf("%w: google returned 404", files.ErrProviderAPI))

	w := ts.do(http.MethodGet, "/api/files/google/gone", testUser)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"provider API error"}`, w.Body.String())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{services.ErrStateExpiredOrReused, http.StatusGone},
		{fmt.Errorf("%w: upstream", services.ErrProviderExchangeFailed), http.StatusBadGateway},
		{services.ErrNotLinked, http.StatusNotFound},
		{fmt.Errorf("%w: %w", services.ErrDecryptionFailed, tokencrypt.ErrDecryptionFailed), http.StatusInternalServerError},
		{files.ErrProviderAPI, http.StatusBadGateway},
		{fmt.Errorf("%w: %w", files.ErrProviderAPI, context.DeadlineExceeded), http.StatusGatewayTimeout},
		{core.ErrProviderNotRegistered, http.StatusNotFound},
		{models.ErrUnknownProvider, http.StatusBadRequest},
		{services.ErrUserMismatch, http.StatusForbidden},
		{services.ErrProviderMismatch, http.StatusBadRequest},
		{errors.New("anything else"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.status, classify(tt.err).status)
		})
	}
	assert.Equal(t, "internal error", classify(services.ErrDecryptionFailed).message)
}
