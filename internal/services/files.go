package services

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/files"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"

	"golang.org/x/sync/errgroup"
)

// DefaultProviderTimeout bounds each provider call of an aggregated listing.
const DefaultProviderTimeout = 30 * time.Second

// FileService reads files from linked providers, alone or aggregated.
type FileService struct {
	tokens    *TokenStore
	providers files.Registry
	timeout   time.Duration
	metrics   core.Recorder
	logger    *slog.Logger
}

func NewFileService(
	tokens *TokenStore,
	providers files.Registry,
	timeout time.Duration,
	m core.Recorder,
	logger *slog.Logger,
) *FileService {
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	return &FileService{
		tokens:    tokens,
		providers: providers,
		timeout:   timeout,
		metrics:   m,
		logger:    logger,
	}
}

// GetFilesFromAllProviders lists the root folder of every linked provider
// concurrently and merges the results, newest first. A provider that fails
// contributes nothing; the call itself only fails when the accounts cannot
// be loaded.
func (s *FileService) GetFilesFromAllProviders(
	ctx context.Context,
	userID string,
	pageSize int,
) ([]models.ProviderFileItem, error) {
	accounts, err := s.tokens.GetAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list provider accounts: %w", err)
	}

	results := make([][]models.ProviderFileItem, len(accounts))
	var (
		g        errgroup.Group
		launched int
		failures atomic.Int32
	)
	for i, account := range accounts {
		fp, err := s.providers.Get(account.Provider)
		if err != nil {
			s.logger.Warn("skip provider without file support", "provider", account.Provider)
			continue
		}
		launched++

		g.Go(func() error {
			// A panicking provider counts as one failed listing.
			defer func() {
				if r := recover(); r != nil {
					failures.Add(1)
					s.logger.Error("provider listing panicked",
						"user_id", userID,
						"provider", fp.Provider(),
						"panic", r,
					)
				}
			}()

			callCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			start := time.Now()
			page, err := fp.List(callCtx, userID, "", pageSize, "")
			if err == nil && page == nil {
				err = fmt.Errorf("%w: empty listing response", files.ErrProviderAPI)
			}
			s.metrics.RecordProviderAPICall(fp.Provider().Slug(), "list", err == nil, time.Since(start))
			if err != nil {
				failures.Add(1)
				s.logger.Warn("provider listing failed",
					"user_id", userID,
					"provider", fp.Provider(),
					"error", err,
				)
				return nil
			}
			results[i] = page.Items
			return nil
		})
	}
	_ = g.Wait()

	s.metrics.RecordAggregation(launched, int(failures.Load()))

	merged := make([]models.ProviderFileItem, 0)
	for _, items := range results {
		merged = append(merged, items...)
	}
	slices.SortStableFunc(merged, compareFileItems)
	return merged, nil
}

// compareFileItems orders by ModifiedAt descending, then provider, then name.
func compareFileItems(a, b models.ProviderFileItem) int {
	if c := b.ModifiedAt.Compare(a.ModifiedAt); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Provider, b.Provider); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

// resolve returns the provider's file reader after checking the user linked it.
func (s *FileService) resolve(
	ctx context.Context,
	userID string,
	provider models.Provider,
) (core.FileProvider, error) {
	fp, err := s.providers.Get(provider)
	if err != nil {
		return nil, err
	}
	account, err := s.tokens.Get(ctx, userID, provider)
	if err != nil {
		return nil, fmt.Errorf("load provider account: %w", err)
	}
	if account == nil {
		return nil, ErrNotLinked
	}
	return fp, nil
}

// GetFilesByProvider returns one page of a folder at a single provider.
// An empty folderID means the root folder.
func (s *FileService) GetFilesByProvider(
	ctx context.Context,
	userID string,
	provider models.Provider,
	folderID string,
	pageSize int,
	pageToken string,
) (*models.FilePage, error) {
	fp, err := s.resolve(ctx, userID, provider)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	page, err := fp.List(callCtx, userID, folderID, pageSize, pageToken)
	s.metrics.RecordProviderAPICall(provider.Slug(), "list", err == nil, time.Since(start))
	return page, err
}

func (s *FileService) GetFileMetadata(
	ctx context.Context,
	userID string,
	provider models.Provider,
	fileID string,
) (*models.FileMetadata, error) {
	fp, err := s.resolve(ctx, userID, provider)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	meta, err := fp.GetMetadata(callCtx, userID, fileID)
	s.metrics.RecordProviderAPICall(provider.Slug(), "metadata", err == nil, time.Since(start))
	return meta, err
}

func (s *FileService) GetFileViewURL(
	ctx context.Context,
	userID string,
	provider models.Provider,
	fileID string,
) (string, error) {
	fp, err := s.resolve(ctx, userID, provider)
	if err != nil {
		return "", err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	viewURL, err := fp.GetViewURL(callCtx, userID, fileID)
	s.metrics.RecordProviderAPICall(provider.Slug(), "view_url", err == nil, time.Since(start))
	return viewURL, err
}
