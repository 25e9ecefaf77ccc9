package bootstrap

import (
	"log/slog"

	"github.com/Reblayzer/BachelorCode-sub000/internal/config"
	"github.com/Reblayzer/BachelorCode-sub000/internal/handlers"
)

// handlerSet holds all HTTP handlers
type handlerSet struct {
	link  *handlers.LinkHandler
	files *handlers.FileHandler
}

// initializeHandlers creates all HTTP handlers
func initializeHandlers(cfg *config.Config, s serviceSet, logger *slog.Logger) handlerSet {
	return handlerSet{
		link: handlers.NewLinkHandler(
			s.links,
			cfg.BaseURL,
			cfg.LinkSuccessURL,
			cfg.LinkErrorURL,
			logger,
		),
		files: handlers.NewFileHandler(s.files, logger),
	}
}
