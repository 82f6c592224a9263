package controllers

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/amaumene/coubarr/internal/config"
	"github.com/amaumene/coubarr/internal/models"
	"github.com/amaumene/coubarr/internal/services/coub"
)

// SyncController materializes the liked-coub listing, reusing the persisted
// pages dump when one exists
type SyncController struct {
	client    *coub.Client
	pagesFile string
	perPage   int
	logger    *logrus.Logger
}

// NewSyncController creates a new sync controller
func NewSyncController(client *coub.Client, cfg *config.Config, logger *logrus.Logger) *SyncController {
	return &SyncController{
		client:    client,
		pagesFile: cfg.PagesFile,
		perPage:   cfg.PerPage,
		logger:    logger,
	}
}

// LikedCoubs returns the full liked-coub sequence. The pages dump is reused
// when present; otherwise all pages are fetched and dumped first.
func (c *SyncController) LikedCoubs(ctx context.Context) ([]models.Coub, error) {
	if _, err := os.Stat(c.pagesFile); os.IsNotExist(err) {
		if _, err := c.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	pages, err := coub.LoadPagesDump(c.pagesFile)
	if err != nil {
		return nil, err
	}
	c.logger.Info("Coub info loaded from pages dump")

	coubs := coub.CoubsFromPages(pages)
	c.logger.WithField("count", len(coubs)).Info("Total liked coub count")
	return coubs, nil
}

// Refresh refetches every likes page and overwrites the pages dump
func (c *SyncController) Refresh(ctx context.Context) ([]models.Coub, error) {
	c.logger.Info("Fetching all likes pages")
	pages, err := c.client.FetchAllLikesPages(ctx, c.perPage)
	if err != nil {
		return nil, err
	}

	if err := coub.SavePagesDump(c.pagesFile, pages); err != nil {
		return nil, err
	}
	c.logger.WithField("path", c.pagesFile).Info("Coub info dumped to a file")

	return coub.CoubsFromPages(pages), nil
}
