package store

import (
	"context"

	"github.com/shipit-cli/shipit/internal/models"
)

// Store defines the persistence interface for analysis history.
type Store interface {
	SaveAnalysis(ctx context.Context, rec *models.AnalysisRecord) error
	GetAnalysis(ctx context.Context, id string) (*models.AnalysisRecord, error)
	ListAnalyses(ctx context.Context, branch string, limit int) ([]*models.AnalysisRecord, error)
	SetAnalysisPRURL(ctx context.Context, id, prURL string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
