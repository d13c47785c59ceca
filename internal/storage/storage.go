package storage

import (
	"dbc/internal/config"
	"dbc/internal/domain"
)

// Storage persists and loads build summaries (e.g. for the stats command).
type Storage interface {
	Save(summary *domain.BuildSummary) error
	Load() (*domain.BuildSummary, error)
}

// JSONStorage stores the summary in a JSON file under the configured summary path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's summary path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
