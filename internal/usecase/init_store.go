package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/editflow/internal/domain"
)

// InitStoreInput contains the parameters for initializing editflow.
type InitStoreInput struct {
	SkipSeed bool // Leave empty collections empty
}

// InitStoreOutput contains the result of initialization.
type InitStoreOutput struct {
	ConfigPath    string
	ConfigCreated bool
	Seeded        SeedDefaultsOutput
}

// InitStore prepares a data directory: config file, store schema and default roster.
type InitStore struct {
	store         domain.ScheduleStore
	configManager domain.ConfigManager
	seed          *SeedDefaults
}

// NewInitStore creates a new InitStore use case.
func NewInitStore(store domain.ScheduleStore, configManager domain.ConfigManager, seed *SeedDefaults) *InitStore {
	return &InitStore{store: store, configManager: configManager, seed: seed}
}

// Execute initializes editflow. Running it again is harmless.
func (uc *InitStore) Execute(ctx context.Context, in InitStoreInput) (*InitStoreOutput, error) {
	out := &InitStoreOutput{ConfigPath: uc.configManager.GetDataConfigInfo().Path}

	err := uc.configManager.InitDataConfig()
	switch {
	case err == nil:
		out.ConfigCreated = true
	case errors.Is(err, domain.ErrConfigExists):
	default:
		return nil, fmt.Errorf("create config: %w", err)
	}

	if err := uc.store.Initialize(ctx); err != nil {
		return nil, err
	}

	if in.SkipSeed {
		return out, nil
	}
	seeded, err := uc.seed.Execute(ctx, SeedDefaultsInput{})
	if err != nil {
		return nil, err
	}
	out.Seeded = *seeded
	return out, nil
}
