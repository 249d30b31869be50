package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/editflow/internal/domain"
)

// SeedDefaultsInput contains the parameters for seeding defaults.
type SeedDefaultsInput struct{}

// SeedDefaultsOutput reports how many documents were written.
type SeedDefaultsOutput struct {
	Editors  int
	Programs int
}

// SeedDefaults fills an empty editors collection with the default roster and an empty programs
// collection with the default programs. Non-empty collections are left alone.
type SeedDefaults struct {
	programs domain.ProgramRepository
	editors  domain.EditorRepository
	logger   domain.Logger
}

// NewSeedDefaults creates a new SeedDefaults use case.
func NewSeedDefaults(programs domain.ProgramRepository, editors domain.EditorRepository, logger domain.Logger) *SeedDefaults {
	return &SeedDefaults{programs: programs, editors: editors, logger: logger}
}

// Execute seeds whichever collections are empty.
func (uc *SeedDefaults) Execute(ctx context.Context, _ SeedDefaultsInput) (*SeedDefaultsOutput, error) {
	out := &SeedDefaultsOutput{}

	editors, err := uc.editors.ListEditors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list editors: %w", err)
	}
	if len(editors) == 0 {
		for _, e := range domain.DefaultEditors() {
			if err := uc.editors.SaveEditor(ctx, e); err != nil {
				return nil, fmt.Errorf("seed editor %s: %w", e.ID, err)
			}
			out.Editors++
		}
		uc.logger.Info("seed", fmt.Sprintf("seeded %d default editors", out.Editors))
	}

	programs, err := uc.programs.ListPrograms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	if len(programs) == 0 {
		for _, p := range domain.DefaultPrograms() {
			if err := uc.programs.SaveProgram(ctx, p); err != nil {
				return nil, fmt.Errorf("seed program %s: %w", p.ID, err)
			}
			out.Programs++
		}
		uc.logger.Info("seed", fmt.Sprintf("seeded %d default programs", out.Programs))
	}

	return out, nil
}
