package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/editflow/internal/domain"
)

// SaveProgramInput contains the parameters for creating or updating a program.
// Fields are ordered to minimize memory padding.
type SaveProgramInput struct {
	Name        *string
	Duration    *string
	PremiereDay *string
	WorkDays    *int
	ID          string // Empty creates a new program
}

// SaveProgramOutput contains the result of saving a program.
type SaveProgramOutput struct {
	Program *domain.Program
	Created bool
}

// SaveProgram is the use case for creating and updating programs.
type SaveProgram struct {
	programs domain.ProgramRepository
	ids      domain.IDGenerator
	logger   domain.Logger
}

// NewSaveProgram creates a new SaveProgram use case.
func NewSaveProgram(programs domain.ProgramRepository, ids domain.IDGenerator, logger domain.Logger) *SaveProgram {
	return &SaveProgram{programs: programs, ids: ids, logger: logger}
}

// Execute validates and stores the program. Tasks keep the show name they were saved with.
func (uc *SaveProgram) Execute(ctx context.Context, in SaveProgramInput) (*SaveProgramOutput, error) {
	var program *domain.Program
	created := in.ID == ""

	if created {
		program = &domain.Program{ID: uc.ids.NewID()}
	} else {
		existing, err := uc.programs.GetProgram(ctx, in.ID)
		if err != nil {
			return nil, fmt.Errorf("get program: %w", err)
		}
		if in.Name == nil && in.Duration == nil && in.PremiereDay == nil && in.WorkDays == nil {
			return nil, domain.ErrNoFieldsToUpdate
		}
		program = existing
	}

	if in.Name != nil {
		program.Name = strings.TrimSpace(*in.Name)
	}
	if in.Duration != nil {
		program.Duration = strings.TrimSpace(*in.Duration)
	}
	if in.PremiereDay != nil {
		program.PremiereDay = strings.TrimSpace(*in.PremiereDay)
	}
	if in.WorkDays != nil {
		program.WorkDays = *in.WorkDays
	}

	if err := program.Validate(); err != nil {
		return nil, err
	}
	if err := uc.programs.SaveProgram(ctx, program); err != nil {
		return nil, fmt.Errorf("save program: %w", err)
	}
	uc.logger.Info("program", fmt.Sprintf("saved program %s (%s)", program.ID, program.Name))

	return &SaveProgramOutput{Program: program, Created: created}, nil
}

// DeleteProgramInput contains the parameters for deleting a program.
type DeleteProgramInput struct {
	ID string
}

// DeleteProgram is the use case for deleting a program.
// Tasks referring to the program by name are not touched.
type DeleteProgram struct {
	programs domain.ProgramRepository
	logger   domain.Logger
}

// NewDeleteProgram creates a new DeleteProgram use case.
func NewDeleteProgram(programs domain.ProgramRepository, logger domain.Logger) *DeleteProgram {
	return &DeleteProgram{programs: programs, logger: logger}
}

// Execute deletes the program.
func (uc *DeleteProgram) Execute(ctx context.Context, in DeleteProgramInput) (*domain.Program, error) {
	program, err := uc.programs.GetProgram(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get program: %w", err)
	}
	if err := uc.programs.DeleteProgram(ctx, in.ID); err != nil {
		return nil, fmt.Errorf("delete program: %w", err)
	}
	uc.logger.Info("program", "deleted program "+program.ID)
	return program, nil
}

// ListPrograms is the use case for listing programs.
type ListPrograms struct {
	programs domain.ProgramRepository
}

// NewListPrograms creates a new ListPrograms use case.
func NewListPrograms(programs domain.ProgramRepository) *ListPrograms {
	return &ListPrograms{programs: programs}
}

// Execute returns every program ordered by ID.
func (uc *ListPrograms) Execute(ctx context.Context) ([]*domain.Program, error) {
	programs, err := uc.programs.ListPrograms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	return programs, nil
}
