package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/editflow/internal/domain"
)

// SaveEditorInput contains the parameters for creating or updating an editor.
type SaveEditorInput struct {
	Name  *string
	Color *string // Color label ("rose") or full tag
	ID    string  // Empty creates a new editor
}

// SaveEditorOutput contains the result of saving an editor.
type SaveEditorOutput struct {
	Editor  *domain.Editor
	Created bool
}

// SaveEditor is the use case for creating and updating roster entries.
type SaveEditor struct {
	editors domain.EditorRepository
	ids     domain.IDGenerator
	logger  domain.Logger
}

// NewSaveEditor creates a new SaveEditor use case.
func NewSaveEditor(editors domain.EditorRepository, ids domain.IDGenerator, logger domain.Logger) *SaveEditor {
	return &SaveEditor{editors: editors, ids: ids, logger: logger}
}

// Execute validates and stores the editor. New editors without a color get the default one.
func (uc *SaveEditor) Execute(ctx context.Context, in SaveEditorInput) (*SaveEditorOutput, error) {
	var editor *domain.Editor
	created := in.ID == ""

	if created {
		editor = &domain.Editor{ID: uc.ids.NewID(), Color: domain.DefaultColor()}
	} else {
		existing, err := uc.editors.GetEditor(ctx, in.ID)
		if err != nil {
			return nil, fmt.Errorf("get editor: %w", err)
		}
		if in.Name == nil && in.Color == nil {
			return nil, domain.ErrNoFieldsToUpdate
		}
		editor = existing
	}

	if in.Name != nil {
		editor.Name = strings.TrimSpace(*in.Name)
	}
	if in.Color != nil && strings.TrimSpace(*in.Color) != "" {
		editor.Color = domain.ResolveColor(strings.TrimSpace(*in.Color))
	}

	if err := editor.Validate(); err != nil {
		return nil, err
	}
	if err := uc.editors.SaveEditor(ctx, editor); err != nil {
		return nil, fmt.Errorf("save editor: %w", err)
	}
	uc.logger.Info("editor", fmt.Sprintf("saved editor %s (%s)", editor.ID, editor.Name))

	return &SaveEditorOutput{Editor: editor, Created: created}, nil
}

// DeleteEditorInput contains the parameters for deleting an editor.
type DeleteEditorInput struct {
	ID string
}

// DeleteEditor is the use case for removing an editor from the roster.
// Tasks keep the editor name; they fall back to the default roster or a slate theme.
type DeleteEditor struct {
	editors domain.EditorRepository
	logger  domain.Logger
}

// NewDeleteEditor creates a new DeleteEditor use case.
func NewDeleteEditor(editors domain.EditorRepository, logger domain.Logger) *DeleteEditor {
	return &DeleteEditor{editors: editors, logger: logger}
}

// Execute deletes the editor.
func (uc *DeleteEditor) Execute(ctx context.Context, in DeleteEditorInput) (*domain.Editor, error) {
	editor, err := uc.editors.GetEditor(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get editor: %w", err)
	}
	if err := uc.editors.DeleteEditor(ctx, in.ID); err != nil {
		return nil, fmt.Errorf("delete editor: %w", err)
	}
	uc.logger.Info("editor", "deleted editor "+editor.ID)
	return editor, nil
}

// ListEditors is the use case for listing the roster.
type ListEditors struct {
	editors domain.EditorRepository
}

// NewListEditors creates a new ListEditors use case.
func NewListEditors(editors domain.EditorRepository) *ListEditors {
	return &ListEditors{editors: editors}
}

// Execute returns every editor ordered by ID.
func (uc *ListEditors) Execute(ctx context.Context) ([]*domain.Editor, error) {
	editors, err := uc.editors.ListEditors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list editors: %w", err)
	}
	return editors, nil
}
