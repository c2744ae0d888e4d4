package repository

import (
	"context"

	"github.com/bnema/slickdir/internal/domain/entity"
)

// WorkspaceRepository persists the list of workspace directories still on disk.
type WorkspaceRepository interface {
	// Save records a workspace. Saving an already tracked path is a no-op.
	Save(ctx context.Context, ws *entity.Workspace) error

	// FindAll returns tracked workspaces, oldest first.
	FindAll(ctx context.Context) ([]*entity.Workspace, error)

	// Delete forgets a workspace. Deleting an unknown path is not an error.
	Delete(ctx context.Context, path string) error

	// Count returns the number of tracked workspaces.
	Count(ctx context.Context) (int, error)
}
