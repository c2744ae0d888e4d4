package sqlite

import (
	"context"
	"sync"

	"github.com/bnema/slickdir/internal/application/port"
	"github.com/bnema/slickdir/internal/domain/entity"
	"github.com/bnema/slickdir/internal/domain/repository"
)

// LazyWorkspaceRepository opens the database on first use, so commands that
// never touch workspaces (classify, version, config) skip the WASM startup.
type LazyWorkspaceRepository struct {
	provider port.DatabaseProvider
	repo     repository.WorkspaceRepository
	once     sync.Once
	initErr  error
}

// NewLazyWorkspaceRepository creates a lazy-loading workspace repository.
func NewLazyWorkspaceRepository(provider port.DatabaseProvider) repository.WorkspaceRepository {
	return &LazyWorkspaceRepository{provider: provider}
}

func (r *LazyWorkspaceRepository) init(ctx context.Context) error {
	r.once.Do(func() {
		db, err := r.provider.DB(ctx)
		if err != nil {
			r.initErr = err
			return
		}
		r.repo = NewWorkspaceRepository(db)
	})
	return r.initErr
}

func (r *LazyWorkspaceRepository) Save(ctx context.Context, ws *entity.Workspace) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Save(ctx, ws)
}

func (r *LazyWorkspaceRepository) FindAll(ctx context.Context) ([]*entity.Workspace, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.FindAll(ctx)
}

func (r *LazyWorkspaceRepository) Delete(ctx context.Context, path string) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Delete(ctx, path)
}

func (r *LazyWorkspaceRepository) Count(ctx context.Context) (int, error) {
	if err := r.init(ctx); err != nil {
		return 0, err
	}
	return r.repo.Count(ctx)
}
