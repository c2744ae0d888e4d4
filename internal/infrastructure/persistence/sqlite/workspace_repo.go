package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bnema/slickdir/internal/domain/entity"
	"github.com/bnema/slickdir/internal/domain/repository"
	"github.com/bnema/slickdir/internal/logging"
)

const (
	insertWorkspaceSQL = `INSERT INTO workspaces (path, created_at) VALUES (?, ?)
ON CONFLICT(path) DO NOTHING`
	selectWorkspacesSQL = `SELECT path, created_at FROM workspaces ORDER BY created_at ASC, path ASC`
	deleteWorkspaceSQL  = `DELETE FROM workspaces WHERE path = ?`
	countWorkspacesSQL  = `SELECT COUNT(*) FROM workspaces`
)

type workspaceRepo struct {
	db *sql.DB
}

// NewWorkspaceRepository creates a SQLite backed workspace repository.
func NewWorkspaceRepository(db *sql.DB) repository.WorkspaceRepository {
	return &workspaceRepo{db: db}
}

func (r *workspaceRepo) Save(ctx context.Context, ws *entity.Workspace) error {
	if ws == nil || ws.Path == "" {
		return fmt.Errorf("workspace path cannot be empty")
	}
	path := entity.NormalizeWorkspacePath(ws.Path)
	createdAt := ws.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	logging.FromContext(ctx).Debug().Str("workspace", path).Msg("saving workspace")

	_, err := r.db.ExecContext(ctx, insertWorkspaceSQL, path, createdAt.UTC().UnixMilli())
	return err
}

func (r *workspaceRepo) FindAll(ctx context.Context) ([]*entity.Workspace, error) {
	rows, err := r.db.QueryContext(ctx, selectWorkspacesSQL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var workspaces []*entity.Workspace
	for rows.Next() {
		var (
			path      string
			createdAt int64
		)
		if err := rows.Scan(&path, &createdAt); err != nil {
			return nil, err
		}
		workspaces = append(workspaces, &entity.Workspace{
			Path:      path,
			CreatedAt: time.UnixMilli(createdAt).UTC(),
		})
	}
	return workspaces, rows.Err()
}

func (r *workspaceRepo) Delete(ctx context.Context, path string) error {
	path = entity.NormalizeWorkspacePath(path)
	logging.FromContext(ctx).Debug().Str("workspace", path).Msg("deleting workspace record")
	_, err := r.db.ExecContext(ctx, deleteWorkspaceSQL, path)
	return err
}

func (r *workspaceRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countWorkspacesSQL).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
