package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/slickdir/internal/application/port"
	"github.com/bnema/slickdir/internal/domain/entity"
	"github.com/bnema/slickdir/internal/domain/repository"
	"github.com/bnema/slickdir/internal/logging"
)

const (
	workspaceIDLength  = 8
	workspaceIDRetries = 5
)

// ErrWorkspaceNotTracked is returned when flushing a directory that is not a tracked workspace.
var ErrWorkspaceNotTracked = errors.New("workspace not tracked")

// ManageWorkspacesUseCase tracks the workspace directories created for extractions.
type ManageWorkspacesUseCase struct {
	repo    repository.WorkspaceRepository
	fs      port.FileSystem
	opener  port.DirectoryOpener
	baseDir string
	newID   func() string
	now     func() time.Time
}

// NewManageWorkspacesUseCase creates a new workspace management use case.
// opener may be nil when no file manager is available.
func NewManageWorkspacesUseCase(
	repo repository.WorkspaceRepository,
	fs port.FileSystem,
	opener port.DirectoryOpener,
	baseDir string,
) *ManageWorkspacesUseCase {
	return &ManageWorkspacesUseCase{
		repo:    repo,
		fs:      fs,
		opener:  opener,
		baseDir: baseDir,
		newID:   newWorkspaceID,
		now:     time.Now,
	}
}

// newWorkspaceID returns 8 hex characters taken from a random uuid.
func newWorkspaceID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return id[workspaceIDLength : 2*workspaceIDLength]
}

// Create mints a fresh empty workspace under the base directory and tracks it.
func (uc *ManageWorkspacesUseCase) Create(ctx context.Context) (*entity.Workspace, error) {
	log := logging.FromContext(ctx)

	if err := uc.fs.MkdirAll(ctx, uc.baseDir); err != nil {
		return nil, fmt.Errorf("create base dir: %w", err)
	}

	var path string
	for i := 0; i < workspaceIDRetries; i++ {
		candidate := filepath.Join(uc.baseDir, uc.newID())
		exists, err := uc.fs.Exists(ctx, candidate)
		if err != nil {
			return nil, fmt.Errorf("check workspace: %w", err)
		}
		if !exists {
			path = candidate
			break
		}
	}
	if path == "" {
		return nil, fmt.Errorf("no free workspace name under %s after %d attempts", uc.baseDir, workspaceIDRetries)
	}

	if err := uc.fs.MkdirAll(ctx, path); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	ws := &entity.Workspace{
		Path:      entity.NormalizeWorkspacePath(path),
		CreatedAt: uc.now(),
	}
	if err := uc.repo.Save(ctx, ws); err != nil {
		return nil, fmt.Errorf("track workspace: %w", err)
	}

	log.Info().Str("workspace", ws.Path).Msg("workspace created")
	return ws, nil
}

// Open reveals a workspace in the file manager.
func (uc *ManageWorkspacesUseCase) Open(ctx context.Context, path string) error {
	if uc.opener == nil {
		return errors.New("no directory opener configured")
	}
	return uc.opener.OpenDirectory(ctx, path)
}

// List returns tracked workspaces, oldest first.
func (uc *ManageWorkspacesUseCase) List(ctx context.Context) ([]*entity.Workspace, error) {
	return uc.repo.FindAll(ctx)
}

// RestoreWorkspacesInput contains parameters for a restore.
type RestoreWorkspacesInput struct {
	Open bool
}

// RestoreWorkspacesOutput reports the workspaces kept and forgotten.
type RestoreWorkspacesOutput struct {
	Kept    []*entity.Workspace
	Dropped []*entity.Workspace
}

// Restore forgets workspaces whose directory disappeared and optionally opens the others.
func (uc *ManageWorkspacesUseCase) Restore(ctx context.Context, input RestoreWorkspacesInput) (*RestoreWorkspacesOutput, error) {
	log := logging.FromContext(ctx)

	all, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}

	out := &RestoreWorkspacesOutput{}
	for _, ws := range all {
		isDir, err := uc.isDirectory(ctx, ws.Path)
		if err != nil {
			log.Warn().Err(err).Str("workspace", ws.Path).Msg("cannot stat workspace, keeping it")
			out.Kept = append(out.Kept, ws)
			continue
		}
		if !isDir {
			log.Info().Str("workspace", ws.Path).Msg("removing non-existent workspace")
			if err := uc.repo.Delete(ctx, ws.Path); err != nil {
				return out, fmt.Errorf("forget workspace: %w", err)
			}
			out.Dropped = append(out.Dropped, ws)
			continue
		}

		out.Kept = append(out.Kept, ws)
		if input.Open && uc.opener != nil {
			if err := uc.opener.OpenDirectory(ctx, ws.Path); err != nil {
				log.Warn().Err(err).Str("workspace", ws.Path).Msg("failed to open workspace")
			}
		}
	}
	return out, nil
}

func (uc *ManageWorkspacesUseCase) isDirectory(ctx context.Context, path string) (bool, error) {
	exists, err := uc.fs.Exists(ctx, path)
	if err != nil || !exists {
		return false, err
	}
	return uc.fs.IsDirectory(ctx, path)
}

// Flush deletes a tracked workspace from disk and forgets it. A directory that
// is already gone counts as flushed. The record is kept when deletion fails.
func (uc *ManageWorkspacesUseCase) Flush(ctx context.Context, path string) error {
	path = entity.NormalizeWorkspacePath(path)

	all, err := uc.repo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("list workspaces: %w", err)
	}
	tracked := false
	for _, ws := range all {
		if ws.Path == path {
			tracked = true
			break
		}
	}
	if !tracked {
		return fmt.Errorf("%w: %s", ErrWorkspaceNotTracked, path)
	}

	return uc.flush(ctx, path)
}

func (uc *ManageWorkspacesUseCase) flush(ctx context.Context, path string) error {
	log := logging.FromContext(ctx)

	if err := uc.fs.RemoveAll(ctx, path); err != nil {
		log.Error().Err(err).Str("workspace", path).Msg("failed to delete workspace")
		return fmt.Errorf("delete workspace: %w", err)
	}
	if err := uc.repo.Delete(ctx, path); err != nil {
		return fmt.Errorf("forget workspace: %w", err)
	}
	log.Info().Str("workspace", path).Msg("workspace flushed")
	return nil
}

// FlushAllOutput reports the outcome of flushing every workspace.
type FlushAllOutput struct {
	Flushed []string
	Failed  map[string]error
}

// FlushAll flushes every tracked workspace. Workspaces that fail stay tracked.
func (uc *ManageWorkspacesUseCase) FlushAll(ctx context.Context) (*FlushAllOutput, error) {
	all, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}

	out := &FlushAllOutput{Failed: make(map[string]error)}
	for _, ws := range all {
		if err := uc.flush(ctx, ws.Path); err != nil {
			out.Failed[ws.Path] = err
			continue
		}
		out.Flushed = append(out.Flushed, ws.Path)
	}
	return out, nil
}
