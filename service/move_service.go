package service

import (
	"context"
	"fmt"

	"github.com/dariusokafor/wsmove/domain"
	"github.com/dariusokafor/wsmove/internal/config"
	"github.com/dariusokafor/wsmove/internal/mover"
	"github.com/dariusokafor/wsmove/internal/pathalias"
	"github.com/dariusokafor/wsmove/internal/tree"
)

// MoveServiceImpl wires the path resolver, planner, and engine
// together over one workspace overlay, reporting progress the same
// way the teacher's analysis services do (service/complexity_service.go).
type MoveServiceImpl struct {
	overlay  *tree.Overlay
	cfg      *config.WorkspaceConfig
	executor domain.ParallelExecutor
	progress domain.ProgressManager
}

// NewMoveService creates a move service with no progress reporting and
// a serial (unparallelised) workspace scan.
func NewMoveService(overlay *tree.Overlay, cfg *config.WorkspaceConfig) *MoveServiceImpl {
	return &MoveServiceImpl{overlay: overlay, cfg: cfg}
}

// NewMoveServiceWithProgress creates a move service that reports
// progress through pm and scans the workspace in parallel, bounded by
// cfg's performance settings.
func NewMoveServiceWithProgress(overlay *tree.Overlay, cfg *config.WorkspaceConfig, pm domain.ProgressManager) *MoveServiceImpl {
	return &MoveServiceImpl{
		overlay:  overlay,
		cfg:      cfg,
		executor: NewParallelExecutorWithProgress(&cfg.Performance, pm),
		progress: pm,
	}
}

// Move plans and executes req against the service's overlay, returning
// the batch of files actually moved. The caller is responsible for
// flushing the overlay to disk afterward (tree.Overlay.Flush).
func (s *MoveServiceImpl) Move(ctx context.Context, req domain.MoveRequest) (*domain.MoveResult, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("move cancelled: %w", ctx.Err())
	default:
	}

	projects := s.cfg.ProjectTable()
	aliases := s.cfg.AliasTable()
	resolver := pathalias.New(projects, aliases)

	planner := mover.NewPlanner(s.overlay, resolver)
	plan, err := planner.Plan(req)
	if err != nil {
		return nil, err
	}

	engine := mover.NewEngine(s.overlay, resolver, aliases, s.executor, s.progress)
	return engine.Execute(ctx, plan, req)
}
