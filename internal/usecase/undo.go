package usecase

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/verman-cli/verman/internal/repository"
	"go.uber.org/zap"
)

// UndoUseCase restores the recorded files from a pre-write snapshot.

type UndoUseCase struct {
	Snapshots repository.SnapshotRepository
	Fs        repository.FileSystemRepository
	Log       *zap.Logger
}

// Execute restores the snapshot for sessionID, or the most recent one when
// sessionID is empty, and drops it afterwards.
func (uc *UndoUseCase) Execute(ctx context.Context, sessionID string) (*repository.Snapshot, error) {
	var snap *repository.Snapshot
	var err error
	if sessionID == "" {
		snap, err = uc.Snapshots.LoadLatest(ctx)
	} else {
		snap, err = uc.Snapshots.Load(ctx, sessionID)
	}
	if err != nil {
		return nil, err
	}
	for path, content := range snap.Files {
		if err := afero.WriteFile(uc.Fs, path, []byte(content), 0644); err != nil {
			return nil, fmt.Errorf("failed to restore %s: %w", path, err)
		}
	}
	if err := uc.Snapshots.Delete(ctx, snap.SessionID); err != nil {
		uc.Log.Warn("failed to drop restored snapshot", zap.Error(err))
	}
	uc.Log.Info("recorded files restored",
		zap.String("session", snap.SessionID),
		zap.String("version", snap.OldVersion))
	return snap, nil
}
