package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const (
	// SnapshotSchemaVersion defines the current schema version for snapshot files
	SnapshotSchemaVersion = "1.0.0"
	// SnapshotFilePermissions defines the permissions for snapshot files
	SnapshotFilePermissions = 0600
	// SnapshotDirPermissions defines the permissions for the snapshot directory
	SnapshotDirPermissions = 0700
	// LockTimeout defines the maximum time to wait for a lock
	LockTimeout = 30 * time.Second
	// LockRetryInterval defines the interval between lock retry attempts
	LockRetryInterval = 100 * time.Millisecond
)

// Snapshot captures the recorded files before a version write so the write
// can be undone.
type Snapshot struct {
	SessionID  string            `json:"session_id"`
	OldVersion string            `json:"old_version"`
	NewVersion string            `json:"new_version"`
	Files      map[string]string `json:"files"`
	TakenAt    time.Time         `json:"taken_at"`
}

// NewSnapshot builds a snapshot with a fresh session ID.
func NewSnapshot(oldVersion, newVersion string, files map[string]string) *Snapshot {
	return &Snapshot{
		SessionID:  uuid.New().String(),
		OldVersion: oldVersion,
		NewVersion: newVersion,
		Files:      files,
		TakenAt:    time.Now(),
	}
}

// SnapshotRepository defines the interface for managing pre-write snapshots
type SnapshotRepository interface {
	Save(ctx context.Context, snap *Snapshot) error
	Load(ctx context.Context, sessionID string) (*Snapshot, error)
	LoadLatest(ctx context.Context) (*Snapshot, error)
	Delete(ctx context.Context, sessionID string) error
}

// SnapshotMetadata contains metadata about the snapshot file
type SnapshotMetadata struct {
	SchemaVersion string    `json:"schema_version"`
	Checksum      string    `json:"checksum"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// snapshotWrapper wraps the snapshot with metadata
type snapshotWrapper struct {
	Metadata SnapshotMetadata `json:"metadata"`
	Snapshot *Snapshot        `json:"snapshot"`
}

// JSONSnapshotRepository implements SnapshotRepository using JSON file storage
type JSONSnapshotRepository struct {
	fs       afero.Fs
	stateDir string
	mu       sync.RWMutex
}

// NewJSONSnapshotRepository creates a new JSON-based snapshot repository
func NewJSONSnapshotRepository(fs afero.Fs, stateDir string) SnapshotRepository {
	if stateDir == "" {
		stateDir = ".verman-state"
	}
	return &JSONSnapshotRepository{
		fs:       fs,
		stateDir: stateDir,
	}
}

// Save persists the snapshot to a JSON file with proper locking
func (r *JSONSnapshotRepository) Save(ctx context.Context, snap *Snapshot) error {
	if err := r.fs.MkdirAll(r.stateDir, SnapshotDirPermissions); err != nil {
		return fmt.Errorf("failed to ensure snapshot directory: %w", err)
	}
	filename := r.snapshotFilename(snap.SessionID)
	lock := flock.New(r.lockFilename(snap.SessionID))
	lockCtx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()
	locked, err := acquireLockWithContext(lockCtx, lock.TryLock)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire lock within timeout")
	}
	defer unlockOrWarn(lock)
	wrapper := snapshotWrapper{
		Metadata: SnapshotMetadata{
			SchemaVersion: SnapshotSchemaVersion,
			CreatedAt:     snap.TakenAt,
			UpdatedAt:     time.Now(),
		},
		Snapshot: snap,
	}
	snapData, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot for checksum: %w", err)
	}
	wrapper.Metadata.Checksum = checksum(snapData)
	data, err := json.MarshalIndent(wrapper, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot wrapper: %w", err)
	}
	// Write atomically using temp file
	tempFile := filename + ".tmp"
	if err := afero.WriteFile(r.fs, tempFile, data, SnapshotFilePermissions); err != nil {
		return fmt.Errorf("failed to write temp snapshot file: %w", err)
	}
	if err := r.fs.Rename(tempFile, filename); err != nil {
		if removeErr := r.fs.Remove(tempFile); removeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove temp file: %v\n", removeErr)
		}
		return fmt.Errorf("failed to rename snapshot file: %w", err)
	}
	if err := r.updateLatestLink(filename); err != nil {
		return fmt.Errorf("failed to update latest link: %w", err)
	}
	return nil
}

// Load retrieves a specific snapshot by session ID with validation
func (r *JSONSnapshotRepository) Load(ctx context.Context, sessionID string) (*Snapshot, error) {
	filename := r.snapshotFilename(sessionID)
	lock := flock.New(r.lockFilename(sessionID))
	lockCtx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()
	locked, err := acquireLockWithContext(lockCtx, lock.TryRLock)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire shared lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("could not acquire shared lock within timeout")
	}
	defer unlockOrWarn(lock)
	data, err := afero.ReadFile(r.fs, filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("snapshot not found for session %s", sessionID)
		}
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	var wrapper snapshotWrapper
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot wrapper: %w", err)
	}
	if wrapper.Metadata.SchemaVersion != SnapshotSchemaVersion {
		return nil, fmt.Errorf("incompatible schema version: expected %s, got %s",
			SnapshotSchemaVersion, wrapper.Metadata.SchemaVersion)
	}
	snapData, err := json.Marshal(wrapper.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot for checksum validation: %w", err)
	}
	if wrapper.Metadata.Checksum != checksum(snapData) {
		return nil, fmt.Errorf("snapshot checksum mismatch: data may be corrupted")
	}
	return wrapper.Snapshot, nil
}

// LoadLatest retrieves the most recent snapshot with validation
func (r *JSONSnapshotRepository) LoadLatest(ctx context.Context) (*Snapshot, error) {
	r.mu.RLock()
	data, err := afero.ReadFile(r.fs, r.latestLink())
	r.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no snapshot found")
		}
		return nil, fmt.Errorf("failed to read latest link: %w", err)
	}
	sessionID := r.extractSessionID(string(data))
	if sessionID == "" {
		return nil, fmt.Errorf("invalid latest link target: %s", string(data))
	}
	return r.Load(ctx, sessionID)
}

// Delete removes a snapshot
func (r *JSONSnapshotRepository) Delete(ctx context.Context, sessionID string) error {
	filename := r.snapshotFilename(sessionID)
	lockFile := r.lockFilename(sessionID)
	lock := flock.New(lockFile)
	lockCtx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()
	locked, err := acquireLockWithContext(lockCtx, lock.TryLock)
	if err != nil {
		return fmt.Errorf("failed to acquire lock for deletion: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire lock within timeout")
	}
	defer unlockOrWarn(lock)
	if err := r.fs.Remove(filename); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete snapshot file: %w", err)
	}
	if removeErr := r.fs.Remove(lockFile); removeErr != nil && !os.IsNotExist(removeErr) {
		fmt.Fprintf(os.Stderr, "warning: failed to remove lock file: %v\n", removeErr)
	}
	return nil
}

// acquireLockWithContext polls a flock try function until it succeeds or the
// context expires.
func acquireLockWithContext(ctx context.Context, try func() (bool, error)) (bool, error) {
	ticker := time.NewTicker(LockRetryInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-ticker.C:
			locked, err := try()
			if err != nil {
				return false, err
			}
			if locked {
				return true, nil
			}
		}
	}
}

func unlockOrWarn(lock *flock.Flock) {
	if err := lock.Unlock(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to unlock file: %v\n", err)
	}
}

func checksum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func (r *JSONSnapshotRepository) snapshotFilename(sessionID string) string {
	return filepath.Join(r.stateDir, fmt.Sprintf("snapshot-%s.json", sessionID))
}

func (r *JSONSnapshotRepository) lockFilename(sessionID string) string {
	return filepath.Join(r.stateDir, fmt.Sprintf(".snapshot-%s.lock", sessionID))
}

func (r *JSONSnapshotRepository) latestLink() string {
	return filepath.Join(r.stateDir, "latest.txt")
}

// updateLatestLink updates the pointer to the most recent snapshot
func (r *JSONSnapshotRepository) updateLatestLink(target string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	link := r.latestLink()
	tempLink := link + ".tmp"
	if err := afero.WriteFile(r.fs, tempLink, []byte(target), SnapshotFilePermissions); err != nil {
		return fmt.Errorf("failed to write temp latest link: %w", err)
	}
	if err := r.fs.Rename(tempLink, link); err != nil {
		if removeErr := r.fs.Remove(tempLink); removeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove temp link: %v\n", removeErr)
		}
		return fmt.Errorf("failed to update latest link: %w", err)
	}
	return nil
}

// extractSessionID extracts session ID from a snapshot filename
func (r *JSONSnapshotRepository) extractSessionID(filename string) string {
	base := filepath.Base(filename)
	const prefix, suffix = "snapshot-", ".json"
	if len(base) > len(prefix)+len(suffix) &&
		base[:len(prefix)] == prefix && base[len(base)-len(suffix):] == suffix {
		return base[len(prefix) : len(base)-len(suffix)]
	}
	return ""
}
