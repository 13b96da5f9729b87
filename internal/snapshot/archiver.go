package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"bsd/internal/models"
	"bsd/internal/snapshot/interfaces"
	"bsd/internal/structures"
)

const archiveFileName = "archive.zst"

// Archiver compacts daily snapshot files older than the retention
// window into one zstd-compressed archive per identity. Archived days
// stay readable through Store.Load, so a long analytics window still
// resolves days that no longer have a daily file.
type Archiver struct {
	mu            sync.Mutex
	dir           string
	retentionDays int
	compressor    interfaces.CompressorInterface
}

// archiveFile is the on-disk format: day key → record.
type archiveFile map[string]*models.ActivityRecord

func NewArchiver(conf *structures.Config, compressor interfaces.CompressorInterface) *Archiver {
	if !conf.Snapshot.ArchiveEnabled || conf.Snapshot.RetentionDays <= 0 {
		return nil
	}
	return &Archiver{
		dir:           conf.Snapshot.Dir,
		retentionDays: conf.Snapshot.RetentionDays,
		compressor:    compressor,
	}
}

func (a *Archiver) archivePath(identity models.BotIdentity) string {
	return filepath.Join(a.dir, identity.BotID, identity.BotSelfID, archiveFileName)
}

// Load returns the archived record for one day, or a zero record when
// the identity has no archive or the day is not in it.
func (a *Archiver) Load(identity models.BotIdentity, dayKey string) (*models.ActivityRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	arch, err := a.read(identity)
	if err != nil {
		return nil, err
	}
	rec, ok := arch[dayKey]
	if !ok || rec == nil {
		return models.NewActivityRecord(), nil
	}
	rec.Normalize()
	return rec, nil
}

// Sweep merges every daily file older than the retention window into
// the identity's archive and removes the merged dailies. Unreadable
// files are skipped and reported, never fatal for the sweep.
func (a *Archiver) Sweep(store *Store) error {
	known, err := store.Identities()
	if err != nil {
		return err
	}

	cutoff := time.Now().AddDate(0, 0, -a.retentionDays)
	var errs []error

	for botID, selfIDs := range known {
		for _, selfID := range selfIDs {
			identity := models.BotIdentity{BotID: botID, BotSelfID: selfID}
			if err := a.sweepIdentity(store, identity, cutoff); err != nil {
				errs = append(errs, fmt.Errorf("archive %s/%s: %w", botID, selfID, err))
			}
		}
	}
	return errors.Join(errs...)
}

func (a *Archiver) sweepIdentity(store *Store, identity models.BotIdentity, cutoff time.Time) error {
	days, err := store.DayFiles(identity)
	if err != nil {
		return err
	}

	var stale []string
	for _, day := range days {
		when, err := models.ParseDayKey(day)
		if err != nil {
			continue
		}
		if when.Before(cutoff) {
			stale = append(stale, day)
		}
	}
	if len(stale) == 0 {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	arch, err := a.read(identity)
	if err != nil {
		return err
	}

	var errs []error
	merged := make([]string, 0, len(stale))
	for _, day := range stale {
		rec, err := store.Load(identity, day)
		if err != nil {
			// Corrupt daily file: leave it in place, archive the rest.
			errs = append(errs, err)
			continue
		}
		arch[day] = rec
		merged = append(merged, day)
	}

	if len(merged) > 0 {
		if err := a.write(identity, arch); err != nil {
			return errors.Join(append(errs, err)...)
		}
		for _, day := range merged {
			if err := store.RemoveDay(identity, day); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// read loads the identity's archive. Caller must hold a.mu.
func (a *Archiver) read(identity models.BotIdentity) (archiveFile, error) {
	data, err := os.ReadFile(a.archivePath(identity))
	if err != nil {
		if os.IsNotExist(err) {
			return make(archiveFile), nil
		}
		return nil, err
	}

	decompressed, err := a.compressor.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrDecode, a.archivePath(identity), err)
	}

	var arch archiveFile
	if err := json.Unmarshal(decompressed, &arch); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrDecode, a.archivePath(identity), err)
	}
	if arch == nil {
		arch = make(archiveFile)
	}
	return arch, nil
}

// write atomically replaces the identity's archive. Caller must hold a.mu.
func (a *Archiver) write(identity models.BotIdentity, arch archiveFile) error {
	data, err := json.Marshal(arch)
	if err != nil {
		return err
	}
	compressed, err := a.compressor.Compress(data)
	if err != nil {
		return err
	}

	path := a.archivePath(identity)
	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, compressed, 0644); err != nil {
		return err
	}
	return os.Rename(tmpFile, path)
}
