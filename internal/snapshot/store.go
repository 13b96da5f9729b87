package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"bsd/internal/models"
	"bsd/internal/structures"
)

const (
	filePrefix = "GlobalVal_"
	fileSuffix = ".json"
)

// ErrDecode marks a snapshot file that exists but cannot be parsed.
// Bulk sweeps treat it as a missing day for that identity and continue.
var ErrDecode = errors.New("snapshot decode failure")

// Store persists one immutable ActivityRecord per identity per calendar
// day under {dir}/{botId}/{botSelfId}/GlobalVal_{day}.json. Saving the
// same day twice overwrites, so repeated incremental saves through the
// day never create duplicates.
type Store struct {
	dir      string
	archiver *Archiver
}

// NewStore creates a snapshot store rooted at the configured snapshot
// directory. archiver may be nil, in which case days outside the daily
// retention resolve to zero records.
func NewStore(conf *structures.Config, archiver *Archiver) *Store {
	return &Store{dir: conf.Snapshot.Dir, archiver: archiver}
}

func (s *Store) identityDir(identity models.BotIdentity) string {
	return filepath.Join(s.dir, identity.BotID, identity.BotSelfID)
}

func (s *Store) dayPath(identity models.BotIdentity, dayKey string) string {
	return filepath.Join(s.identityDir(identity), filePrefix+dayKey+fileSuffix)
}

// Save writes the record as today's snapshot for the identity.
// An identity without a BotSelfID is silently skipped.
func (s *Store) Save(identity models.BotIdentity, rec *models.ActivityRecord) error {
	return s.SaveDay(identity, models.DayKey(time.Now()), rec)
}

// SaveDay writes the record under an explicit day key. Used by the
// rollover path to flush retired records under their original day.
func (s *Store) SaveDay(identity models.BotIdentity, dayKey string, rec *models.ActivityRecord) error {
	if !identity.Valid() {
		return nil
	}

	if err := os.MkdirAll(s.identityDir(identity), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(rec.Clone(), "", "    ")
	if err != nil {
		return err
	}

	path := s.dayPath(identity, dayKey)
	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}
	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}
	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, path)
}

// Load returns the identity's record for the given day. A missing
// snapshot is not an error: it means no activity was observed that day,
// and a zero record is returned. When an archiver is attached, days
// already compacted out of the daily files are looked up in the archive.
func (s *Store) Load(identity models.BotIdentity, dayKey string) (*models.ActivityRecord, error) {
	data, err := os.ReadFile(s.dayPath(identity, dayKey))
	if err != nil {
		if os.IsNotExist(err) {
			if s.archiver != nil {
				return s.archiver.Load(identity, dayKey)
			}
			return models.NewActivityRecord(), nil
		}
		return nil, err
	}

	var rec models.ActivityRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrDecode, s.dayPath(identity, dayKey), err)
	}
	rec.Normalize()
	return &rec, nil
}

// SaveAll flushes every record in the live table: retired records first
// under their own day keys, then every live record under today. One
// identity's write failure never aborts the rest of the sweep.
func (s *Store) SaveAll(live *models.LiveTable) error {
	var errs []error

	for _, retired := range live.DrainRetired() {
		if err := s.SaveDay(retired.Identity, retired.Day, retired.Record); err != nil {
			errs = append(errs, fmt.Errorf("save retired %s/%s: %w", retired.Identity.BotID, retired.Identity.BotSelfID, err))
		}
	}

	for _, identity := range live.Identities() {
		rec := live.GetOrCreate(identity)
		if err := s.Save(identity, rec); err != nil {
			errs = append(errs, fmt.Errorf("save %s/%s: %w", identity.BotID, identity.BotSelfID, err))
		}
	}

	// GetOrCreate above may have rotated entries whose day had elapsed.
	for _, retired := range live.DrainRetired() {
		if err := s.SaveDay(retired.Identity, retired.Day, retired.Record); err != nil {
			errs = append(errs, fmt.Errorf("save retired %s/%s: %w", retired.Identity.BotID, retired.Identity.BotSelfID, err))
		}
	}

	return errors.Join(errs...)
}

// LoadToday resumes same-day counting after a restart: for every
// identity discoverable on disk, today's snapshot (when present) is
// loaded into the live table. A decode failure skips that identity and
// the sweep continues; the joined error is returned for logging.
func (s *Store) LoadToday(live *models.LiveTable) error {
	known, err := s.Identities()
	if err != nil {
		return err
	}

	today := models.DayKey(time.Now())
	var errs []error

	for botID, selfIDs := range known {
		for _, selfID := range selfIDs {
			identity := models.BotIdentity{BotID: botID, BotSelfID: selfID}
			if _, err := os.Stat(s.dayPath(identity, today)); err != nil {
				continue
			}
			rec, err := s.Load(identity, today)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			live.Put(identity, rec)
		}
	}

	return errors.Join(errs...)
}

// Identities scans the storage tree and returns every identity that has
// ever been persisted, as botId → list of botSelfId. This is a slow
// boundary operation for discovery, not the live table's lookup path.
func (s *Store) Identities() (map[string][]string, error) {
	result := make(map[string][]string)

	botDirs, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, err
	}

	for _, botDir := range botDirs {
		if !botDir.IsDir() {
			continue
		}
		selfDirs, err := os.ReadDir(filepath.Join(s.dir, botDir.Name()))
		if err != nil {
			continue
		}
		result[botDir.Name()] = []string{}
		for _, selfDir := range selfDirs {
			if selfDir.IsDir() {
				result[botDir.Name()] = append(result[botDir.Name()], selfDir.Name())
			}
		}
	}
	return result, nil
}

// DayFiles lists the day keys that have a daily snapshot file for the
// identity. Used by the retention sweep.
func (s *Store) DayFiles(identity models.BotIdentity) ([]string, error) {
	entries, err := os.ReadDir(s.identityDir(identity))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var days []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		days = append(days, strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix))
	}
	return days, nil
}

// RemoveDay deletes the identity's daily snapshot file for the day.
func (s *Store) RemoveDay(identity models.BotIdentity, dayKey string) error {
	return os.Remove(s.dayPath(identity, dayKey))
}
