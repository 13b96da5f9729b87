package analytics

import (
	"errors"
	"time"

	"bsd/internal/models"
	"bsd/internal/snapshot"
)

// DayRecord pairs a calendar day key with that day's activity record.
type DayRecord struct {
	Day    string                 `json:"day"`
	Record *models.ActivityRecord `json:"record"`
}

// Reader reconstructs bounded windows of daily records: today straight
// from the live table (including not-yet-saved activity), prior days
// from the snapshot store.
type Reader struct {
	live  *models.LiveTable
	store *snapshot.Store
}

func NewReader(live *models.LiveTable, store *snapshot.Store) *Reader {
	return &Reader{live: live, store: store}
}

// Window returns exactly numDays entries, most-recent first. Days with
// no snapshot resolve to zero records. An unreadable snapshot degrades
// to a zero record too; the joined errors are returned alongside the
// full window so the caller can log them.
func (r *Reader) Window(identity models.BotIdentity, numDays int) ([]DayRecord, error) {
	if numDays <= 0 {
		return nil, nil
	}

	// Entry 0 is a clone of the live record so later serialization of
	// the window never races an in-flight increment.
	window := make([]DayRecord, 0, numDays)
	window = append(window, DayRecord{
		Day:    models.DayKey(time.Now()),
		Record: r.live.GetOrCreate(identity).Clone(),
	})

	var errs []error
	for k := 1; k < numDays; k++ {
		day := models.DayKeyAgo(k)
		rec, err := r.store.Load(identity, day)
		if err != nil {
			errs = append(errs, err)
			rec = models.NewActivityRecord()
		}
		window = append(window, DayRecord{Day: day, Record: rec})
	}

	return window, errors.Join(errs...)
}
