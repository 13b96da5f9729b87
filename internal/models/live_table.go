package models

import (
	"sync"
	"time"
)

// RetiredRecord is a live record whose calendar day has elapsed. It is
// queued at rollover and flushed by the next snapshot sweep under its
// original day key, so post-midnight activity never lands in the prior
// day's snapshot.
type RetiredRecord struct {
	Identity BotIdentity
	Day      string
	Record   *ActivityRecord
}

type liveEntry struct {
	day string
	rec *ActivityRecord
}

// LiveTable holds today's mutable ActivityRecord per bot identity.
// Records are created lazily and shared: every caller for the same
// identity mutates the same instance.
type LiveTable struct {
	mu      sync.RWMutex
	now     func() time.Time
	entries map[BotIdentity]*liveEntry
	retired []RetiredRecord
}

func NewLiveTable() *LiveTable {
	return &LiveTable{
		now:     time.Now,
		entries: make(map[BotIdentity]*liveEntry),
	}
}

// SetClock replaces the wall-clock source used for day attribution.
// Tests use it to drive a record across a day boundary.
func (lt *LiveTable) SetClock(now func() time.Time) {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	lt.now = now
}

// GetOrCreate returns the identity's record for today, creating a zero
// record on first use. A record left over from a previous calendar day
// is retired and replaced with a fresh one.
func (lt *LiveTable) GetOrCreate(identity BotIdentity) *ActivityRecord {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	today := DayKey(lt.now())

	entry, ok := lt.entries[identity]
	if ok && entry.day == today {
		return entry.rec
	}
	if ok {
		lt.retired = append(lt.retired, RetiredRecord{
			Identity: identity,
			Day:      entry.day,
			Record:   entry.rec,
		})
	}
	entry = &liveEntry{day: today, rec: NewActivityRecord()}
	lt.entries[identity] = entry
	return entry.rec
}

// Put replaces the identity's record for today. Used when resuming
// from a same-day snapshot at startup.
func (lt *LiveTable) Put(identity BotIdentity, rec *ActivityRecord) {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	lt.entries[identity] = &liveEntry{day: DayKey(lt.now()), rec: rec}
}

// Identities returns the identities currently present in the table.
func (lt *LiveTable) Identities() []BotIdentity {
	lt.mu.RLock()
	defer lt.mu.RUnlock()
	ids := make([]BotIdentity, 0, len(lt.entries))
	for id := range lt.entries {
		ids = append(ids, id)
	}
	return ids
}

func (lt *LiveTable) Len() int {
	lt.mu.RLock()
	defer lt.mu.RUnlock()
	return len(lt.entries)
}

// DrainRetired hands over and clears the queue of rolled-over records.
func (lt *LiveTable) DrainRetired() []RetiredRecord {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	out := lt.retired
	lt.retired = nil
	return out
}
