package models

import "sync"

// Metric names used for the flat counters and for per-group/per-user
// breakdowns inside an ActivityRecord.
const (
	MetricReceive = "receive"
	MetricSend    = "send"
	MetricCommand = "command"
	MetricImage   = "image"
)

// ActivityRecord holds one day of usage counters for one bot identity.
// The flat counters track overall traffic; Group and User break the same
// metrics down per group id and per user id.
type ActivityRecord struct {
	mu      sync.RWMutex
	Receive uint64                       `json:"receive"`
	Send    uint64                       `json:"send"`
	Command uint64                       `json:"command"`
	Image   uint64                       `json:"image"`
	Group   map[string]map[string]uint64 `json:"group"`
	User    map[string]map[string]uint64 `json:"user"`
}

// NewActivityRecord returns a record with all counters at zero and
// empty breakdown maps.
func NewActivityRecord() *ActivityRecord {
	return &ActivityRecord{
		Group: make(map[string]map[string]uint64),
		User:  make(map[string]map[string]uint64),
	}
}

func (ar *ActivityRecord) IncReceive() {
	ar.mu.Lock()
	ar.Receive++
	ar.mu.Unlock()
}

func (ar *ActivityRecord) IncSend() {
	ar.mu.Lock()
	ar.Send++
	ar.mu.Unlock()
}

func (ar *ActivityRecord) IncCommand() {
	ar.mu.Lock()
	ar.Command++
	ar.mu.Unlock()
}

func (ar *ActivityRecord) IncImage() {
	ar.mu.Lock()
	ar.Image++
	ar.mu.Unlock()
}

// IncGroup increments the named metric for one group id.
func (ar *ActivityRecord) IncGroup(groupID, metric string) {
	ar.mu.Lock()
	defer ar.mu.Unlock()
	if ar.Group == nil {
		ar.Group = make(map[string]map[string]uint64)
	}
	if ar.Group[groupID] == nil {
		ar.Group[groupID] = make(map[string]uint64)
	}
	ar.Group[groupID][metric]++
}

// IncUser increments the named metric for one user id.
func (ar *ActivityRecord) IncUser(userID, metric string) {
	ar.mu.Lock()
	defer ar.mu.Unlock()
	if ar.User == nil {
		ar.User = make(map[string]map[string]uint64)
	}
	if ar.User[userID] == nil {
		ar.User[userID] = make(map[string]uint64)
	}
	ar.User[userID][metric]++
}

// Idle reports whether the record shows no observed traffic. Idle days
// are treated as "process not running", not as genuine zero activity.
func (ar *ActivityRecord) Idle() bool {
	ar.mu.RLock()
	defer ar.mu.RUnlock()
	return ar.Receive == 0 && ar.Send == 0
}

func (ar *ActivityRecord) GroupCount() int {
	ar.mu.RLock()
	defer ar.mu.RUnlock()
	return len(ar.Group)
}

func (ar *ActivityRecord) UserCount() int {
	ar.mu.RLock()
	defer ar.mu.RUnlock()
	return len(ar.User)
}

// UserIDs returns the distinct user ids seen by this record.
func (ar *ActivityRecord) UserIDs() []string {
	ar.mu.RLock()
	defer ar.mu.RUnlock()
	ids := make([]string, 0, len(ar.User))
	for id := range ar.User {
		ids = append(ids, id)
	}
	return ids
}

// Clone returns a deep copy. Serialization works on clones so a write
// in flight never races an increment on the live record.
func (ar *ActivityRecord) Clone() *ActivityRecord {
	ar.mu.RLock()
	defer ar.mu.RUnlock()

	out := &ActivityRecord{
		Receive: ar.Receive,
		Send:    ar.Send,
		Command: ar.Command,
		Image:   ar.Image,
		Group:   make(map[string]map[string]uint64, len(ar.Group)),
		User:    make(map[string]map[string]uint64, len(ar.User)),
	}
	for id, metrics := range ar.Group {
		m := make(map[string]uint64, len(metrics))
		for k, v := range metrics {
			m[k] = v
		}
		out.Group[id] = m
	}
	for id, metrics := range ar.User {
		m := make(map[string]uint64, len(metrics))
		for k, v := range metrics {
			m[k] = v
		}
		out.User[id] = m
	}
	return out
}

// Normalize replaces nil maps left behind by deserialization.
func (ar *ActivityRecord) Normalize() {
	ar.mu.Lock()
	defer ar.mu.Unlock()
	if ar.Group == nil {
		ar.Group = make(map[string]map[string]uint64)
	}
	if ar.User == nil {
		ar.User = make(map[string]map[string]uint64)
	}
}
