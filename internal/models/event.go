package models

// Event is a single activity observation reported by a bot adapter.
// Kind is one of the Metric* names. GroupID and UserID are optional;
// when present the matching breakdown counter is incremented too.
type Event struct {
	BotID     string `json:"bot_id"`
	BotSelfID string `json:"bot_self_id"`
	Kind      string `json:"kind"`
	GroupID   string `json:"group_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
}

func (e *Event) Identity() BotIdentity {
	return BotIdentity{BotID: e.BotID, BotSelfID: e.BotSelfID}
}

// KnownKind reports whether Kind names a tracked metric.
func (e *Event) KnownKind() bool {
	switch e.Kind {
	case MetricReceive, MetricSend, MetricCommand, MetricImage:
		return true
	}
	return false
}
