package models

// BotIdentity keys one account on one messaging platform.
// BotID is the platform identifier, BotSelfID the account on it.
type BotIdentity struct {
	BotID     string
	BotSelfID string
}

// Valid reports whether the identity can be persisted. An identity
// without a BotSelfID has nothing to key a snapshot directory by.
func (b BotIdentity) Valid() bool {
	return b.BotSelfID != ""
}
