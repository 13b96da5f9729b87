package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveTable_GetOrCreate_LazyZero(t *testing.T) {
	lt := NewLiveTable()
	id := BotIdentity{BotID: "qq", BotSelfID: "1001"}

	rec := lt.GetOrCreate(id)
	require.NotNil(t, rec)
	assert.Equal(t, uint64(0), rec.Receive)
	assert.Empty(t, rec.User)
	assert.Equal(t, 1, lt.Len())
}

func TestLiveTable_GetOrCreate_SharedInstance(t *testing.T) {
	lt := NewLiveTable()
	id := BotIdentity{BotID: "qq", BotSelfID: "1001"}

	first := lt.GetOrCreate(id)
	first.IncReceive()

	second := lt.GetOrCreate(id)
	assert.Same(t, first, second)
	assert.Equal(t, uint64(1), second.Receive)
}

func TestLiveTable_Identities(t *testing.T) {
	lt := NewLiveTable()
	a := BotIdentity{BotID: "qq", BotSelfID: "1001"}
	b := BotIdentity{BotID: "discord", BotSelfID: "2002"}
	lt.GetOrCreate(a)
	lt.GetOrCreate(b)

	assert.ElementsMatch(t, []BotIdentity{a, b}, lt.Identities())
}

func TestLiveTable_Rollover_RetiresStaleDay(t *testing.T) {
	lt := NewLiveTable()
	id := BotIdentity{BotID: "qq", BotSelfID: "1001"}

	yesterday := time.Now().AddDate(0, 0, -1)
	lt.SetClock(func() time.Time { return yesterday })

	stale := lt.GetOrCreate(id)
	stale.IncReceive()

	// The wall-clock day advances past the entry's day.
	lt.SetClock(time.Now)

	fresh := lt.GetOrCreate(id)
	assert.NotSame(t, stale, fresh)
	assert.Equal(t, uint64(0), fresh.Receive)

	retired := lt.DrainRetired()
	require.Len(t, retired, 1)
	assert.Equal(t, id, retired[0].Identity)
	assert.Equal(t, DayKey(yesterday), retired[0].Day)
	assert.Same(t, stale, retired[0].Record)

	// drain clears the queue
	assert.Empty(t, lt.DrainRetired())
}

func TestLiveTable_Put_ReplacesRecord(t *testing.T) {
	lt := NewLiveTable()
	id := BotIdentity{BotID: "qq", BotSelfID: "1001"}

	restored := NewActivityRecord()
	restored.IncSend()
	lt.Put(id, restored)

	assert.Same(t, restored, lt.GetOrCreate(id))
}

func TestBotIdentity_Valid(t *testing.T) {
	assert.True(t, BotIdentity{BotID: "qq", BotSelfID: "1001"}.Valid())
	assert.False(t, BotIdentity{BotID: "qq"}.Valid())
}
