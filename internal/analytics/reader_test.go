package analytics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bsd/internal/models"
	"bsd/internal/snapshot"
	"bsd/internal/structures"
)

func readerFixture(t *testing.T) (*Reader, *models.LiveTable, *snapshot.Store) {
	t.Helper()
	conf := &structures.Config{
		Snapshot: structures.SnapshotConfig{
			Dir:          t.TempDir(),
			SaveInterval: 30 * time.Second,
		},
	}
	store := snapshot.NewStore(conf, nil)
	live := models.NewLiveTable()
	return NewReader(live, store), live, store
}

func writeCorruptDay(t *testing.T, dir string, id models.BotIdentity, day string) {
	t.Helper()
	identityDir := filepath.Join(dir, id.BotID, id.BotSelfID)
	require.NoError(t, os.MkdirAll(identityDir, 0755))
	path := filepath.Join(identityDir, "GlobalVal_"+day+".json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0644))
}

func TestReader_Window_ExactLengthMostRecentFirst(t *testing.T) {
	reader, _, store := readerFixture(t)
	id := models.BotIdentity{BotID: "qq", BotSelfID: "1001"}

	yesterday := models.NewActivityRecord()
	yesterday.IncReceive()
	require.NoError(t, store.SaveDay(id, models.DayKeyAgo(1), yesterday))

	window, err := reader.Window(id, 5)
	require.NoError(t, err)
	require.Len(t, window, 5)

	assert.Equal(t, models.DayKey(time.Now()), window[0].Day)
	for k := 1; k < 5; k++ {
		assert.Equal(t, models.DayKeyAgo(k), window[k].Day)
	}
	assert.Equal(t, uint64(1), window[1].Record.Receive)
}

func TestReader_Window_EntryZeroReflectsLiveRecord(t *testing.T) {
	reader, live, _ := readerFixture(t)
	id := models.BotIdentity{BotID: "qq", BotSelfID: "1001"}

	rec := live.GetOrCreate(id)
	rec.IncReceive()
	rec.IncUser("u1", models.MetricReceive)

	window, err := reader.Window(id, 3)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), window[0].Record.Receive)
	assert.Equal(t, 1, window[0].Record.UserCount())
}

func TestReader_Window_MissingDaysResolveToZero(t *testing.T) {
	reader, _, _ := readerFixture(t)
	id := models.BotIdentity{BotID: "qq", BotSelfID: "1001"}

	window, err := reader.Window(id, 30)
	require.NoError(t, err)
	require.Len(t, window, 30)

	for _, day := range window {
		assert.Equal(t, uint64(0), day.Record.Receive)
		assert.NotNil(t, day.Record.User)
	}
}

func TestReader_Window_CorruptSnapshotDegradesToZero(t *testing.T) {
	conf := &structures.Config{
		Snapshot: structures.SnapshotConfig{
			Dir:          t.TempDir(),
			SaveInterval: 30 * time.Second,
		},
	}
	store := snapshot.NewStore(conf, nil)
	live := models.NewLiveTable()
	reader := NewReader(live, store)
	id := models.BotIdentity{BotID: "qq", BotSelfID: "1001"}

	good := models.NewActivityRecord()
	good.IncReceive()
	require.NoError(t, store.SaveDay(id, models.DayKeyAgo(1), good))
	writeCorruptDay(t, conf.Snapshot.Dir, id, models.DayKeyAgo(2))

	window, err := reader.Window(id, 4)
	require.Error(t, err)
	require.Len(t, window, 4)
	assert.Equal(t, uint64(1), window[1].Record.Receive)
	assert.Equal(t, uint64(0), window[2].Record.Receive)
}

func TestReader_Window_ZeroDays(t *testing.T) {
	reader, _, _ := readerFixture(t)
	id := models.BotIdentity{BotID: "qq", BotSelfID: "1001"}

	window, err := reader.Window(id, 0)
	require.NoError(t, err)
	assert.Empty(t, window)
}
