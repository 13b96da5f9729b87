package services

import (
	"fmt"

	"bsd/internal/analytics"
	"bsd/internal/models"
	"bsd/internal/snapshot"
	"bsd/internal/structures"
)

type StatsServiceInterface interface {
	Track(event *models.Event) error
	GetLiveRecord(botID, botSelfID string) *models.ActivityRecord
	GetHistoricalRecord(botID, botSelfID string, daysAgo int) (*models.ActivityRecord, error)
	GetWindow(botID, botSelfID string, numDays int) ([]analytics.DayRecord, error)
	GetAnalytics(botID, botSelfID string) (analytics.Report, error)
	ListKnownIdentities() (map[string][]string, error)
	SaveAll() error
	LoadToday() error
	LiveIdentityCount() int
}

// StatsService owns the live counter table and fronts the snapshot
// store and analytics engine. It is the single injectable handle every
// call site works through; there is no process-wide table.
type StatsService struct {
	conf   *structures.Config
	live   *models.LiveTable
	store  *snapshot.Store
	reader *analytics.Reader
}

func NewStatsService(conf *structures.Config, store *snapshot.Store) StatsServiceInterface {
	live := models.NewLiveTable()
	return &StatsService{
		conf:   conf,
		live:   live,
		store:  store,
		reader: analytics.NewReader(live, store),
	}
}

// Track applies one activity event to today's record for the event's
// identity. The flat counter for the event kind is always incremented;
// group/user breakdowns only when the event names them.
func (ss *StatsService) Track(event *models.Event) error {
	if event == nil || !event.KnownKind() {
		return fmt.Errorf("unknown event kind %q", eventKind(event))
	}

	rec := ss.live.GetOrCreate(event.Identity())
	switch event.Kind {
	case models.MetricReceive:
		rec.IncReceive()
	case models.MetricSend:
		rec.IncSend()
	case models.MetricCommand:
		rec.IncCommand()
	case models.MetricImage:
		rec.IncImage()
	}
	if event.GroupID != "" {
		rec.IncGroup(event.GroupID, event.Kind)
	}
	if event.UserID != "" {
		rec.IncUser(event.UserID, event.Kind)
	}
	return nil
}

func eventKind(event *models.Event) string {
	if event == nil {
		return ""
	}
	return event.Kind
}

// GetLiveRecord returns today's shared mutable record for the identity,
// creating a zero record on first use.
func (ss *StatsService) GetLiveRecord(botID, botSelfID string) *models.ActivityRecord {
	return ss.live.GetOrCreate(models.BotIdentity{BotID: botID, BotSelfID: botSelfID})
}

// GetHistoricalRecord returns the record daysAgo days back: the live
// record for 0, a snapshot (zero when absent) otherwise.
func (ss *StatsService) GetHistoricalRecord(botID, botSelfID string, daysAgo int) (*models.ActivityRecord, error) {
	identity := models.BotIdentity{BotID: botID, BotSelfID: botSelfID}
	if daysAgo <= 0 {
		return ss.live.GetOrCreate(identity), nil
	}
	return ss.store.Load(identity, models.DayKeyAgo(daysAgo))
}

func (ss *StatsService) GetWindow(botID, botSelfID string, numDays int) ([]analytics.DayRecord, error) {
	return ss.reader.Window(models.BotIdentity{BotID: botID, BotSelfID: botSelfID}, numDays)
}

// GetAnalytics computes the rolling engagement report over the
// configured window. A report is produced even when some snapshot files
// were unreadable; the joined error is returned for logging and the
// affected days count as inactive.
func (ss *StatsService) GetAnalytics(botID, botSelfID string) (analytics.Report, error) {
	window, err := ss.GetWindow(botID, botSelfID, ss.conf.Analytics.WindowDays)
	return analytics.Analyze(window, ss.conf.Analytics.RecentDays), err
}

func (ss *StatsService) ListKnownIdentities() (map[string][]string, error) {
	return ss.store.Identities()
}

func (ss *StatsService) SaveAll() error {
	return ss.store.SaveAll(ss.live)
}

func (ss *StatsService) LoadToday() error {
	return ss.store.LoadToday(ss.live)
}

func (ss *StatsService) LiveIdentityCount() int {
	return ss.live.Len()
}
