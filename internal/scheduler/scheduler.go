package scheduler

import (
	"errors"
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"bsd/internal/providers"
	"bsd/internal/services"
	"bsd/internal/snapshot"
	"bsd/internal/snapshot/interfaces"
	"bsd/internal/structures"
)

// Scheduler drives the periodic snapshot sweep and the retention
// archive sweep, and exposes the boot/shutdown persistence hooks.
type Scheduler struct {
	config   *structures.Config
	logger   providers.Logger
	service  services.StatsServiceInterface
	store    *snapshot.Store
	archiver *snapshot.Archiver
	metrics  providers.MetricsProviderInterface
	cron     *gron.Cron
	opsMu    sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	interval := s.config.Snapshot.SaveInterval

	s.cron.AddFunc(gron.Every(interval), func() {
		if err := s.Persist(); err != nil {
			return
		}
		s.logger.Infof(providers.TypeApp, "Snapshots saved to %s", s.config.Snapshot.Dir)
	})

	if s.archiver != nil && s.config.Snapshot.ArchiveInterval > 0 {
		s.cron.AddFunc(gron.Every(s.config.Snapshot.ArchiveInterval), func() {
			s.opsMu.Lock()
			defer s.opsMu.Unlock()

			if err := s.archiver.Sweep(s.store); err != nil {
				s.logger.Errorf(providers.TypeApp, "Archive sweep: %s", err)
				return
			}
			s.logger.Infof(providers.TypeApp, "Archive sweep done (retention %d days)", s.config.Snapshot.RetentionDays)
		})
	}

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Restore resumes today's counters from disk at startup. Per-identity
// decode failures degrade to missing days and are only logged.
func (s *Scheduler) Restore() error {
	err := s.service.LoadToday()
	if errors.Is(err, snapshot.ErrDecode) {
		s.metrics.IncSnapshotDecodeFailures()
	}
	return err
}

// Persist flushes every live record to the snapshot store.
func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	start := time.Now()
	if err := s.service.SaveAll(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting snapshots: %s", err)
		return err
	}
	s.metrics.ObserveSnapshotSaveDuration(time.Since(start))
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.StatsServiceInterface, store *snapshot.Store, archiver *snapshot.Archiver, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:   config,
		logger:   logger,
		service:  service,
		store:    store,
		archiver: archiver,
		metrics:  metrics,
	}
}
