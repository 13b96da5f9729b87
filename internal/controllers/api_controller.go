package controllers

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"

	"bsd/internal/models"
	"bsd/internal/providers"
	"bsd/internal/services"
	"bsd/internal/snapshot"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger  providers.Logger
	service services.StatsServiceInterface
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
}

func NewApiController(logger providers.Logger, service services.StatsServiceInterface, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
		metrics: metrics,
	}
}

func identityParams(r *http.Request) (string, string) {
	return r.URL.Query().Get("bot"), r.URL.Query().Get("self")
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func writeJSON(w http.ResponseWriter, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// ReceiveEvent ingests one activity event and applies it to the live
// counter table.
func (ac *ApiController) ReceiveEvent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if event.BotID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err := ac.service.Track(&event); err != nil {
		ac.logger.Debugf(providers.TypePost, "Rejected event: %s", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.metrics.IncEventsTotal(event.Kind)
	w.WriteHeader(http.StatusCreated)
}

// GetLive returns today's record for one identity, straight from the
// live table. Never cached: it must reflect not-yet-saved activity.
func (ac *ApiController) GetLive(w http.ResponseWriter, r *http.Request) {
	bot, self := identityParams(r)
	if bot == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	writeJSON(w, ac.service.GetLiveRecord(bot, self).Clone())
}

// GetHistory returns the record from `days` days ago (0 = today, live).
func (ac *ApiController) GetHistory(w http.ResponseWriter, r *http.Request) {
	bot, self := identityParams(r)
	if bot == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	days := cast.ToInt(r.URL.Query().Get("days"))

	rec, err := ac.service.GetHistoricalRecord(bot, self, days)
	if err != nil {
		if errors.Is(err, snapshot.ErrDecode) {
			ac.metrics.IncSnapshotDecodeFailures()
		}
		ac.logger.Errorf(providers.TypeGet, "History load %s/%s: %s", bot, self, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if days <= 0 {
		rec = rec.Clone()
	}
	writeJSON(w, rec)
}

// GetWindow returns the trailing `days` daily records, most-recent
// first, defaulting to seven days.
func (ac *ApiController) GetWindow(w http.ResponseWriter, r *http.Request) {
	bot, self := identityParams(r)
	if bot == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	days := cast.ToInt(r.URL.Query().Get("days"))
	if days <= 0 {
		days = 7
	}

	window, err := ac.service.GetWindow(bot, self, days)
	if err != nil {
		// Unreadable snapshots degrade to zero days; still worth a trace.
		if errors.Is(err, snapshot.ErrDecode) {
			ac.metrics.IncSnapshotDecodeFailures()
		}
		ac.logger.Warnf(providers.TypeGet, "Window %s/%s: %s", bot, self, err)
	}
	writeJSON(w, window)
}

// GetAnalytics returns the rolling engagement report for one identity.
func (ac *ApiController) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	bot, self := identityParams(r)
	if bot == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.serveFromCacheOrCompute(w, "analytics:"+bot+":"+self, func() (any, error) {
		report, err := ac.service.GetAnalytics(bot, self)
		if err != nil {
			if errors.Is(err, snapshot.ErrDecode) {
				ac.metrics.IncSnapshotDecodeFailures()
			}
			ac.logger.Warnf(providers.TypeGet, "Analytics %s/%s: %s", bot, self, err)
		}
		return report, nil
	})
}

// GetIdentities lists every identity known to durable storage.
func (ac *ApiController) GetIdentities(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "identities", func() (any, error) {
		return ac.service.ListKnownIdentities()
	})
}
