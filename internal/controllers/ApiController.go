package controllers

import (
	"goalboard/internal/models"
	"goalboard/internal/providers"
	"goalboard/internal/services"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"
)

type ApiController struct {
	logger  providers.Logger
	service services.GoalServiceInterface
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
}

func NewApiController(logger providers.Logger, service services.GoalServiceInterface, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
		metrics: metrics,
	}
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// stateCacheKey changes with every ledger mutation, so cached entries never go stale.
func stateCacheKey(version uint64) string {
	return "state:" + strconv.FormatUint(version, 10)
}

func (ac *ApiController) GetState(w http.ResponseWriter, r *http.Request) {
	key := stateCacheKey(ac.service.GetVersion())
	if data, ok := ac.cache.Get(key); ok {
		writeJSON(w, http.StatusOK, data)
		return
	}

	snapshot := ac.service.GetSnapshot()
	gson, err := json.Marshal(snapshot)
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "Unable to encode state: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(stateCacheKey(snapshot.Version), gson)
	ac.logger.Debugf(providers.TypeGet, "State v%d served from ledger", snapshot.Version)
	writeJSON(w, http.StatusOK, gson)
}

func (ac *ApiController) AddRandomContribution(w http.ResponseWriter, r *http.Request) {
	c := ac.service.AddRandomContribution()
	view := models.NewContributionView(c)
	ac.metrics.ObserveContribution(c.Type, view.Points)

	gson, err := json.Marshal(view)
	if err != nil {
		ac.logger.Errorf(providers.TypePost, "Unable to encode contribution %s: %s", c.ID, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, gson)
}
