package controllers

import (
	"fmt"
	"goalboard/internal/services"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

// ClientCounter reports connected live update clients.
type ClientCounter interface {
	Count() int
}

type HealthController struct {
	service   services.GoalServiceInterface
	clients   ClientCounter
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Contributions int     `json:"contributions"`
	Current       int     `json:"current"`
	Goal          int     `json:"goal"`
	Clients       int     `json:"clients"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Contributions: hc.service.GetContributionCount(),
		Current:       hc.service.GetCurrent(),
		Goal:          hc.service.GetGoal(),
		Clients:       hc.clients.Count(),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(service services.GoalServiceInterface, clients ClientCounter) *HealthController {
	return &HealthController{
		service:   service,
		clients:   clients,
		startTime: time.Now(),
	}
}
