package controllers

import (
	"goalboard/internal/providers"
	"goalboard/internal/services"
	"goalboard/internal/structures"
	"goalboard/internal/views"
	"net/http"
)

type PageController struct {
	logger   providers.Logger
	service  services.GoalServiceInterface
	renderer *views.Renderer
	title    string
}

func NewPageController(conf *structures.Config, logger providers.Logger, service services.GoalServiceInterface, renderer *views.Renderer) *PageController {
	return &PageController{
		logger:   logger,
		service:  service,
		renderer: renderer,
		title:    conf.AppName,
	}
}

func (pc *PageController) Index(w http.ResponseWriter, r *http.Request) {
	snapshot := pc.service.GetSnapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := pc.renderer.RenderPage(w, views.PageData{Title: pc.title, Snapshot: snapshot})
	if err != nil {
		pc.logger.Errorf(providers.TypeGet, "Unable to render page: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	pc.logger.Debugf(providers.TypeGet, "Page rendered at v%d", snapshot.Version)
}
