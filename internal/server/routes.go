package server

import (
	"tuberank/internal/db"
	"tuberank/internal/handlers/api"
	"tuberank/internal/middleware"
)

// Dependencies holds the services the route handlers are built on.
type Dependencies struct {
	DB        *db.DB
	Research  api.Researcher
	Cache     api.Cache
	Tags      api.TagSource
	Metadata  api.MetadataGenerator
	AuditJobs *api.AuditHandler
	Stats     api.StatsProvider
	Trigger   api.RunTrigger
	Details   api.VideoDetailSource
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(deps Dependencies) {
	healthHandler := api.NewHealthHandler(deps.DB)
	keywordHandler := api.NewKeywordHandler(deps.Research, deps.Cache, s.Cfg.ResearchCacheTTL)
	competitorHandler := api.NewCompetitorHandler(deps.Tags)
	metadataHandler := api.NewMetadataHandler(deps.Metadata)
	trackerHandler := api.NewTrackerHandler(deps.DB, deps.Stats, deps.Trigger, deps.Details)
	projectHandler := api.NewProjectHandler(deps.DB)

	s.App.Get("/health", healthHandler.Check)

	apiGroup := s.App.Group("/api")

	apiGroup.Get("/keywords/research", keywordHandler.Research)

	apiGroup.Get("/competitor/tags", competitorHandler.Tags)
	apiGroup.Get("/competitor/keywords", competitorHandler.Keywords)

	apiGroup.Post("/metadata/generate", metadataHandler.Generate)

	apiGroup.Post("/audit", deps.AuditJobs.Enqueue)
	apiGroup.Get("/audit/:jobID", deps.AuditJobs.Get)

	tracker := apiGroup.Group("/tracker")
	tracker.Post("/videos", trackerHandler.AddVideo)
	tracker.Get("/videos/:videoID/history", trackerHandler.History)
	tracker.Get("/stats", trackerHandler.Stats)
	tracker.Post("/run", trackerHandler.Run)

	projects := apiGroup.Group("/projects", middleware.RequireUser)
	projects.Post("/", projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.Get)
	projects.Post("/:id/keywords", projectHandler.AddKeyword)
}
