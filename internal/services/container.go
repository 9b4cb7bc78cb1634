package services

import (
	"tztracker/internal/config"
	"tztracker/internal/repository/sqlite"
	"tztracker/internal/validation"
)

// NewServiceContainer wires all services over one repository. A nil cfg
// uses defaults; a nil now uses time.Now.
func NewServiceContainer(repo sqlite.Repository, cfg *config.Config, now Clock) *ServiceContainer {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &ServiceContainer{
		TimerService: NewTimerService(repo, now,
			validation.NewTimeEntryValidatorWithConfig(cfg), cfg.Stats.RecentLimit),
		StatsService: NewStatsService(repo, now,
			cfg.Stats.ReportWindow, cfg.Stats.RecentLimit),
		TimezoneService: NewTimezoneService(repo, now),
		CatalogService:  NewCatalogService(repo, validation.NewCatalogValidatorWithConfig(cfg)),
	}
}
