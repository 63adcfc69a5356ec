package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contrib-fyi/server/internal/service"
)

// RegisterRoutes mounts every API route under /api/v1.
func RegisterRoutes(app *fiber.App,
	runner service.StrategyRunner,
	repos service.RepositoryProvider,
	defaultToken string,
	pickSvc service.PickService,
	historySvc service.HistoryService,
	filterSvc service.FilterService,
) {
	v1 := app.Group("/api/v1")
	NewSearchHandler(runner, defaultToken).Register(v1)
	NewRepoHandler(repos, defaultToken).Register(v1)
	NewPickHandler(pickSvc).Register(v1)
	NewHistoryHandler(historySvc).Register(v1)
	NewFilterHandler(filterSvc).Register(v1)
}
