package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/contrib-fyi/server/internal/github"
	"github.com/contrib-fyi/server/internal/service"
)

// RepoHandler wires HTTP → the repository cache, serving the metadata the UI
// shows alongside an issue (stars, language).
type RepoHandler struct {
	repos        service.RepositoryProvider
	defaultToken string
}

// NewRepoHandler returns a handler instance.
func NewRepoHandler(repos service.RepositoryProvider, defaultToken string) *RepoHandler {
	return &RepoHandler{repos: repos, defaultToken: defaultToken}
}

// Register mounts GET /repos/:owner/:name on the given router group.
func (h *RepoHandler) Register(r fiber.Router) {
	r.Get("/repos/:owner/:name", h.getRepo)
}

// getRepo handles GET /repos/:owner/:name
func (h *RepoHandler) getRepo(c *fiber.Ctx) error {
	owner := c.Params("owner")
	name := c.Params("name")
	if owner == "" || name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "owner and name are required")
	}

	token := bearerToken(c)
	if token == "" {
		token = h.defaultToken
	}

	repo, err := h.repos.GetRepository(c.UserContext(), owner, name, token)
	if err != nil {
		if errors.Is(err, github.ErrRateLimited) {
			return fiber.NewError(fiber.StatusTooManyRequests,
				"GitHub rate limit exceeded; supply a token for a higher quota")
		}
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}

	return c.JSON(repo)
}
