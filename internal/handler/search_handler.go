package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/contrib-fyi/server/internal/github"
	"github.com/contrib-fyi/server/internal/models"
	"github.com/contrib-fyi/server/internal/service"
)

// searchResponse is the search payload plus the derived page count.
type searchResponse struct {
	models.SearchResult
	TotalPages int `json:"total_pages"`
}

// SearchHandler wires HTTP → the search strategy runner.
type SearchHandler struct {
	runner       service.StrategyRunner
	defaultToken string
}

// NewSearchHandler returns a handler instance. defaultToken is used when the
// request carries no Authorization header.
func NewSearchHandler(runner service.StrategyRunner, defaultToken string) *SearchHandler {
	return &SearchHandler{runner: runner, defaultToken: defaultToken}
}

// Register mounts GET /issues/search on the given router group.
func (h *SearchHandler) Register(r fiber.Router) {
	r.Get("/issues/search", h.search)
}

// search handles GET /issues/search?label=help+wanted&language=Go&page=1
func (h *SearchHandler) search(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "page must be a positive integer")
	}

	filters, err := parseFilters(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	token := bearerToken(c)
	if token == "" {
		token = h.defaultToken
	}

	result, err := h.runner.Run(c.UserContext(), filters, page, token)
	if err != nil {
		if errors.Is(err, github.ErrRateLimited) {
			return fiber.NewError(fiber.StatusTooManyRequests,
				"GitHub rate limit exceeded; supply a token for a higher quota")
		}
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}

	return c.JSON(searchResponse{
		SearchResult: result,
		TotalPages:   service.TotalPages(result.TotalCount),
	})
}

// parseFilters maps query parameters onto a filter set.
func parseFilters(c *fiber.Ctx) (models.SearchFilters, error) {
	filters := models.SearchFilters{
		Language:        splitCSV(c.Query("language")),
		Label:           splitCSV(c.Query("label")),
		Sort:            models.SortCreated,
		SearchQuery:     c.Query("q"),
		OnlyNoComments:  c.QueryBool("no_comments"),
		OnlyNoLinkedPRs: c.QueryBool("no_linked_prs"),
	}

	switch sort := c.Query("sort", string(models.SortCreated)); models.Sort(sort) {
	case models.SortCreated, models.SortUpdated, models.SortComments:
		filters.Sort = models.Sort(sort)
	default:
		return models.SearchFilters{}, errors.New("sort must be one of created, updated, comments")
	}

	if raw := c.Query("min_stars"); raw != "" {
		minStars, err := strconv.Atoi(raw)
		if err != nil || minStars < 0 {
			return models.SearchFilters{}, errors.New("min_stars must be a non-negative integer")
		}
		filters.MinStars = &minStars
	}

	return filters, nil
}

// bearerToken extracts the credential from an Authorization: Bearer header.
func bearerToken(c *fiber.Ctx) string {
	auth := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// splitCSV turns "Go,Rust" into its non-empty trimmed parts.
func splitCSV(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
