package handlers

import (
	"net/http"
	"sort"

	"github.com/anonto42/fairnet/backend/internal/feed"
	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow-graph HTTP requests
type FollowHandler struct {
	feedService *feed.Service
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(feedService *feed.Service) *FollowHandler {
	return &FollowHandler{feedService: feedService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.GET("/following/:viewer", h.GetFollowing)
}

// GetFollowing returns the viewer's normalized following set: de-duplicated,
// lower-cased addresses, sorted for stable output.
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	raw := c.Param("viewer")
	if !common.IsHexAddress(raw) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid viewer address")
	}
	viewer := common.HexToAddress(raw)

	set, err := h.feedService.NormalizedFollowing(c.Request().Context(), viewer)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	following := make([]string, 0, len(set))
	for addr := range set {
		following = append(following, addr)
	}
	sort.Strings(following)

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"following": following,
		},
	})
}
