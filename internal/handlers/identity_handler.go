package handlers

import (
	"net/http"

	"github.com/anonto42/fairnet/backend/internal/feed"
	"github.com/anonto42/fairnet/backend/internal/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
)

// IdentityHandler handles display identity HTTP requests
type IdentityHandler struct {
	feedService *feed.Service
}

// NewIdentityHandler creates a new IdentityHandler
func NewIdentityHandler(feedService *feed.Service) *IdentityHandler {
	return &IdentityHandler{feedService: feedService}
}

// RegisterIdentityRoutes registers identity-related routes
func (h *IdentityHandler) RegisterIdentityRoutes(g *echo.Group) {
	g.POST("/identities", h.ResolveIdentities)
}

// ResolveIdentities resolves a batch of addresses to display identities,
// used standalone for the followee list and self-avatar display.
func (h *IdentityHandler) ResolveIdentities(c echo.Context) error {
	var req models.ResolveIdentitiesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	addrs := make([]common.Address, len(req.Addresses))
	for i, raw := range req.Addresses {
		addrs[i] = common.HexToAddress(raw)
	}

	identities := h.feedService.ResolveIdentities(c.Request().Context(), addrs)

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"identities": identities,
		},
	})
}
