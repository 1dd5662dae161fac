package handlers

import (
	"net/http"
	"strings"

	"github.com/anonto42/fairnet/backend/internal/feed"
	"github.com/anonto42/fairnet/backend/internal/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed materialization HTTP requests
type FeedHandler struct {
	feedService *feed.Service
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService *feed.Service) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed materializes the feed for an optional viewer address. When a
// refresh fails but an older snapshot exists for this same viewer, the stale
// snapshot is served with a stale marker instead of an empty feed. A snapshot
// built for a different viewer is never served: it may carry premium content
// that viewer's entitlements unlocked.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	viewer, err := optionalAddress(c.QueryParam("viewer"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid viewer address")
	}

	snap, err := h.feedService.Materialize(c.Request().Context(), viewer)
	if err != nil {
		stale := h.feedService.SnapshotFor(viewer)
		if stale == nil {
			return echo.NewHTTPError(http.StatusBadGateway, "Feed refresh failed: "+err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"stale":   true,
			"error":   err.Error(),
			"data": echo.Map{
				"items":        filterItems(stale.Items, c),
				"following":    stale.Following,
				"refreshed_at": stale.RefreshedAt,
			},
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"stale":   false,
		"data": echo.Map{
			"items":        filterItems(snap.Items, c),
			"following":    snap.Following,
			"refreshed_at": snap.RefreshedAt,
		},
	})
}

// filterItems applies the optional author/owner query filters, used by the
// profile view to split created and collected posts.
func filterItems(items []models.FeedItem, c echo.Context) []models.FeedItem {
	author := normalizeHexParam(c.QueryParam("author"))
	owner := normalizeHexParam(c.QueryParam("owner"))
	if author == "" && owner == "" {
		return items
	}
	filtered := make([]models.FeedItem, 0, len(items))
	for _, it := range items {
		if author != "" && it.Author != author {
			continue
		}
		if owner != "" && it.Owner != owner {
			continue
		}
		filtered = append(filtered, it)
	}
	return filtered
}

// normalizeHexParam canonicalizes an address query parameter to the
// lower-cased form feed items carry; invalid input filters nothing.
func normalizeHexParam(raw string) string {
	if raw == "" || !common.IsHexAddress(raw) {
		return ""
	}
	return strings.ToLower(common.HexToAddress(raw).Hex())
}

// optionalAddress parses an address query parameter; empty means anonymous.
func optionalAddress(raw string) (*common.Address, error) {
	if raw == "" {
		return nil, nil
	}
	if !common.IsHexAddress(raw) {
		return nil, echo.ErrBadRequest
	}
	addr := common.HexToAddress(raw)
	return &addr, nil
}
