package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bowlapp/storefront/internal/core/ports"
)

// CatalogHandler serves the bowl catalog and the favorite set.
type CatalogHandler struct {
	store   ports.SessionStore
	catalog ports.CatalogGateway
}

func NewCatalogHandler(store ports.SessionStore, catalog ports.CatalogGateway) *CatalogHandler {
	return &CatalogHandler{store: store, catalog: catalog}
}

// ListBowls refetches the catalog, runs it through the store's dedup intake,
// and returns the result. The gateway never fails; a broken upstream serves
// the bundled catalog.
//
// @Summary      List bowls
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Bowl
// @Router       /v1/bowls [get]
func (h *CatalogHandler) ListBowls(c echo.Context) error {
	bowls := h.catalog.GetBowls(c.Request().Context())
	h.store.SetBowls(bowls)
	return c.JSON(http.StatusOK, h.store.Bowls())
}

// ListFavorites returns the favorite set.
//
// @Summary      List favorites
// @Tags         favorites
// @Produce      json
// @Success      200  {array}  domain.Bowl
// @Router       /v1/favorites [get]
func (h *CatalogHandler) ListFavorites(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Favorites())
}

// AddFavorite bookmarks a bowl. Adding an already-favorited id is a no-op.
//
// @Summary      Add a favorite
// @Tags         favorites
// @Accept       json
// @Param        body  body  bowlRequest  true  "Bowl to favorite"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Router       /v1/favorites [post]
func (h *CatalogHandler) AddFavorite(c echo.Context) error {
	var req bowlRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.store.AddFavorite(c.Request().Context(), req.toDomain())
	return c.NoContent(http.StatusNoContent)
}

// RemoveFavorite unbookmarks a bowl by id. Removing an absent id succeeds.
//
// @Summary      Remove a favorite
// @Tags         favorites
// @Param        id  path  int  true  "Bowl id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Router       /v1/favorites/{id} [delete]
func (h *CatalogHandler) RemoveFavorite(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid bowl id")
	}

	h.store.RemoveFavorite(c.Request().Context(), id)
	return c.NoContent(http.StatusNoContent)
}

// ClearFavorites empties the favorite set.
//
// @Summary      Clear all favorites
// @Tags         favorites
// @Success      204
// @Router       /v1/favorites [delete]
func (h *CatalogHandler) ClearFavorites(c echo.Context) error {
	h.store.ClearAllFavorites(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}
