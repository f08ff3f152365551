package handler

import (
	"context"

	"github.com/gin-gonic/gin"
)

// CityHandler handles city listing requests.
type CityHandler struct {
	service CityLister
}

// CityLister is the service interface for dependency injection.
type CityLister interface {
	ListCities(ctx context.Context, country string) ([]string, error)
}

// NewCityHandler creates a new city handler.
func NewCityHandler(svc CityLister) *CityHandler {
	return &CityHandler{service: svc}
}

// ListCities godoc
// @Summary  List cities with on-duty pharmacies
// @Tags     directory
// @Produce  json
// @Param    country  query  string  false  "Partition filter: turkey or cyprus"
// @Success  200  {object}  handler.Response
// @Failure  400  {object}  handler.Response
// @Failure  404  {object}  handler.Response
// @Router   /cities [get]
func (h *CityHandler) ListCities(c *gin.Context) {
	cities, err := h.service.ListCities(c.Request.Context(), c.Query("country"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, cities)
}
