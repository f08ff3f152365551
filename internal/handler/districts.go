package handler

import (
	"context"

	"github.com/gin-gonic/gin"
)

// DistrictHandler handles district listing requests.
type DistrictHandler struct {
	service DistrictLister
}

// DistrictLister is the service interface for dependency injection.
type DistrictLister interface {
	ListDistricts(ctx context.Context, city string) ([]string, error)
}

// NewDistrictHandler creates a new district handler.
func NewDistrictHandler(svc DistrictLister) *DistrictHandler {
	return &DistrictHandler{service: svc}
}

// ListDistricts godoc
// @Summary  List districts of a city with on-duty pharmacies
// @Tags     directory
// @Produce  json
// @Param    city  query  string  true  "City label; composite regions expand across spelling variants"
// @Success  200  {object}  handler.Response
// @Failure  400  {object}  handler.Response
// @Failure  404  {object}  handler.Response
// @Router   /districts [get]
func (h *DistrictHandler) ListDistricts(c *gin.Context) {
	districts, err := h.service.ListDistricts(c.Request.Context(), c.Query("city"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, districts)
}
