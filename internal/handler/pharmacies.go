package handler

import (
	"context"

	"pharmacy-duty-api/internal/models"

	"github.com/gin-gonic/gin"
)

// PharmacyHandler handles on-duty roster listing requests.
type PharmacyHandler struct {
	service PharmacyLister
}

// PharmacyLister is the service interface for dependency injection.
type PharmacyLister interface {
	ListPharmacies(ctx context.Context, city, district string) ([]models.Pharmacy, error)
}

// NewPharmacyHandler creates a new pharmacy handler.
func NewPharmacyHandler(svc PharmacyLister) *PharmacyHandler {
	return &PharmacyHandler{service: svc}
}

// ListPharmacies godoc
// @Summary  List on-duty pharmacies for a city district
// @Tags     directory
// @Produce  json
// @Param    city      query  string  true  "City label"
// @Param    district  query  string  true  "District label"
// @Success  200  {object}  handler.Response
// @Failure  400  {object}  handler.Response
// @Failure  404  {object}  handler.Response
// @Router   /pharmacies [get]
func (h *PharmacyHandler) ListPharmacies(c *gin.Context) {
	pharmacies, err := h.service.ListPharmacies(c.Request.Context(), c.Query("city"), c.Query("district"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, pharmacies)
}
