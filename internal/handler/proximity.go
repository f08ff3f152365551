package handler

import (
	"context"
	"strconv"
	"strings"

	"pharmacy-duty-api/internal/apperr"
	"pharmacy-duty-api/internal/geo"
	"pharmacy-duty-api/internal/models"
	"pharmacy-duty-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ProximityHandler handles closest/nearby pharmacy requests.
type ProximityHandler struct {
	service ProximityFinder
}

// ProximityFinder is the service interface for dependency injection.
type ProximityFinder interface {
	Closest(ctx context.Context, lat, lng float64) (models.RankedPharmacy, error)
	Nearby(ctx context.Context, lat, lng float64, limit int) ([]models.RankedPharmacy, error)
}

// NewProximityHandler creates a new proximity handler.
func NewProximityHandler(svc ProximityFinder) *ProximityHandler {
	return &ProximityHandler{service: svc}
}

// Closest godoc
// @Summary  Find the single on-duty pharmacy closest to a location
// @Tags     proximity
// @Produce  json
// @Param    lat  query  number  true  "Origin latitude"
// @Param    lng  query  number  true  "Origin longitude"
// @Success  200  {object}  handler.Response
// @Failure  400  {object}  handler.Response
// @Failure  404  {object}  handler.Response
// @Router   /pharmacies/closest [get]
func (h *ProximityHandler) Closest(c *gin.Context) {
	lat, lng, ok := parseCoordinates(c)
	if !ok {
		return
	}

	pharmacy, err := h.service.Closest(c.Request.Context(), lat, lng)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, pharmacy)
}

// Nearby godoc
// @Summary  List on-duty pharmacies near a location, closest first
// @Tags     proximity
// @Produce  json
// @Param    lat    query  number   true   "Origin latitude"
// @Param    lng    query  number   true   "Origin longitude"
// @Param    limit  query  integer  false  "Result count, 1-20 (default 5)"
// @Success  200  {object}  handler.Response
// @Failure  400  {object}  handler.Response
// @Failure  404  {object}  handler.Response
// @Router   /pharmacies/nearby [get]
func (h *ProximityHandler) Nearby(c *gin.Context) {
	lat, lng, ok := parseCoordinates(c)
	if !ok {
		return
	}

	limit := service.DefaultNearbyLimit
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, apperr.InvalidInput("Limit must be an integer between 1 and 20"))
			return
		}
		limit = v
	}

	pharmacies, err := h.service.Nearby(c.Request.Context(), lat, lng, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, pharmacies)
}

// parseCoordinates reads lat/lng query parameters. Missing and unparsable
// values get the same contract message; textual "NaN" parses fine here and is
// rejected by the coordinate validator downstream with its own message.
func parseCoordinates(c *gin.Context) (float64, float64, bool) {
	latStr := strings.TrimSpace(c.Query("lat"))
	lngStr := strings.TrimSpace(c.Query("lng"))
	if latStr == "" || lngStr == "" {
		respondError(c, apperr.InvalidInput(geo.ErrNotANumber.Error()))
		return 0, 0, false
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		respondError(c, apperr.InvalidInput(geo.ErrNotANumber.Error()))
		return 0, 0, false
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		respondError(c, apperr.InvalidInput(geo.ErrNotANumber.Error()))
		return 0, 0, false
	}
	return lat, lng, true
}
