package handler

import (
	"errors"
	"net/http"

	"pharmacy-duty-api/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Response is the uniform envelope returned by every endpoint.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// respondError maps the closed apperr kind set onto HTTP statuses. Repository
// and internal failures are logged with their cause but only ever surface a
// generic message to the client.
func respondError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal(err)
	}

	status := http.StatusInternalServerError
	switch appErr.Kind {
	case apperr.KindInvalidInput:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindRepository, apperr.KindInternal:
		log.Error().Err(appErr).Str("path", c.FullPath()).Msg("request failed")
	}

	c.JSON(status, Response{Success: false, Error: appErr.Message})
}
