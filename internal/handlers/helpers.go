package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/infopontes/leishai-backend/internal/httperr"
)

const defaultListLimit = 100

// pagination lê skip/limit da query string com os defaults da API.
func pagination(c *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultListLimit)))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 1000 {
		limit = defaultListLimit
	}
	return skip, limit
}

// idParam valida o path param como uuid; formato inválido é erro de
// validação (422), não 404.
func idParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Unprocessable(c, "invalid_id", "Invalid UUID in path")
		return uuid.Nil, false
	}
	return id, true
}
