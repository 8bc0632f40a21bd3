package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baysideshrimping/ncird-operations-center/internal/config"
	"github.com/baysideshrimping/ncird-operations-center/internal/models"
)

// ListStreams godoc
// @Summary List data streams
// @Description Get the catalog of data streams, enabled and disabled.
// @Tags streams
// @Produce  json
// @Success 200 {array} config.DataStream "Stream catalog"
// @Router /streams [get]
func ListStreams(c *gin.Context) {
	RespondWithSuccess(c, http.StatusOK, config.Streams())
}

// GetStream godoc
// @Summary Get one data stream
// @Description Get the catalog entry for a single data stream by id.
// @Tags streams
// @Produce  json
// @Param   system_id  path  string  true  "Data stream ID"
// @Success 200 {object} config.DataStream "Stream catalog entry"
// @Failure 404 {object} models.APIError "Stream not found (STREAM_NOT_FOUND)"
// @Router /streams/{system_id} [get]
func GetStream(c *gin.Context) {
	systemID := c.Param("system_id")
	stream, ok := config.GetStream(systemID)
	if !ok {
		RespondWithError(c, http.StatusNotFound, models.ErrorCodeStreamNotFound, "Unknown data stream.", gin.H{"system_id": systemID})
		return
	}
	RespondWithSuccess(c, http.StatusOK, stream)
}
