package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel-availability/internal/availability"
)

// GetSearch handles GET /api/hotels/{hotel_id}/search, listing the free date ranges of a
// room type from today over the next 'days' days.
func (h *Handler) GetSearch(c *gin.Context) {
	roomType := c.Query("room_type")
	if roomType == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Missing 'room_type'"})
		return
	}

	days, err := strconv.Atoi(c.Query("days"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid number of days"})
		return
	}

	results, err := h.engine.Search(c.Request.Context(), availability.SearchRequest{
		HotelID:   c.Param("hotel_id"),
		RoomType:  roomType,
		DaysAhead: days,
		Today:     availability.Day(h.now()),
	})
	if err != nil {
		h.logger.Error("search failed", "error", err, "request_id", c.GetString("request_id"))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to search availability"})
		return
	}
	c.JSON(http.StatusOK, toResponse(results))
}
