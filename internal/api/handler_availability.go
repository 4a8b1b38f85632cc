package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel-availability/internal/availability"
	"hotel-availability/internal/parse"
)

const maxBatchCommands = 100

// GetAvailability handles GET /api/hotels/{hotel_id}/availability.
func (h *Handler) GetAvailability(c *gin.Context) {
	roomType := c.Query("room_type")
	if roomType == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Missing 'room_type'"})
		return
	}

	dates, err := parseRange(c.Query("from"), c.DefaultQuery("to", c.Query("from")))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ovb := false
	if v := c.Query("ovb"); v != "" {
		if ovb, err = strconv.ParseBool(v); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid 'ovb', expected a boolean"})
			return
		}
	}

	h.respondAvailability(c, []availability.Command{{
		HotelID:          c.Param("hotel_id"),
		RoomType:         roomType,
		Range:            dates,
		AllowOverbooking: ovb,
	}})
}

type availabilityCommandRequest struct {
	HotelID     string `json:"hotel_id" binding:"required"`
	RoomType    string `json:"room_type" binding:"required"`
	From        string `json:"from" binding:"required"`
	To          string `json:"to"`
	Overbooking bool   `json:"overbooking"`
}

type batchAvailabilityRequest struct {
	Commands []availabilityCommandRequest `json:"commands" binding:"required,min=1,dive"`
}

// PostAvailability handles POST /api/availability with a batch of commands. Results keep
// the order of the commands that produced them.
func (h *Handler) PostAvailability(c *gin.Context) {
	var req batchAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Commands) > maxBatchCommands {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("At most %d commands per request", maxBatchCommands)})
		return
	}

	commands := make([]availability.Command, len(req.Commands))
	for i, cmd := range req.Commands {
		to := cmd.To
		if to == "" {
			to = cmd.From
		}
		dates, err := parseRange(cmd.From, to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("commands[%d]: %v", i, err)})
			return
		}
		commands[i] = availability.Command{
			HotelID:          cmd.HotelID,
			RoomType:         cmd.RoomType,
			Range:            dates,
			AllowOverbooking: cmd.Overbooking,
		}
	}

	h.respondAvailability(c, commands)
}

func (h *Handler) respondAvailability(c *gin.Context, commands []availability.Command) {
	results, err := h.engine.Availability(c.Request.Context(), commands)
	if err != nil {
		h.logger.Error("availability lookup failed", "error", err, "request_id", c.GetString("request_id"))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve availability"})
		return
	}
	c.JSON(http.StatusOK, toResponse(results))
}

func parseRange(from, to string) (availability.DateRange, error) {
	if from == "" {
		return availability.DateRange{}, fmt.Errorf("missing 'from'")
	}
	start, err := parse.Date(from)
	if err != nil {
		return availability.DateRange{}, fmt.Errorf("invalid 'from' %q, expected yyyyMMdd", from)
	}
	end, err := parse.Date(to)
	if err != nil {
		return availability.DateRange{}, fmt.Errorf("invalid 'to' %q, expected yyyyMMdd", to)
	}
	if end.Before(start) {
		return availability.DateRange{}, fmt.Errorf("'to' must not be before 'from'")
	}
	return availability.DateRange{Start: start, End: end}, nil
}
