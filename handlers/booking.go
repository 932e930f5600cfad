package handlers

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"barberly/middleware"
	"barberly/models"
	"barberly/services/booking"
	"barberly/utils"
)

// BookingHandler exposes the booking engine over HTTP.
type BookingHandler struct {
	Svc          booking.BookingService
	PreviewCache *redis.Client
	Logger       *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, previewCache *redis.Client, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, PreviewCache: previewCache, Logger: logger}
}

type bookingInput struct {
	ProfessionalID string   `json:"professional_id" binding:"required"`
	ServiceIDs     []string `json:"service_ids" binding:"required"`
	Start          string   `json:"start" binding:"required"` // RFC 3339
	CouponCode     string   `json:"coupon_code,omitempty"`
	UseBonusPoints bool     `json:"use_bonus_points,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

func (in bookingInput) toRequest(clientID string) (booking.CreateBookingRequest, error) {
	start, err := time.Parse(time.RFC3339, in.Start)
	if err != nil {
		return booking.CreateBookingRequest{}, fmt.Errorf("start must be RFC 3339: %w", err)
	}
	return booking.CreateBookingRequest{
		ClientID:       clientID,
		ProfessionalID: in.ProfessionalID,
		ServiceIDs:     in.ServiceIDs,
		Start:          start,
		Discount: models.DiscountRequest{
			CouponCode:     in.CouponCode,
			UseBonusPoints: in.UseBonusPoints,
		},
		Notes: in.Notes,
	}, nil
}

// PreviewBooking prices a prospective booking without reserving anything.
// Previews are cached briefly since clients tend to re-quote while choosing.
func (h *BookingHandler) PreviewBooking(c *gin.Context) {
	var input bookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	req, err := input.toRequest(middleware.CallerID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cacheKey := h.previewKey(req)
	if h.PreviewCache != nil {
		if cached, err := h.PreviewCache.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			var breakdown models.PriceBreakdown
			if json.Unmarshal([]byte(cached), &breakdown) == nil {
				c.JSON(http.StatusOK, breakdown)
				return
			}
		}
	}

	breakdown, err := h.Svc.PreviewBooking(c.Request.Context(), req)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	if h.PreviewCache != nil {
		if data, err := json.Marshal(breakdown); err == nil {
			h.PreviewCache.Set(context.Background(), cacheKey, data, utils.PreviewCacheTTL)
		}
	}
	c.JSON(http.StatusOK, breakdown)
}

func (h *BookingHandler) previewKey(req booking.CreateBookingRequest) string {
	raw, _ := json.Marshal(req)
	sum := sha1.Sum(raw)
	return utils.PreviewCachePrefix + hex.EncodeToString(sum[:])
}

// CreateBooking reserves the slot, prices it and persists the booking.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input bookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	req, err := input.toRequest(middleware.CallerID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.Svc.CreateBooking(c.Request.Context(), req)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// UpdateBookingStatus applies a lifecycle transition.
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	bookingID := c.Param("id")
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	actor := booking.Actor{UserID: middleware.CallerID(c), Role: middleware.CallerRole(c)}
	b, err := h.Svc.UpdateBookingStatus(c.Request.Context(), bookingID, models.BookingStatus(input.Status), actor)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetBooking returns one booking, visible to its client, its professional
// or an admin.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	actor := booking.Actor{UserID: middleware.CallerID(c), Role: middleware.CallerRole(c)}
	b, err := h.Svc.GetBooking(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListMyBookings returns the caller's booking history, newest first.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	bookings, total, err := h.Svc.ListClientBookings(c.Request.Context(), middleware.CallerID(c), page, pageSize)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookings":  bookings,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetAvailability lists the free slots of a professional for a date and
// service selection.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	professionalID := c.Param("id")
	date := c.Query("date")
	serviceIDs := c.QueryArray("service_id")
	if date == "" || len(serviceIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date and at least one service_id are required"})
		return
	}

	availability, err := h.Svc.GetAvailability(c.Request.Context(), professionalID, date, serviceIDs)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, availability)
}

// ProfessionalAgenda returns a professional's bookings within a window.
func (h *BookingHandler) ProfessionalAgenda(c *gin.Context) {
	professionalID := c.Param("id")
	if middleware.CallerRole(c) != "admin" && middleware.CallerID(c) != professionalID {
		c.JSON(http.StatusForbidden, gin.H{"error": "agenda belongs to another professional"})
		return
	}
	from, to, err := parseRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bookings, err := h.Svc.ProfessionalAgenda(c.Request.Context(), professionalID, from, to)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ProfessionalEarnings sums totals of non-canceled bookings within a window.
func (h *BookingHandler) ProfessionalEarnings(c *gin.Context) {
	professionalID := c.Param("id")
	if middleware.CallerRole(c) != "admin" && middleware.CallerID(c) != professionalID {
		c.JSON(http.StatusForbidden, gin.H{"error": "earnings belong to another professional"})
		return
	}
	from, to, err := parseRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	total, err := h.Svc.ProfessionalEarnings(c.Request.Context(), professionalID, from, to)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"professional_id": professionalID,
		"from":            from,
		"to":              to,
		"total":           total,
	})
}

func parseRange(c *gin.Context) (time.Time, time.Time, error) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("from must be RFC 3339")
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("to must be RFC 3339")
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("to must be after from")
	}
	return from, to, nil
}
