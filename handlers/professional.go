package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barberly/middleware"
	"barberly/models"
	"barberly/services/professional"
	"barberly/utils"
)

// ProfessionalHandler exposes professional and schedule management.
type ProfessionalHandler struct {
	Svc professional.ProfessionalService
}

func NewProfessionalHandler(svc professional.ProfessionalService) *ProfessionalHandler {
	return &ProfessionalHandler{Svc: svc}
}

func (h *ProfessionalHandler) CreateProfessional(c *gin.Context) {
	var input struct {
		Name      string `json:"name" binding:"required"`
		Email     string `json:"email" binding:"required"`
		Specialty string `json:"specialty,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), input.Name, input.Email, input.Specialty)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProfessionalHandler) GetProfessional(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfessionalHandler) ListProfessionals(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"professionals": list})
}

func (h *ProfessionalHandler) DeactivateProfessional(c *gin.Context) {
	if err := h.Svc.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

// SetBusinessHours upserts the caller's hours for one weekday. Times are
// minutes from midnight.
func (h *ProfessionalHandler) SetBusinessHours(c *gin.Context) {
	var bh models.BusinessHours
	if err := c.ShouldBindJSON(&bh); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	bh.ProfessionalID = c.Param("id")

	saved, err := h.Svc.SetBusinessHours(c.Request.Context(), middleware.CallerID(c), bh)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *ProfessionalHandler) ListBusinessHours(c *gin.Context) {
	hours, err := h.Svc.ListBusinessHours(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"business_hours": hours})
}

func (h *ProfessionalHandler) AddHoliday(c *gin.Context) {
	var input struct {
		Date   string `json:"date" binding:"required"` // YYYY-MM-DD
		Reason string `json:"reason,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	holiday, err := h.Svc.AddHoliday(c.Request.Context(), middleware.CallerID(c), c.Param("id"), input.Date, input.Reason)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, holiday)
}

func (h *ProfessionalHandler) RemoveHoliday(c *gin.Context) {
	err := h.Svc.RemoveHoliday(c.Request.Context(), middleware.CallerID(c), c.Param("id"), c.Param("holidayID"))
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

func (h *ProfessionalHandler) ListHolidays(c *gin.Context) {
	holidays, err := h.Svc.ListHolidays(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"holidays": holidays})
}

func (h *ProfessionalHandler) CreateService(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Category string `json:"category,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	svc, err := h.Svc.CreateService(c.Request.Context(), input.Name, input.Category)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (h *ProfessionalHandler) ListServices(c *gin.Context) {
	services, err := h.Svc.ListServices(c.Request.Context())
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// SetOffering creates or updates the caller's price and duration for a
// catalog service.
func (h *ProfessionalHandler) SetOffering(c *gin.Context) {
	var offering models.ServiceOffering
	if err := c.ShouldBindJSON(&offering); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	offering.ProfessionalID = c.Param("id")

	saved, err := h.Svc.SetOffering(c.Request.Context(), middleware.CallerID(c), offering)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *ProfessionalHandler) ListOfferings(c *gin.Context) {
	offerings, err := h.Svc.ListOfferings(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offerings": offerings})
}
