package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barberly/services/coupon"
	"barberly/utils"
)

// CouponHandler exposes admin coupon management.
type CouponHandler struct {
	Svc coupon.CouponService
}

func NewCouponHandler(svc coupon.CouponService) *CouponHandler {
	return &CouponHandler{Svc: svc}
}

func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var input coupon.CreateCouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	created, err := h.Svc.Create(c.Request.Context(), input)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	var input coupon.CreateCouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	updated, err := h.Svc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CouponHandler) DeactivateCoupon(c *gin.Context) {
	if err := h.Svc.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

func (h *CouponHandler) ListCoupons(c *gin.Context) {
	coupons, err := h.Svc.List(c.Request.Context())
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coupons": coupons})
}
