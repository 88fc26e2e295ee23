package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tusharj/bizbill-api/internal/license"
	"github.com/tusharj/bizbill-api/internal/presentation/http/dto/response"
	"github.com/tusharj/bizbill-api/pkg/utils"
)

// LicenseHandler handles license activation and status HTTP requests
type LicenseHandler struct {
	licenseService *license.Service
	jwtManager     *utils.JWTManager
}

// NewLicenseHandler creates a new license handler
func NewLicenseHandler(licenseService *license.Service, jwtManager *utils.JWTManager) *LicenseHandler {
	return &LicenseHandler{licenseService: licenseService, jwtManager: jwtManager}
}

type activationResult struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
	Token  string `json:"token,omitempty"`
}

// Activate validates the license key against the remote record, binds this
// device on first use and issues a session token. Rejections come back as
// ok=false with a reason, not as an HTTP error.
func (h *LicenseHandler) Activate(c *gin.Context) {
	var req struct {
		VendorPhone string `json:"vendor_phone" binding:"required"`
		LicenseKey  string `json:"license_key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	status := h.licenseService.ValidateAndBind(c.Request.Context(), req.VendorPhone, req.LicenseKey)
	if !status.OK {
		response.OK(c, "License activation rejected", activationResult{OK: false, Reason: status.Reason})
		return
	}

	deviceID, err := h.licenseService.DeviceID(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.jwtManager.GenerateSessionToken(req.VendorPhone, deviceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "License activated successfully", activationResult{OK: true, Token: token})
}

// Status re-validates the cached credentials against the remote record
func (h *LicenseHandler) Status(c *gin.Context) {
	status := h.licenseService.CheckStatus(c.Request.Context())
	response.OK(c, "License status retrieved", status)
}

// Session returns the vendor phone and device bound to the current session
func (h *LicenseHandler) Session(c *gin.Context) {
	response.OK(c, "Session retrieved", gin.H{
		"vendor_phone": GetVendorPhone(c),
		"device_id":    GetDeviceID(c),
	})
}

// Clear drops the cached credentials, forcing re-activation
func (h *LicenseHandler) Clear(c *gin.Context) {
	if err := h.licenseService.ClearCredentials(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "License credentials cleared", nil)
}
