package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tusharj/bizbill-api/internal/application/service"
	"github.com/tusharj/bizbill-api/internal/presentation/http/dto/response"
)

// ShopHandler handles shop profile HTTP requests
type ShopHandler struct {
	shopService *service.ShopService
}

// NewShopHandler creates a new shop handler
func NewShopHandler(shopService *service.ShopService) *ShopHandler {
	return &ShopHandler{shopService: shopService}
}

// Get handles fetching the shop profile
func (h *ShopHandler) Get(c *gin.Context) {
	shop, err := h.shopService.GetShop(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Shop profile retrieved successfully", shop)
}

// Save handles creating or replacing the shop profile
func (h *ShopHandler) Save(c *gin.Context) {
	var req struct {
		Name            string  `json:"name" binding:"required"`
		Address         *string `json:"address"`
		GSTIN           *string `json:"gstin"`
		ProprietaryName *string `json:"proprietary_name"`
		MobileNo        *string `json:"mobile_no"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	shop, err := h.shopService.SaveShop(c.Request.Context(), &service.UpdateShopInput{
		Name:            req.Name,
		Address:         req.Address,
		GSTIN:           req.GSTIN,
		ProprietaryName: req.ProprietaryName,
		MobileNo:        req.MobileNo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shop profile saved successfully", shop)
}
