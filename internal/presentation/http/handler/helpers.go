package handler

import (
	"github.com/gin-gonic/gin"
)

// GetDeviceID extracts the device ID from the Gin context
func GetDeviceID(c *gin.Context) string {
	deviceID, exists := c.Get("device_id")
	if !exists {
		return ""
	}
	return deviceID.(string)
}

// GetVendorPhone extracts the vendor phone from the Gin context
func GetVendorPhone(c *gin.Context) string {
	phone, exists := c.Get("vendor_phone")
	if !exists {
		return ""
	}
	return phone.(string)
}
