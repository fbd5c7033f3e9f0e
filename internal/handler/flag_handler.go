package handler

import (
	"net/http"

	"Campus_Hub/internal/service"

	"github.com/gin-gonic/gin"
)

type FlagHandler struct {
	svc *service.FlagService
}

func NewFlagHandler() *FlagHandler {
	return &FlagHandler{svc: service.NewFlagService()}
}

type FlagCreateReq struct {
	ItemType string `json:"item_type"`
	ItemID   uint64 `json:"item_id"`
	Reason   string `json:"reason"`
}

// Create 举报一个活动或公告
func (h *FlagHandler) Create(c *gin.Context) {
	var req FlagCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	f, err := h.svc.Create(currentIdentity(c), req.ItemType, req.ItemID, req.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}
