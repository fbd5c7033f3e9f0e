package handler

import (
	"net/http"
	"strconv"
	"time"

	"Campus_Hub/internal/repository/mysql"
	"Campus_Hub/internal/service"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	svc *service.EventService
}

func NewEventHandler() *EventHandler {
	return &EventHandler{svc: service.NewEventService()}
}

// Create 创建活动：club_id 非空为社团活动，空为全校活动
func (h *EventHandler) Create(c *gin.Context) {
	var req service.EventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	ev, err := h.svc.Create(currentIdentity(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

// List 活动列表，start 缺省为当前时间；时间参数用 RFC3339
func (h *EventHandler) List(c *gin.Context) {
	var f mysql.EventFilter
	if v := c.Query("start"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid start"})
			return
		}
		f.Start = &t
	}
	if v := c.Query("end"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid end"})
			return
		}
		f.End = &t
	}
	f.Category = c.Query("category")
	f.Title = c.Query("title")
	f.Location = c.Query("location")
	if v := c.Query("free_only"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid free_only"})
			return
		}
		f.FreeOnly = b
	}
	f.Sort = c.DefaultQuery("sort", mysql.SortByDate)
	if f.Sort != mysql.SortByDate && f.Sort != mysql.SortByPopularity {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "sort must be date or popularity"})
		return
	}

	list, err := h.svc.List(f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// Trending 报名数排行，limit 缺省 5
func (h *EventHandler) Trending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	list, err := h.svc.Trending(c.Request.Context(), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// Delete 删除活动并级联清理报名
func (h *EventHandler) Delete(c *gin.Context) {
	eventID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(currentIdentity(c), eventID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Register 报名（容量受控、幂等）
func (h *EventHandler) Register(c *gin.Context) {
	var req struct {
		EventID uint64 `json:"event_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.EventID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	res, err := h.svc.Register(c.Request.Context(), currentIdentity(c), req.EventID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Unregister 取消自己的报名
func (h *EventHandler) Unregister(c *gin.Context) {
	eventID, ok := parseID(c, "event_id")
	if !ok {
		return
	}

	if err := h.svc.Unregister(c.Request.Context(), currentIdentity(c), eventID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "unregistered"})
}

// MyRegistrations 我的报名，按活动开始时间排序
func (h *EventHandler) MyRegistrations(c *gin.Context) {
	list, err := h.svc.MyRegistrations(currentIdentity(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}
