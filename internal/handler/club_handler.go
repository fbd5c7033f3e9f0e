package handler

import (
	"net/http"
	"strconv"

	"Campus_Hub/internal/repository/mysql"
	"Campus_Hub/internal/service"

	"github.com/gin-gonic/gin"
)

type ClubHandler struct {
	svc    *service.ClubService
	events *service.EventService
}

func NewClubHandler() *ClubHandler {
	return &ClubHandler{
		svc:    service.NewClubService(),
		events: service.NewEventService(),
	}
}

type ClubCreateReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type AnnouncementCreateReq struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Create 创建社团（待管理员审批）
func (h *ClubHandler) Create(c *gin.Context) {
	var req ClubCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	sum, err := h.svc.Create(currentIdentity(c), req.Name, req.Description, req.Category)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// List 社团列表，支持 search / category / approved 过滤
func (h *ClubHandler) List(c *gin.Context) {
	f := mysql.ClubFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
	if v := c.Query("approved"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid approved"})
			return
		}
		f.Approved = &b
	}

	list, err := h.svc.List(currentIdentity(c), f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// Mine 我已加入（转正）的社团
func (h *ClubHandler) Mine(c *gin.Context) {
	list, err := h.svc.Mine(currentIdentity(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// Detail 社团详情：成员名单 + 最近公告 + 即将开始的活动
func (h *ClubHandler) Detail(c *gin.Context) {
	clubID, ok := parseID(c, "id")
	if !ok {
		return
	}

	detail, err := h.svc.Detail(currentIdentity(c), clubID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *ClubHandler) Join(c *gin.Context) {
	clubID, ok := parseID(c, "id")
	if !ok {
		return
	}

	res, err := h.svc.Join(currentIdentity(c), clubID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ClubHandler) Leave(c *gin.Context) {
	clubID, ok := parseID(c, "id")
	if !ok {
		return
	}

	res, err := h.svc.Leave(currentIdentity(c), clubID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ApproveMember 负责人审批待加入成员
func (h *ClubHandler) ApproveMember(c *gin.Context) {
	clubID, ok := parseID(c, "id")
	if !ok {
		return
	}
	email := c.Param("email")

	res, err := h.svc.ApproveMember(currentIdentity(c), clubID, email)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// CreateAnnouncement 发布社团公告
func (h *ClubHandler) CreateAnnouncement(c *gin.Context) {
	clubID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req AnnouncementCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	a, err := h.svc.CreateAnnouncement(currentIdentity(c), clubID, req.Title, req.Body)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// CreateEvent 创建社团活动（归属关系取路径里的社团 id）
func (h *ClubHandler) CreateEvent(c *gin.Context) {
	clubID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.EventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	req.ClubID = &clubID

	ev, err := h.events.Create(currentIdentity(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}
