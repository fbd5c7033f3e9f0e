package handler

import (
	"net/http"

	"Campus_Hub/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler 管理端：举报处理、社团审批、leader 账号审批
type AdminHandler struct {
	flags *service.FlagService
	clubs *service.ClubService
	users *service.UserService
}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{
		flags: service.NewFlagService(),
		clubs: service.NewClubService(),
		users: service.NewUserService(),
	}
}

// ListFlags 待处理举报，最新在前
func (h *AdminHandler) ListFlags(c *gin.Context) {
	list, err := h.flags.ListUnresolved(currentIdentity(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *AdminHandler) ResolveFlag(c *gin.Context) {
	flagID, ok := parseID(c, "id")
	if !ok {
		return
	}

	f, err := h.flags.Resolve(currentIdentity(c), flagID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// PendingClubs 待审批社团
func (h *AdminHandler) PendingClubs(c *gin.Context) {
	list, err := h.clubs.PendingClubs(currentIdentity(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// ApproveClub 审批社团并补全 leader 成员记录
func (h *AdminHandler) ApproveClub(c *gin.Context) {
	clubID, ok := parseID(c, "id")
	if !ok {
		return
	}

	sum, err := h.clubs.ApproveClub(currentIdentity(c), clubID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// PendingLeaders 待审批 leader 账号
func (h *AdminHandler) PendingLeaders(c *gin.Context) {
	list, err := h.users.ListPendingLeaders(currentIdentity(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *AdminHandler) ApproveLeader(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.users.ApproveLeader(currentIdentity(c), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
