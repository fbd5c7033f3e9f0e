package handler

import (
	"net/http"
	"strconv"

	"Campus_Hub/internal/middleware"
	"Campus_Hub/internal/model"
	"Campus_Hub/internal/pkg"

	"github.com/gin-gonic/gin"
)

// currentIdentity 认证中间件保证已注入
func currentIdentity(c *gin.Context) model.Identity {
	v, _ := c.Get(middleware.ContextIdentityKey)
	return v.(model.Identity)
}

// fail 业务错误统一出口，状态码由错误码决定
func fail(c *gin.Context, err error) {
	c.JSON(pkg.HTTPStatus(err), gin.H{"msg": err.Error()})
}

func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid " + name})
		return 0, false
	}
	return id, true
}
