package auth

import (
	"net/http"

	sharedContext "github.com/dojolanza/cuotas/go-api-server/internal/shared/context"
	sharedError "github.com/dojolanza/cuotas/go-api-server/internal/shared/error"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *AuthService
}

func NewAuthHandler(authService *AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (a *AuthHandler) Login(c *gin.Context) {
	var request LoginRequest

	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := a.authService.Login(c.Request.Context(), &request)
	if err != nil {
		if resp, ok := sharedError.ResolveDomainError(err); ok {
			handler.RespondError(c, err, resp)
			return
		}

		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (a *AuthHandler) Profile(c *gin.Context) {
	userID, ok := sharedContext.RequireUserID(c)
	if !ok {
		return
	}

	response, err := a.authService.Profile(c.Request.Context(), userID)
	if err != nil {
		if resp, ok := sharedError.ResolveDomainError(err); ok {
			handler.RespondError(c, err, resp)
			return
		}

		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, response)
}
