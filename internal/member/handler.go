package member

import (
	"net/http"

	sharedError "github.com/dojolanza/cuotas/go-api-server/internal/shared/error"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	memberService *MemberService
}

func NewMemberHandler(memberService *MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

func (h *MemberHandler) List(c *gin.Context) {
	var query ListMembersQuery
	if !handler.BindQuery(c, &query) {
		return
	}

	responses, err := h.memberService.List(c.Request.Context(), &query)
	if err != nil {
		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, responses)
}

func (h *MemberHandler) Get(c *gin.Context) {
	id, ok := handler.ParseIDParam(c)
	if !ok {
		return
	}

	response, err := h.memberService.Get(c.Request.Context(), id)
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

func (h *MemberHandler) Create(c *gin.Context) {
	var request CreateMemberRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.Create(c.Request.Context(), &request)
	if err != nil {
		if resp, ok := sharedError.ResolveDomainError(err); ok {
			handler.RespondError(c, err, resp)
			return
		}
		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := handler.ParseIDParam(c)
	if !ok {
		return
	}

	var request UpdateMemberRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.Update(c.Request.Context(), id, &request)
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

func (h *MemberHandler) Delete(c *gin.Context) {
	id, ok := handler.ParseIDParam(c)
	if !ok {
		return
	}

	if err := h.memberService.Delete(c.Request.Context(), id); err != nil {
		if resp, ok := sharedError.ResolveDomainError(err); ok {
			handler.RespondError(c, err, resp)
			return
		}
		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Miembro eliminado correctamente"})
}
