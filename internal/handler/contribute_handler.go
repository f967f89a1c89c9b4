package handler

import (
	"net/http"

	"github.com/blues/cfl/internal/identity"
	"github.com/blues/cfl/internal/logic"
	"github.com/blues/cfl/internal/model"
	"github.com/gin-gonic/gin"
)

// ContributeHandler 出资处理器
type ContributeHandler struct {
	contributeLogic *logic.ContributeLogic
	idp             identity.Provider
}

// NewContributeHandler 创建出资处理器
func NewContributeHandler(contributeLogic *logic.ContributeLogic, idp identity.Provider) *ContributeHandler {
	return &ContributeHandler{contributeLogic: contributeLogic, idp: idp}
}

// Contribute 出资
func (h *ContributeHandler) Contribute(c *gin.Context) {
	id, ok := parseCampaignID(c)
	if !ok {
		return
	}

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	caller, err := h.idp.Caller(c)
	if err != nil {
		FailWith(c, err)
		return
	}

	amount, err := model.ParseAmount(req.Amount)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的出资金额")
		return
	}

	if err := h.contributeLogic.Contribute(c.Request.Context(), id, caller, amount); err != nil {
		FailWith(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "出资成功", nil)
}

// Withdraw 撤回出资
func (h *ContributeHandler) Withdraw(c *gin.Context) {
	id, ok := parseCampaignID(c)
	if !ok {
		return
	}

	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	caller, err := h.idp.Caller(c)
	if err != nil {
		FailWith(c, err)
		return
	}

	requested, err := model.ParseAmount(req.Amount)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的撤资金额")
		return
	}

	refund, err := h.contributeLogic.Withdraw(c.Request.Context(), id, caller, requested)
	if err != nil {
		FailWith(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "撤资成功", AmountResponse{Amount: refund.String()})
}

// GetBalance 查询调用方在该活动的出资余额
func (h *ContributeHandler) GetBalance(c *gin.Context) {
	id, ok := parseCampaignID(c)
	if !ok {
		return
	}

	caller, err := h.idp.Caller(c)
	if err != nil {
		FailWith(c, err)
		return
	}

	balance, err := h.contributeLogic.BalanceOf(c.Request.Context(), id, caller)
	if err != nil {
		FailWith(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "查询成功", AmountResponse{Amount: balance.String()})
}
