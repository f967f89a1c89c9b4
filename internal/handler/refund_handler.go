package handler

import (
	"net/http"

	"github.com/blues/cfl/internal/identity"
	"github.com/blues/cfl/internal/logic"
	"github.com/gin-gonic/gin"
)

// RefundHandler 生命周期处理器：结束与退款
type RefundHandler struct {
	lifecycleLogic *logic.LifecycleLogic
	idp            identity.Provider
}

// NewRefundHandler 创建生命周期处理器
func NewRefundHandler(lifecycleLogic *logic.LifecycleLogic, idp identity.Provider) *RefundHandler {
	return &RefundHandler{lifecycleLogic: lifecycleLogic, idp: idp}
}

// Finish 结束活动，仅创建者可在截止后调用
func (h *RefundHandler) Finish(c *gin.Context) {
	id, ok := parseCampaignID(c)
	if !ok {
		return
	}

	caller, err := h.idp.Caller(c)
	if err != nil {
		FailWith(c, err)
		return
	}

	if err := h.lifecycleLogic.Finish(c.Request.Context(), id, caller); err != nil {
		FailWith(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "活动已结束", nil)
}

// ClaimRefund 领取退款
func (h *RefundHandler) ClaimRefund(c *gin.Context) {
	id, ok := parseCampaignID(c)
	if !ok {
		return
	}

	caller, err := h.idp.Caller(c)
	if err != nil {
		FailWith(c, err)
		return
	}

	paid, err := h.lifecycleLogic.ClaimRefund(c.Request.Context(), id, caller)
	if err != nil {
		FailWith(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "退款成功", AmountResponse{Amount: paid.String()})
}
