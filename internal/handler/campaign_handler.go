package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/cfl/internal/identity"
	"github.com/blues/cfl/internal/logic"
	"github.com/blues/cfl/internal/model"
	"github.com/gin-gonic/gin"
)

// CampaignHandler 活动处理器
type CampaignHandler struct {
	campaignLogic *logic.CampaignLogic
	historyLogic  *logic.HistoryLogic
	idp           identity.Provider
}

// NewCampaignHandler 创建活动处理器
func NewCampaignHandler(campaignLogic *logic.CampaignLogic,
	historyLogic *logic.HistoryLogic, idp identity.Provider) *CampaignHandler {
	return &CampaignHandler{
		campaignLogic: campaignLogic,
		historyLogic:  historyLogic,
		idp:           idp,
	}
}

// Launch 创建活动，按签名方授权
func (h *CampaignHandler) Launch(c *gin.Context) {
	var req LaunchCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	signer, err := h.idp.Signer(c)
	if err != nil {
		FailWith(c, err)
		return
	}

	goal, err := model.ParseAmount(req.Goal)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的目标金额")
		return
	}
	deposit, err := model.ParseAmount(req.Deposit)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的押金金额")
		return
	}

	id, err := h.campaignLogic.Launch(c.Request.Context(), signer, req.Name,
		goal, req.StartMs, req.EndMs, deposit)
	if err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "活动创建成功", LaunchCampaignResponse{ID: id})
}

// CheckExists 查询活动是否存在
func (h *CampaignHandler) CheckExists(c *gin.Context) {
	id, ok := parseCampaignID(c)
	if !ok {
		return
	}

	exists, err := h.campaignLogic.Exists(c.Request.Context(), id)
	if err != nil {
		FailWith(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "查询成功", ExistsResponse{Exists: exists})
}

// Cancel 取消活动，仅创建者可操作
func (h *CampaignHandler) Cancel(c *gin.Context) {
	id, ok := parseCampaignID(c)
	if !ok {
		return
	}

	caller, err := h.idp.Caller(c)
	if err != nil {
		FailWith(c, err)
		return
	}

	if err := h.campaignLogic.Cancel(c.Request.Context(), id, caller); err != nil {
		FailWith(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "活动已取消", true)
}

// GetActive 活动名历史
func (h *CampaignHandler) GetActive(c *gin.Context) {
	names, err := h.historyLogic.ActiveNames(c.Request.Context())
	if err != nil {
		FailWith(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "查询成功", NamesResponse{Names: names})
}

// GetSuccessful 达标活动名历史
func (h *CampaignHandler) GetSuccessful(c *gin.Context) {
	names, err := h.historyLogic.SuccessfulNames(c.Request.Context())
	if err != nil {
		FailWith(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "查询成功", NamesResponse{Names: names})
}

// GetCancelled 取消审计记录
func (h *CampaignHandler) GetCancelled(c *gin.Context) {
	records, err := h.historyLogic.Cancellations(c.Request.Context())
	if err != nil {
		FailWith(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "查询成功", records)
}

// parseCampaignID 解析路径中的活动id
func parseCampaignID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return 0, false
	}
	return id, true
}
