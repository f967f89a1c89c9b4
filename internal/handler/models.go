package handler

// LaunchCampaignRequest 创建活动请求
// 金额字段一律用十进制字符串传递，避免JSON数值精度丢失
type LaunchCampaignRequest struct {
	Name    string `json:"name" binding:"required"`
	Goal    string `json:"goal" binding:"required"`
	StartMs int64  `json:"start_ms"`
	EndMs   int64  `json:"end_ms" binding:"required"`
	Deposit string `json:"deposit" binding:"required"`
}

// LaunchCampaignResponse 创建活动响应
type LaunchCampaignResponse struct {
	ID uint64 `json:"id"`
}

// ContributeRequest 出资请求
type ContributeRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// WithdrawRequest 撤资请求
type WithdrawRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// AmountResponse 金额响应
type AmountResponse struct {
	Amount string `json:"amount"`
}

// ExistsResponse 存在性响应
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// NamesResponse 历史名称序列响应
type NamesResponse struct {
	Names []string `json:"names"`
}
