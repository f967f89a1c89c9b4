package identity

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ErrMissingIdentity 请求未携带身份
var ErrMissingIdentity = errors.New("missing account identity")

// Provider 解析请求身份
// Caller是直接调用方，Signer是交易签名方，两者可以不同：
// 创建活动按Signer授权，其余变更操作按Caller授权
type Provider interface {
	Caller(c *gin.Context) (string, error)
	Signer(c *gin.Context) (string, error)
}

// 身份头，由上游网关鉴权后注入
const (
	HeaderCaller = "X-Caller-Id"
	HeaderSigner = "X-Signer-Id"
)

// HeaderProvider 从请求头解析身份
type HeaderProvider struct{}

// NewHeaderProvider 创建请求头身份解析器
func NewHeaderProvider() *HeaderProvider {
	return &HeaderProvider{}
}

// Caller 直接调用方身份
func (p *HeaderProvider) Caller(c *gin.Context) (string, error) {
	caller := c.GetHeader(HeaderCaller)
	if caller == "" {
		return "", ErrMissingIdentity
	}
	return caller, nil
}

// Signer 签名方身份，缺省回落到调用方
func (p *HeaderProvider) Signer(c *gin.Context) (string, error) {
	if signer := c.GetHeader(HeaderSigner); signer != "" {
		return signer, nil
	}
	return p.Caller(c)
}
