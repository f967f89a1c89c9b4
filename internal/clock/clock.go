package clock

import (
	"sync/atomic"
	"time"
)

// Clock 毫秒时钟，所有期限判断都以它为准
type Clock interface {
	NowMs() int64
}

// System 系统时钟
type System struct{}

// NowMs 当前毫秒时间戳
func (System) NowMs() int64 {
	return time.Now().UnixMilli()
}

// Manual 手动推进的时钟，测试用
type Manual struct {
	ms atomic.Int64
}

// NewManual 创建指定起点的手动时钟
func NewManual(ms int64) *Manual {
	m := &Manual{}
	m.ms.Store(ms)
	return m
}

// NowMs 当前毫秒时间戳
func (m *Manual) NowMs() int64 {
	return m.ms.Load()
}

// Set 设置当前时间
func (m *Manual) Set(ms int64) {
	m.ms.Store(ms)
}

// Advance 向前推进
func (m *Manual) Advance(deltaMs int64) {
	m.ms.Add(deltaMs)
}
