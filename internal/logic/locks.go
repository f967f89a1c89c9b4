package logic

import (
	"sync"
)

// Locks 活动级互斥表
// 每个公共操作在其触及的活动id上串行执行，保证对amount的
// 读-改-写不会交错；数据库事务负责失败时的原子回滚。
// 登记表全局状态(id分配、活动计数)由registry锁保护。
type Locks struct {
	registry sync.Mutex

	mu        sync.Mutex
	campaigns map[uint64]*sync.Mutex
}

// NewLocks 创建互斥表
func NewLocks() *Locks {
	return &Locks{campaigns: make(map[uint64]*sync.Mutex)}
}

// Campaign 锁定单个活动，返回解锁函数
func (l *Locks) Campaign(id uint64) func() {
	l.mu.Lock()
	m, ok := l.campaigns[id]
	if !ok {
		m = &sync.Mutex{}
		l.campaigns[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// Registry 锁定登记表全局状态，返回解锁函数
// 需要同时持有两把锁时必须先取registry锁，避免死锁
func (l *Locks) Registry() func() {
	l.registry.Lock()
	return l.registry.Unlock
}
