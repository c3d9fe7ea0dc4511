package metrics

// PoolStats 数组池统计快照
type PoolStats struct {
	Pool      string
	Hits      uint64 // 获取命中
	Misses    uint64 // 获取未命中（池空或锁争用）
	Pooled    uint64 // 归还后入池
	Dropped   uint64 // 归还后丢弃（池满或宽度不符）
	FreeNodes int    // 当前空闲节点数，未注册观察时为 0
}

// HitRate 返回命中率，没有获取记录时为 0
func (s PoolStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
