package xiangqi

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DefaultMaxPerpetualChecks 同一步将军连续出现这么多次判长将。
const DefaultMaxPerpetualChecks = 4

// JiangHistory 记录一方连续将军中每个将军动作出现的次数。
// 某一回合没有将军，整张表清空。
type JiangHistory struct {
	counts map[Action]int
}

func newJiangHistory() JiangHistory {
	return JiangHistory{counts: make(map[Action]int)}
}

func (h *JiangHistory) clear() {
	maps.Clear(h.counts)
}

// record 根据走子前后的将军动作更新计数，返回这次被累加的动作里最大的计数。
// 走子前就已经存在的将军动作不重复计数。
func (h *JiangHistory) record(pre, post []Action) (Action, int) {
	if len(post) == 0 {
		h.clear()
		return 0, 0
	}
	var (
		top    Action
		topCnt int
	)
	for _, a := range post {
		if slices.Contains(pre, a) {
			continue
		}
		h.counts[a]++
		if h.counts[a] > topCnt {
			top, topCnt = a, h.counts[a]
		}
	}
	return top, topCnt
}

func (h *JiangHistory) Count(a Action) int { return h.counts[a] }

func (h *JiangHistory) Len() int { return len(h.counts) }

// Snapshot 返回计数表的拷贝。
func (h *JiangHistory) Snapshot() map[Action]int {
	return maps.Clone(h.counts)
}

// Actions 返回表里出现过的将军动作，升序。
func (h *JiangHistory) Actions() []Action {
	keys := maps.Keys(h.counts)
	slices.Sort(keys)
	return keys
}
