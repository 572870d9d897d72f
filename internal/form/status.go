package form

// Status 提交状态
// 用三态替代布尔 isSubmitting，区分「已成功」与「可再次提交」
type Status int

const (
	StatusIdle     Status = iota // 可编辑、可提交
	StatusInFlight               // 请求已发出，等待结果
	StatusSettled                // 已成功提交，等待 Reset
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusInFlight:
		return "in_flight"
	case StatusSettled:
		return "settled"
	}
	return "unknown"
}

// Outcome 一次提交动作的结果
type Outcome int

const (
	OutcomeBlocked   Outcome = iota // 本地校验未通过，未发请求
	OutcomeFailed                   // 请求失败，已回到 Idle
	OutcomeConfirmed                // 提交成功，应切换到确认页
	OutcomeIgnored                  // 已有请求在途或已完成，本次忽略
)

func (o Outcome) String() string {
	switch o {
	case OutcomeBlocked:
		return "blocked"
	case OutcomeFailed:
		return "failed"
	case OutcomeConfirmed:
		return "confirmed"
	case OutcomeIgnored:
		return "ignored"
	}
	return "unknown"
}
