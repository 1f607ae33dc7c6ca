package fleet

import (
	"fmt"
	"time"
)

// AllowTransition 定义车辆生命周期状态机的允许流转关系。
// 采用“有向图”方式配置，后续可按需要抽到配置中心。
var AllowTransition = map[Status][]Status{
	StatusRegistered:  {StatusActive, StatusRetired},
	StatusActive:      {StatusMaintenance, StatusRetired},
	StatusMaintenance: {StatusActive, StatusRetired},
	// 终态：退役后不允许再流转
	StatusRetired: {},
}

// CanTransition 判断 from -> to 是否是一个允许的状态流转。
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	allowed, ok := AllowTransition[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// ApplyTransition 对车辆记录应用状态变更，并维护关键时间字段。
// 仅在 CanTransition 返回 true 时生效。
func ApplyTransition(r *Record, to Status, now time.Time) error {
	if r == nil {
		return fmt.Errorf("record is nil")
	}
	from := r.Status
	if !CanTransition(from, to) {
		return fmt.Errorf("invalid vehicle status transition: %s -> %s", from, to)
	}

	r.Status = to

	switch to {
	case StatusActive:
		if r.ActivatedAt == nil {
			t := now
			r.ActivatedAt = &t
		}
	case StatusRetired:
		if r.RetiredAt == nil {
			t := now
			r.RetiredAt = &t
		}
	}
	return nil
}
