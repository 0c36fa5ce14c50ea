// file: services/clock.go
package services

import (
	"time"
)

// Clock 抽象当前时间，测试中可注入假时钟模拟对战阶段切换
type Clock interface {
	Now() time.Time
}

// RealClock 返回真实系统时间
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
