package xiangqi

import (
	"log"

	"github.com/pkg/errors"
)

// Config 构造 Game 时的参数。
type Config struct {
	// AllyColor 是下方（Ally）一方的颜色；红先走。
	AllyColor Color `json:"ally_color"`

	// MaxPerpetualChecks 同一步将军累计到这个次数，将军方判负。0 表示用默认值 4。
	MaxPerpetualChecks int `json:"max_perpetual_checks"`

	// RejectSelfCheck 打开后，走完仍让自己的帅被将的走法不计入合法表。
	// 默认关闭：规则层只管照面，送将由调用方（或吃帅）自行处理。
	RejectSelfCheck bool `json:"reject_self_check"`

	// Logger 用于输出对局结束后仍调用 Step 之类的警告；nil 时用 log.Default()。
	Logger *log.Logger `json:"-"`
}

func DefaultConfig() Config {
	return Config{
		AllyColor:          Red,
		MaxPerpetualChecks: DefaultMaxPerpetualChecks,
	}
}

func (c Config) Validate() error {
	if c.AllyColor != Red && c.AllyColor != Black {
		return errors.Errorf("config: unknown ally color %d", c.AllyColor)
	}
	if c.MaxPerpetualChecks < 0 {
		return errors.Errorf("config: max perpetual checks must be >= 0, got %d", c.MaxPerpetualChecks)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.MaxPerpetualChecks == 0 {
		c.MaxPerpetualChecks = DefaultMaxPerpetualChecks
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	return c
}

// ParseColor 把 "red"/"black"（或 "r"/"b"）解析成 Color。
func ParseColor(s string) (Color, error) {
	switch s {
	case "red", "r", "RED", "Red", "":
		return Red, nil
	case "black", "b", "BLACK", "Black":
		return Black, nil
	}
	return Red, errors.Errorf("unknown color %q", s)
}
