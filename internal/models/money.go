package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money 统一金额类型（印尼盾，按整数计价）
type Money struct {
	decimal.Decimal
}

// NewMoney 从整数金额创建
func NewMoney(amount int64) Money {
	return Money{Decimal: decimal.NewFromInt(amount)}
}

// NewMoneyFromDecimal 从 decimal 创建金额
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// Mul 按倍率计算，结果保留 2 位小数
func (m Money) Mul(factor decimal.Decimal) Money {
	return NewMoneyFromDecimal(m.Decimal.Mul(factor))
}

// MulInt 按数量计算
func (m Money) MulInt(n int) Money {
	return NewMoneyFromDecimal(m.Decimal.Mul(decimal.NewFromInt(int64(n))))
}

// Add 相加
func (m Money) Add(other Money) Money {
	return NewMoneyFromDecimal(m.Decimal.Add(other.Decimal))
}

// MarshalJSON 输出去掉多余小数位的字符串
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON 解析金额（字符串或数字）
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		m.Decimal = d.Round(2)
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return err
	}
	m.Decimal = d.Round(2)
	return nil
}

// Value 用于数据库写入
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(2).Value()
}

// Scan 用于数据库读取
func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(2)
	return nil
}

// String 整数金额不带小数位
func (m Money) String() string {
	return m.Decimal.Round(2).String()
}

// Formatted 本地化显示
func (m Money) Formatted() string {
	return FormatPrice(m)
}

var idrPrinter = message.NewPrinter(language.Indonesian)

// FormatPrice 按印尼盾格式输出，例如 Rp 50.000
func FormatPrice(amount Money) string {
	rounded := amount.Decimal.Round(0)
	if rounded.IsNegative() {
		return "-Rp " + idrPrinter.Sprintf("%d", rounded.Neg().IntPart())
	}
	return "Rp " + idrPrinter.Sprintf("%d", rounded.IntPart())
}
