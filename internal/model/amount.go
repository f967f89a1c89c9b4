package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// 金额运算错误
var (
	ErrAmountOverflow  = errors.New("amount overflow")
	ErrAmountUnderflow = errors.New("amount underflow")
)

// maxAmountBits 金额上限为无符号128位
const maxAmountBits = 128

// Amount 无符号128位金额，以最小货币单位计
// 数据库中存储为十进制字符串，避免浮点精度丢失
type Amount struct {
	v uint256.Int
}

// ZeroAmount 零金额
func ZeroAmount() Amount {
	return Amount{}
}

// AmountFromUint64 从uint64构造金额
func AmountFromUint64(u uint64) Amount {
	var a Amount
	a.v.SetUint64(u)
	return a
}

// ParseAmount 解析十进制金额字符串
func ParseAmount(s string) (Amount, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if v.BitLen() > maxAmountBits {
		return Amount{}, ErrAmountOverflow
	}
	return Amount{v: *v}, nil
}

// Add 加法，超过128位返回 ErrAmountOverflow
func (a Amount) Add(b Amount) (Amount, error) {
	var r Amount
	if _, overflow := r.v.AddOverflow(&a.v, &b.v); overflow || r.v.BitLen() > maxAmountBits {
		return Amount{}, ErrAmountOverflow
	}
	return r, nil
}

// Sub 减法，b大于a时返回 ErrAmountUnderflow
func (a Amount) Sub(b Amount) (Amount, error) {
	var r Amount
	if _, underflow := r.v.SubOverflow(&a.v, &b.v); underflow {
		return Amount{}, ErrAmountUnderflow
	}
	return r, nil
}

// MulUint64 乘以标量，用于按字节计算存储费
func (a Amount) MulUint64(n uint64) (Amount, error) {
	var r Amount
	var m uint256.Int
	m.SetUint64(n)
	if _, overflow := r.v.MulOverflow(&a.v, &m); overflow || r.v.BitLen() > maxAmountBits {
		return Amount{}, ErrAmountOverflow
	}
	return r, nil
}

// Cmp 比较，返回 -1/0/1
func (a Amount) Cmp(b Amount) int {
	return a.v.Cmp(&b.v)
}

// Min 返回两者中较小的金额
func (a Amount) Min(b Amount) Amount {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// IsZero 是否为零
func (a Amount) IsZero() bool {
	return a.v.IsZero()
}

// String 十进制字符串表示
func (a Amount) String() string {
	return a.v.Dec()
}

// BigInt 转换为 *big.Int，供支付通道使用
func (a Amount) BigInt() *big.Int {
	return a.v.ToBig()
}

// MarshalJSON 序列化为十进制字符串，避免JSON数值精度问题
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.v.Dec() + `"`), nil
}

// UnmarshalJSON 反序列化十进制字符串
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Value 实现 driver.Valuer
func (a Amount) Value() (driver.Value, error) {
	return a.v.Dec(), nil
}

// Scan 实现 sql.Scanner
func (a *Amount) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*a = Amount{}
		return nil
	case string:
		parsed, err := ParseAmount(v)
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	case []byte:
		parsed, err := ParseAmount(string(v))
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	case int64:
		if v < 0 {
			return ErrAmountUnderflow
		}
		*a = AmountFromUint64(uint64(v))
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Amount", src)
	}
}

// GormDBDataType 按方言选择列类型，postgres用numeric避免截断
func (Amount) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "numeric(39,0)"
	}
	return "text"
}
