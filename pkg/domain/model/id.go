package model

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// ErrInvalidID 識別子が文字列・数値のどちらでもない
var ErrInvalidID = errors.New("id must be a json string or number")

// ID APIの識別子
//
// 文字列・数値のどちらで受け取ったかを保持し、送信時は同じ形で返す。
type ID struct {
	text    string
	numeric bool
}

// NewID 文字列の識別子
func NewID(s string) ID {
	return ID{text: s}
}

// NewNumericID 数値の識別子（s は数値リテラル）
func NewNumericID(s string) ID {
	return ID{text: s, numeric: true}
}

func (id ID) String() string {
	return id.text
}

// IsNumeric 数値で受け取った識別子かどうか
func (id ID) IsNumeric() bool {
	return id.numeric
}

// IsZero 未設定かどうか
func (id ID) IsZero() bool {
	return id.text == "" && !id.numeric
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.text), nil
	}
	return json.Marshal(id.text)
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case string(b) == "null":
		*id = ID{}
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return errors.Wrapf(ErrInvalidID, "value: %s", b)
		}
		*id = NewID(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return errors.Wrapf(ErrInvalidID, "value: %s", b)
		}
		*id = NewNumericID(n.String())
	}
	return nil
}
