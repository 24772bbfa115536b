package normalize

import (
	"encoding/json"
	"strconv"
)

// flex系は「型が合わなければ欠落扱い」のデコード部品。
// optionalフィールドの型ブレでレコード全体を落とさないために使う。

type flexString struct {
	val string
	ok  bool
}

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		f.val, f.ok = s, true
		return nil
	}
	// 数値IDを返す時期のAPIがあったので数値も受ける
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		f.val, f.ok = n.String(), true
		return nil
	}
	f.val, f.ok = "", false
	return nil
}

type flexFloat struct {
	val float64
	ok  bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	var v float64
	if err := json.Unmarshal(b, &v); err == nil {
		f.val, f.ok = v, true
		return nil
	}
	// "12.99" のような文字列数値
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			f.val, f.ok = v, true
			return nil
		}
	}
	f.val, f.ok = 0, false
	return nil
}

type flexInt struct {
	val int
	ok  bool
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	var v int
	if err := json.Unmarshal(b, &v); err == nil {
		f.val, f.ok = v, true
		return nil
	}
	var fv float64
	if err := json.Unmarshal(b, &fv); err == nil {
		f.val, f.ok = int(fv), true
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if v, err := strconv.Atoi(s); err == nil {
			f.val, f.ok = v, true
			return nil
		}
	}
	f.val, f.ok = 0, false
	return nil
}

type flexBool struct {
	val bool
	ok  bool
}

func (f *flexBool) UnmarshalJSON(b []byte) error {
	var v bool
	if err := json.Unmarshal(b, &v); err == nil {
		f.val, f.ok = v, true
		return nil
	}
	f.val, f.ok = false, false
	return nil
}

// *float64へ（欠落ならnil）
func (f flexFloat) ptr() *float64 {
	if !f.ok {
		return nil
	}
	v := f.val
	return &v
}

func (f flexInt) ptr() *int {
	if !f.ok {
		return nil
	}
	v := f.val
	return &v
}

func (f flexBool) ptr() *bool {
	if !f.ok {
		return nil
	}
	v := f.val
	return &v
}
