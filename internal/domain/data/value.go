package data

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind discriminates the closed set of cell value types.
type Kind int

const (
	KindNull Kind = iota
	KindText
	KindNumber
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindText:
		return "TEXT"
	case KindNumber:
		return "NUMBER"
	case KindBoolean:
		return "BOOLEAN"
	}
	return "UNKNOWN"
}

// Value is a single typed cell. Exactly one of the payload fields is
// meaningful, selected by Kind. The zero value is Null.
//
// Value is comparable, so it can key the hash index buckets directly.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
}

func Null() Value            { return Value{Kind: KindNull} }
func Text(s string) Value    { return Value{Kind: KindText, Str: s} }
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }
func Boolean(b bool) Value   { return Value{Kind: KindBoolean, Bool: b} }

func (v Value) IsNull() bool { return v.Kind == KindNull }

// Equal reports semantic equality. Null never equals anything,
// including another Null (SQL semantics).
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return false
	case KindText:
		return v.Str == o.Str
	case KindNumber:
		return v.Num == o.Num
	case KindBoolean:
		return v.Bool == o.Bool
	}
	return false
}

func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "NULL"
	case KindText:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case KindBoolean:
		return strconv.FormatBool(v.Bool)
	}
	return "?"
}

// MarshalJSON writes the native JSON form (string/number/bool/null) so
// persisted snapshots stay readable.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNull:
		return []byte("null"), nil
	case KindText:
		return json.Marshal(v.Str)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBoolean:
		return json.Marshal(v.Bool)
	}
	return nil, fmt.Errorf("cannot marshal value of kind %d", v.Kind)
}

func (v *Value) UnmarshalJSON(b []byte) error {
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	val, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

// FromAny converts a decoded-JSON value into a typed Value.
func FromAny(raw interface{}) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case string:
		return Text(x), nil
	case float64:
		return Number(x), nil
	case bool:
		return Boolean(x), nil
	case int:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	}
	return Value{}, fmt.Errorf("unsupported cell value %T", raw)
}
