package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ValueKind identifica el tipo escalar subyacente de un Value.
type ValueKind int

const (
	KindString ValueKind = iota
	KindNumber
	KindBool
)

// ErrUnsupportedValue indica un valor de atributo que no es escalar.
var ErrUnsupportedValue = errors.New("attribute values must be string, number or boolean")

// Value es un escalar de atributo: string, número o booleano.
// Todos sus campos son comparables, así que la igualdad estructural
// es simplemente ==.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
}

func StringValue(s string) Value  { return Value{Kind: KindString, Str: s} }
func NumberValue(n float64) Value { return Value{Kind: KindNumber, Num: n} }
func BoolValue(b bool) Value      { return Value{Kind: KindBool, Bool: b} }

// MarshalJSON serializa el escalar crudo, sin envoltura de tipo.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	default:
		return nil, fmt.Errorf("marshal value: unknown kind %d", v.Kind)
	}
}

// UnmarshalJSON infiere el tipo a partir del escalar JSON. Objetos y
// arreglos anidados se rechazan.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case string:
		*v = StringValue(t)
	case float64:
		*v = NumberValue(t)
	case bool:
		*v = BoolValue(t)
	default:
		return ErrUnsupportedValue
	}
	return nil
}

// String devuelve una representación legible para explicaciones.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

// Item es un mapa arbitrario de atributos; describe tanto observaciones
// como candidatos a recomendar.
type Item map[string]Value

// ValueSet es un conjunto de valores sin duplicados. El orden de los
// elementos no es significativo.
type ValueSet []Value

// Contains compara por igualdad estructural.
func (s ValueSet) Contains(v Value) bool {
	for _, existing := range s {
		if existing == v {
			return true
		}
	}
	return false
}

// Add agrega un valor si no está presente; re-agregar es un no-op.
func (s ValueSet) Add(v Value) ValueSet {
	if s.Contains(v) {
		return s
	}
	return append(s, v)
}
