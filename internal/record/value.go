// Package record models store documents as ordered fields of tagged values,
// so documents of any shape can be flattened into CSV columns.
package record

import (
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind identifies the variant held by a Value
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindTime
	KindObjectID
	KindMap
	KindList
)

var kindNames = [...]string{"null", "string", "int", "float", "bool", "time", "objectId", "map", "list"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a tagged variant over the value shapes a document field can hold
type Value struct {
	kind Kind
	str  string
	num  int64
	flt  float64
	b    bool
	t    time.Time
	oid  primitive.ObjectID
	doc  Document
	list []Value
}

func Null() Value { return Value{} }
func String(s string) Value { return Value{kind: KindString, str: s} }
func Int(n int64) Value { return Value{kind: KindInt, num: n} }
func Float(f float64) Value { return Value{kind: KindFloat, flt: f} }
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }
func ObjectID(id primitive.ObjectID) Value { return Value{kind: KindObjectID, oid: id} }
func Map(d Document) Value { return Value{kind: KindMap, doc: d} }
func List(vs ...Value) Value { return Value{kind: KindList, list: vs} }

// Kind returns the variant tag
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v holds no value
func (v Value) IsNull() bool { return v.kind == KindNull }

// Document returns the nested document of a map value
func (v Value) Document() Document { return v.doc }

// Items returns the elements of a list value
func (v Value) Items() []Value { return v.list }

// String returns the canonical flat form used in CSV cells.
// Maps and lists render as a single compact text, not as further columns.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindString:
		return v.str
	case KindObjectID:
		return v.oid.Hex()
	case KindMap, KindList:
		var sb strings.Builder
		v.writeNested(&sb)
		return sb.String()
	default:
		return v.scalar()
	}
}

func (v Value) scalar() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.flt, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTime:
		return v.t.UTC().Format(time.RFC3339Nano)
	}
	return ""
}

func (v Value) writeNested(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindString:
		sb.WriteString(strconv.Quote(v.str))
	case KindObjectID:
		sb.WriteString(strconv.Quote(v.oid.Hex()))
	case KindTime:
		sb.WriteString(strconv.Quote(v.scalar()))
	case KindMap:
		sb.WriteByte('{')
		for i, f := range v.doc {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Quote(f.Key))
			sb.WriteString(": ")
			f.Value.writeNested(sb)
		}
		sb.WriteByte('}')
	case KindList:
		sb.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				sb.WriteString(", ")
			}
			item.writeNested(sb)
		}
		sb.WriteByte(']')
	default:
		sb.WriteString(v.scalar())
	}
}
