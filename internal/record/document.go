package record

import (
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field is one named value of a Document
type Field struct {
	Key   string
	Value Value
}

// Document is an ordered mapping from field name to value
type Document []Field

// Get returns the value stored under key
func (d Document) Get(key string) (Value, bool) {
	for _, f := range d {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Set replaces the value under key, or appends it when absent
func (d *Document) Set(key string, v Value) {
	for i := range *d {
		if (*d)[i].Key == key {
			(*d)[i].Value = v
			return
		}
	}
	*d = append(*d, Field{Key: key, Value: v})
}

// Keys returns the field names in document order
func (d Document) Keys() []string {
	keys := make([]string, len(d))
	for i, f := range d {
		keys[i] = f.Key
	}
	return keys
}

// DocumentFromBSON converts a decoded driver document, keeping field order
func DocumentFromBSON(d primitive.D) Document {
	doc := make(Document, 0, len(d))
	for _, e := range d {
		doc = append(doc, Field{Key: e.Key, Value: FromBSON(e.Value)})
	}
	return doc
}

// FromBSON converts a value produced by the driver into a Value.
// Unordered maps are sorted by key so the rendering is stable.
func FromBSON(v interface{}) Value {
	switch x := v.(type) {
	case nil, primitive.Null, primitive.Undefined:
		return Null()
	case string:
		return String(x)
	case int:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case float32:
		return Float(float64(x))
	case float64:
		return Float(x)
	case bool:
		return Bool(x)
	case time.Time:
		return Time(x)
	case primitive.DateTime:
		return Time(x.Time())
	case primitive.Timestamp:
		return Time(time.Unix(int64(x.T), 0))
	case primitive.ObjectID:
		return ObjectID(x)
	case primitive.Decimal128:
		return String(x.String())
	case primitive.Binary:
		return String(hex.EncodeToString(x.Data))
	case primitive.Regex:
		return String(x.String())
	case primitive.D:
		return Map(DocumentFromBSON(x))
	case primitive.M:
		return Map(sortedMap(x))
	case map[string]interface{}:
		return Map(sortedMap(x))
	case primitive.A:
		return listOf(x)
	case []interface{}:
		return listOf(x)
	default:
		return String(fmt.Sprint(x))
	}
}

func sortedMap(m map[string]interface{}) Document {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	doc := make(Document, 0, len(keys))
	for _, k := range keys {
		doc = append(doc, Field{Key: k, Value: FromBSON(m[k])})
	}
	return doc
}

func listOf(items []interface{}) Value {
	vs := make([]Value, len(items))
	for i, item := range items {
		vs[i] = FromBSON(item)
	}
	return List(vs...)
}
