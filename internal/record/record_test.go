package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValueString(t *testing.T) {
	oid, err := primitive.ObjectIDFromHex("5f1b2c3d4e5f60718293a4b5")
	require.NoError(t, err)
	ts := time.Date(2025, 12, 30, 0, 55, 29, 0, time.UTC)

	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"null", Null(), ""},
		{"string", String("Acme"), "Acme"},
		{"int", Int(12345), "12345"},
		{"float", Float(1.5), "1.5"},
		{"whole float", Float(3), "3"},
		{"bool", Bool(true), "true"},
		{"time", Time(ts), "2025-12-30T00:55:29Z"},
		{"object id", ObjectID(oid), "5f1b2c3d4e5f60718293a4b5"},
		{"list", List(Int(1), String("a"), Null()), `[1, "a", null]`},
		{
			"map",
			Map(Document{{Key: "b", Value: Int(2)}, {Key: "a", Value: ObjectID(oid)}}),
			`{"b": 2, "a": "5f1b2c3d4e5f60718293a4b5"}`,
		},
		{
			"nested",
			Map(Document{{Key: "tags", Value: List(String("x"))}, {Key: "at", Value: Time(ts)}}),
			`{"tags": ["x"], "at": "2025-12-30T00:55:29Z"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestFromBSON(t *testing.T) {
	oid := primitive.NewObjectID()
	dt := primitive.NewDateTimeFromTime(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	assert.Equal(t, KindNull, FromBSON(nil).Kind())
	assert.Equal(t, KindInt, FromBSON(int32(7)).Kind())
	assert.Equal(t, KindInt, FromBSON(int64(7)).Kind())
	assert.Equal(t, KindFloat, FromBSON(2.5).Kind())
	assert.Equal(t, KindObjectID, FromBSON(oid).Kind())
	assert.Equal(t, KindTime, FromBSON(dt).Kind())
	assert.Equal(t, "2024-05-01T12:00:00Z", FromBSON(dt).String())
	assert.Equal(t, KindList, FromBSON(bson.A{1, 2}).Kind())

	m := FromBSON(bson.M{"z": 1, "a": "x"})
	require.Equal(t, KindMap, m.Kind())
	assert.Equal(t, []string{"a", "z"}, m.Document().Keys())
}

func TestDocumentFromBSONKeepsOrder(t *testing.T) {
	doc := DocumentFromBSON(bson.D{
		{Key: "status", Value: "OPEN"},
		{Key: "company_id", Value: int64(42)},
		{Key: "meta", Value: bson.D{{Key: "source", Value: "import"}}},
	})

	assert.Equal(t, []string{"status", "company_id", "meta"}, doc.Keys())

	v, ok := doc.Get("company_id")
	require.True(t, ok)
	assert.Equal(t, "42", v.String())

	v, ok = doc.Get("meta")
	require.True(t, ok)
	assert.Equal(t, `{"source": "import"}`, v.String())

	_, ok = doc.Get("missing")
	assert.False(t, ok)
}

func TestDocumentSet(t *testing.T) {
	var doc Document
	doc.Set("a", Int(1))
	doc.Set("b", Int(2))
	doc.Set("a", Int(3))

	assert.Equal(t, []string{"a", "b"}, doc.Keys())
	v, _ := doc.Get("a")
	assert.Equal(t, "3", v.String())
}
