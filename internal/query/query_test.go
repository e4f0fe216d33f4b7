package query

import (
	"cptask-tools/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCoerceCompanyID(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantKind IDKind
		want     interface{}
	}{
		{"digits", "12345", IDInteger, int64(12345)},
		{"zero", "0", IDInteger, int64(0)},
		{"24 digits fit int64", "000000000000000000012345", IDInteger, int64(12345)},
		{"lower hex", "5f1b2c3d4e5f60718293a4b5", IDObjectID, mustOID(t, "5f1b2c3d4e5f60718293a4b5")},
		{"upper hex", "5F1B2C3D4E5F60718293A4B5", IDObjectID, mustOID(t, "5f1b2c3d4e5f60718293a4b5")},
		{"plain string", "abc", IDString, "abc"},
		{"24 chars not hex", "zzzzzzzzzzzzzzzzzzzzzzzz", IDString, "zzzzzzzzzzzzzzzzzzzzzzzz"},
		{"negative number", "-42", IDString, "-42"},
		{"23 hex chars", "5f1b2c3d4e5f60718293a4b", IDString, "5f1b2c3d4e5f60718293a4b"},
		{"unicode digits", "١٢٣", IDString, "١٢٣"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceCompanyID(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.want, got.Value())
			assert.Equal(t, tt.in, got.Raw)
		})
	}
}

func TestCoerceCompanyID_DigitsBeatObjectID(t *testing.T) {
	// 24 characters, all digits, also valid hex: the integer tier wins
	got, err := CoerceCompanyID("123456789012345678901234")
	assert.Equal(t, IDInteger, got.Kind)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestBuild_WithoutCompanyID(t *testing.T) {
	q, err := Build("OPEN", "X", "   ")
	require.NoError(t, err)
	assert.Nil(t, q.CompanyID)
	assert.Equal(t, bson.D{
		{Key: "status", Value: "OPEN"},
		{Key: "task_type", Value: "X"},
	}, q.BSON())
}

func TestBuild_CompanyIDTypes(t *testing.T) {
	q, err := Build("OPEN", "X", "12345")
	require.NoError(t, err)
	assert.IsType(t, int64(0), q.BSON()[2].Value)
	assert.JSONEq(t, `{"status":"OPEN","task_type":"X","company_id":12345}`, q.String())

	q, err = Build("OPEN", "X", "5f1b2c3d4e5f60718293a4b5")
	require.NoError(t, err)
	assert.IsType(t, primitive.ObjectID{}, q.BSON()[2].Value)
	assert.JSONEq(t, `{"status":"OPEN","task_type":"X","company_id":{"$oid":"5f1b2c3d4e5f60718293a4b5"}}`, q.String())

	q, err = Build("OPEN", "X", "abc")
	require.NoError(t, err)
	assert.IsType(t, "", q.BSON()[2].Value)
	assert.JSONEq(t, `{"status":"OPEN","task_type":"X","company_id":"abc"}`, q.String())
}

func TestBuild_RequiresStatusAndTaskType(t *testing.T) {
	_, err := Build("", "X", "")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = Build("OPEN", " ", "")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = Build("OPEN", "X", "99999999999999999999")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestByIDs(t *testing.T) {
	ids := []interface{}{int64(1), "two"}
	assert.Equal(t, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: bson.A{int64(1), "two"}}}}}, ByIDs(ids))
}

func TestSetStatus(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: "CLEAR_QUEUE"}}}}, SetStatus("CLEAR_QUEUE"))
}

func TestIDKindString(t *testing.T) {
	assert.Equal(t, "integer", IDInteger.String())
	assert.Equal(t, "objectId", IDObjectID.String())
	assert.Equal(t, "string", IDString.String())
}

func mustOID(t *testing.T, hex string) primitive.ObjectID {
	t.Helper()
	oid, err := primitive.ObjectIDFromHex(hex)
	require.NoError(t, err)
	return oid
}
