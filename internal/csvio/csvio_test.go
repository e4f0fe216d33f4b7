package csvio

import (
	"bytes"
	"cptask-tools/internal/models"
	"cptask-tools/internal/record"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestWriteDocuments_HeterogeneousColumns(t *testing.T) {
	oid, err := primitive.ObjectIDFromHex("65a1b2c3d4e5f60718293a4b")
	require.NoError(t, err)

	docs := []record.Document{
		{{Key: "company_id", Value: record.Int(12)}},
		{{Key: "company_id", Value: record.ObjectID(oid)}, {Key: "note", Value: record.String("legacy")}},
		{
			{Key: "created", Value: record.Time(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))},
			{Key: "tags", Value: record.List(record.String("a"), record.String("b"))},
		},
	}

	var buf bytes.Buffer
	columns, err := WriteDocuments(&buf, docs)
	require.NoError(t, err)

	assert.Equal(t, []string{"company_id", "created", "note", "tags"}, columns)
	want := "company_id,created,note,tags\n" +
		"12,,,\n" +
		"65a1b2c3d4e5f60718293a4b,,legacy,\n" +
		",2025-01-02T03:04:05Z,,\"[\"\"a\"\", \"\"b\"\"]\"\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteDocuments_Empty(t *testing.T) {
	var buf bytes.Buffer
	columns, err := WriteDocuments(&buf, nil)
	require.NoError(t, err)
	assert.Empty(t, columns)
}

func TestRowWriter_RejectsWrongWidth(t *testing.T) {
	var buf bytes.Buffer
	rw, err := NewRowWriter(&buf, []string{"_id", "short_name"})
	require.NoError(t, err)

	assert.Error(t, rw.Write([]string{"only-one"}))
	require.NoError(t, rw.Write([]string{"1", "Acme"}))
	require.NoError(t, rw.Flush())
	assert.Equal(t, 1, rw.Count())
	assert.Equal(t, "_id,short_name\n1,Acme\n", buf.String())
}

func TestReadRows_TrimsAndTolerates(t *testing.T) {
	input := "\ufeff company_id , short_name,extra\n" +
		" 1 ,  Acme Corp ,x\n" +
		"2\n" +
		"\n" +
		",NoID,\n"

	rows, err := ReadRows(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "1", rows[0].Get("company_id"))
	assert.Equal(t, "Acme Corp", rows[0].Get("short_name"))
	assert.Equal(t, "2", rows[1].Get("company_id"))
	assert.Equal(t, "", rows[1].Get("short_name"))
	assert.Equal(t, "", rows[2].Get("company_id"))
	assert.Equal(t, "", rows[0].Get("not_a_column"))
}

func TestReadRows_MissingHeader(t *testing.T) {
	_, err := ReadRows(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReader_HasColumn(t *testing.T) {
	r, err := NewReader(strings.NewReader("_id,short_name\n"))
	require.NoError(t, err)
	assert.True(t, r.HasColumn("_id"))
	assert.False(t, r.HasColumn("company_id"))
	assert.Equal(t, []string{"_id", "short_name"}, r.Header())
}

func TestJoinedRecordsRoundTrip(t *testing.T) {
	records := []models.JoinedRecord{
		{CompanyID: "1", ShortName: "Acme Corp"},
		{CompanyID: "99", ShortName: ""},
		{CompanyID: "1", ShortName: "Acme Corp"},
		{CompanyID: "65a1b2c3d4e5f60718293a4b", ShortName: "Quote \"Co\", Ltd"},
	}

	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{r.CompanyID, r.ShortName}
	}

	path := filepath.Join(t.TempDir(), "out", "joined.csv")
	require.NoError(t, WriteRowsFile(path, []string{"_id", "short_name"}, rows))

	back, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, back, len(records))
	for i, r := range records {
		assert.Equal(t, r.CompanyID, back[i].Get("_id"))
		assert.Equal(t, r.ShortName, back[i].Get("short_name"))
	}
}

func TestReadColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.csv")
	content := "company_id,task_type\n10,X\n,X\n20,Y\n10,X\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ids, err := ReadColumn(path, "company_id")
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "20", "10"}, ids)

	none, err := ReadColumn(path, "_id")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteDocumentsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "X_2.csv")
	docs := []record.Document{
		{{Key: "company_id", Value: record.Int(1)}},
		{{Key: "company_id", Value: record.String("abc")}},
	}

	columns, err := WriteDocumentsFile(path, docs)
	require.NoError(t, err)
	assert.Equal(t, []string{"company_id"}, columns)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "company_id\n1\nabc\n", string(data))
}
