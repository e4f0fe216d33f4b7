package services

import (
	"context"
	"cptask-tools/internal/csvio"
	"cptask-tools/internal/models"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap/zaptest"
)

var fixedNow = time.Date(2025, 12, 30, 0, 55, 29, 0, time.UTC)

func newTestExportService(t *testing.T, tasks TaskFinder, companies CompanyStreamer) (*ExportService, string) {
	t.Helper()
	dir := t.TempDir()
	svc := NewExportService(tasks, companies, dir, zaptest.NewLogger(t))
	svc.now = func() time.Time { return fixedNow }
	return svc, dir
}

func TestExportTaskCompanies(t *testing.T) {
	oid, err := primitive.ObjectIDFromHex("5f1b2c3d4e5f60718293a4b5")
	require.NoError(t, err)

	store := newFakeTaskStore(
		fakeTask{ID: 1, CompanyID: int64(100), Status: "OPEN", TaskType: "FUNDING"},
		fakeTask{ID: 2, CompanyID: oid, Status: "OPEN", TaskType: "FUNDING"},
		fakeTask{ID: 3, CompanyID: "legacy-3", Status: "OPEN", TaskType: "FUNDING"},
		fakeTask{ID: 4, CompanyID: int64(400), Status: "DONE", TaskType: "FUNDING"},
		fakeTask{ID: 5, CompanyID: int64(500), Status: "OPEN", TaskType: "OTHER"},
	)
	svc, dir := newTestExportService(t, store, &fakeCompanyStore{})

	res, err := svc.ExportTaskCompanies(context.Background(), models.ExportTaskCompaniesRequest{
		TaskType: " funding ",
		Limit:    10,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), res.Retrieved)
	assert.Equal(t, filepath.Join(dir, "FUNDING_3.csv"), res.Path)
	assert.Equal(t, []string{"company_id"}, res.Columns)

	rows, err := csvio.ReadFile(res.Path)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "100", rows[0].Get("company_id"))
	assert.Equal(t, "5f1b2c3d4e5f60718293a4b5", rows[1].Get("company_id"))
	assert.Equal(t, "legacy-3", rows[2].Get("company_id"))
}

func TestExportTaskCompanies_NoResultsNoFile(t *testing.T) {
	svc, dir := newTestExportService(t, newFakeTaskStore(), &fakeCompanyStore{})

	res, err := svc.ExportTaskCompanies(context.Background(), models.ExportTaskCompaniesRequest{
		TaskType: "FUNDING",
		Status:   "CLEAR_QUEUE",
		Limit:    10,
	})
	require.NoError(t, err)
	assert.Empty(t, res.Path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportTaskCompanies_Validation(t *testing.T) {
	svc, _ := newTestExportService(t, newFakeTaskStore(), &fakeCompanyStore{})

	_, err := svc.ExportTaskCompanies(context.Background(), models.ExportTaskCompaniesRequest{Limit: 10})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.ExportTaskCompanies(context.Background(), models.ExportTaskCompaniesRequest{TaskType: "X"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestExportShortNames(t *testing.T) {
	companies := &fakeCompanyStore{companies: []models.CompanyRecord{
		{ID: int64(1), ShortName: strPtr("Acme")},
		{ID: int64(2), ShortName: strPtr("  ")},
		{ID: int64(3)},
		{ID: "x-4", ShortName: strPtr("Globex, Inc")},
	}}
	svc, dir := newTestExportService(t, newFakeTaskStore(), companies)

	res, err := svc.ExportShortNames(context.Background(), models.ExportShortNamesRequest{Limit: 250000, BatchSize: 100})
	require.NoError(t, err)

	assert.Equal(t, int64(4), res.Retrieved)
	assert.Equal(t, int64(2), res.Written)
	assert.Equal(t, filepath.Join(dir, "company_id_short_name_unique_250000_20251230_005529.csv"), res.Path)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "company_id,short_name\n1,Acme\nx-4,\"Globex, Inc\"\n", string(data))
}

func TestExportShortNames_NothingWritten(t *testing.T) {
	companies := &fakeCompanyStore{companies: []models.CompanyRecord{{ID: int64(1)}}}
	svc, dir := newTestExportService(t, newFakeTaskStore(), companies)

	res, err := svc.ExportShortNames(context.Background(), models.ExportShortNamesRequest{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Retrieved)
	assert.Empty(t, res.Path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportShortNames_CursorErrorRemovesFile(t *testing.T) {
	companies := &fakeCompanyStore{
		companies: []models.CompanyRecord{{ID: int64(1), ShortName: strPtr("Acme")}},
		err:       errors.New("cursor killed"),
	}
	svc, dir := newTestExportService(t, newFakeTaskStore(), companies)

	_, err := svc.ExportShortNames(context.Background(), models.ExportShortNamesRequest{Limit: 10})
	assert.EqualError(t, err, "cursor killed")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportShortNames_Validation(t *testing.T) {
	svc, _ := newTestExportService(t, newFakeTaskStore(), &fakeCompanyStore{})

	_, err := svc.ExportShortNames(context.Background(), models.ExportShortNamesRequest{})
	assert.ErrorIs(t, err, models.ErrValidation)
}
