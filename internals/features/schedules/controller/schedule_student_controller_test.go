package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	helper "bimbelku_backend/internals/helpers"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func newStudentApp(studentID uuid.UUID, method, path string, h fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, studentID.String())
		c.Locals(helper.LocUserRole, "siswa")
		return c.Next()
	})
	app.Add(method, path, h)
	return app
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func historyRows() *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(
		[]string{"id", "subject", "mentor_name", "starts_at", "ends_at", "status", "report_summary", "homework"}).
		AddRow(uuid.New().String(), "Matematika", "Budi Mentor", now.Add(-2*time.Hour), now.Add(-1*time.Hour), "completed", "Bahas limit", "PR bab 3")
}

func TestMySessionHistory_PaginationCeil(t *testing.T) {
	db, mock := newMockDB(t)
	ctl := NewScheduleStudentController(db)

	// 11 riwayat dengan limit 10 → 2 halaman
	mock.ExpectQuery(`SELECT count\(\*\) FROM schedules AS s`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(`SELECT s\.id, s\.subject`).
		WillReturnRows(historyRows())

	app := newStudentApp(uuid.New(), fiber.MethodGet, "/my-session-history", ctl.MySessionHistory)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/my-session-history?page=2&limit=10", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	pg := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), pg["page"])
	assert.Equal(t, float64(11), pg["total"])
	assert.Equal(t, float64(2), pg["total_pages"])
	assert.Equal(t, false, pg["has_next"])
	assert.Equal(t, true, pg["has_prev"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySessionHistory_PageBeyondRangeIsEmptyList(t *testing.T) {
	db, mock := newMockDB(t)
	ctl := NewScheduleStudentController(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM schedules AS s`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`SELECT s\.id, s\.subject`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "subject", "mentor_name", "starts_at", "ends_at", "status", "report_summary", "homework"}))

	app := newStudentApp(uuid.New(), fiber.MethodGet, "/my-session-history", ctl.MySessionHistory)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/my-session-history?page=5&limit=10", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data, ok := body["data"].([]interface{})
	require.True(t, ok, "data harus array, bukan null")
	assert.Empty(t, data)

	pg := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(5), pg["page"])
	assert.Equal(t, float64(2), pg["total_pages"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySessionHistory_SearchAppliesSameFilterToCountAndData(t *testing.T) {
	db, mock := newMockDB(t)
	ctl := NewScheduleStudentController(db)

	// Kedua query membawa predikat ILIKE yang sama
	mock.ExpectQuery(`SELECT count\(\*\) FROM schedules AS s .*ILIKE`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT s\.id, s\.subject.*`).
		WillReturnRows(historyRows())

	app := newStudentApp(uuid.New(), fiber.MethodGet, "/my-session-history", ctl.MySessionHistory)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/my-session-history?search=limit", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	pg := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(1), pg["total"])
	assert.Len(t, body["data"], 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHideSchedules_OwnershipInWhere(t *testing.T) {
	db, mock := newMockDB(t)
	ctl := NewScheduleStudentController(db)

	studentID := uuid.New()

	mock.ExpectExec(`UPDATE "schedules" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	app := newStudentApp(studentID, fiber.MethodPut, "/my-schedules/hide-bulk", ctl.HideBulk)

	payload := []byte(`{"scheduleIds":["` + uuid.New().String() + `","` + uuid.New().String() + `"]}`)
	req := httptest.NewRequest(fiber.MethodPut, "/my-schedules/hide-bulk", bytes.NewReader(payload))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["affected"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
