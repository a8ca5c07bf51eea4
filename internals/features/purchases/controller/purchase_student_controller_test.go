package controller

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
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

	"bimbelku_backend/internals/configs"
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

// newStudentApp memasang handler di belakang locals user login,
// seperti yang dilakukan auth middleware di runtime.
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

func proofForm(t *testing.T, packageID string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("package_id", packageID))

	fw, err := w.CreateFormFile("proof", "bukti.png")
	require.NoError(t, err)
	require.NoError(t, png.Encode(fw, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	_ = filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			n++
		}
		return nil
	})
	return n
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestPurchaseRequest_Success(t *testing.T) {
	db, mock := newMockDB(t)
	cfg := &configs.Config{UploadDir: t.TempDir()}
	ctl := NewPurchaseStudentController(db, cfg)

	studentID := uuid.New()
	packageID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "packages"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "price_idr", "total_sessions", "duration_days", "is_active"}).
			AddRow(packageID.String(), "Paket Intensif", int64(100000), 10, 30, true))

	// sweep paket kadaluarsa sebelum pre-check
	mock.ExpectExec(`UPDATE "user_packages" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	// pre-check di luar transaksi
	mock.ExpectQuery(`SELECT count\(\*\) FROM "user_packages"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectBegin()
	// re-check di dalam transaksi
	mock.ExpectQuery(`SELECT count\(\*\) FROM "user_packages"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "user_packages"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectQuery(`INSERT INTO "payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	app := newStudentApp(studentID, fiber.MethodPost, "/purchase-request", ctl.PurchaseRequest)

	buf, contentType := proofForm(t, packageID.String())
	req := httptest.NewRequest(fiber.MethodPost, "/purchase-request", buf)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	up := data["user_package"].(map[string]interface{})
	pay := data["payment"].(map[string]interface{})

	assert.Equal(t, "pending", up["status"])
	assert.Equal(t, float64(10), up["total_sessions"])
	assert.Equal(t, float64(0), up["used_sessions"])
	assert.Equal(t, "pending", pay["status"])
	assert.Equal(t, float64(100000), pay["amount_idr"])

	// Bukti tersimpan untuk pengajuan yang berhasil
	assert.Equal(t, 1, countFiles(t, cfg.UploadDir))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseRequest_DuplicateOpenPackage(t *testing.T) {
	db, mock := newMockDB(t)
	cfg := &configs.Config{UploadDir: t.TempDir()}
	ctl := NewPurchaseStudentController(db, cfg)

	studentID := uuid.New()
	packageID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "packages"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "price_idr", "total_sessions", "duration_days", "is_active"}).
			AddRow(packageID.String(), "Paket Intensif", int64(100000), 10, 30, true))

	mock.ExpectExec(`UPDATE "user_packages" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	// Sudah ada user_package pending untuk paket yang sama
	mock.ExpectQuery(`SELECT count\(\*\) FROM "user_packages"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	app := newStudentApp(studentID, fiber.MethodPost, "/purchase-request", ctl.PurchaseRequest)

	buf, contentType := proofForm(t, packageID.String())
	req := httptest.NewRequest(fiber.MethodPost, "/purchase-request", buf)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Fail fast: bukti tidak pernah ditulis ke disk
	assert.Equal(t, 0, countFiles(t, cfg.UploadDir))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseRequest_RollbackCleansProofFile(t *testing.T) {
	db, mock := newMockDB(t)
	cfg := &configs.Config{UploadDir: t.TempDir()}
	ctl := NewPurchaseStudentController(db, cfg)

	studentID := uuid.New()
	packageID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "packages"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "price_idr", "total_sessions", "duration_days", "is_active"}).
			AddRow(packageID.String(), "Paket Intensif", int64(100000), 10, 30, true))
	mock.ExpectExec(`UPDATE "user_packages" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "user_packages"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "user_packages"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "user_packages"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	// Insert payment gagal → seluruh transaksi rollback
	mock.ExpectQuery(`INSERT INTO "payments"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	app := newStudentApp(studentID, fiber.MethodPost, "/purchase-request", ctl.PurchaseRequest)

	buf, contentType := proofForm(t, packageID.String())
	req := httptest.NewRequest(fiber.MethodPost, "/purchase-request", buf)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	// Tidak ada user_package tanpa payment, dan bukti ikut dibersihkan
	assert.Equal(t, 0, countFiles(t, cfg.UploadDir))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseRequest_MissingProof(t *testing.T) {
	db, _ := newMockDB(t)
	ctl := NewPurchaseStudentController(db, &configs.Config{UploadDir: t.TempDir()})

	app := newStudentApp(uuid.New(), fiber.MethodPost, "/purchase-request", ctl.PurchaseRequest)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("package_id", uuid.New().String()))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/purchase-request", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPurchaseRequest_PrecheckErrorReturns500(t *testing.T) {
	db, mock := newMockDB(t)
	cfg := &configs.Config{UploadDir: t.TempDir()}
	ctl := NewPurchaseStudentController(db, cfg)

	packageID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "packages"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "price_idr", "total_sessions", "duration_days", "is_active"}).
			AddRow(packageID.String(), "Paket Intensif", int64(100000), 10, 30, true))
	mock.ExpectExec(`UPDATE "user_packages" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "user_packages"`).
		WillReturnError(assert.AnError)

	app := newStudentApp(uuid.New(), fiber.MethodPost, "/purchase-request", ctl.PurchaseRequest)

	buf, contentType := proofForm(t, packageID.String())
	req := httptest.NewRequest(fiber.MethodPost, "/purchase-request", buf)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	assert.Equal(t, 0, countFiles(t, cfg.UploadDir))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMyPackages_LapsedActiveShowsAsExpired(t *testing.T) {
	db, mock := newMockDB(t)
	ctl := NewPurchaseStudentController(db, &configs.Config{})

	studentID := uuid.New()
	now := time.Now().UTC()
	started := now.Add(-40 * 24 * time.Hour)
	expired := now.Add(-10 * 24 * time.Hour)

	// Sweep dulu: row aktif yang lewat expires_at diturunkan ke expired
	mock.ExpectExec(`UPDATE "user_packages" SET .*status.*WHERE user_id = .* AND expires_at IS NOT NULL AND expires_at <`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT up\.id, up\.package_id`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "package_id", "package_name", "price_idr", "status",
				"total_sessions", "used_sessions", "started_at", "expires_at", "created_at"}).
			AddRow(uuid.New().String(), uuid.New().String(), "Paket Intensif", int64(100000),
				"expired", 10, 6, started, expired, started))

	app := newStudentApp(studentID, fiber.MethodGet, "/my-packages", ctl.MyPackages)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/my-packages", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "expired", data[0].(map[string]interface{})["status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHideBulk_OnlyOwnRowsAffected(t *testing.T) {
	db, mock := newMockDB(t)
	ctl := NewPurchaseStudentController(db, &configs.Config{})

	studentID := uuid.New()
	ownID := uuid.New()
	foreignID := uuid.New()

	// WHERE memuat user_id pemanggil → row milik orang lain tidak tersentuh
	mock.ExpectExec(`UPDATE "user_packages" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	app := newStudentApp(studentID, fiber.MethodPut, "/my-packages/hide-bulk", ctl.HideBulk)

	payload, _ := json.Marshal(fiber.Map{
		"userPackageIds": []string{ownID.String(), foreignID.String()},
	})
	req := httptest.NewRequest(fiber.MethodPut, "/my-packages/hide-bulk", bytes.NewReader(payload))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["affected"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHideBulk_EmptyIDs(t *testing.T) {
	db, _ := newMockDB(t)
	ctl := NewPurchaseStudentController(db, &configs.Config{})

	app := newStudentApp(uuid.New(), fiber.MethodPut, "/my-packages/hide-bulk", ctl.HideBulk)

	req := httptest.NewRequest(fiber.MethodPut, "/my-packages/hide-bulk",
		bytes.NewReader([]byte(`{"userPackageIds":[]}`)))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
