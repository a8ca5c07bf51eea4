package controller

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paymentRow(id, userPackageID uuid.UUID, status string) *sqlmock.Rows {
	return sqlmock.NewRows(
		[]string{"id", "user_package_id", "amount_idr", "proof_url", "status", "created_at"}).
		AddRow(id.String(), userPackageID.String(), int64(100000), "uploads/payment-proofs/x.webp", status, time.Now())
}

func newAdminVerifyApp(adminID uuid.UUID, h fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", adminID.String())
		c.Locals("user_role", "admin")
		return c.Next()
	})
	app.Put("/payments/:id/verify", h)
	return app
}

func TestVerifyPayment_ApproveActivatesPackage(t *testing.T) {
	db, mock := newMockDB(t)
	ctl := NewPaymentAdminController(db)

	adminID := uuid.New()
	paymentID := uuid.New()
	userPackageID := uuid.New()
	packageID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "payments"`).
		WillReturnRows(paymentRow(paymentID, userPackageID, "pending"))
	mock.ExpectQuery(`SELECT \* FROM "user_packages"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "user_id", "package_id", "status", "total_sessions", "used_sessions"}).
			AddRow(userPackageID.String(), uuid.New().String(), packageID.String(), "pending", 10, 0))
	mock.ExpectQuery(`SELECT \* FROM "packages"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "price_idr", "total_sessions", "duration_days", "is_active"}).
			AddRow(packageID.String(), "Paket Intensif", int64(100000), 10, 30, true))
	// user_package → active + periode berlaku
	mock.ExpectExec(`UPDATE "user_packages" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// payment → verified + jejak reviewer
	mock.ExpectExec(`UPDATE "payments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	app := newAdminVerifyApp(adminID, ctl.Verify)

	req := httptest.NewRequest(fiber.MethodPut, "/payments/"+paymentID.String()+"/verify",
		bytes.NewReader([]byte(`{"approve":true}`)))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "verified", data["status"])
	assert.Equal(t, adminID.String(), data["verified_by"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyPayment_RejectMarksBothRejected(t *testing.T) {
	db, mock := newMockDB(t)
	ctl := NewPaymentAdminController(db)

	paymentID := uuid.New()
	userPackageID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "payments"`).
		WillReturnRows(paymentRow(paymentID, userPackageID, "pending"))
	mock.ExpectQuery(`SELECT \* FROM "user_packages"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "user_id", "package_id", "status", "total_sessions", "used_sessions"}).
			AddRow(userPackageID.String(), uuid.New().String(), uuid.New().String(), "pending", 10, 0))
	mock.ExpectExec(`UPDATE "user_packages" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "payments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	app := newAdminVerifyApp(uuid.New(), ctl.Verify)

	req := httptest.NewRequest(fiber.MethodPut, "/payments/"+paymentID.String()+"/verify",
		bytes.NewReader([]byte(`{"approve":false}`)))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "rejected", data["status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyPayment_AlreadyReviewedConflicts(t *testing.T) {
	db, mock := newMockDB(t)
	ctl := NewPaymentAdminController(db)

	paymentID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "payments"`).
		WillReturnRows(paymentRow(paymentID, uuid.New(), "verified"))
	mock.ExpectRollback()

	app := newAdminVerifyApp(uuid.New(), ctl.Verify)

	req := httptest.NewRequest(fiber.MethodPut, "/payments/"+paymentID.String()+"/verify",
		bytes.NewReader([]byte(`{"approve":true}`)))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyPayment_UnknownPayment(t *testing.T) {
	db, mock := newMockDB(t)
	ctl := NewPaymentAdminController(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	app := newAdminVerifyApp(uuid.New(), ctl.Verify)

	req := httptest.NewRequest(fiber.MethodPut, "/payments/"+uuid.New().String()+"/verify",
		bytes.NewReader([]byte(`{"approve":true}`)))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
