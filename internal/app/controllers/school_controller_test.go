package controllers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekinura/schoolboard/internal/app/repositories"
	"github.com/ekinura/schoolboard/internal/app/services"
	"github.com/ekinura/schoolboard/internal/pkg/filestorage"
)

const insertSchoolSQL = "INSERT INTO schools (name,address,city,state,contact,image,email_id) VALUES (?,?,?,?,?,?,?)"

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	storage, err := filestorage.NewLocalStorage(t.TempDir(), "/schoolImages")
	require.NoError(t, err)

	service := services.NewSchoolService(repositories.NewSchoolRepository(db), storage)
	controller := NewSchoolController(service)

	router := gin.New()
	router.POST("/api/schools", controller.CreateSchool)
	router.GET("/api/schools", controller.ListSchools)

	return router, mock
}

func postSchoolForm(t *testing.T, router *gin.Engine, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/schools", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func validFormFields() map[string]string {
	return map[string]string{
		"name":     "Springfield Elementary",
		"address":  "742 Evergreen Terrace",
		"city":     "Springfield",
		"state":    "Oregon",
		"contact":  "1234567890",
		"email_id": "office@springfield.edu",
	}
}

func TestCreateSchool_Success(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schools").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(insertSchoolSQL)).
		WillReturnResult(sqlmock.NewResult(11, 1))

	recorder := postSchoolForm(t, router, validFormFields())

	assert.Equal(t, http.StatusOK, recorder.Code)

	var resp struct {
		Success bool  `json:"success"`
		ID      int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(11), resp.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSchool_ValidationFailure(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schools").
		WillReturnResult(sqlmock.NewResult(0, 0))

	fields := validFormFields()
	fields["contact"] = "12345"
	fields["email_id"] = "not-an-email"

	recorder := postSchoolForm(t, router, fields)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Errors  []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Validation failed", resp.Message)
	require.Len(t, resp.Errors, 2)

	// Zero inserts: the only expectation registered was the table ensure.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSchool_StorageFailure(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schools").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(insertSchoolSQL)).
		WillReturnError(sql.ErrConnDone)

	recorder := postSchoolForm(t, router, validFormFields())

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Failed to add school", resp.Message)
}

func TestListSchools_Success(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schools").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, name, address, city, state, contact, image, email_id, created_at FROM schools").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "city", "state", "contact", "image", "email_id", "created_at"}).
			AddRow(1, "Springfield Elementary", "742 Evergreen Terrace", "Springfield", "Oregon", int64(1234567890), nil, "office@springfield.edu", time.Now()))

	req := httptest.NewRequest(http.MethodGet, "/api/schools", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var resp struct {
		Success bool `json:"success"`
		Schools []struct {
			ID    int64   `json:"id"`
			Name  string  `json:"name"`
			Image *string `json:"image"`
		} `json:"schools"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Schools, 1)
	assert.Equal(t, "Springfield Elementary", resp.Schools[0].Name)
	assert.Nil(t, resp.Schools[0].Image, "absent image must serialize as null")
}

func TestListSchools_EmptyTable(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schools").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, name, address, city, state, contact, image, email_id, created_at FROM schools").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "city", "state", "contact", "image", "email_id", "created_at"}))

	req := httptest.NewRequest(http.MethodGet, "/api/schools", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"schools":[]`)
}

func TestListSchools_StorageFailure(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schools").
		WillReturnError(sql.ErrConnDone)

	req := httptest.NewRequest(http.MethodGet, "/api/schools", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Failed to fetch schools", resp.Message)
}
