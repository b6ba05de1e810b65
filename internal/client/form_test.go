package client

import (
	"context"
	"database/sql"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekinura/schoolboard/internal/app/controllers"
	"github.com/ekinura/schoolboard/internal/app/repositories"
	"github.com/ekinura/schoolboard/internal/app/services"
	"github.com/ekinura/schoolboard/internal/pkg/apperrors"
	"github.com/ekinura/schoolboard/internal/pkg/filestorage"
)

const insertSchoolSQL = "INSERT INTO schools (name,address,city,state,contact,image,email_id) VALUES (?,?,?,?,?,?,?)"

// newTestServer runs the real submission pipeline behind an HTTP server so
// the form exercises the same path a deployed client would.
func newTestServer(t *testing.T) (*httptest.Server, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	storage, err := filestorage.NewLocalStorage(t.TempDir(), "/schoolImages")
	require.NoError(t, err)

	service := services.NewSchoolService(repositories.NewSchoolRepository(db), storage)
	controller := controllers.NewSchoolController(service)

	router := gin.New()
	router.POST("/api/schools", controller.CreateSchool)
	router.GET("/api/schools", controller.ListSchools)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, mock
}

func fillValidFields(form *SubmissionForm) {
	form.SetField("name", "Springfield Elementary")
	form.SetField("address", "742 Evergreen Terrace")
	form.SetField("city", "Springfield")
	form.SetField("state", "Oregon")
	form.SetField("contact", "1234567890")
	form.SetField("email_id", "office@springfield.edu")
}

func TestSubmissionForm_SubmitSuccessClearsAndNavigates(t *testing.T) {
	server, mock := newTestServer(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schools").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(insertSchoolSQL)).
		WillReturnResult(sqlmock.NewResult(3, 1))

	navigated := make(chan struct{})
	form := NewSubmissionForm(New(server.URL), func() { close(navigated) })
	form.SetNavigateDelay(10 * time.Millisecond)

	fillValidFields(form)
	require.NoError(t, form.SelectImage([]byte("png bytes"), "gate.png", "image/png"))

	id, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)

	// Form state is reset after success.
	assert.Empty(t, form.Fields().Name)
	assert.Nil(t, form.SelectedImage())
	assert.Empty(t, form.Preview())
	assert.False(t, form.Submitting())

	select {
	case <-navigated:
	case <-time.After(2 * time.Second):
		t.Fatal("navigation callback never fired")
	}
}

func TestSubmissionForm_LocalValidationBlocksSubmit(t *testing.T) {
	// Point at a server that would fail the test if reached.
	form := NewSubmissionForm(New("http://127.0.0.1:0"), nil)
	fillValidFields(form)
	form.SetField("contact", "12345")

	_, err := form.Submit(context.Background())

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	require.Len(t, subErr.FieldErrors, 1)
	assert.Equal(t, "contact", subErr.FieldErrors[0].Field)

	// Entered values stay intact for correction.
	assert.Equal(t, "Springfield Elementary", form.Fields().Name)
	assert.Equal(t, "12345", form.Fields().Contact)
}

func TestSubmissionForm_ServerFailureKeepsState(t *testing.T) {
	server, mock := newTestServer(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schools").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(insertSchoolSQL)).
		WillReturnError(sql.ErrConnDone)

	form := NewSubmissionForm(New(server.URL), nil)
	fillValidFields(form)

	_, err := form.Submit(context.Background())

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, "Failed to add school", subErr.Message)
	assert.Equal(t, "Springfield Elementary", form.Fields().Name)
}

func TestSubmissionForm_SelectImageRejectsNonImage(t *testing.T) {
	form := NewSubmissionForm(New("http://127.0.0.1:0"), nil)

	require.NoError(t, form.SelectImage([]byte("first"), "first.png", "image/png"))
	accepted := form.SelectedImage()
	require.NotNil(t, accepted)

	err := form.SelectImage([]byte("nope"), "virus.exe", "application/octet-stream")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedMediaType)

	// The previously accepted selection is untouched.
	current := form.SelectedImage()
	require.NotNil(t, current)
	assert.Equal(t, "first.png", current.Filename)
	assert.Equal(t, []byte("first"), current.Data)
}

func TestSubmissionForm_DragAndDrop(t *testing.T) {
	form := NewSubmissionForm(New("http://127.0.0.1:0"), nil)

	form.DragEnter()
	assert.True(t, form.DragActive())

	require.NoError(t, form.Drop([]byte("dropped"), "drop.jpeg", "image/jpeg"))
	assert.False(t, form.DragActive())

	selected := form.SelectedImage()
	require.NotNil(t, selected)
	assert.Equal(t, "drop.jpeg", selected.Filename)
	assert.Contains(t, form.Preview(), "data:image/jpeg;base64,")
}

func TestSubmissionForm_DropOfNonImageDeactivatesDragOnly(t *testing.T) {
	form := NewSubmissionForm(New("http://127.0.0.1:0"), nil)

	form.DragEnter()
	err := form.Drop([]byte("text"), "readme.txt", "text/plain")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedMediaType)
	assert.False(t, form.DragActive())
	assert.Nil(t, form.SelectedImage())
}

func TestSubmissionForm_SubmitWithoutImage(t *testing.T) {
	server, mock := newTestServer(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schools").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(insertSchoolSQL)).
		WithArgs("Springfield Elementary", "742 Evergreen Terrace", "Springfield",
			"Oregon", int64(1234567890), sql.NullString{}, "office@springfield.edu").
		WillReturnResult(sqlmock.NewResult(4, 1))

	form := NewSubmissionForm(New(server.URL), nil)
	fillValidFields(form)

	id, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)

	require.NoError(t, mock.ExpectationsWereMet())
}
