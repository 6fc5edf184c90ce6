package controller

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"belajarku_backend/internals/features/accounts/credcache"
	"belajarku_backend/internals/features/roster/repository"
	"belajarku_backend/internals/features/roster/service"
)

func newTestApp(t *testing.T) (*fiber.App, *service.Service, *credcache.Store) {
	t.Helper()

	svc := service.NewService(repository.NewInMemUserRepository())
	cache := credcache.NewStore(t.TempDir(), "teacher_created_accounts")
	ctrl := NewTeacherController(svc, cache)

	app := fiber.New()
	app.Get("/teachers", ctrl.GetList)
	app.Post("/teachers", ctrl.Create)
	app.Put("/teachers", ctrl.Update)
	app.Delete("/teachers", ctrl.Delete)
	return app, svc, cache
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	res.Body.Close()

	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, sonic.Unmarshal(raw, &decoded))
	}
	return res, decoded
}

func TestCreateRecordsTemporaryPassword(t *testing.T) {
	app, _, cache := newTestApp(t)

	res, body := doJSON(t, app, http.MethodPost, "/teachers", fiber.Map{
		"email":     "a@b.com",
		"full_name": "Ani Baharudin",
		"password":  "secret1",
		"class":     "7A",
	})
	require.Equal(t, fiber.StatusCreated, res.StatusCode)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "teacher", data["role"])
	assert.Equal(t, "a@b.com", data["email"])
	assert.NotContains(t, data, "password")

	// password sementara tercatat dan bisa dicari lewat email
	assert.Equal(t, "secret1", cache.FindTemporary("", "a@b.com"))
	assert.Equal(t, "secret1", cache.FindTemporary(data["id"].(string), ""))
}

func TestCreateDuplicateEmailReturnsConflictCode(t *testing.T) {
	app, _, _ := newTestApp(t)

	res, _ := doJSON(t, app, http.MethodPost, "/teachers", fiber.Map{
		"email": "a@b.com", "full_name": "Ani Baharudin", "password": "secret1",
	})
	require.Equal(t, fiber.StatusCreated, res.StatusCode)

	res, body := doJSON(t, app, http.MethodPost, "/teachers", fiber.Map{
		"email": "A@B.com", "full_name": "Ani Kembar", "password": "lainnya9",
	})
	assert.Equal(t, fiber.StatusConflict, res.StatusCode)
	assert.Equal(t, "email_exists", body["error_code"])
	assert.Equal(t, false, body["success"])
}

func TestCreateValidation(t *testing.T) {
	app, _, _ := newTestApp(t)

	res, body := doJSON(t, app, http.MethodPost, "/teachers", fiber.Map{
		"email": "bukan-email", "full_name": "Ani Baharudin", "password": "secret1",
	})
	require.Equal(t, fiber.StatusUnprocessableEntity, res.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["error_code"])

	// pesan dikelompokkan per field
	errs := body["errors"].(map[string]any)
	emailErrs := errs["Email"].([]any)
	require.Len(t, emailErrs, 1)
	assert.Equal(t, "Format email tidak valid", emailErrs[0])

	res, body = doJSON(t, app, http.MethodPost, "/teachers", fiber.Map{
		"email": "a@b.com", "full_name": "Ani Baharudin", "password": "abc",
	})
	require.Equal(t, fiber.StatusUnprocessableEntity, res.StatusCode)
	errs = body["errors"].(map[string]any)
	assert.Contains(t, errs, "Password")
}

func TestAdminResetAppendsNewTemporary(t *testing.T) {
	app, _, cache := newTestApp(t)

	_, body := doJSON(t, app, http.MethodPost, "/teachers", fiber.Map{
		"email": "a@b.com", "full_name": "Ani Baharudin", "password": "secret1",
	})
	id := body["data"].(map[string]any)["id"].(string)

	res, _ := doJSON(t, app, http.MethodPut, "/teachers", fiber.Map{
		"id": id, "password": "newpass2",
	})
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	// catatan terbaru menang: nilai reset menggantikan yang lama
	assert.Equal(t, "newpass2", cache.FindTemporary(id, "a@b.com"))
}

func TestDeleteByQueryParam(t *testing.T) {
	app, svc, _ := newTestApp(t)

	_, body := doJSON(t, app, http.MethodPost, "/teachers", fiber.Map{
		"email": "a@b.com", "full_name": "Ani Baharudin", "password": "secret1",
	})
	id := body["data"].(map[string]any)["id"].(string)

	res, _ := doJSON(t, app, http.MethodDelete, "/teachers?id="+id, nil)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	ids, err := svc.ListIDs(context.Background(), "teacher")
	require.NoError(t, err)
	assert.Empty(t, ids)

	res, _ = doJSON(t, app, http.MethodDelete, "/teachers?id="+id, nil)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)

	res, _ = doJSON(t, app, http.MethodDelete, "/teachers?id=bukan-uuid", nil)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
}

func TestGetListSearchesAndPaginates(t *testing.T) {
	app, _, _ := newTestApp(t)

	for _, u := range []fiber.Map{
		{"email": "ani@b.com", "full_name": "Ani Baharudin", "password": "secret1"},
		{"email": "budi@b.com", "full_name": "Budi Santoso", "password": "secret1"},
	} {
		res, _ := doJSON(t, app, http.MethodPost, "/teachers", u)
		require.Equal(t, fiber.StatusCreated, res.StatusCode)
	}

	res, body := doJSON(t, app, http.MethodGet, "/teachers?q=budi", nil)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "budi@b.com", data[0].(map[string]any)["email"])

	pagination := body["pagination"].(map[string]any)
	assert.EqualValues(t, 1, pagination["total"])
}
