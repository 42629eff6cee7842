package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/slaviors/simenu/controllers"
	"github.com/slaviors/simenu/models"
	"github.com/slaviors/simenu/services"
)

type mockMenuSvc struct {
	items     []models.MenuItemView
	listErr   *services.ServiceError
	createdID uuid.UUID
	createErr *services.ServiceError
	lastReq   *services.MenuUpsertRequest
	updateErr *services.ServiceError
	deactErr  *services.ServiceError
	lastID    uuid.UUID
}

func (m *mockMenuSvc) ListActiveMenu(_ context.Context) ([]models.MenuItemView, *services.ServiceError) {
	return m.items, m.listErr
}

func (m *mockMenuSvc) CreateMenuItem(_ context.Context, req *services.MenuUpsertRequest) (uuid.UUID, *services.ServiceError) {
	m.lastReq = req
	return m.createdID, m.createErr
}

func (m *mockMenuSvc) UpdateMenuItem(_ context.Context, id uuid.UUID, req *services.MenuUpsertRequest) *services.ServiceError {
	m.lastID = id
	m.lastReq = req
	return m.updateErr
}

func (m *mockMenuSvc) DeactivateMenuItem(_ context.Context, id uuid.UUID) *services.ServiceError {
	m.lastID = id
	return m.deactErr
}

func setupMenuRouter(svc services.MenuService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	c := controllers.NewMenuController(svc)

	r.GET("/menu", c.GetMenu)
	r.POST("/menu", c.CreateMenuItem)
	r.PUT("/menu/:id", c.UpdateMenuItem)
	r.DELETE("/menu/:id", c.DeactivateMenuItem)
	return r
}

func menuForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		assert.NoError(t, mw.WriteField(k, v))
	}
	assert.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestGetMenu_Success(t *testing.T) {
	svc := &mockMenuSvc{
		items: []models.MenuItemView{
			{ID: uuid.New(), Name: "Nasi Goreng", Price: 45.00, Category: "mains"},
			{ID: uuid.New(), Name: "Es Teh", Price: 5.00, Category: "drinks"},
		},
	}
	r := setupMenuRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/menu", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var items []models.MenuItemView
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 2)
}

func TestCreateMenuItem_Created(t *testing.T) {
	id := uuid.New()
	svc := &mockMenuSvc{createdID: id}
	r := setupMenuRouter(svc)

	body, contentType := menuForm(t, map[string]string{
		"name":     "Sate Ayam",
		"price":    "30.00",
		"category": "mains",
	})
	req := httptest.NewRequest(http.MethodPost, "/menu", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Sate Ayam", svc.lastReq.Name)
	assert.InDelta(t, 30.00, svc.lastReq.Price, 0.0001)
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, id.String(), resp["id"])
}

func TestCreateMenuItem_MissingNameRejected(t *testing.T) {
	svc := &mockMenuSvc{}
	r := setupMenuRouter(svc)

	body, contentType := menuForm(t, map[string]string{
		"price":    "12.00",
		"category": "drinks",
	})
	req := httptest.NewRequest(http.MethodPost, "/menu", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.lastReq)
}

func TestUpdateMenuItem_Success(t *testing.T) {
	id := uuid.New()
	svc := &mockMenuSvc{}
	r := setupMenuRouter(svc)

	body, contentType := menuForm(t, map[string]string{
		"name":     "Sate Kambing",
		"price":    "35.00",
		"category": "mains",
	})
	req := httptest.NewRequest(http.MethodPut, "/menu/"+id.String(), body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, svc.lastID)
	assert.Equal(t, "Sate Kambing", svc.lastReq.Name)
}

func TestUpdateMenuItem_BadID(t *testing.T) {
	r := setupMenuRouter(&mockMenuSvc{})

	body, contentType := menuForm(t, map[string]string{"name": "X", "price": "1", "category": "mains"})
	req := httptest.NewRequest(http.MethodPut, "/menu/not-a-uuid", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeactivateMenuItem_Success(t *testing.T) {
	id := uuid.New()
	svc := &mockMenuSvc{}
	r := setupMenuRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/menu/"+id.String(), nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, svc.lastID)
}

func TestDeactivateMenuItem_NotFound(t *testing.T) {
	svc := &mockMenuSvc{
		deactErr: &services.ServiceError{StatusCode: http.StatusNotFound, Code: services.CodeNotFound, Message: "Menu item not found"},
	}
	r := setupMenuRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/menu/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
