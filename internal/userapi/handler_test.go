package userapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/shop-system/internal/user"
)

type fakeRepo struct {
	createFunc func(ctx context.Context, u *user.User) error
	getFunc    func(ctx context.Context, id int64) (*user.User, error)
	listFunc   func(ctx context.Context) ([]user.User, error)
}

func (f *fakeRepo) Create(ctx context.Context, u *user.User) error {
	if f.createFunc != nil {
		return f.createFunc(ctx, u)
	}
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if f.getFunc != nil {
		return f.getFunc(ctx, id)
	}
	return nil, nil
}

func (f *fakeRepo) List(ctx context.Context) ([]user.User, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx)
	}
	return []user.User{}, nil
}

func TestCreateUser_Success(t *testing.T) {
	repo := &fakeRepo{
		createFunc: func(ctx context.Context, u *user.User) error {
			u.ID = 1
			u.CreatedAt = time.Unix(0, 0).UTC()
			return nil
		},
	}
	handler := NewUserHandler(repo)

	body := strings.NewReader(`{"name":"Alice","email":"alice@example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/users", body)
	rr := httptest.NewRecorder()

	handler.CreateUser(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp user.User
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "Alice", resp.Name)
}

func TestCreateUser_MissingFields(t *testing.T) {
	handler := NewUserHandler(&fakeRepo{})

	body := strings.NewReader(`{"name":"Alice"}`)
	req := httptest.NewRequest(http.MethodPost, "/users", body)
	rr := httptest.NewRecorder()

	handler.CreateUser(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "name and email are required", resp["error"])
}

func TestGetUser_NotFound(t *testing.T) {
	handler := NewUserHandler(&fakeRepo{})

	req := httptest.NewRequest(http.MethodGet, "/users/99", nil)
	req.SetPathValue("id", "99")
	rr := httptest.NewRecorder()

	handler.GetUser(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetUser_Success(t *testing.T) {
	repo := &fakeRepo{
		getFunc: func(ctx context.Context, id int64) (*user.User, error) {
			return &user.User{ID: id, Name: "Bob", Email: "bob@example.com"}, nil
		},
	}
	handler := NewUserHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/users/3", nil)
	req.SetPathValue("id", "3")
	rr := httptest.NewRecorder()

	handler.GetUser(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp user.User
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, int64(3), resp.ID)
}

func TestListUsers_RepositoryError(t *testing.T) {
	repo := &fakeRepo{
		listFunc: func(ctx context.Context) ([]user.User, error) {
			return nil, errors.New("db down")
		},
	}
	handler := NewUserHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rr := httptest.NewRecorder()

	handler.ListUsers(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
}
