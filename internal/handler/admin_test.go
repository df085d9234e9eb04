package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-reservation/internal/model"
)

func TestListUsers_Defaults(t *testing.T) {
	var gotPage, gotLimit int
	var gotQ string
	users := &mockUserStore{
		listFn: func(ctx context.Context, page, limit int, q string) ([]model.User, int, error) {
			gotPage, gotLimit, gotQ = page, limit, q
			return []model.User{{ID: 1, Name: "Asha", Email: "a@example.com", Role: model.RoleUser}}, 1, nil
		},
	}
	h := NewAdminHandler(users)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/users?q=asha", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if err := h.ListUsers(c); err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotPage != 1 || gotLimit != 50 || gotQ != "asha" {
		t.Errorf("store got page=%d limit=%d q=%q, want defaults 1/50 and q passthrough", gotPage, gotLimit, gotQ)
	}
	// Password hashes never leave the admin listing.
	if strings.Contains(rec.Body.String(), "password") {
		t.Errorf("body %s leaks password material", rec.Body.String())
	}
}

func TestUpdateRole(t *testing.T) {
	cases := []struct {
		name     string
		id       string
		body     string
		storeErr error
		wantCode int
	}{
		{"promote", "3", `{"role":"ADMIN"}`, nil, http.StatusOK},
		{"lowercase accepted", "3", `{"role":"admin"}`, nil, http.StatusOK},
		{"unknown role", "3", `{"role":"SUPERUSER"}`, nil, http.StatusBadRequest},
		{"bad id", "abc", `{"role":"ADMIN"}`, nil, http.StatusBadRequest},
		{"missing user", "3", `{"role":"ADMIN"}`, sql.ErrNoRows, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotRole model.Role
			users := &mockUserStore{
				updateRoleFn: func(ctx context.Context, id uint64, role model.Role) error {
					gotRole = role
					return tc.storeErr
				},
				getByIDFn: func(ctx context.Context, id uint64) (model.User, error) {
					return model.User{ID: id, Name: "Asha", Email: "a@example.com", Role: gotRole}, nil
				},
			}
			h := NewAdminHandler(users)

			req := httptest.NewRequest(http.MethodPost, "/v1/admin/users/"+tc.id+"/role", strings.NewReader(tc.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues(tc.id)
			if err := h.UpdateRole(c); err != nil {
				t.Fatalf("UpdateRole: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Errorf("status = %d, want %d; body %s", rec.Code, tc.wantCode, rec.Body.String())
			}
			if tc.wantCode == http.StatusOK && gotRole != model.RoleAdmin {
				t.Errorf("stored role = %q, want ADMIN", gotRole)
			}
		})
	}
}
