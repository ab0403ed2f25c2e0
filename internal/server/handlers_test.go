package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	admindomain "github.com/UknowEdy/chefetoile-backend/internal/admin/domain"
	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/authorization"
	chefdomain "github.com/UknowEdy/chefetoile-backend/internal/chef/domain"
	menudomain "github.com/UknowEdy/chefetoile-backend/internal/menu/domain"
	orderdomain "github.com/UknowEdy/chefetoile-backend/internal/order/domain"
	ratingdomain "github.com/UknowEdy/chefetoile-backend/internal/rating/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// adminRequest authenticates user and lets every policy check pass; admin
// mutations run two checks (group read, then manage).
func adminRequest(deps testDeps, user *authdomain.User, method, path, body string) *http.Request {
	deps.auth.EXPECT().Authenticate(gomock.Any(), "tok").Return(user, nil)
	deps.authz.EXPECT().Authorize(gomock.Any(), gomock.Any(), authorization.ObjectAdmin, gomock.Any()).Return(nil).AnyTimes()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer tok")
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAdminSuspendChef(t *testing.T) {
	srv, deps := newTestServer(t)
	admin := testUser(authdomain.RoleAdmin)
	req := adminRequest(deps, admin, http.MethodPatch, "/api/admin/chefs/15/suspend", `{"isSuspended":true}`)

	deps.admin.EXPECT().
		SetChefSuspended(gomock.Any(), admindomain.SuspendRequest{
			Actor:     authdomain.Actor{Role: authdomain.RoleAdmin, UserID: admin.ID},
			ChefID:    snowflake.ID(15),
			Suspended: true,
		}).
		Return(&chefdomain.Chef{ID: 15, IsSuspended: true}, nil)

	rec := serve(srv, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminSuspendChefRequiresFlag(t *testing.T) {
	srv, deps := newTestServer(t)
	req := adminRequest(deps, testUser(authdomain.RoleAdmin), http.MethodPatch, "/api/admin/chefs/15/suspend", `{}`)

	rec := serve(srv, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	payload := decodeError(t, rec)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "isSuspended", payload.Errors[0].Field)
}

func TestAdminMutationNeedsManagePermission(t *testing.T) {
	srv, deps := newTestServer(t)
	chef := testUser(authdomain.RoleChef)
	deps.auth.EXPECT().Authenticate(gomock.Any(), "tok").Return(chef, nil)
	gomock.InOrder(
		deps.authz.EXPECT().Authorize(gomock.Any(), gomock.Any(), authorization.ObjectAdmin, authorization.ActionRead).Return(nil),
		deps.authz.EXPECT().Authorize(gomock.Any(), gomock.Any(), authorization.ObjectAdmin, authorization.ActionManage).Return(authorization.ErrForbidden),
	)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/chefs/15/recompute-rating", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := serve(srv, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRecomputeChefRating(t *testing.T) {
	srv, deps := newTestServer(t)
	req := adminRequest(deps, testUser(authdomain.RoleSuperAdmin), http.MethodPost, "/api/admin/chefs/15/recompute-rating", "")

	deps.admin.EXPECT().
		RecomputeChefRating(gomock.Any(), gomock.Any(), snowflake.ID(15)).
		Return(&ratingdomain.Aggregate{ChefID: 15, Rating: 4.3, TotalRatings: 12}, nil)

	rec := serve(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data ratingdomain.Aggregate `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 4.3, body.Data.Rating)
	assert.Equal(t, int64(12), body.Data.TotalRatings)
}

func TestAdminListOrdersPassesFilters(t *testing.T) {
	srv, deps := newTestServer(t)
	req := adminRequest(deps, testUser(authdomain.RoleAdmin), http.MethodGet, "/api/admin/orders?chefId=15&statut=LIVREE", "")

	deps.admin.EXPECT().
		ListOrders(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, in orderdomain.AdminListRequest) ([]orderdomain.Order, error) {
			assert.Equal(t, "15", in.ChefID)
			assert.Equal(t, "LIVREE", in.Statut)
			return []orderdomain.Order{{ID: 1}, {ID: 2}}, nil
		})

	rec := serve(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":2`)
}

func TestDeliverySheetServesPDF(t *testing.T) {
	srv, deps := newTestServer(t)
	chef := testUser(authdomain.RoleChef)
	req := authorizedRequest(deps, chef, http.MethodGet, "/api/orders/chef/sheet.pdf?date=2025-06-02", "")

	deps.orders.EXPECT().
		DeliverySheet(gomock.Any(), chef.ID, "2025-06-02").
		Return(strings.NewReader("%PDF-1.3"), nil)

	rec := serve(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "livraisons-2025-06-02.pdf")
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(body))
}

func TestDeliverySheetInvalidDate(t *testing.T) {
	srv, deps := newTestServer(t)
	chef := testUser(authdomain.RoleChef)
	req := authorizedRequest(deps, chef, http.MethodGet, "/api/orders/chef/sheet.pdf?date=demain", "")
	deps.orders.EXPECT().DeliverySheet(gomock.Any(), chef.ID, "demain").Return(nil, orderdomain.ErrInvalidDate)

	rec := serve(srv, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetMenuIsPublic(t *testing.T) {
	srv, deps := newTestServer(t)
	deps.menus.EXPECT().Get(gomock.Any(), snowflake.ID(5)).Return(&menudomain.Menu{ID: 5, Title: "Semaine du 2 juin"}, nil)

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/api/menus/5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Semaine du 2 juin")
}

func TestGetMenuNotFound(t *testing.T) {
	srv, deps := newTestServer(t)
	deps.menus.EXPECT().Get(gomock.Any(), snowflake.ID(5)).Return(nil, menudomain.ErrMenuNotFound)

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/api/menus/5", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
