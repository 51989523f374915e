package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Lonewolf123457499/CarWashApp/internal/adapter/gateway"
	domainErrors "github.com/Lonewolf123457499/CarWashApp/internal/domain/errors"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
	"github.com/Lonewolf123457499/CarWashApp/internal/server/http/dto"
	"github.com/Lonewolf123457499/CarWashApp/internal/server/http/middleware"
	testhelpers "github.com/Lonewolf123457499/CarWashApp/internal/test"
)

var (
	customer = model.Identity{UserID: 7, Role: model.RoleCustomer}
	washer   = model.Identity{UserID: 9, Role: model.RoleWasher}
	jsonType = map[string]string{"Content-Type": "application/json"}
)

func init() {
	gin.SetMode(gin.TestMode)
}

func as(identity model.Identity) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.IdentityContextKey, identity)
	}
}

func performRequest(t *testing.T, method, route, target string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) dto.ErrorBody {
	t.Helper()
	var body dto.ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", resp.Body.String(), err)
	}
	return body.Error
}

func TestCurrentIdentity(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.IdentityContextKey, washer)
	if got := CurrentIdentity(c); got != washer {
		t.Fatalf("expected %+v, got %+v", washer, got)
	}
	if got := CurrentUserID(c); got != 9 {
		t.Fatalf("expected 9, got %d", got)
	}
}

func TestWriteErrorMapping(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		code    string
		message string
	}{
		{domainErrors.New(domainErrors.ErrNotFound, "order not found"), http.StatusNotFound, middleware.CodeNotFound, "order not found"},
		{domainErrors.New(domainErrors.ErrInvalidInput, "bad"), http.StatusBadRequest, middleware.CodeInvalidInput, "bad"},
		{domainErrors.New(domainErrors.ErrInvalidState, "cannot start"), http.StatusUnprocessableEntity, middleware.CodeInvalidState, "cannot start"},
		{domainErrors.New(domainErrors.ErrConflict, "taken"), http.StatusConflict, middleware.CodeConflict, "taken"},
		{domainErrors.New(domainErrors.ErrVerificationFailed, "bad signature"), http.StatusPaymentRequired, middleware.CodeVerificationFailed, "bad signature"},
		{domainErrors.New(domainErrors.ErrUnavailable, "busy"), http.StatusServiceUnavailable, middleware.CodeUnavailable, "busy"},
		{domainErrors.New(domainErrors.ErrInvalidCredentials, "wrong"), http.StatusUnauthorized, middleware.CodeUnauthorized, "wrong"},
		{domainErrors.New(domainErrors.ErrForbidden, "no"), http.StatusForbidden, middleware.CodeForbidden, "no"},
		{errors.New("pq: connection refused to secret-host"), http.StatusInternalServerError, middleware.CodeInternal, "internal error"},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			resp := performRequest(t, http.MethodGet, "/", "/", func(c *gin.Context) { writeError(c, tc.err) }, nil, nil, nil)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
			body := decodeError(t, resp)
			if body.Code != tc.code || body.Message != tc.message {
				t.Fatalf("unexpected body %+v", body)
			}
		})
	}
}

func TestWriteErrorRetryAfter(t *testing.T) {
	err := fmt.Errorf("create order: %w", gateway.TooManyRequestsError{RetryAfter: 1500 * time.Millisecond})
	resp := performRequest(t, http.MethodGet, "/", "/", func(c *gin.Context) { writeError(c, err) }, nil, nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
	if got := resp.Header().Get("Retry-After"); got != "2" {
		t.Fatalf("expected Retry-After 2, got %q", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	login := testhelpers.RandomASCIIString(7, 14)
	password := testhelpers.RandomASCIIString(16, 32)
	body, _ := json.Marshal(dto.AuthRequest{Login: login, Password: password, Role: "washer"})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(ctx context.Context, gotLogin, gotPassword string, role model.Role) (string, error) {
		if gotLogin != login || gotPassword != password || role != model.RoleWasher {
			t.Fatalf("unexpected registration passed to facade: %q %q %q", gotLogin, gotPassword, role)
		}
		return "issued", nil
	}})

	resp := performRequest(t, http.MethodPost, "/register", "/register", handler.Register, nil, body, jsonType)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer issued" {
		t.Fatalf("expected auth header, got %q", got)
	}
	var token dto.TokenResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &token); err != nil || token.Token != "issued" {
		t.Fatalf("unexpected token body %q: %v", resp.Body.String(), err)
	}
}

func TestAuthHandlerFailures(t *testing.T) {
	cases := []struct {
		name   string
		body   []byte
		err    error
		status int
	}{
		{name: "malformed", body: []byte("{"), status: http.StatusBadRequest},
		{name: "duplicate", body: []byte(`{"login":"a","password":"b"}`), err: domainErrors.New(domainErrors.ErrConflict, "login already taken"), status: http.StatusConflict},
		{name: "credentials", body: []byte(`{"login":"a","password":"b"}`), err: domainErrors.ErrInvalidCredentials, status: http.StatusUnauthorized},
		{name: "internal", body: []byte(`{"login":"a","password":"b"}`), err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := testhelpers.AuthFacadeStub{
				RegisterFn: func(context.Context, string, string, model.Role) (string, error) {
					return "", tc.err
				},
				AuthenticateFn: func(context.Context, string, string) (string, error) {
					return "", tc.err
				},
			}
			if tc.err == nil {
				stub = testhelpers.AuthFacadeStub{}
			}
			handler := NewAuthHandler(stub)
			for _, h := range []gin.HandlerFunc{handler.Register, handler.Login} {
				resp := performRequest(t, http.MethodPost, "/auth", "/auth", h, nil, tc.body, jsonType)
				if resp.Code != tc.status {
					t.Fatalf("expected %d, got %d", tc.status, resp.Code)
				}
				if resp.Header().Get("Authorization") != "" {
					t.Fatalf("auth header must not be set on failure")
				}
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "user", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, body, jsonType)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if len(resp.Result().Cookies()) == 0 {
		t.Fatalf("expected auth cookie")
	}
}

func TestAuthHandlerMe(t *testing.T) {
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{ProfileFn: func(_ context.Context, userID int64) (*model.User, error) {
		if userID != washer.UserID {
			return nil, domainErrors.New(domainErrors.ErrNotFound, "account not found")
		}
		return &model.User{ID: userID, Login: "wanda", PasswordHash: "secret-hash", Role: model.RoleWasher}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/me", "/me", handler.Me, as(washer), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if strings.Contains(resp.Body.String(), "secret-hash") {
		t.Fatalf("profile must not expose the password hash: %s", resp.Body.String())
	}
	var profile dto.ProfileResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &profile); err != nil || profile.Login != "wanda" || profile.Role != "washer" {
		t.Fatalf("unexpected profile %+v (%v)", profile, err)
	}

	resp = performRequest(t, http.MethodGet, "/me", "/me", handler.Me, as(customer), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing account, got %d", resp.Code)
	}
}

func TestCatalogHandler(t *testing.T) {
	handler := NewCatalogHandler(testhelpers.CatalogFacadeStub{})

	resp := performRequest(t, http.MethodGet, "/packages", "/packages", handler.Packages, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var packages []dto.PackageResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &packages); err != nil {
		t.Fatalf("decode packages: %v", err)
	}
	if len(packages) != 1 || packages[0].Price != "15.00" {
		t.Fatalf("unexpected packages %+v", packages)
	}

	resp = performRequest(t, http.MethodGet, "/addons", "/addons", handler.Addons, nil, nil, nil)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"10.00"`) {
		t.Fatalf("unexpected addons response %d %s", resp.Code, resp.Body.String())
	}

	resp = performRequest(t, http.MethodPost, "/packages", "/packages", handler.CreatePackage, nil, []byte(`{"name":"Deluxe","price":"19.99"}`), jsonType)
	if resp.Code != http.StatusCreated || !strings.Contains(resp.Body.String(), `"19.99"`) {
		t.Fatalf("unexpected create package response %d %s", resp.Code, resp.Body.String())
	}

	resp = performRequest(t, http.MethodPost, "/addons", "/addons", handler.CreateAddon, nil, []byte(`{"name":"Vacuum","price":5}`), jsonType)
	if resp.Code != http.StatusCreated || !strings.Contains(resp.Body.String(), `"5.00"`) {
		t.Fatalf("unexpected create addon response %d %s", resp.Code, resp.Body.String())
	}

	failing := NewCatalogHandler(testhelpers.CatalogFacadeStub{
		CreateAddonFn: func(context.Context, string, decimal.Decimal) (*model.Addon, error) {
			return nil, domainErrors.New(domainErrors.ErrInvalidInput, "price must not be negative")
		},
	})
	resp = performRequest(t, http.MethodPost, "/addons", "/addons", failing.CreateAddon, nil, []byte(`{"name":"Vacuum","price":-1}`), jsonType)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCatalogHandlerAdmin(t *testing.T) {
	var gotUpdate model.PackageUpdate
	handler := NewCatalogHandler(testhelpers.CatalogFacadeStub{
		UpdatePackageFn: func(_ context.Context, id int64, update model.PackageUpdate) (*model.WashPackage, error) {
			if id == 404 {
				return nil, domainErrors.New(domainErrors.ErrNotFound, "wash package not found")
			}
			gotUpdate = update
			return testhelpers.CatalogFacadeStub{}.UpdatePackage(context.Background(), id, update)
		},
	})

	resp := performRequest(t, http.MethodGet, "/packages", "/packages", handler.AllPackages, nil, nil, nil)
	var packages []dto.PackageResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &packages); err != nil || resp.Code != http.StatusOK {
		t.Fatalf("unexpected admin packages %d %s: %v", resp.Code, resp.Body.String(), err)
	}
	if len(packages) != 2 || packages[1].Active {
		t.Fatalf("expected deactivated package in admin listing, got %+v", packages)
	}

	resp = performRequest(t, http.MethodPatch, "/packages/:id", "/packages/3", handler.UpdatePackage, nil, []byte(`{"price":"18.5"}`), jsonType)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"18.50"`) {
		t.Fatalf("unexpected update response %d %s", resp.Code, resp.Body.String())
	}
	if gotUpdate.Name != nil || gotUpdate.Active != nil || gotUpdate.Price == nil {
		t.Fatalf("omitted fields must stay nil, got %+v", gotUpdate)
	}

	resp = performRequest(t, http.MethodPatch, "/packages/:id", "/packages/404", handler.UpdatePackage, nil, []byte(`{"name":"X"}`), jsonType)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPatch, "/packages/:id", "/packages/abc", handler.UpdatePackage, nil, []byte(`{"name":"X"}`), jsonType)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodDelete, "/packages/:id", "/packages/3", handler.DeletePackage, nil, nil, nil)
	var deleted dto.PackageResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &deleted); err != nil || resp.Code != http.StatusOK || deleted.Active {
		t.Fatalf("expected deactivated package, got %d %s", resp.Code, resp.Body.String())
	}
	if gotUpdate.Active == nil || *gotUpdate.Active {
		t.Fatalf("delete must deactivate, got %+v", gotUpdate)
	}

	resp = performRequest(t, http.MethodGet, "/addons", "/addons", handler.AllAddons, nil, nil, nil)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"active":true`) {
		t.Fatalf("unexpected admin addons %d %s", resp.Code, resp.Body.String())
	}

	resp = performRequest(t, http.MethodPatch, "/addons/:id", "/addons/2", handler.UpdateAddon, nil, []byte(`{"name":"Hard Wax","active":false}`), jsonType)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"Hard Wax"`) || !strings.Contains(resp.Body.String(), `"active":false`) {
		t.Fatalf("unexpected addon update %d %s", resp.Code, resp.Body.String())
	}

	resp = performRequest(t, http.MethodPatch, "/addons/:id", "/addons/2", handler.UpdateAddon, nil, []byte(`{"price":`), jsonType)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodDelete, "/addons/:id", "/addons/2", handler.DeleteAddon, nil, nil, nil)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"active":false`) {
		t.Fatalf("unexpected addon delete %d %s", resp.Code, resp.Body.String())
	}
}

func TestAdminHandler(t *testing.T) {
	created := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	var gotRole model.Role
	handler := NewAdminHandler(testhelpers.AdminFacadeStub{
		AccountsFn: func(_ context.Context, role model.Role) ([]model.AccountSummary, error) {
			gotRole = role
			if role == "owner" {
				return nil, domainErrors.New(domainErrors.ErrInvalidInput, "unknown role")
			}
			return []model.AccountSummary{{
				User:     model.User{ID: 7, Login: "alice", PasswordHash: "hash:secret", Role: model.RoleCustomer, Active: true, CreatedAt: created},
				Vehicles: 2, Orders: 3, Completed: 1, Spent: decimal.RequireFromString("35"),
			}}, nil
		},
		SetActiveFn: func(_ context.Context, id int64, active bool) (*model.User, error) {
			if id == 404 {
				return nil, domainErrors.New(domainErrors.ErrNotFound, "washer not found")
			}
			return &model.User{ID: id, Login: "washer", Role: model.RoleWasher, Active: active}, nil
		},
		StatsFn: func(context.Context) (*model.Stats, error) {
			return &model.Stats{
				Customers: 2, Washers: 2, ActiveWashers: 1,
				Orders: model.OrderStats{
					Total:    3,
					ByStatus: map[model.OrderStatus]int{model.OrderStatusPaid: 1, model.OrderStatusPending: 2},
					Revenue:  decimal.RequireFromString("35"),
				},
			}, nil
		},
	})

	resp := performRequest(t, http.MethodGet, "/users", "/users?role=customer", handler.Accounts, nil, nil, nil)
	var accounts []dto.AccountResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &accounts); err != nil || resp.Code != http.StatusOK {
		t.Fatalf("unexpected accounts %d %s: %v", resp.Code, resp.Body.String(), err)
	}
	if gotRole != model.RoleCustomer || len(accounts) != 1 || accounts[0].Spent != "35.00" || accounts[0].Vehicles != 2 {
		t.Fatalf("unexpected accounts %+v for role %q", accounts, gotRole)
	}
	if strings.Contains(resp.Body.String(), "hash:secret") {
		t.Fatal("password hash leaked into the account listing")
	}

	resp = performRequest(t, http.MethodGet, "/users", "/users?role=owner", handler.Accounts, nil, nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPatch, "/washers/:id/status", "/washers/9/status", handler.SetWasherStatus, nil, []byte(`{"active":false}`), jsonType)
	var account dto.AccountResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &account); err != nil || resp.Code != http.StatusOK || account.Active || account.ID != 9 {
		t.Fatalf("unexpected status response %d %s", resp.Code, resp.Body.String())
	}

	resp = performRequest(t, http.MethodPatch, "/washers/:id/status", "/washers/9/status", handler.SetWasherStatus, nil, []byte(`{}`), jsonType)
	if resp.Code != http.StatusBadRequest || decodeError(t, resp).Message != "active is required" {
		t.Fatalf("expected 400 when active is missing, got %d %s", resp.Code, resp.Body.String())
	}

	resp = performRequest(t, http.MethodPatch, "/washers/:id/status", "/washers/404/status", handler.SetWasherStatus, nil, []byte(`{"active":true}`), jsonType)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/stats", "/stats", handler.Stats, nil, nil, nil)
	var stats dto.StatsResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &stats); err != nil || resp.Code != http.StatusOK {
		t.Fatalf("unexpected stats %d %s: %v", resp.Code, resp.Body.String(), err)
	}
	if stats.ActiveWashers != 1 || stats.Orders.Revenue != "35.00" || stats.Orders.ByStatus["Pending"] != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if count, ok := stats.Orders.ByStatus["Cancelled"]; !ok || count != 0 {
		t.Fatalf("expected every status to be reported, got %+v", stats.Orders.ByStatus)
	}

	failing := NewAdminHandler(testhelpers.AdminFacadeStub{
		StatsFn: func(context.Context) (*model.Stats, error) { return nil, errors.New("db down") },
	})
	resp = performRequest(t, http.MethodGet, "/stats", "/stats", failing.Stats, nil, nil, nil)
	if resp.Code != http.StatusInternalServerError || strings.Contains(resp.Body.String(), "db down") {
		t.Fatalf("expected opaque 500, got %d %s", resp.Code, resp.Body.String())
	}
}

func TestVehicleHandler(t *testing.T) {
	var deleted int64
	handler := NewVehicleHandler(testhelpers.VehicleFacadeStub{
		DeleteFn: func(_ context.Context, customerID, vehicleID int64) error {
			if customerID != customer.UserID {
				t.Fatalf("expected caller id, got %d", customerID)
			}
			deleted = vehicleID
			return nil
		},
	})

	resp := performRequest(t, http.MethodGet, "/vehicles", "/vehicles", handler.List, as(customer), nil, nil)
	if resp.Code != http.StatusOK || strings.TrimSpace(resp.Body.String()) != "[]" {
		t.Fatalf("expected empty list, got %d %s", resp.Code, resp.Body.String())
	}

	plate := testhelpers.RandomLicensePlate()
	body, _ := json.Marshal(dto.VehicleRequest{Make: "Toyota", Model: "Corolla", LicensePlate: plate})
	resp = performRequest(t, http.MethodPost, "/vehicles", "/vehicles", handler.Add, as(customer), body, jsonType)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	var added dto.VehicleResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &added); err != nil || added.LicensePlate != plate {
		t.Fatalf("expected plate %q echoed back, got %+v (%v)", plate, added, err)
	}

	resp = performRequest(t, http.MethodDelete, "/vehicles/:id", "/vehicles/12", handler.Delete, as(customer), nil, nil)
	if resp.Code != http.StatusNoContent || deleted != 12 {
		t.Fatalf("expected 204 deleting 12, got %d %d", resp.Code, deleted)
	}

	resp = performRequest(t, http.MethodDelete, "/vehicles/:id", "/vehicles/abc", handler.Delete, as(customer), nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", resp.Code)
	}
}

func TestOrderHandlerPlace(t *testing.T) {
	scheduled := time.Date(2025, 7, 26, 10, 0, 0, 0, time.UTC)
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{
		PlaceFn: func(_ context.Context, customerID, vehicleID, packageID int64, addonIDs []int64, at time.Time) (*model.Order, error) {
			if customerID != customer.UserID || vehicleID != 3 || packageID != 1 || len(addonIDs) != 1 || !at.Equal(scheduled) {
				t.Fatalf("unexpected placement %d %d %d %v %v", customerID, vehicleID, packageID, addonIDs, at)
			}
			return &model.Order{ID: 5, CustomerID: customerID, Status: model.OrderStatusPending, Total: decimal.RequireFromString("35")}, nil
		},
	})

	body, _ := json.Marshal(dto.PlaceOrderRequest{VehicleID: 3, PackageID: 1, AddonIDs: []int64{2}, ScheduledAt: scheduled})
	resp := performRequest(t, http.MethodPost, "/orders", "/orders", handler.Place, as(customer), body, jsonType)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	var order dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if order.Status != "Pending" || order.Total != "35.00" || order.AddonIDs == nil {
		t.Fatalf("unexpected order %+v", order)
	}

	resp = performRequest(t, http.MethodPost, "/orders", "/orders", handler.Place, as(customer), []byte("not json"), jsonType)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestOrderHandlerWasherFlow(t *testing.T) {
	var imageRef string
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{
		StartFn: func(context.Context, int64, int64) (*model.Order, error) {
			return nil, domainErrors.New(domainErrors.ErrInvalidState, "cannot start order in status Pending")
		},
		CompleteFn: func(_ context.Context, washerID, orderID int64, ref string) (*model.Order, error) {
			imageRef = ref
			return &model.Order{ID: orderID, WasherID: &washerID, Status: model.OrderStatusCompleted, ImageRef: ref}, nil
		},
	})

	resp := performRequest(t, http.MethodPost, "/orders/:id/claim", "/orders/4/claim", handler.Claim, as(washer), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var claim dto.ClaimResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &claim); err != nil {
		t.Fatalf("decode claim: %v", err)
	}
	if claim.Order.Status != "Assigned" || claim.Receipt.Number == "" || *claim.Order.WasherID != washer.UserID {
		t.Fatalf("unexpected claim %+v", claim)
	}

	resp = performRequest(t, http.MethodPost, "/orders/:id/start", "/orders/4/start", handler.Start, as(washer), nil, nil)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
	if body := decodeError(t, resp); body.Code != middleware.CodeInvalidState || body.Message != "cannot start order in status Pending" {
		t.Fatalf("unexpected error body %+v", body)
	}

	resp = performRequest(t, http.MethodPost, "/orders/:id/complete", "/orders/4/complete", handler.Complete, as(washer), nil, nil)
	if resp.Code != http.StatusOK || imageRef != "" {
		t.Fatalf("expected completion without body, got %d %q", resp.Code, imageRef)
	}

	resp = performRequest(t, http.MethodPost, "/orders/:id/complete", "/orders/4/complete", handler.Complete, as(washer), []byte(`{"image_ref":"img1"}`), jsonType)
	if resp.Code != http.StatusOK || imageRef != "img1" {
		t.Fatalf("expected completion with image, got %d %q", resp.Code, imageRef)
	}

	resp = performRequest(t, http.MethodPost, "/orders/:id/complete", "/orders/4/complete", handler.Complete, as(washer), []byte(`{"image_ref":`), jsonType)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.Code)
	}
}

func TestOrderHandlerClaimConflict(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{
		ClaimFn: func(context.Context, int64, int64) (*model.Order, *model.Receipt, error) {
			return nil, nil, domainErrors.New(domainErrors.ErrConflict, "order is no longer available")
		},
	})
	resp := performRequest(t, http.MethodPost, "/orders/:id/claim", "/orders/4/claim", handler.Claim, as(washer), nil, nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
}

func TestOrderHandlerListings(t *testing.T) {
	var gotLimit int
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{
		PendingFn: func(_ context.Context, limit int) ([]model.Order, error) {
			gotLimit = limit
			return []model.Order{{ID: 1, Status: model.OrderStatusPending}, {ID: 2, Status: model.OrderStatusPending}}, nil
		},
		ListFn: func(context.Context, int64) ([]model.Order, error) {
			return nil, errors.New("db down")
		},
	})

	resp := performRequest(t, http.MethodGet, "/pending", "/pending?limit=5", handler.ListPending, as(washer), nil, nil)
	if resp.Code != http.StatusOK || gotLimit != 5 {
		t.Fatalf("expected 200 with limit 5, got %d %d", resp.Code, gotLimit)
	}
	var orders []dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &orders); err != nil || len(orders) != 2 {
		t.Fatalf("unexpected pending list %s: %v", resp.Body.String(), err)
	}

	resp = performRequest(t, http.MethodGet, "/pending", "/pending?limit=-1", handler.ListPending, as(washer), nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative limit, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/orders", "/orders", handler.ListWasher, as(washer), nil, nil)
	if resp.Code != http.StatusOK || strings.TrimSpace(resp.Body.String()) != "[]" {
		t.Fatalf("expected empty washer list, got %d %s", resp.Code, resp.Body.String())
	}

	resp = performRequest(t, http.MethodGet, "/orders", "/orders", handler.ListCustomer, as(customer), nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if strings.Contains(resp.Body.String(), "db down") {
		t.Fatalf("internal error text leaked: %s", resp.Body.String())
	}
}

func TestOrderHandlerListAll(t *testing.T) {
	var (
		gotStatus model.OrderStatus
		gotLimit  int
	)
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{
		AllFn: func(_ context.Context, status model.OrderStatus, limit int) ([]model.Order, error) {
			gotStatus, gotLimit = status, limit
			if status == "Lost" {
				return nil, domainErrors.New(domainErrors.ErrInvalidInput, "unknown order status")
			}
			return []model.Order{
				{ID: 2, Status: model.OrderStatusCancelled, Total: decimal.RequireFromString("15")},
				{ID: 1, Status: model.OrderStatusCancelled, Total: decimal.RequireFromString("25")},
			}, nil
		},
	})

	resp := performRequest(t, http.MethodGet, "/orders", "/orders?status=Cancelled&limit=20", handler.ListAll, nil, nil, nil)
	var orders []dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &orders); err != nil || resp.Code != http.StatusOK {
		t.Fatalf("unexpected listing %d %s: %v", resp.Code, resp.Body.String(), err)
	}
	if gotStatus != model.OrderStatusCancelled || gotLimit != 20 || len(orders) != 2 || orders[0].ID != 2 {
		t.Fatalf("unexpected call status=%q limit=%d orders=%+v", gotStatus, gotLimit, orders)
	}

	resp = performRequest(t, http.MethodGet, "/orders", "/orders", handler.ListAll, nil, nil, nil)
	if resp.Code != http.StatusOK || gotStatus != "" || gotLimit != 0 {
		t.Fatalf("expected defaults, got %d status=%q limit=%d", resp.Code, gotStatus, gotLimit)
	}

	resp = performRequest(t, http.MethodGet, "/orders", "/orders?limit=x", handler.ListAll, nil, nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/orders", "/orders?status=Lost", handler.ListAll, nil, nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", resp.Code)
	}
}

func TestOrderHandlerCustomerViews(t *testing.T) {
	var gotIdentity model.Identity
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{
		GetFn: func(_ context.Context, identity model.Identity, orderID int64) (*model.Order, error) {
			gotIdentity = identity
			if orderID == 404 {
				return nil, domainErrors.New(domainErrors.ErrNotFound, "order not found")
			}
			return &model.Order{ID: orderID, CustomerID: identity.UserID}, nil
		},
	})

	resp := performRequest(t, http.MethodGet, "/orders/:id", "/orders/8", handler.Get, as(customer), nil, nil)
	if resp.Code != http.StatusOK || gotIdentity != customer {
		t.Fatalf("expected 200 for caller %+v, got %d %+v", customer, resp.Code, gotIdentity)
	}

	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/404", handler.Get, as(customer), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/0", handler.Get, as(customer), nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero id, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/orders/:id/cancel", "/orders/8/cancel", handler.Cancel, as(customer), nil, nil)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"Cancelled"`) {
		t.Fatalf("unexpected cancel response %d %s", resp.Code, resp.Body.String())
	}

	resp = performRequest(t, http.MethodGet, "/orders/:id/receipt", "/orders/8/receipt", handler.Receipt, as(customer), nil, nil)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "GCW-20250726-000001") {
		t.Fatalf("unexpected receipt response %d %s", resp.Code, resp.Body.String())
	}
}

func TestPaymentHandler(t *testing.T) {
	var confirmation model.PaymentConfirmation
	handler := NewPaymentHandler(testhelpers.PaymentFacadeStub{
		VerifyFn: func(_ context.Context, c model.PaymentConfirmation) (*model.Order, error) {
			confirmation = c
			if c.Signature != "good" {
				return nil, domainErrors.New(domainErrors.ErrVerificationFailed, "payment signature mismatch")
			}
			return &model.Order{ID: c.OrderID, Status: model.OrderStatusPaid}, nil
		},
	})

	resp := performRequest(t, http.MethodPost, "/orders/:id/payment-intent", "/orders/3/payment-intent", handler.CreateIntent, as(customer), []byte(`{"amount":"35.00"}`), jsonType)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var intent dto.PaymentIntentResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &intent); err != nil {
		t.Fatalf("decode intent: %v", err)
	}
	if intent.OrderID != 3 || intent.Amount != "35.00" || intent.GatewayOrderRef == "" {
		t.Fatalf("unexpected intent %+v", intent)
	}

	body := []byte(`{"order_id":3,"gateway_order_ref":"order_1","gateway_payment_ref":"pay_1","signature":"good"}`)
	resp = performRequest(t, http.MethodPost, "/verify", "/verify", handler.Verify, nil, body, jsonType)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"Paid"`) {
		t.Fatalf("unexpected verify response %d %s", resp.Code, resp.Body.String())
	}
	if confirmation.GatewayPaymentRef != "pay_1" || confirmation.GatewayOrderRef != "order_1" {
		t.Fatalf("unexpected confirmation %+v", confirmation)
	}

	body = []byte(`{"order_id":3,"gateway_order_ref":"order_1","gateway_payment_ref":"pay_1","signature":"forged"}`)
	resp = performRequest(t, http.MethodPost, "/verify", "/verify", handler.Verify, nil, body, jsonType)
	if resp.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d", resp.Code)
	}
	if strings.Contains(resp.Body.String(), "forged") {
		t.Fatalf("signature echoed in error body: %s", resp.Body.String())
	}
}

func TestRatingHandler(t *testing.T) {
	handler := NewRatingHandler(testhelpers.RatingFacadeStub{
		ListFn: func(_ context.Context, identity model.Identity) ([]model.Rating, error) {
			if identity.Role == model.RoleAdmin {
				return nil, domainErrors.New(domainErrors.ErrForbidden, "ratings are listed per customer or washer")
			}
			return []model.Rating{{ID: 1, Stars: 4}}, nil
		},
	})

	body, _ := json.Marshal(dto.RatingRequest{OrderID: 3, Stars: 9, Comment: "great"})
	resp := performRequest(t, http.MethodPost, "/ratings", "/ratings", handler.Submit, as(customer), body, jsonType)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	var rating dto.RatingResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &rating); err != nil || rating.Stars != 5 {
		t.Fatalf("unexpected rating %s: %v", resp.Body.String(), err)
	}

	resp = performRequest(t, http.MethodGet, "/ratings", "/ratings", handler.List, as(washer), nil, nil)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"stars":4`) {
		t.Fatalf("unexpected list %d %s", resp.Code, resp.Body.String())
	}

	resp = performRequest(t, http.MethodGet, "/ratings", "/ratings", handler.List, as(model.Identity{UserID: 1, Role: model.RoleAdmin}), nil, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

type healthStub struct{ err error }

func (h healthStub) HealthCheck(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("health check without deadline")
	}
	return h.err
}

func TestHealthHandler(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/healthz", "/healthz", NewHealthHandler(healthStub{}).Check, nil, nil, nil)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"ok"`) {
		t.Fatalf("unexpected healthy response %d %s", resp.Code, resp.Body.String())
	}

	resp = performRequest(t, http.MethodGet, "/healthz", "/healthz", NewHealthHandler(healthStub{err: errors.New("dial tcp")}).Check, nil, nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
	if body := decodeError(t, resp); body.Code != middleware.CodeUnavailable {
		t.Fatalf("unexpected body %+v", body)
	}
}
