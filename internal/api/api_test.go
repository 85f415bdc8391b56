package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boticaplus/backend/internal/auth"
	"github.com/boticaplus/backend/internal/domain"
	"github.com/boticaplus/backend/internal/repository"
	"github.com/boticaplus/backend/internal/service"
	"github.com/boticaplus/backend/internal/storage"
)

type fakeSalesRepo struct{}

func (fakeSalesRepo) GetSalesInRange(ctx context.Context, start, end time.Time) ([]domain.SaleRecord, error) {
	return []domain.SaleRecord{
		{
			ID:            "s1",
			CreatedAt:     end.Add(-time.Hour),
			Status:        domain.SaleStatusCompleted,
			TotalAmount:   250,
			PaymentMethod: domain.PaymentGCash,
		},
	}, nil
}

func (fakeSalesRepo) GetLineItems(ctx context.Context, saleIDs []string) (map[string][]domain.SaleLineItem, error) {
	return map[string][]domain.SaleLineItem{}, nil
}

type fakeProductRepo struct{}

func (fakeProductRepo) GetProducts(ctx context.Context) ([]domain.Product, error) {
	return []domain.Product{
		{ID: "p1", Name: "Paracetamol 500mg", PricePerPiece: 5, StockInPieces: 100},
	}, nil
}

type fakeUserRepo struct {
	byID map[string]domain.User
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user domain.User, audit domain.ActivityLog) error {
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := r.byID[id]; ok {
		return &u, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	for _, u := range r.byID {
		users = append(users, u)
	}
	return users, nil
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, user domain.User, audit domain.ActivityLog) error {
	if _, ok := r.byID[user.ID]; !ok {
		return repository.ErrNotFound
	}
	r.byID[user.ID] = user
	return nil
}

type fakeActivityRepo struct {
	entries []domain.ActivityLog
}

func (r *fakeActivityRepo) InsertActivity(ctx context.Context, entry domain.ActivityLog) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeActivityRepo) ListActivity(ctx context.Context, limit, offset int) ([]domain.ActivityLog, int, error) {
	return r.entries, len(r.entries), nil
}

type fakeStore struct {
	objects []storage.ObjectInfo
	uploads []string
}

func (s *fakeStore) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	return s.objects, nil
}

func (s *fakeStore) DownloadObject(ctx context.Context, key, destPath string) error {
	return nil
}

func (s *fakeStore) UploadObject(ctx context.Context, key, contentType string, data []byte) error {
	s.uploads = append(s.uploads, key)
	return nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *auth.Manager) {
	t.Helper()
	router, manager, _ := newTestRouterWithStore(t, nil)
	return router, manager
}

func newTestRouterWithStore(t *testing.T, store storage.ObjectStorage) (*gin.Engine, *auth.Manager, *fakeActivityRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager := auth.NewManager("test-secret", time.Hour)
	activityRepo := &fakeActivityRepo{}
	services := &Services{
		ReportService:   service.NewReportService(fakeSalesRepo{}, fakeProductRepo{}, nil),
		UserService:     service.NewUserService(&fakeUserRepo{byID: map[string]domain.User{}}),
		ActivityService: service.NewActivityService(activityRepo),
		AuthManager:     manager,
		Store:           store,
	}

	return NewRouter(services, nil), manager, activityRepo
}

func tokenFor(t *testing.T, manager *auth.Manager, role domain.UserRole) string {
	t.Helper()
	token, _, err := manager.GenerateToken(domain.User{
		ID:       "u1",
		Username: "maria",
		Role:     role,
	})
	require.NoError(t, err)
	return token
}

func TestHealthEndpointIsPublic(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestReportsRequireAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/sales", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSalesReportWithToken(t *testing.T) {
	router, manager := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/sales?range=7days", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, manager, domain.RoleCashier))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"total_revenue":250`)
	assert.Contains(t, body, `"gcash"`)
}

func TestExportStreamsCSV(t *testing.T) {
	router, manager := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/sales/export?format=csv", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, manager, domain.RolePharmacist))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Disposition"), "attachment"))
	assert.Contains(t, w.Body.String(), "Total Revenue,250.00")
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	router, manager := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/sales/export?format=xlsx", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, manager, domain.RoleAdmin))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserRoutesAreAdminOnly(t *testing.T) {
	router, manager := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, manager, domain.RoleCashier))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req.Header.Set("Authorization", "Bearer "+tokenFor(t, manager, domain.RoleAdmin))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExportsListingIsAdminOnly(t *testing.T) {
	store := &fakeStore{objects: []storage.ObjectInfo{
		{Key: "exports/sales_report_2025-03-09_2025-03-15.csv", Size: 512},
	}}
	router, manager, _ := newTestRouterWithStore(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/exports", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, manager, domain.RolePharmacist))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req.Header.Set("Authorization", "Bearer "+tokenFor(t, manager, domain.RoleAdmin))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"exports/sales_report_2025-03-09_2025-03-15.csv"`)
	assert.Contains(t, body, `"count":1`)
}

func TestExportsListingWithoutStore(t *testing.T) {
	router, manager := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/exports", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, manager, domain.RoleAdmin))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestExportStoreUploadsToObjectStorage(t *testing.T) {
	store := &fakeStore{}
	router, manager, _ := newTestRouterWithStore(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/sales/export?format=csv&store=true", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, manager, domain.RoleAdmin))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.uploads, 1)
	assert.True(t, strings.HasPrefix(store.uploads[0], "exports/"))
}

func TestLoginRejectsBadPayload(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
