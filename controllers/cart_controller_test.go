package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/IonPetrascu/pizza-backend/configs"
	"github.com/IonPetrascu/pizza-backend/entity"
	"github.com/IonPetrascu/pizza-backend/routes"
	"github.com/IonPetrascu/pizza-backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	cfg    *configs.Config

	pepperoni  entity.Product
	mozzarella entity.Ingredient
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Category{}, &entity.Product{}, &entity.Ingredient{},
		&entity.Cart{}, &entity.CartItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ts := &testServer{
		db:         db,
		cfg:        &configs.Config{JWTSecret: "test-secret", JWTTTL: time.Hour},
		pepperoni:  entity.Product{Name: "Pepperoni", Price: 500},
		mozzarella: entity.Ingredient{Name: "Mozzarella", Price: 100},
	}
	if err := db.Create(&ts.pepperoni).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if err := db.Create(&ts.mozzarella).Error; err != nil {
		t.Fatalf("seed ingredient: %v", err)
	}

	ts.router = gin.New()
	routes.RegisterRoutes(ts.router, db, ts.cfg)
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return m
}

// addGuestItem posts one pepperoni+mozzarella and returns the cart
// token with the new item's id.
func (ts *testServer) addGuestItem(t *testing.T) (token string, itemID uint) {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/v1/cart", gin.H{
		"productId":   ts.pepperoni.ID,
		"ingredients": []uint{ts.mozzarella.ID},
		"quantity":    1,
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("POST /cart = %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	token, _ = body["token"].(string)
	if token == "" {
		t.Fatal("POST /cart returned no token")
	}
	cart := body["cart"].(map[string]any)
	items := cart["items"].([]any)
	itemID = uint(items[0].(map[string]any)["ID"].(float64))
	return token, itemID
}

func TestGuestGetCartIssuesToken(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/v1/cart", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /cart = %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if tok, _ := body["token"].(string); tok == "" {
		t.Error("fresh guest should receive a cart token")
	}
}

func TestGuestAddAndReadBack(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.addGuestItem(t)

	w := ts.do(t, http.MethodGet, "/api/v1/cart", nil, map[string]string{"X-Cart-Token": token})
	if w.Code != http.StatusOK {
		t.Fatalf("GET /cart = %d: %s", w.Code, w.Body.String())
	}
	cart := decode(t, w)
	if got := cart["totalAmount"].(float64); got != 600 {
		t.Errorf("totalAmount = %v, want 600", got)
	}
}

func TestForeignTokenCannotMutateItem(t *testing.T) {
	ts := newTestServer(t)
	_, itemID := ts.addGuestItem(t)
	otherToken, _ := ts.addGuestItem(t)

	w := ts.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/cart/%d", itemID),
		gin.H{"quantity": 5}, map[string]string{"X-Cart-Token": otherToken})
	if w.Code != http.StatusForbidden {
		t.Errorf("PATCH with foreign token = %d, want 403", w.Code)
	}

	w = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/cart/%d", itemID),
		nil, map[string]string{"X-Cart-Token": otherToken})
	if w.Code != http.StatusForbidden {
		t.Errorf("DELETE with foreign token = %d, want 403", w.Code)
	}
}

func TestPatchUnknownItemIsNotFound(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.addGuestItem(t)

	w := ts.do(t, http.MethodPatch, "/api/v1/cart/9999",
		gin.H{"quantity": 2}, map[string]string{"X-Cart-Token": token})
	if w.Code != http.StatusNotFound {
		t.Errorf("PATCH unknown item = %d, want 404", w.Code)
	}
}

func TestUserIDQueryRequiresBearer(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/v1/cart?userId=1", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("GET /cart?userId without bearer = %d, want 401", w.Code)
	}
}

func TestUserIDQueryMismatchForbidden(t *testing.T) {
	ts := newTestServer(t)

	token, err := utils.GenerateToken(1, "ion@test.ru", "USER", ts.cfg.JWTSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := ts.do(t, http.MethodGet, "/api/v1/cart?userId=2", nil,
		map[string]string{"Authorization": "Bearer " + token})
	if w.Code != http.StatusForbidden {
		t.Errorf("userId mismatch = %d, want 403", w.Code)
	}
}

func TestInvalidBearerNeverFallsBackToGuest(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.addGuestItem(t)

	// the cart token alone would be enough, but a bad bearer is fatal
	w := ts.do(t, http.MethodGet, "/api/v1/cart", nil, map[string]string{
		"Authorization": "Bearer not-a-jwt",
		"X-Cart-Token":  token,
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("invalid bearer = %d, want 401", w.Code)
	}
}

func TestCartAllRequiresAdmin(t *testing.T) {
	ts := newTestServer(t)

	if w := ts.do(t, http.MethodGet, "/api/v1/cart/all", nil, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous /cart/all = %d, want 401", w.Code)
	}

	userToken, _ := utils.GenerateToken(1, "ion@test.ru", "USER", ts.cfg.JWTSecret, time.Hour)
	if w := ts.do(t, http.MethodGet, "/api/v1/cart/all", nil,
		map[string]string{"Authorization": "Bearer " + userToken}); w.Code != http.StatusForbidden {
		t.Errorf("USER /cart/all = %d, want 403", w.Code)
	}

	adminToken, _ := utils.GenerateToken(1, "admin@test.ru", "ADMIN", ts.cfg.JWTSecret, time.Hour)
	if w := ts.do(t, http.MethodGet, "/api/v1/cart/all", nil,
		map[string]string{"Authorization": "Bearer " + adminToken}); w.Code != http.StatusOK {
		t.Errorf("ADMIN /cart/all = %d, want 200", w.Code)
	}
}

func TestLoginMergesGuestCart(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/auth/register", gin.H{
		"fullName": "Ion Petrascu",
		"email":    "ion@test.ru",
		"password": "secret123",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register = %d: %s", w.Code, w.Body.String())
	}

	guestToken, _ := ts.addGuestItem(t)

	w = ts.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":     "ion@test.ru",
		"password":  "secret123",
		"cartToken": guestToken,
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login = %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	bearer := body["token"].(string)
	finalToken := body["cartToken"].(string)
	if finalToken == guestToken {
		t.Error("login should reply with the user cart's token, not the guest one")
	}

	// the guest item now lives in the user cart
	w = ts.do(t, http.MethodGet, "/api/v1/cart", nil,
		map[string]string{"Authorization": "Bearer " + bearer})
	if w.Code != http.StatusOK {
		t.Fatalf("GET /cart after login = %d: %s", w.Code, w.Body.String())
	}
	cart := decode(t, w)
	if got := cart["totalAmount"].(float64); got != 600 {
		t.Errorf("merged totalAmount = %v, want 600", got)
	}

	// and the guest cart is gone
	var count int64
	ts.db.Model(&entity.Cart{}).Where("token = ?", guestToken).Count(&count)
	if count != 0 {
		t.Error("guest cart should be deleted after the merge")
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	ts := newTestServer(t)

	payload := gin.H{"fullName": "Ion", "email": "ion@test.ru", "password": "secret123"}
	if w := ts.do(t, http.MethodPost, "/api/v1/auth/register", payload, nil); w.Code != http.StatusCreated {
		t.Fatalf("register = %d: %s", w.Code, w.Body.String())
	}
	if w := ts.do(t, http.MethodPost, "/api/v1/auth/register", payload, nil); w.Code != http.StatusConflict {
		t.Errorf("duplicate register = %d, want 409", w.Code)
	}
}
