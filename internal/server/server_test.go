package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"live-market/config"
	"live-market/internal/handler"
	"live-market/internal/repository"
	"live-market/internal/services"
	"live-market/internal/testutil"
	"live-market/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	t       *testing.T
	handler http.Handler
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	db := testutil.OpenTestDB(t)
	cfg := &config.Config{AppPort: "0", AppMode: TestMode, JWTSecret: "test-secret", JWTExpiryMin: 60}

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, cfg)

	srv := New(cfg, logger.NewNop())
	srv.SetupRoutes(&Handlers{
		Chat:    handler.NewChatHandler(services.NewChatService(repository.NewChatRepository(db), userRepo, nil)),
		Stream:  handler.NewStreamHandler(services.NewStreamService(repository.NewStreamRepository(db), userRepo, nil, nil)),
		Product: handler.NewProductHandler(services.NewProductService(repository.NewProductRepository(db))),
		User:    handler.NewUserHandler(authService),
		Upload:  handler.NewUploadHandler(services.NewUploadService(nil)),
	}, authService, nil)

	return &testAPI{t: t, handler: srv.Handler()}
}

func (a *testAPI) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w, out
}

// register creates an account and returns its token and id.
func (a *testAPI) register(name string) (string, uint64) {
	a.t.Helper()
	w, body := a.do(http.MethodPost, "/users", "", map[string]string{
		"name":     name,
		"email":    name + "@example.com",
		"password": "password123",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	u := body["user"].(map[string]interface{})
	return body["token"].(string), uint64(u["id"].(float64))
}

func TestRouting_EnvelopesForUnknownRouteAndVerb(t *testing.T) {
	api := newTestAPI(t)

	w, body := api.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "NOT_FOUND", body["code"])

	w, body = api.do(http.MethodPut, "/chat", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "METHOD_NOT_ALLOWED", body["code"])

	w, body = api.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestAuth_RequiredAndRevoked(t *testing.T) {
	api := newTestAPI(t)

	w, body := api.do(http.MethodGet, "/chat", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, body["ok"])

	w, _ = api.do(http.MethodGet, "/chat", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, id := api.register("ada")
	w, body = api.do(http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := body["profile"].(map[string]interface{})
	assert.Equal(t, float64(id), profile["id"])
	assert.Equal(t, "ada", profile["name"])

	w, _ = api.do(http.MethodPost, "/users/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = api.do(http.MethodGet, "/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body = api.do(http.MethodPost, "/users/login", "", map[string]string{"email": "ada@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, body["token"])
}

func TestChatRoutes(t *testing.T) {
	api := newTestAPI(t)
	buyerToken, buyerID := api.register("buyer")
	sellerToken, sellerID := api.register("seller")
	outsiderToken, _ := api.register("outsider")

	pair := map[string]uint64{"buyerId": buyerID, "sellerId": sellerID}

	w, body := api.do(http.MethodPost, "/chat", buyerToken, pair)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := body["createChat"].(map[string]interface{})
	assert.Nil(t, body["chatRoomList"])
	roomID := uint64(created["id"].(float64))

	w, body = api.do(http.MethodPost, "/chat", sellerToken, map[string]uint64{"buyerId": sellerID, "sellerId": buyerID})
	require.Equal(t, http.StatusOK, w.Code)
	existing := body["chatRoomList"].(map[string]interface{})
	assert.Equal(t, float64(roomID), existing["id"])

	w, _ = api.do(http.MethodPost, "/chat", outsiderToken, pair)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = api.do(http.MethodPost, "/chat", buyerToken, map[string]uint64{"buyerId": buyerID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = api.do(http.MethodPost, fmt.Sprintf("/chat/%d/messages", roomID), buyerToken, map[string]string{"message": "hello"})
	require.Equal(t, http.StatusCreated, w.Code)

	w, body = api.do(http.MethodGet, "/chat", sellerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	rooms := body["chatRoomList"].([]interface{})
	require.Len(t, rooms, 1)
	room := rooms[0].(map[string]interface{})
	recent := room["recentMsg"].(map[string]interface{})
	assert.Equal(t, "hello", recent["chatMsg"])
	assert.Equal(t, true, recent["isNew"])
	assert.Equal(t, "buyer", room["buyer"].(map[string]interface{})["name"])

	w, body = api.do(http.MethodGet, fmt.Sprintf("/chat/%d/messages", roomID), sellerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["messages"], 1)

	w, body = api.do(http.MethodGet, "/chat", buyerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	recent = body["chatRoomList"].([]interface{})[0].(map[string]interface{})["recentMsg"].(map[string]interface{})
	assert.Equal(t, false, recent["isNew"], "seller has read it")

	w, body = api.do(http.MethodDelete, "/chat?roomId=9999", buyerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), body["delChatRoom"].(map[string]interface{})["count"])

	w, _ = api.do(http.MethodDelete, "/chat?roomId=abc", buyerToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = api.do(http.MethodDelete, fmt.Sprintf("/chat?roomId=%d", roomID), buyerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["delChatRoom"].(map[string]interface{})["count"])
}

func TestStreamRoutes(t *testing.T) {
	api := newTestAPI(t)
	sellerToken, sellerID := api.register("seller")
	viewerToken, viewerID := api.register("viewer")

	w, body := api.do(http.MethodPost, "/streams", sellerToken, map[string]interface{}{"name": "Sneaker drop", "price": 100})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	streamID := uint64(body["stream"].(map[string]interface{})["id"].(float64))
	path := fmt.Sprintf("/streams/%d", streamID)

	w, _ = api.do(http.MethodPost, path+"/messages", viewerToken, map[string]string{"message": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = api.do(http.MethodPost, path+"/messages", "", map[string]string{"message": "hi"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body = api.do(http.MethodPost, path+"/messages", viewerToken, map[string]string{"message": "hi"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "hi", body["message"].(map[string]interface{})["message"])

	w, body = api.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	st := body["stream"].(map[string]interface{})
	assert.Equal(t, "Sneaker drop", st["name"])
	assert.Equal(t, float64(sellerID), st["user"].(map[string]interface{})["id"])
	msgs := st["messages"].([]interface{})
	require.Len(t, msgs, 1)
	last := msgs[0].(map[string]interface{})
	assert.Equal(t, float64(viewerID), last["userId"])
	assert.Equal(t, "viewer", last["user"].(map[string]interface{})["name"])

	w, _ = api.do(http.MethodGet, "/streams/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = api.do(http.MethodGet, "/streams?page=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["streams"], 1)
}

func TestProductRoutes(t *testing.T) {
	api := newTestAPI(t)
	sellerToken, _ := api.register("seller")
	fanToken, _ := api.register("fan")

	w, body := api.do(http.MethodPost, "/products", sellerToken, map[string]interface{}{"name": "Camera", "price": 9000, "description": "mint"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	productID := uint64(body["products"].(map[string]interface{})["id"].(float64))

	w, body = api.do(http.MethodPost, fmt.Sprintf("/products/%d/fav", productID), fanToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["isLiked"])

	w, body = api.do(http.MethodGet, "/products?page=1", fanToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	item := body["products"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(1), item["favCount"])
	assert.Equal(t, true, item["isLiked"])

	w, body = api.do(http.MethodGet, "/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	item = body["products"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, false, item["isLiked"])

	w, body = api.do(http.MethodGet, "/profile/loved", fanToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["products"], 1)

	w, _ = api.do(http.MethodPost, "/products/4040/fav", fanToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadRoute_NotConfigured(t *testing.T) {
	api := newTestAPI(t)
	token, _ := api.register("uploader")

	w, body := api.do(http.MethodPost, "/uploads/images", token, map[string]interface{}{
		"kind": "product", "contentType": "image/png", "size": 100,
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "SERVICE_UNAVAILABLE", body["code"])
}

func TestCreateListing_PriceAsString(t *testing.T) {
	api := newTestAPI(t)
	token, _ := api.register("seller")

	w, body := api.do(http.MethodPost, "/products", token, map[string]interface{}{"name": "Camera", "price": "9000", "description": "mint"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, float64(9000), body["products"].(map[string]interface{})["price"])

	w, body = api.do(http.MethodPost, "/streams", token, map[string]interface{}{"name": "Sneaker drop", "price": " 120 "})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, float64(120), body["stream"].(map[string]interface{})["price"])

	w, body = api.do(http.MethodPost, "/products", token, map[string]interface{}{"name": "Camera", "price": "nine"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "price must be a number", body["error"])

	w, body = api.do(http.MethodPost, "/streams", token, map[string]interface{}{"name": "Drop", "price": 12.5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "price must be a number", body["error"])
}

func TestBindErrors_NameTheFailingField(t *testing.T) {
	api := newTestAPI(t)
	token, _ := api.register("seller")

	w, body := api.do(http.MethodPost, "/products", token, map[string]interface{}{"price": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "name is required", body["error"])
	assert.Equal(t, "INVALID_REQUEST", body["code"])

	w, body = api.do(http.MethodPost, "/chat", token, map[string]interface{}{"buyerId": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "sellerId is required", body["error"])

	w, body = api.do(http.MethodPost, "/chat", token, map[string]interface{}{"buyerId": "one", "sellerId": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "buyerId is invalid", body["error"])

	w, body = api.do(http.MethodPost, "/users/login", "", map[string]interface{}{"email": "a@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "password is required", body["error"])

	w, body = api.do(http.MethodDelete, "/chat", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "roomId is required", body["error"])
}
