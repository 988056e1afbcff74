package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpapi "smartcart/internal/api/http"
	"smartcart/internal/domain"
	"smartcart/internal/mocks"
	"smartcart/internal/service"
	"smartcart/internal/state"
	"smartcart/internal/storage"
)

func setupTestRouter(mockSvc *mocks.SessionServiceInterface) *mux.Router {
	handler := &httpapi.Handler{Sessions: mockSvc, QR: service.CartQRGenerator{}}
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestHandler_startSession(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		prepareMocks func(mockSvc *mocks.SessionServiceInterface)
		expectedCode int
		expectedBody string
	}{
		{
			name:    "success",
			payload: `{"cartCode":"CART_002","userId":"u1"}`,
			prepareMocks: func(mockSvc *mocks.SessionServiceInterface) {
				mockSvc.On("StartSession", mock.Anything, "CART_002", "u1").
					Return(&domain.ShoppingSession{SessionID: "sess-1", CartID: "CART_002", Status: domain.SessionActive}, nil).Once()
			},
			expectedCode: http.StatusCreated,
			expectedBody: `"sessionId":"sess-1"`,
		},
		{
			name:    "qr_payload_is_unwrapped",
			payload: `{"cartCode":"smartcart://cart/CART_002","userId":"u1"}`,
			prepareMocks: func(mockSvc *mocks.SessionServiceInterface) {
				mockSvc.On("StartSession", mock.Anything, "CART_002", "u1").
					Return(&domain.ShoppingSession{SessionID: "sess-1"}, nil).Once()
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "invalid_json",
			payload:      `bad json`,
			prepareMocks: func(mockSvc *mocks.SessionServiceInterface) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing_fields",
			payload:      `{"cartCode":"","userId":""}`,
			prepareMocks: func(mockSvc *mocks.SessionServiceInterface) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "cart_not_found",
			payload: `{"cartCode":"CART_404","userId":"u1"}`,
			prepareMocks: func(mockSvc *mocks.SessionServiceInterface) {
				mockSvc.On("StartSession", mock.Anything, "CART_404", "u1").
					Return(nil, service.ErrCartNotFound).Once()
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:    "cart_in_use",
			payload: `{"cartCode":"CART_002","userId":"u1"}`,
			prepareMocks: func(mockSvc *mocks.SessionServiceInterface) {
				mockSvc.On("StartSession", mock.Anything, "CART_002", "u1").
					Return(nil, service.ErrCartUnavailable).Once()
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:    "already_active",
			payload: `{"cartCode":"CART_002","userId":"u1"}`,
			prepareMocks: func(mockSvc *mocks.SessionServiceInterface) {
				mockSvc.On("StartSession", mock.Anything, "CART_002", "u1").
					Return(nil, service.ErrSessionAlreadyActive).Once()
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:    "store_not_configured",
			payload: `{"cartCode":"CART_002","userId":"u1"}`,
			prepareMocks: func(mockSvc *mocks.SessionServiceInterface) {
				mockSvc.On("StartSession", mock.Anything, "CART_002", "u1").
					Return(nil, &storage.StoreError{Op: "query", Resource: "carts", Kind: storage.ErrNotConfigured}).Once()
			},
			expectedCode: http.StatusServiceUnavailable,
		},
		{
			name:    "store_unreachable",
			payload: `{"cartCode":"CART_002","userId":"u1"}`,
			prepareMocks: func(mockSvc *mocks.SessionServiceInterface) {
				mockSvc.On("StartSession", mock.Anything, "CART_002", "u1").
					Return(nil, &storage.StoreError{Op: "query", Resource: "carts", Kind: storage.ErrRemoteUnavailable}).Once()
			},
			expectedCode: http.StatusBadGateway,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockSvc := mocks.NewSessionServiceInterface(t)
			router := setupTestRouter(mockSvc)
			testCase.prepareMocks(mockSvc)

			req := httptest.NewRequest("POST", "/api/sessions", bytes.NewBufferString(testCase.payload))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandler_addItem(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		prepareMocks func(mockSvc *mocks.SessionServiceInterface)
		expectedCode int
	}{
		{
			name:    "success",
			payload: `{"barcode":"0001"}`,
			prepareMocks: func(mockSvc *mocks.SessionServiceInterface) {
				mockSvc.On("AddItem", mock.Anything, "0001", "sess-1").
					Return(&domain.SessionItem{ItemID: "i1", Quantity: 1}, nil).Once()
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "missing_barcode",
			payload:      `{"barcode":""}`,
			prepareMocks: func(mockSvc *mocks.SessionServiceInterface) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "product_not_found",
			payload: `{"barcode":"9999"}`,
			prepareMocks: func(mockSvc *mocks.SessionServiceInterface) {
				mockSvc.On("AddItem", mock.Anything, "9999", "sess-1").
					Return(nil, service.ErrProductNotFound).Once()
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:    "no_active_session",
			payload: `{"barcode":"0001"}`,
			prepareMocks: func(mockSvc *mocks.SessionServiceInterface) {
				mockSvc.On("AddItem", mock.Anything, "0001", "sess-1").
					Return(nil, service.ErrNoActiveSession).Once()
			},
			expectedCode: http.StatusConflict,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockSvc := mocks.NewSessionServiceInterface(t)
			router := setupTestRouter(mockSvc)
			testCase.prepareMocks(mockSvc)

			req := httptest.NewRequest("POST", "/api/sessions/sess-1/items", bytes.NewBufferString(testCase.payload))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
		})
	}
}

func TestHandler_updateAndRemoveItem(t *testing.T) {
	t.Run("patch_quantity", func(t *testing.T) {
		mockSvc := mocks.NewSessionServiceInterface(t)
		router := setupTestRouter(mockSvc)

		mockSvc.On("UpdateQuantity", mock.Anything, "i1", 5).Return(nil).Once()

		req := httptest.NewRequest("PATCH", "/api/items/i1", bytes.NewBufferString(`{"quantity":5}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})

	t.Run("delete_item", func(t *testing.T) {
		mockSvc := mocks.NewSessionServiceInterface(t)
		router := setupTestRouter(mockSvc)

		mockSvc.On("RemoveItem", mock.Anything, "i1").Return(nil).Once()

		req := httptest.NewRequest("DELETE", "/api/items/i1", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})
}

func TestHandler_checkout(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := mocks.NewSessionServiceInterface(t)
		router := setupTestRouter(mockSvc)

		mockSvc.On("Checkout", mock.Anything, "sess-1", "cash", 5.0).
			Return(&domain.Order{OrderID: "o1", FinalAmount: 45.0}, nil).Once()

		body := `{"paymentMethod":"cash","discountAmount":5.0}`
		req := httptest.NewRequest("POST", "/api/sessions/sess-1/checkout", bytes.NewBufferString(body))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"finalAmount":45`)
	})

	t.Run("negative_discount", func(t *testing.T) {
		mockSvc := mocks.NewSessionServiceInterface(t)
		router := setupTestRouter(mockSvc)

		mockSvc.On("Checkout", mock.Anything, "sess-1", "cash", -1.0).
			Return(nil, service.ErrNegativeDiscount).Once()

		body := `{"paymentMethod":"cash","discountAmount":-1.0}`
		req := httptest.NewRequest("POST", "/api/sessions/sess-1/checkout", bytes.NewBufferString(body))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("missing_payment_method", func(t *testing.T) {
		mockSvc := mocks.NewSessionServiceInterface(t)
		router := setupTestRouter(mockSvc)

		req := httptest.NewRequest("POST", "/api/sessions/sess-1/checkout", bytes.NewBufferString(`{}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestHandler_currentSession(t *testing.T) {
	mockSvc := mocks.NewSessionServiceInterface(t)
	router := setupTestRouter(mockSvc)

	mockSvc.On("Current").Return(state.Snapshot{
		Session: &domain.ShoppingSession{SessionID: "sess-1", Status: domain.SessionActive},
		Items:   []domain.SessionItem{{ItemID: "i1", Quantity: 2}},
	}).Once()

	req := httptest.NewRequest("GET", "/api/session", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var snap state.Snapshot
	assert.NoError(t, json.NewDecoder(recorder.Body).Decode(&snap))
	assert.Equal(t, "sess-1", snap.Session.SessionID)
	assert.Len(t, snap.Items, 1)
}

func TestHandler_listProducts(t *testing.T) {
	mockSvc := mocks.NewSessionServiceInterface(t)
	router := setupTestRouter(mockSvc)

	mockSvc.On("ListProducts", mock.Anything).Return([]domain.Product{
		{ProductID: "p1", Barcode: "0001", Name: "Milk", Price: 10.0},
	}, nil).Once()

	req := httptest.NewRequest("GET", "/api/products", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var products []domain.Product
	assert.NoError(t, json.NewDecoder(recorder.Body).Decode(&products))
	assert.Len(t, products, 1)
}

func TestHandler_orderHistory(t *testing.T) {
	mockSvc := mocks.NewSessionServiceInterface(t)
	router := setupTestRouter(mockSvc)

	mockSvc.On("OrderHistory", mock.Anything, "u1").Return([]domain.Order{
		{OrderID: "o1", UserID: "u1", FinalAmount: 45.0},
	}, nil).Once()

	req := httptest.NewRequest("GET", "/api/users/u1/orders", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"orderId":"o1"`)
}

func TestHandler_cartQRCode(t *testing.T) {
	mockSvc := mocks.NewSessionServiceInterface(t)
	router := setupTestRouter(mockSvc)

	req := httptest.NewRequest("GET", "/api/carts/CART_002/qrcode", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "image/png", recorder.Header().Get("Content-Type"))
	assert.NotEmpty(t, recorder.Body.Bytes())
}
