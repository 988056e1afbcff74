package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"smartcart/internal/service"
	"smartcart/internal/storage"
)

type Handler struct {
	Sessions service.SessionServiceInterface
	QR       service.QRGenerator
}

func NewHandler(sessions service.SessionServiceInterface, qr service.QRGenerator) *Handler {
	return &Handler{Sessions: sessions, QR: qr}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/products", h.listProducts).Methods("GET")

	r.HandleFunc("/api/session", h.currentSession).Methods("GET")
	r.HandleFunc("/api/sessions", h.startSession).Methods("POST")
	r.HandleFunc("/api/sessions/{sessionId}/items", h.addItem).Methods("POST")
	r.HandleFunc("/api/sessions/{sessionId}/checkout", h.checkout).Methods("POST")

	r.HandleFunc("/api/items/{itemId}", h.updateQuantity).Methods("PATCH")
	r.HandleFunc("/api/items/{itemId}", h.removeItem).Methods("DELETE")

	r.HandleFunc("/api/users/{userId}/orders", h.orderHistory).Methods("GET")
	r.HandleFunc("/api/carts/{cartId}/qrcode", h.cartQRCode).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "smartcart",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Sessions.ListProducts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(products)
}

func (h *Handler) currentSession(w http.ResponseWriter, r *http.Request) {
	snap := h.Sessions.Current()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		CartCode string `json:"cartCode"`
		UserID   string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if payload.CartCode == "" || payload.UserID == "" {
		http.Error(w, "Missing cartCode or userId", http.StatusBadRequest)
		return
	}

	cartID := service.ParseCartCode(payload.CartCode)
	session, err := h.Sessions.StartSession(r.Context(), cartID, payload.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(session)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]
	var payload struct {
		Barcode string `json:"barcode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Barcode == "" {
		http.Error(w, "Missing barcode", http.StatusBadRequest)
		return
	}

	item, err := h.Sessions.AddItem(r.Context(), payload.Barcode, sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["itemId"]
	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Sessions.UpdateQuantity(r.Context(), itemID, payload.Quantity); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["itemId"]
	if err := h.Sessions.RemoveItem(r.Context(), itemID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]
	var payload struct {
		PaymentMethod  string  `json:"paymentMethod"`
		DiscountAmount float64 `json:"discountAmount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if payload.PaymentMethod == "" {
		http.Error(w, "Missing paymentMethod", http.StatusBadRequest)
		return
	}

	order, err := h.Sessions.Checkout(r.Context(), sessionID, payload.PaymentMethod, payload.DiscountAmount)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(order)
}

func (h *Handler) orderHistory(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	orders, err := h.Sessions.OrderHistory(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

func (h *Handler) cartQRCode(w http.ResponseWriter, r *http.Request) {
	cartID := mux.Vars(r)["cartId"]
	png, err := h.QR.Encode(cartID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(png)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrCartNotFound),
		errors.Is(err, service.ErrProductNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrCartUnavailable),
		errors.Is(err, service.ErrSessionAlreadyActive),
		errors.Is(err, service.ErrNoActiveSession):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrNegativeDiscount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, storage.ErrNotConfigured):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, storage.ErrRemoteUnavailable),
		errors.Is(err, storage.ErrRemoteRejected):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
