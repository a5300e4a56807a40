package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/harrylevesque/storefront/internal/auth"
	"github.com/harrylevesque/storefront/internal/metrics"
	"github.com/harrylevesque/storefront/internal/models"
	"github.com/harrylevesque/storefront/internal/shop"
	"github.com/harrylevesque/storefront/internal/utils"
)

type messageBody struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
	Token   string `json:"token,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Handlers struct {
	svc     *shop.Service
	metrics *metrics.Metrics
	log     logrus.FieldLogger
}

func NewHandlers(svc *shop.Service, m *metrics.Metrics, log logrus.FieldLogger) *Handlers {
	return &Handlers{svc: svc, metrics: m, log: log}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageBody{Message: msg})
}

func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := utils.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.log.WithError(err).WithField("path", r.URL.Path).Error("internal error")
	}
	writeJSON(w, status, errorBody{
		Code:    string(utils.KindOf(err)),
		Message: utils.MessageOf(err),
	})
}

// decodeJSON reads the request body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return utils.Wrap(utils.KindMalformedJSON, "Malformed JSON body.", err)
}

func token(r *http.Request) auth.Token {
	return auth.ExtractToken(r)
}

// ===== Users =====

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	u, err := h.svc.Register(req.Email, req.Password, req.IsAdmin)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageBody{Message: "Registered successfully.", ID: u.ID})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	sess, err := h.svc.Login(token(r), req.Email, req.Password)
	h.metrics.RecordLogin(err == nil)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Logged in successfully", Token: string(sess.Token)})
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(token(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handlers) PromoteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.PromoteUser(token(r), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "User set as admin successfully")
}

// ===== Products =====

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req shop.NewProduct
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	p, err := h.svc.CreateProduct(token(r), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageBody{Message: "Product created successfully.", ID: p.ID})
}

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListProducts())
}

func (h *Handlers) ListActiveProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListActiveProducts())
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProduct(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var patch models.ProductPatch
	if err := decodeJSON(r, &patch); err != nil {
		h.writeError(w, r, err)
		return
	}
	if _, err := h.svc.UpdateProduct(token(r), mux.Vars(r)["id"], patch); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Product updated successfully.")
}

func (h *Handlers) ArchiveProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ArchiveProduct(token(r), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Product archived successfully.")
}

// ===== Orders =====

func (h *Handlers) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req shop.OrderRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	o, err := h.svc.PlaceOrder(token(r), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.metrics.RecordOrder()
	writeJSON(w, http.StatusCreated, messageBody{Message: "Your order has been placed successfully.", ID: o.ID})
}

func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListOrders(token(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// ===== Cart =====

type cartRequest struct {
	ProductID string          `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.svc.AddToCart(token(r), req.ProductID, req.Quantity); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.metrics.RecordCartChange("add")
	writeMessage(w, http.StatusOK, "Product added to cart.")
}

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.svc.GetCart(token(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handlers) SetCartQuantity(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.svc.SetCartQuantity(token(r), mux.Vars(r)["productId"], req.Quantity); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.metrics.RecordCartChange("set_quantity")
	writeMessage(w, http.StatusOK, "Cart item quantity updated.")
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveFromCart(token(r), mux.Vars(r)["productId"]); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.metrics.RecordCartChange("remove")
	writeMessage(w, http.StatusOK, "Product removed from cart")
}

func (h *Handlers) CartSubtotal(w http.ResponseWriter, r *http.Request) {
	subtotal, err := h.svc.CartSubtotal(token(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"subtotal": subtotal,
		"message":  "Subtotal: $" + subtotal,
	})
}

func (h *Handlers) CartTotal(w http.ResponseWriter, r *http.Request) {
	total, err := h.svc.CartTotal(token(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"total":   total,
		"message": "Total: $" + total,
	})
}
