package shop

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrylevesque/storefront/internal/auth"
	"github.com/harrylevesque/storefront/internal/models"
	"github.com/harrylevesque/storefront/internal/utils"
)

func newService(t *testing.T) *Service {
	t.Helper()
	return New(Options{AllowAdminSignup: true})
}

func login(t *testing.T, s *Service, email, password string) auth.Token {
	t.Helper()
	sess, err := s.Login("", email, password)
	require.NoError(t, err)
	return sess.Token
}

// adminAndShopper registers one admin and one regular user and logs both in.
func adminAndShopper(t *testing.T, s *Service) (admin, shopper auth.Token) {
	t.Helper()
	_, err := s.Register("admin@example.com", "root", true)
	require.NoError(t, err)
	_, err = s.Register("shopper@example.com", "pw", false)
	require.NoError(t, err)
	return login(t, s, "admin@example.com", "root"), login(t, s, "shopper@example.com", "pw")
}

func createProduct(t *testing.T, s *Service, admin auth.Token, name, price string) models.Product {
	t.Helper()
	p, err := s.CreateProduct(admin, NewProduct{Name: name, Price: decimal.RequireFromString(price)})
	require.NoError(t, err)
	return p
}

func qty(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func assertKind(t *testing.T, kind utils.Kind, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, utils.KindOf(err), err.Error())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := newService(t)
	_, err := s.Register("a@example.com", "pw", false)
	require.NoError(t, err)

	_, err = s.Register("a@example.com", "pw2", false)
	assertKind(t, utils.KindDuplicateEmail, err)
	assert.Equal(t, 1, s.accounts.Count())
}

func TestRegisterAdminFlagNeedsAdminSignup(t *testing.T) {
	s := New(Options{AllowAdminSignup: false})
	u, err := s.Register("a@example.com", "pw", true)
	require.NoError(t, err)
	assert.False(t, u.IsAdmin)
}

func TestLoginSetsSession(t *testing.T) {
	s := newService(t)
	_, err := s.Register("a@example.com", "pw", false)
	require.NoError(t, err)

	tok := login(t, s, "a@example.com", "pw")
	cart, err := s.GetCart(tok)
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestFailedLoginClearsPresentedSession(t *testing.T) {
	s := newService(t)
	_, err := s.Register("a@example.com", "pw", false)
	require.NoError(t, err)
	tok := login(t, s, "a@example.com", "pw")

	_, err = s.Login(tok, "a@example.com", "wrong")
	assertKind(t, utils.KindAuthFailure, err)

	_, err = s.GetCart(tok)
	assertKind(t, utils.KindUnauthorized, err)
}

func TestFailedLoginLeavesOtherSessionsAlone(t *testing.T) {
	s := newService(t)
	_, err := s.Register("a@example.com", "pw", false)
	require.NoError(t, err)
	first := login(t, s, "a@example.com", "pw")

	_, err = s.Login("", "a@example.com", "wrong")
	assertKind(t, utils.KindAuthFailure, err)

	_, err = s.GetCart(first)
	require.NoError(t, err)
}

func TestHashedPasswords(t *testing.T) {
	s := New(Options{HashPasswords: true})
	u, err := s.Register("a@example.com", "pw", false)
	require.NoError(t, err)
	assert.NotEqual(t, "pw", u.Password)

	login(t, s, "a@example.com", "pw")
	_, err = s.Login("", "a@example.com", u.Password)
	assertKind(t, utils.KindAuthFailure, err)
}

func TestAddToCartMergesLines(t *testing.T) {
	s := newService(t)
	admin, shopper := adminAndShopper(t, s)
	p := createProduct(t, s, admin, "Pen", "2")

	require.NoError(t, s.AddToCart(shopper, p.ID, qty(3)))
	require.NoError(t, s.AddToCart(shopper, p.ID, qty(2)))

	cart, err := s.GetCart(shopper)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, p.ID, cart[0].ProductID)
	assert.Equal(t, "5", cart[0].Quantity.String())
}

func TestAddToCartUnknownProduct(t *testing.T) {
	s := newService(t)
	_, shopper := adminAndShopper(t, s)
	assertKind(t, utils.KindNotFound, s.AddToCart(shopper, "missing", qty(1)))
}

func TestCartNeedsSession(t *testing.T) {
	s := newService(t)
	admin, _ := adminAndShopper(t, s)
	p := createProduct(t, s, admin, "Pen", "2")

	assertKind(t, utils.KindUnauthorized, s.AddToCart("", p.ID, qty(1)))
	assertKind(t, utils.KindUnauthorized, s.SetCartQuantity("bogus", p.ID, qty(1)))
	assertKind(t, utils.KindUnauthorized, s.RemoveFromCart("", p.ID))
	_, err := s.GetCart("")
	assertKind(t, utils.KindUnauthorized, err)
	_, err = s.CartSubtotal("")
	assertKind(t, utils.KindUnauthorized, err)
	_, err = s.CartTotal("")
	assertKind(t, utils.KindUnauthorized, err)
	_, err = s.PlaceOrder("", OrderRequest{})
	assertKind(t, utils.KindUnauthorized, err)
}

func TestSetCartQuantity(t *testing.T) {
	s := newService(t)
	admin, shopper := adminAndShopper(t, s)
	p := createProduct(t, s, admin, "Pen", "2")

	assertKind(t, utils.KindNotFound, s.SetCartQuantity(shopper, p.ID, qty(4)))

	require.NoError(t, s.AddToCart(shopper, p.ID, qty(1)))
	require.NoError(t, s.SetCartQuantity(shopper, p.ID, qty(-2)))
	cart, err := s.GetCart(shopper)
	require.NoError(t, err)
	assert.Equal(t, "-2", cart[0].Quantity.String())
}

func TestRemoveFromCart(t *testing.T) {
	s := newService(t)
	admin, shopper := adminAndShopper(t, s)
	a := createProduct(t, s, admin, "A", "1")
	b := createProduct(t, s, admin, "B", "1")
	c := createProduct(t, s, admin, "C", "1")
	for _, p := range []models.Product{a, b, c} {
		require.NoError(t, s.AddToCart(shopper, p.ID, qty(1)))
	}

	assertKind(t, utils.KindNotFound, s.RemoveFromCart(shopper, "missing"))
	cart, err := s.GetCart(shopper)
	require.NoError(t, err)
	assert.Len(t, cart, 3)

	require.NoError(t, s.RemoveFromCart(shopper, b.ID))
	cart, err = s.GetCart(shopper)
	require.NoError(t, err)
	require.Len(t, cart, 2)
	assert.Equal(t, a.ID, cart[0].ProductID)
	assert.Equal(t, c.ID, cart[1].ProductID)
}

func TestCartSubtotalAndTotal(t *testing.T) {
	s := newService(t)
	admin, shopper := adminAndShopper(t, s)
	a := createProduct(t, s, admin, "A", "10")
	b := createProduct(t, s, admin, "B", "5")
	require.NoError(t, s.AddToCart(shopper, a.ID, qty(2)))
	require.NoError(t, s.AddToCart(shopper, b.ID, qty(3)))

	subtotal, err := s.CartSubtotal(shopper)
	require.NoError(t, err)
	assert.Equal(t, "35", subtotal)

	total, err := s.CartTotal(shopper)
	require.NoError(t, err)
	assert.Equal(t, "35.00", total)
}

func TestCartSubtotalIsUnrounded(t *testing.T) {
	s := newService(t)
	admin, shopper := adminAndShopper(t, s)
	p := createProduct(t, s, admin, "Gum", "0.125")
	require.NoError(t, s.AddToCart(shopper, p.ID, qty(3)))

	subtotal, err := s.CartSubtotal(shopper)
	require.NoError(t, err)
	assert.Equal(t, "0.375", subtotal)

	total, err := s.CartTotal(shopper)
	require.NoError(t, err)
	assert.Equal(t, "0.38", total)
}

func TestEmptyCartTotals(t *testing.T) {
	s := newService(t)
	_, shopper := adminAndShopper(t, s)

	subtotal, err := s.CartSubtotal(shopper)
	require.NoError(t, err)
	assert.Equal(t, "0", subtotal)

	total, err := s.CartTotal(shopper)
	require.NoError(t, err)
	assert.Equal(t, "0.00", total)
}

func TestArchivedProductStaysInCartAndTotals(t *testing.T) {
	s := newService(t)
	admin, shopper := adminAndShopper(t, s)
	p := createProduct(t, s, admin, "Lamp", "7.5")
	require.NoError(t, s.AddToCart(shopper, p.ID, qty(2)))

	require.NoError(t, s.ArchiveProduct(admin, p.ID))

	assert.Empty(t, s.ListActiveProducts())
	assert.Len(t, s.ListProducts(), 1)
	got, err := s.GetProduct(p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	total, err := s.CartTotal(shopper)
	require.NoError(t, err)
	assert.Equal(t, "15.00", total)

	// Archived products can still be added.
	require.NoError(t, s.AddToCart(shopper, p.ID, qty(1)))
}

func TestCreateProductIsAlwaysActive(t *testing.T) {
	s := newService(t)
	admin, _ := adminAndShopper(t, s)
	inactive := false

	p, err := s.CreateProduct(admin, NewProduct{Name: "Hat", Price: decimal.NewFromInt(3), IsActive: &inactive})
	require.NoError(t, err)
	assert.True(t, p.IsActive)
	assert.Len(t, s.ListActiveProducts(), 1)
}

func TestUpdateProductPriceOnly(t *testing.T) {
	s := newService(t)
	admin, _ := adminAndShopper(t, s)
	p, err := s.CreateProduct(admin, NewProduct{Name: "Hat", Description: "Warm", Price: decimal.NewFromInt(3)})
	require.NoError(t, err)

	price := decimal.NewFromInt(4)
	got, err := s.UpdateProduct(admin, p.ID, models.ProductPatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Hat", got.Name)
	assert.Equal(t, "Warm", got.Description)
	assert.True(t, got.IsActive)
	assert.True(t, got.Price.Equal(price))

	zero := decimal.Zero
	got, err = s.UpdateProduct(admin, p.ID, models.ProductPatch{Price: &zero})
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(price))

	_, err = s.UpdateProduct(admin, "missing", models.ProductPatch{Price: &price})
	assertKind(t, utils.KindNotFound, err)
}

func TestAdminOperationsRejectNonAdmins(t *testing.T) {
	s := newService(t)
	admin, shopper := adminAndShopper(t, s)
	p := createProduct(t, s, admin, "Hat", "3")
	price := decimal.NewFromInt(9)

	for _, tok := range []auth.Token{"", "bogus", shopper} {
		_, err := s.ListUsers(tok)
		assertKind(t, utils.KindUnauthorized, err)
		_, err = s.CreateProduct(tok, NewProduct{Name: "x"})
		assertKind(t, utils.KindUnauthorized, err)
		assertKind(t, utils.KindUnauthorized, s.PromoteUser(tok, "missing"))
		_, err = s.ListOrders(tok)
		assertKind(t, utils.KindUnauthorized, err)
		_, err = s.UpdateProduct(tok, "missing", models.ProductPatch{Price: &price})
		assertKind(t, utils.KindUnauthorized, err)
		assertKind(t, utils.KindUnauthorized, s.ArchiveProduct(tok, p.ID))
	}

	got, err := s.GetProduct(p.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
	assert.Len(t, s.ListProducts(), 1)
}

func TestPromoteUser(t *testing.T) {
	s := newService(t)
	admin, shopper := adminAndShopper(t, s)

	assertKind(t, utils.KindNotFound, s.PromoteUser(admin, "missing"))

	id := s.Identify(shopper)
	require.NoError(t, s.PromoteUser(admin, id.User.ID))
	require.NoError(t, s.PromoteUser(admin, id.User.ID))

	// The promotion is visible on the shopper's existing session.
	users, err := s.ListUsers(shopper)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestPlaceOrder(t *testing.T) {
	s := newService(t)
	admin, shopper := adminAndShopper(t, s)
	adminID := s.Identify(admin).User.ID

	o, err := s.PlaceOrder(shopper, OrderRequest{
		UserID:      adminID,
		Products:    json.RawMessage(`[{"productId":"p1"}]`),
		Quantity:    json.RawMessage(`2`),
		PurchasedOn: json.RawMessage(`"2024-05-01T12:00:00Z"`),
	})
	require.NoError(t, err)
	assert.Equal(t, adminID, o.UserID, "order keeps the submitted userId")
	assert.JSONEq(t, `"2024-05-01T12:00:00Z"`, string(o.PurchasedOn))
	assert.JSONEq(t, `[{"productId":"p1"}]`, string(o.Products))
	assert.JSONEq(t, `2`, string(o.Quantity))

	// The id lands on the caller's list, not the named user's.
	assert.Equal(t, []string{o.ID}, s.Identify(shopper).User.Orders)
	assert.Empty(t, s.Identify(admin).User.Orders)

	orders, err := s.ListOrders(admin)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, o.ID, orders[0].ID)
}

func TestPlaceOrderKeepsPayloadAsSent(t *testing.T) {
	s := newService(t)
	_, shopper := adminAndShopper(t, s)
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	tests := []struct {
		name            string
		req             OrderRequest
		wantQuantity    string
		wantPurchasedOn string
	}{
		{"string quantity", OrderRequest{Quantity: json.RawMessage(`"2"`)}, `"2"`, `"2025-01-02T03:04:05Z"`},
		{"fractional quantity", OrderRequest{Quantity: json.RawMessage(`1.5`)}, `1.5`, `"2025-01-02T03:04:05Z"`},
		{"date only", OrderRequest{Quantity: json.RawMessage(`1`), PurchasedOn: json.RawMessage(`"2024-05-01"`)}, `1`, `"2024-05-01"`},
		{"null date", OrderRequest{Quantity: json.RawMessage(`1`), PurchasedOn: json.RawMessage(`null`)}, `1`, `"2025-01-02T03:04:05Z"`},
		{"epoch millis", OrderRequest{Quantity: json.RawMessage(`1`), PurchasedOn: json.RawMessage(`1714564800000`)}, `1`, `1714564800000`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := s.PlaceOrder(shopper, tt.req)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantQuantity, string(o.Quantity))
			assert.JSONEq(t, tt.wantPurchasedOn, string(o.PurchasedOn))
		})
	}
}

func TestPlaceOrderWithoutUserID(t *testing.T) {
	s := newService(t)
	_, shopper := adminAndShopper(t, s)

	o, err := s.PlaceOrder(shopper, OrderRequest{})
	require.NoError(t, err)
	assert.Empty(t, o.UserID)
	assert.Equal(t, []string{o.ID}, s.Identify(shopper).User.Orders)
}

func TestFractionalCartQuantities(t *testing.T) {
	s := newService(t)
	admin, shopper := adminAndShopper(t, s)
	p := createProduct(t, s, admin, "Cheese", "4")

	require.NoError(t, s.AddToCart(shopper, p.ID, decimal.RequireFromString("1.5")))
	require.NoError(t, s.AddToCart(shopper, p.ID, decimal.RequireFromString("0.25")))

	cart, err := s.GetCart(shopper)
	require.NoError(t, err)
	assert.Equal(t, "1.75", cart[0].Quantity.String())

	total, err := s.CartTotal(shopper)
	require.NoError(t, err)
	assert.Equal(t, "7.00", total)
}

func TestIdentify(t *testing.T) {
	s := newService(t)
	admin, shopper := adminAndShopper(t, s)

	assert.True(t, auth.IsAdmin(s.Identify(admin)))
	assert.True(t, auth.IsAuthenticated(s.Identify(shopper)))
	assert.False(t, auth.IsAdmin(s.Identify(shopper)))
	assert.False(t, auth.IsAuthenticated(s.Identify("")))
}
