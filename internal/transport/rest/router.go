package rest

import (
	"net/http"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/internal/transport/middleware"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Health      *HealthHandler
	ERP         *ERPHandler
	Auth        *AuthHandler
	User        *UserHandler
	Customer    *CustomerHandler
	Product     *ProductHandler
	Cart        *CartHandler
	Approval    *ApprovalHandler
	Transaction *TransactionHandler
	Order       *OrderHandler
	Inventory   *InventoryHandler
	Setting     *SettingHandler
	Sync        *SyncHandler
	Report      *ReportHandler
}

// Guards are the middleware the router applies per route.
type Guards struct {
	// Permissions answers 401 for anonymous callers and 403 without the
	// permission.
	Permissions *middleware.Permissions
	// LoginLimit throttles the credential endpoints.
	LoginLimit middleware.Middleware
}

// NewRouter registers all routes. Every route other than health checks,
// login and refresh requires an authenticated caller; the outer middleware
// (request ID, logging, recovery, CORS, token resolution) is applied by the
// caller.
func NewRouter(h Handlers, g Guards) *http.ServeMux {
	mux := http.NewServeMux()

	authed := func(fn http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(fn)
	}
	perm := func(p domain.Permission, fn http.HandlerFunc) http.Handler {
		return g.Permissions.Require(p)(fn)
	}
	limited := func(fn http.HandlerFunc) http.Handler {
		if g.LoginLimit == nil {
			return fn
		}
		return g.LoginLimit(fn)
	}

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	// ERP data access.
	mux.Handle("GET /api/cari-hesap", authed(h.ERP.Customers))
	mux.Handle("GET /api/cari-hesap/{id}", authed(h.ERP.Customer))
	mux.Handle("GET /api/cari-hesap/{id}/balance", authed(h.ERP.CustomerBalance))
	mux.Handle("GET /api/cari-adres", authed(h.ERP.Addresses))
	mux.Handle("GET /api/cari-adres/sync", authed(h.ERP.AddressesSync))
	mux.Handle("GET /api/cari-hareket", authed(h.ERP.Movements))
	mux.Handle("GET /api/cari-hareket/sync", authed(h.ERP.MovementsSync))
	mux.Handle("GET /api/cari-isim", authed(h.ERP.Names))
	mux.Handle("GET /api/stok-fiyat", authed(h.ERP.Prices))
	mux.Handle("GET /api/stok-fiyat/sync", authed(h.ERP.PricesSync))

	// Auth and profile.
	mux.Handle("POST /api/v1/auth/login", limited(h.Auth.Login))
	mux.Handle("POST /api/v1/auth/refresh", limited(h.Auth.Refresh))
	mux.Handle("POST /api/v1/auth/logout", authed(h.Auth.Logout))
	mux.Handle("GET /api/v1/me", authed(h.User.Me))
	mux.Handle("PUT /api/v1/me/password", authed(h.User.ChangePassword))

	// Users.
	mux.Handle("GET /api/v1/users", perm(domain.PermUsersManage, h.User.List))
	mux.Handle("POST /api/v1/users", perm(domain.PermUsersManage, h.User.Create))
	mux.Handle("PUT /api/v1/users/{id}/role", perm(domain.PermUsersManage, h.User.UpdateRole))
	mux.Handle("PUT /api/v1/users/{id}/permissions", perm(domain.PermUsersManage, h.User.UpdatePermissions))
	mux.Handle("PUT /api/v1/users/{id}/active", perm(domain.PermUsersManage, h.User.SetActive))

	// Customers.
	mux.Handle("GET /api/v1/customers", authed(h.Customer.Search))
	mux.Handle("GET /api/v1/customers/{code}", authed(h.Customer.Get))
	mux.Handle("GET /api/v1/customers/{code}/balance", authed(h.Customer.Balance))
	mux.Handle("GET /api/v1/customers/{code}/addresses", authed(h.Customer.Addresses))
	mux.Handle("GET /api/v1/customers/{code}/movements", authed(h.Customer.Movements))
	mux.Handle("PUT /api/v1/customers/{code}", perm(domain.PermCustomersWrite, h.Customer.Push))

	// Products.
	mux.Handle("GET /api/v1/products", authed(h.Product.List))
	mux.Handle("GET /api/v1/products/{code}", authed(h.Product.Get))
	mux.Handle("GET /api/v1/products/{code}/prices", authed(h.Product.Prices))
	mux.Handle("POST /api/v1/products/{code}/change", perm(domain.PermProductsWrite, h.Product.RequestChange))

	// Cart.
	mux.Handle("GET /api/v1/cart", authed(h.Cart.Get))
	mux.Handle("PUT /api/v1/cart", authed(h.Cart.Update))
	mux.Handle("DELETE /api/v1/cart", authed(h.Cart.Clear))
	mux.Handle("POST /api/v1/cart/items", authed(h.Cart.SetItem))
	mux.Handle("DELETE /api/v1/cart/items/{code}", authed(h.Cart.RemoveItem))
	mux.Handle("POST /api/v1/cart/checkout", perm(domain.PermCartCheckout, h.Cart.Checkout))

	// Approvals.
	mux.Handle("GET /api/v1/approvals", authed(h.Approval.List))
	mux.Handle("GET /api/v1/approvals/pending-count", authed(h.Approval.PendingCount))
	mux.Handle("GET /api/v1/approvals/{id}", authed(h.Approval.Get))
	mux.Handle("POST /api/v1/approvals/{id}/decision", perm(domain.PermApprovalsDecide, h.Approval.Decide))

	// Ledger.
	mux.Handle("GET /api/v1/transactions", authed(h.Transaction.List))
	mux.Handle("GET /api/v1/transactions/next-sequence", authed(h.Transaction.NextSequence))
	mux.Handle("GET /api/v1/transactions/balance/{code}", authed(h.Transaction.Balance))
	mux.Handle("POST /api/v1/transactions/payment", perm(domain.PermTransactionsWrite, h.Transaction.Payment))
	mux.Handle("POST /api/v1/transactions/expense", perm(domain.PermTransactionsWrite, h.Transaction.Expense))
	mux.Handle("POST /api/v1/transactions/return", perm(domain.PermTransactionsWrite, h.Transaction.Return))

	// Orders.
	mux.Handle("GET /api/v1/orders", authed(h.Order.List))
	mux.Handle("GET /api/v1/orders/{id}", authed(h.Order.Get))
	mux.Handle("POST /api/v1/orders/{id}/advance", perm(domain.PermOrdersAdvance, h.Order.Advance))
	mux.Handle("POST /api/v1/orders/{id}/change", perm(domain.PermOrdersWrite, h.Order.RequestChange))

	// Inventory.
	mux.Handle("GET /api/v1/inventory", authed(h.Inventory.List))
	mux.Handle("POST /api/v1/inventory", perm(domain.PermInventoryWrite, h.Inventory.Create))
	mux.Handle("GET /api/v1/inventory/{id}", authed(h.Inventory.Get))
	mux.Handle("DELETE /api/v1/inventory/{id}", perm(domain.PermInventoryWrite, h.Inventory.Delete))
	mux.Handle("PUT /api/v1/inventory/{id}/items", perm(domain.PermInventoryWrite, h.Inventory.Count))
	mux.Handle("DELETE /api/v1/inventory/{id}/items", perm(domain.PermInventoryWrite, h.Inventory.RemoveItem))
	mux.Handle("POST /api/v1/inventory/{id}/complete", perm(domain.PermInventoryWrite, h.Inventory.Complete))

	// Settings, sync and reports.
	mux.Handle("GET /api/v1/settings", authed(h.Setting.Get))
	mux.Handle("PUT /api/v1/settings", perm(domain.PermSettingsWrite, h.Setting.Update))
	mux.Handle("POST /api/v1/sync/run", perm(domain.PermSyncRun, h.Sync.Run))
	mux.Handle("GET /api/v1/sync/status", authed(h.Sync.Status))
	mux.Handle("GET /api/v1/reports/daily", perm(domain.PermReportsRead, h.Report.Daily))

	return mux
}
