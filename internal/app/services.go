package app

import (
	"fmt"
	"log/slog"

	"github.com/heartmarshall/mikro-backoffice/internal/adapter/mikro"
	"github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres"
	approvalrepo "github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres/approval"
	cartrepo "github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres/cart"
	customerrepo "github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres/customer"
	inventoryrepo "github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres/inventory"
	orderrepo "github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres/order"
	productrepo "github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres/product"
	settingrepo "github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres/setting"
	"github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres/syncstate"
	tokenrepo "github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres/token"
	transactionrepo "github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres/transaction"
	userrepo "github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres/user"
	"github.com/heartmarshall/mikro-backoffice/internal/adapter/xlsx"
	"github.com/heartmarshall/mikro-backoffice/internal/auth"
	"github.com/heartmarshall/mikro-backoffice/internal/config"
	"github.com/heartmarshall/mikro-backoffice/internal/service/approval"
	authsvc "github.com/heartmarshall/mikro-backoffice/internal/service/auth"
	"github.com/heartmarshall/mikro-backoffice/internal/service/cart"
	"github.com/heartmarshall/mikro-backoffice/internal/service/customer"
	"github.com/heartmarshall/mikro-backoffice/internal/service/inventory"
	"github.com/heartmarshall/mikro-backoffice/internal/service/ledger"
	"github.com/heartmarshall/mikro-backoffice/internal/service/order"
	"github.com/heartmarshall/mikro-backoffice/internal/service/product"
	"github.com/heartmarshall/mikro-backoffice/internal/service/report"
	"github.com/heartmarshall/mikro-backoffice/internal/service/setting"
	syncsvc "github.com/heartmarshall/mikro-backoffice/internal/service/sync"
	"github.com/heartmarshall/mikro-backoffice/internal/service/user"
)

// services is the fully wired service layer.
type services struct {
	erp       *mikro.Repo
	perms     *auth.PermissionResolver
	auth      *authsvc.Service
	users     *user.Service
	customers *customer.Service
	products  *product.Service
	carts     *cart.Service
	approvals *approval.Service
	ledger    *ledger.Service
	orders    *order.Service
	inventory *inventory.Service
	settings  *setting.Service
	sync      *syncsvc.Service
	reports   *report.Service
}

func newServices(cfg *config.Config, logger *slog.Logger, in *infra) (*services, error) {
	loc, err := cfg.Workflow.Location()
	if err != nil {
		return nil, fmt.Errorf("app: workflow timezone: %w", err)
	}

	tx := postgres.NewTxManager(in.pool)

	users := userrepo.New(in.pool)
	customers := customerrepo.New(in.pool)
	products := productrepo.New(in.pool)
	transactions := transactionrepo.New(in.pool)
	orders := orderrepo.New(in.pool)
	inventories := inventoryrepo.New(in.pool)
	carts := cartrepo.New(in.pool)
	approvals := approvalrepo.New(in.pool)
	tokens := tokenrepo.New(in.pool)

	erp := mikro.New(in.erp, logger, cfg.ERP.QueryTimeout)
	perms := auth.NewPermissionResolver(users, cfg.Cache.Size, cfg.Auth.PermissionTTL)
	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	settings := setting.NewService(logger, settingrepo.New(in.pool), tx, cfg.Workflow)

	approvalSvc := approval.NewService(logger, approval.Stores{
		Approvals:    approvals,
		Products:     products,
		Transactions: transactions,
		Orders:       orders,
		Inventory:    inventories,
	}, settings, in.events, tx, cfg.Workflow.DefaultSeries)

	customerSvc := customer.NewService(logger, customers, erp, transactions, in.customerCache, in.events, tx)
	productSvc := product.NewService(logger, products, erp, in.priceCache, approvalSvc, cfg.Sync.PriceList)

	return &services{
		erp:       erp,
		perms:     perms,
		auth:      authsvc.NewService(logger, users, tokens, tx, jwt, cfg.Auth),
		users:     user.NewService(logger, users, perms, tokens, cfg.Auth.PasswordHashCost),
		customers: customerSvc,
		products:  productSvc,
		carts:     cart.NewService(logger, carts, products, approvalSvc, tx, cfg.Workflow.DefaultSeries),
		approvals: approvalSvc,
		ledger:    ledger.NewService(logger, transactions, approvalSvc, in.events, tx, cfg.Workflow.DefaultSeries),
		orders:    order.NewService(logger, orders, approvalSvc, in.events, tx),
		inventory: inventory.NewService(logger, inventories, products, approvalSvc, tx),
		settings:  settings,
		sync: syncsvc.NewService(logger, erp, customers, products, syncstate.New(in.pool), in.locker,
			syncsvc.Caches{Customers: customerSvc, Prices: productSvc}, cfg.Sync),
		reports: report.NewService(logger, transactions, loc, xlsx.WriteDailyReport),
	}, nil
}
