package service

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/lubepos-api/internal/application/cart"
	"github.com/sangkips/lubepos-api/internal/domain/entity"
	"github.com/sangkips/lubepos-api/internal/domain/repository"
	"github.com/sangkips/lubepos-api/internal/infrastructure/memory"
	"github.com/sangkips/lubepos-api/pkg/printer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type testEnv struct {
	inventory *memory.InventoryStore
	items     repository.ItemRepository
	users     repository.UserRepository
	sales     repository.SaleRepository
	catalog   repository.CatalogRepository
	printer   *printer.BufferPrinter
	sessions  *cart.Sessions
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		inventory: memory.NewInventoryStore(),
		users:     memory.NewUserRepository(),
		sales:     memory.NewSaleRepository(),
		printer:   &printer.BufferPrinter{},
		sessions:  cart.NewSessions(cart.SessionsConfig{TTL: time.Hour}),
	}
	env.items = env.inventory.Items()
	catalog, err := memory.NewCatalogRepository(memory.DemoProducts())
	require.NoError(t, err)
	env.catalog = catalog
	t.Cleanup(env.sessions.Close)

	require.NoError(t, memory.Seed(context.Background(), env.inventory, env.users))
	return env
}

func (env *testEnv) printerService() *PrinterService {
	return NewPrinterService(env.printer, env.sales, PrinterServiceConfig{
		Header:      entity.ReceiptHeader{StoreName: "LubePOS"},
		PrinterType: "usb",
		CharWidth:   32,
	}, zap.NewNop())
}

func (env *testEnv) posService() *POSService {
	return NewPOSService(env.sessions, env.catalog, env.items, env.sales, env.printerService(), zap.NewNop())
}
