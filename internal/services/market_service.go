// internal/services/market_service.go
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/agridex/market-gateway/internal/errkind"
	"github.com/agridex/market-gateway/internal/models"
)

// MarketState is the UI-facing snapshot. Consumers render from this and call
// the action methods; they never reach the Gateway directly.
type MarketState struct {
	WalletAddress string           `json:"wallet_address"`
	Connected     bool             `json:"connected"`
	Products      []models.Product `json:"products"`
	IsConnecting  bool             `json:"is_connecting"`
	IsLoading     bool             `json:"is_loading"`
	IsRegistering bool             `json:"is_registering"`
	IsBuying      bool             `json:"is_buying"`
}

// MarketService adapts Gateway semantics into stateful, UI-ready actions:
// every action manages its own busy flag, reports success or failure through
// the notification feed, and mutations trigger exactly one automatic product
// refresh. Product data is eventually consistent: a poll racing a mutation is
// accepted, the next refresh converges.
type MarketService struct {
	gateway       Gateway
	notifications *NotificationService
	poller        *RefreshPoller

	mtx           sync.Mutex
	walletAddress string
	products      []models.Product
	isConnecting  bool
	loadsInFlight int
	isRegistering bool
	isBuying      bool
}

func NewMarketService(gateway Gateway, notifications *NotificationService, refreshInterval time.Duration) *MarketService {
	s := &MarketService{
		gateway:       gateway,
		notifications: notifications,
	}
	s.poller = NewRefreshPoller(refreshInterval, func() {
		// Background refresh: failures are reported, successes stay quiet.
		_ = s.refresh(context.Background(), false)
	})
	return s
}

// Connect establishes the wallet session. A call while another connect is in
// flight is a silent no-op, so concurrent attempts collapse into one gateway
// connection. On success the poller starts and one initial load runs.
func (s *MarketService) Connect(ctx context.Context) error {
	s.mtx.Lock()
	if s.isConnecting {
		s.mtx.Unlock()
		return nil
	}
	s.isConnecting = true
	s.mtx.Unlock()

	address, err := s.gateway.Connect(ctx)

	s.mtx.Lock()
	s.isConnecting = false
	if err == nil {
		s.walletAddress = address
	}
	s.mtx.Unlock()

	if err != nil {
		s.notifications.Failure("wallet connection failed: " + err.Error())
		return err
	}

	s.notifications.Success("wallet connected: " + address)
	s.poller.Start()
	_ = s.refresh(ctx, false)
	return nil
}

// LoadProducts fetches the product collection and replaces the snapshot.
func (s *MarketService) LoadProducts(ctx context.Context) error {
	return s.refresh(ctx, true)
}

func (s *MarketService) refresh(ctx context.Context, announce bool) error {
	s.mtx.Lock()
	s.loadsInFlight++
	s.mtx.Unlock()
	defer func() {
		s.mtx.Lock()
		s.loadsInFlight--
		s.mtx.Unlock()
	}()

	products, err := s.gateway.GetProducts(ctx)
	if err != nil {
		s.notifications.Failure("failed to load products: " + err.Error())
		return err
	}
	if products == nil {
		products = []models.Product{}
	}

	s.mtx.Lock()
	s.products = products
	s.mtx.Unlock()

	if announce {
		s.notifications.Success(fmt.Sprintf("loaded %d products", len(products)))
	}
	return nil
}

// GetProduct reads a single product through the established session.
func (s *MarketService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.gateway.GetProduct(ctx, id)
	if err != nil {
		s.notifications.Failure("failed to load product " + id + ": " + err.Error())
		return nil, err
	}
	return product, nil
}

// RegisterProduct submits a registration built from the draft. The contract
// is the sole authority on acceptance.
func (s *MarketService) RegisterProduct(ctx context.Context, draft models.ProductDraft) (*models.TxResult, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}

	price, err := draft.Coin()
	if err != nil {
		s.notifications.Failure("invalid product draft: " + err.Error())
		return nil, err
	}

	s.setBusy(&s.isRegistering, true)
	result, err := s.gateway.RegisterProduct(ctx, draft.Name, price, draft.Quantity)
	s.setBusy(&s.isRegistering, false)

	if err != nil {
		s.notifications.Failure("failed to register product: " + err.Error())
		return nil, err
	}

	s.notifications.Success("product registered: " + draft.Name)
	s.afterMutation(ctx)
	return result, nil
}

// BuyProduct submits a purchase. Stock and ownership rules are enforced by
// the contract; a rejection surfaces here as an execution failure.
func (s *MarketService) BuyProduct(ctx context.Context, productID string, quantity uint64) (*models.TxResult, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}

	s.setBusy(&s.isBuying, true)
	result, err := s.gateway.BuyProduct(ctx, productID, quantity)
	s.setBusy(&s.isBuying, false)

	if err != nil {
		s.notifications.Failure("failed to buy product " + productID + ": " + err.Error())
		return nil, err
	}

	s.notifications.Success("purchase confirmed: " + productID)
	s.afterMutation(ctx)
	return result, nil
}

// afterMutation runs the unconditional refresh that follows a successful
// mutation. The refresh reports its own failures and does not affect the
// mutation's already-emitted success notification.
func (s *MarketService) afterMutation(ctx context.Context) {
	_ = s.refresh(ctx, false)
}

// requireSession short-circuits mutating actions while no session exists,
// without ever touching the Gateway.
func (s *MarketService) requireSession() error {
	s.mtx.Lock()
	connected := s.walletAddress != ""
	s.mtx.Unlock()
	if connected {
		return nil
	}
	s.notifications.Failure("connect your wallet first")
	return errkind.New(errkind.NotConnected, "connect your wallet first")
}

func (s *MarketService) setBusy(flag *bool, value bool) {
	s.mtx.Lock()
	*flag = value
	s.mtx.Unlock()
}

// State returns a copy of the current view state.
func (s *MarketService) State() MarketState {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	products := make([]models.Product, len(s.products))
	copy(products, s.products)

	return MarketState{
		WalletAddress: s.walletAddress,
		Connected:     s.walletAddress != "",
		Products:      products,
		IsConnecting:  s.isConnecting,
		IsLoading:     s.loadsInFlight > 0,
		IsRegistering: s.isRegistering,
		IsBuying:      s.isBuying,
	}
}

// Close stops the refresh poller. The signing session itself has no explicit
// teardown; it ends with the process.
func (s *MarketService) Close() {
	s.poller.Stop()
	logrus.Info("market controller closed")
}
