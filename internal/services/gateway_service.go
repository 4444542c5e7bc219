// internal/services/gateway_service.go
package services

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/agridex/market-gateway/internal/chain"
	"github.com/agridex/market-gateway/internal/config"
	"github.com/agridex/market-gateway/internal/errkind"
	"github.com/agridex/market-gateway/internal/models"
)

// Gateway is the controller-facing contract of the connector. The HTTP layer
// never sees this interface; it exists so the controller can be tested with a
// fake.
type Gateway interface {
	Connect(ctx context.Context) (string, error)
	Address() string
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	RegisterProduct(ctx context.Context, name string, price models.Coin, quantity uint64) (*models.TxResult, error)
	BuyProduct(ctx context.Context, productID string, quantity uint64) (*models.TxResult, error)
}

// GatewayService owns at most one signing session against the configured
// contract and translates marketplace actions into contract calls. It never
// retries and never interprets remote rejections beyond attaching a kind.
type GatewayService struct {
	cfg    *config.Config
	wallet chain.Wallet
	dialer chain.Dialer

	mtx     sync.Mutex
	client  chain.SigningClient
	address string
}

var _ Gateway = (*GatewayService)(nil)

func NewGatewayService(cfg *config.Config, wallet chain.Wallet, dialer chain.Dialer) *GatewayService {
	return &GatewayService{
		cfg:    cfg,
		wallet: wallet,
		dialer: dialer,
	}
}

// Connect establishes the signing session: wallet enable, offline signer,
// first account, dial. The stored session is replaced on success and left
// untouched on failure.
func (s *GatewayService) Connect(ctx context.Context) (string, error) {
	if s.wallet == nil {
		return "", errkind.New(errkind.WalletUnavailable, "wallet not found")
	}

	chainID := s.cfg.Chain.ChainID
	if err := s.wallet.Enable(ctx, chainID); err != nil {
		return "", errkind.Wrap(errkind.ConnectionError, "wallet refused to enable chain "+chainID, err)
	}

	signer, err := s.wallet.OfflineSigner(chainID)
	if err != nil {
		return "", errkind.Wrap(errkind.ConnectionError, "wallet did not provide a signer", err)
	}

	accounts, err := signer.Accounts(ctx)
	if err != nil {
		return "", errkind.Wrap(errkind.ConnectionError, "failed to read wallet accounts", err)
	}
	if len(accounts) == 0 {
		return "", errkind.New(errkind.ConnectionError, "wallet has no accounts for chain "+chainID)
	}
	address := accounts[0].Address

	client, err := s.dialer.ConnectWithSigner(ctx, s.cfg.Chain.RPCEndpoint, signer, chain.ConnectOptions{
		GasPrice: s.cfg.Chain.GasPrice,
	})
	if err != nil {
		return "", errkind.Wrap(errkind.ConnectionError, "failed to connect to "+s.cfg.Chain.RPCEndpoint, err)
	}

	s.mtx.Lock()
	s.client = client
	s.address = address
	s.mtx.Unlock()

	logrus.WithFields(logrus.Fields{
		"chain_id": chainID,
		"address":  address,
	}).Info("signing session established")
	return address, nil
}

// Address returns the session's wallet address, or "" when not connected.
func (s *GatewayService) Address() string {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.address
}

func (s *GatewayService) session() (chain.SigningClient, string, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.client == nil {
		return nil, "", errkind.New(errkind.NotConnected, "no signing session, connect a wallet first")
	}
	return s.client, s.address, nil
}

func (s *GatewayService) GetProducts(ctx context.Context) ([]models.Product, error) {
	client, _, err := s.session()
	if err != nil {
		return nil, err
	}

	var resp models.ProductsResponse
	if err := client.QueryContractSmart(ctx, s.cfg.Chain.ContractAddress, models.NewGetProductsQuery(), &resp); err != nil {
		return nil, errkind.Wrap(errkind.QueryError, "product query failed", err)
	}
	return resp.Products, nil
}

func (s *GatewayService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	client, _, err := s.session()
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := client.QueryContractSmart(ctx, s.cfg.Chain.ContractAddress, models.NewGetProductQuery(id), &product); err != nil {
		return nil, errkind.Wrap(errkind.QueryError, "product query failed for "+id, err)
	}
	return &product, nil
}

func (s *GatewayService) RegisterProduct(ctx context.Context, name string, price models.Coin, quantity uint64) (*models.TxResult, error) {
	client, sender, err := s.session()
	if err != nil {
		return nil, err
	}

	msg := models.NewRegisterProductMsg(name, price, quantity)
	result, err := client.Execute(ctx, sender, s.cfg.Chain.ContractAddress, msg, "auto")
	if err != nil {
		return nil, errkind.Wrap(errkind.ExecutionError, "product registration rejected", err)
	}
	return result, nil
}

func (s *GatewayService) BuyProduct(ctx context.Context, productID string, quantity uint64) (*models.TxResult, error) {
	client, sender, err := s.session()
	if err != nil {
		return nil, err
	}

	msg := models.NewBuyMsg(productID, quantity)
	result, err := client.Execute(ctx, sender, s.cfg.Chain.ContractAddress, msg, "auto")
	if err != nil {
		return nil, errkind.Wrap(errkind.ExecutionError, "purchase rejected", err)
	}
	return result, nil
}
