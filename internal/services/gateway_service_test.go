// internal/services/gateway_service_test.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agridex/market-gateway/internal/chain"
	"github.com/agridex/market-gateway/internal/config"
	"github.com/agridex/market-gateway/internal/errkind"
	"github.com/agridex/market-gateway/internal/models"
)

type stubSigner struct {
	accounts    []chain.Account
	accountsErr error
}

func (s *stubSigner) Accounts(ctx context.Context) ([]chain.Account, error) {
	return s.accounts, s.accountsErr
}

func (s *stubSigner) SignTx(ctx context.Context, signDoc []byte) ([]byte, error) {
	return []byte("signed"), nil
}

type stubWallet struct {
	enableErr error
	signer    chain.Signer
	signerErr error
}

func (w *stubWallet) Enable(ctx context.Context, chainID string) error {
	return w.enableErr
}

func (w *stubWallet) OfflineSigner(chainID string) (chain.Signer, error) {
	return w.signer, w.signerErr
}

type stubClient struct {
	queryFn func(contractAddr string, query, result interface{}) error
	execFn  func(sender, contractAddr string, msg interface{}, feeMode string) (*models.TxResult, error)
}

func (c *stubClient) QueryContractSmart(ctx context.Context, contractAddr string, query, result interface{}) error {
	return c.queryFn(contractAddr, query, result)
}

func (c *stubClient) Execute(ctx context.Context, sender, contractAddr string, msg interface{}, feeMode string) (*models.TxResult, error) {
	return c.execFn(sender, contractAddr, msg, feeMode)
}

type stubDialer struct {
	client      chain.SigningClient
	err         error
	gotEndpoint string
	gotOpts     chain.ConnectOptions
}

func (d *stubDialer) ConnectWithSigner(ctx context.Context, endpoint string, signer chain.Signer, opts chain.ConnectOptions) (chain.SigningClient, error) {
	d.gotEndpoint = endpoint
	d.gotOpts = opts
	return d.client, d.err
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "development",
		Chain: config.ChainConfig{
			ChainID:         "xion-testnet-1",
			RPCEndpoint:     "http://localhost:1317",
			ContractAddress: "xion1contract",
			Denom:           "uxion",
			GasPrice:        "0.025uxion",
			RefreshInterval: 15,
		},
	}
}

func connectedGateway(t *testing.T, client chain.SigningClient) *GatewayService {
	t.Helper()
	wallet := &stubWallet{signer: &stubSigner{accounts: []chain.Account{{Address: "xion1sender"}}}}
	gw := NewGatewayService(testConfig(), wallet, &stubDialer{client: client})
	_, err := gw.Connect(context.Background())
	require.NoError(t, err)
	return gw
}

func TestConnectEstablishesSession(t *testing.T) {
	wallet := &stubWallet{signer: &stubSigner{accounts: []chain.Account{{Address: "xion1sender"}}}}
	dialer := &stubDialer{client: &stubClient{}}
	gw := NewGatewayService(testConfig(), wallet, dialer)

	address, err := gw.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "xion1sender", address)
	assert.Equal(t, "xion1sender", gw.Address())
	assert.Equal(t, "http://localhost:1317", dialer.gotEndpoint)
	assert.Equal(t, "0.025uxion", dialer.gotOpts.GasPrice)
}

func TestConnectWithoutWallet(t *testing.T) {
	gw := NewGatewayService(testConfig(), nil, &stubDialer{})

	_, err := gw.Connect(context.Background())
	require.Error(t, err)
	assert.Equal(t, errkind.WalletUnavailable, errkind.KindOf(err))
	assert.Equal(t, "", gw.Address())
}

func TestConnectFailures(t *testing.T) {
	cases := map[string]*stubWallet{
		"enable rejected": {enableErr: errors.New("user rejected")},
		"no signer":       {signerErr: errors.New("no signer")},
		"accounts error":  {signer: &stubSigner{accountsErr: errors.New("locked")}},
		"no accounts":     {signer: &stubSigner{}},
	}

	for name, wallet := range cases {
		t.Run(name, func(t *testing.T) {
			gw := NewGatewayService(testConfig(), wallet, &stubDialer{client: &stubClient{}})
			_, err := gw.Connect(context.Background())
			require.Error(t, err)
			assert.Equal(t, errkind.ConnectionError, errkind.KindOf(err))
			assert.Equal(t, "", gw.Address())
		})
	}
}

func TestConnectDialFailure(t *testing.T) {
	wallet := &stubWallet{signer: &stubSigner{accounts: []chain.Account{{Address: "xion1sender"}}}}
	gw := NewGatewayService(testConfig(), wallet, &stubDialer{err: errors.New("endpoint down")})

	_, err := gw.Connect(context.Background())
	require.Error(t, err)
	assert.Equal(t, errkind.ConnectionError, errkind.KindOf(err))
}

func TestOperationsRequireSession(t *testing.T) {
	gw := NewGatewayService(testConfig(), nil, &stubDialer{})
	ctx := context.Background()

	_, err := gw.GetProducts(ctx)
	assert.Equal(t, errkind.NotConnected, errkind.KindOf(err))

	_, err = gw.GetProduct(ctx, "product-1")
	assert.Equal(t, errkind.NotConnected, errkind.KindOf(err))

	_, err = gw.RegisterProduct(ctx, "Tomato", models.Coin{Denom: "uxion", Amount: "50"}, 10)
	assert.Equal(t, errkind.NotConnected, errkind.KindOf(err))

	_, err = gw.BuyProduct(ctx, "product-1", 1)
	assert.Equal(t, errkind.NotConnected, errkind.KindOf(err))
}

func TestGetProducts(t *testing.T) {
	client := &stubClient{
		queryFn: func(contractAddr string, query, result interface{}) error {
			assert.Equal(t, "xion1contract", contractAddr)
			raw, err := json.Marshal(query)
			require.NoError(t, err)
			assert.JSONEq(t, `{"get_products":{}}`, string(raw))

			resp := result.(*models.ProductsResponse)
			resp.Products = []models.Product{{ID: "product-1", Name: "Tomato"}}
			return nil
		},
	}
	gw := connectedGateway(t, client)

	products, err := gw.GetProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Tomato", products[0].Name)
}

func TestGetProductsQueryFailure(t *testing.T) {
	client := &stubClient{
		queryFn: func(contractAddr string, query, result interface{}) error {
			return errors.New("rpc timeout")
		},
	}
	gw := connectedGateway(t, client)

	_, err := gw.GetProducts(context.Background())
	require.Error(t, err)
	assert.Equal(t, errkind.QueryError, errkind.KindOf(err))
}

func TestRegisterProductSendsContractMsg(t *testing.T) {
	var gotMsg interface{}
	client := &stubClient{
		execFn: func(sender, contractAddr string, msg interface{}, feeMode string) (*models.TxResult, error) {
			assert.Equal(t, "xion1sender", sender)
			assert.Equal(t, "xion1contract", contractAddr)
			assert.Equal(t, "auto", feeMode)
			gotMsg = msg
			return &models.TxResult{TxHash: "ABC123"}, nil
		},
	}
	gw := connectedGateway(t, client)

	result, err := gw.RegisterProduct(context.Background(), "Tomato", models.Coin{Denom: "uxion", Amount: "50"}, 100)
	require.NoError(t, err)
	assert.Equal(t, "ABC123", result.TxHash)

	raw, err := json.Marshal(gotMsg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"register_product":{"product_name":"Tomato","product_price":{"denom":"uxion","amount":"50"},"product_quantity":100}}`, string(raw))
}

func TestBuyProductExecutionFailure(t *testing.T) {
	client := &stubClient{
		execFn: func(sender, contractAddr string, msg interface{}, feeMode string) (*models.TxResult, error) {
			return nil, errors.New("transaction rejected (code 5): Not enough stock")
		},
	}
	gw := connectedGateway(t, client)

	_, err := gw.BuyProduct(context.Background(), "product-1", 500)
	require.Error(t, err)
	assert.Equal(t, errkind.ExecutionError, errkind.KindOf(err))
	assert.Contains(t, err.Error(), "Not enough stock")
}
