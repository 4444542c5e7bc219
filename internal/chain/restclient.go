// internal/chain/restclient.go
package chain

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/agridex/market-gateway/internal/models"
)

// RestDialer opens signing sessions against a Cosmos LCD (REST) endpoint.
type RestDialer struct {
	httpClient *http.Client
}

func NewRestDialer() *RestDialer {
	return &RestDialer{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (d *RestDialer) ConnectWithSigner(ctx context.Context, endpoint string, signer Signer, opts ConnectOptions) (SigningClient, error) {
	client := &restClient{
		endpoint:   endpoint,
		signer:     signer,
		gasPrice:   opts.GasPrice,
		httpClient: d.httpClient,
	}

	// Probe the endpoint so a bad URL fails at connect time, not on the
	// first marketplace action.
	if err := client.getJSON(ctx, "/cosmos/base/tendermint/v1beta1/node_info", nil); err != nil {
		return nil, fmt.Errorf("endpoint %s unreachable: %w", endpoint, err)
	}
	return client, nil
}

type restClient struct {
	endpoint   string
	signer     Signer
	gasPrice   string
	httpClient *http.Client
}

type smartQueryResponse struct {
	Data json.RawMessage `json:"data"`
}

func (c *restClient) QueryContractSmart(ctx context.Context, contractAddr string, query interface{}, result interface{}) error {
	queryBytes, err := json.Marshal(query)
	if err != nil {
		return fmt.Errorf("encode query: %w", err)
	}

	encoded := url.PathEscape(base64.StdEncoding.EncodeToString(queryBytes))
	path := fmt.Sprintf("/cosmwasm/wasm/v1/contract/%s/smart/%s", contractAddr, encoded)

	var resp smartQueryResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, result); err != nil {
		return fmt.Errorf("decode contract reply: %w", err)
	}
	return nil
}

// executeSignDoc is what the wallet signs: the execute message plus the fee
// parameters, as one opaque document. The wallet returns complete signed tx
// bytes ready for broadcast.
type executeSignDoc struct {
	Sender   string          `json:"sender"`
	Contract string          `json:"contract"`
	Msg      json.RawMessage `json:"msg"`
	FeeMode  string          `json:"fee_mode"`
	GasPrice string          `json:"gas_price"`
}

type broadcastRequest struct {
	TxBytes string `json:"tx_bytes"`
	Mode    string `json:"mode"`
}

type broadcastResponse struct {
	TxResponse struct {
		TxHash  string `json:"txhash"`
		Code    uint32 `json:"code"`
		RawLog  string `json:"raw_log"`
		Height  string `json:"height"`
		GasUsed string `json:"gas_used"`
	} `json:"tx_response"`
}

func (c *restClient) Execute(ctx context.Context, sender, contractAddr string, msg interface{}, feeMode string) (*models.TxResult, error) {
	msgBytes, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode execute message: %w", err)
	}

	signDoc, err := json.Marshal(executeSignDoc{
		Sender:   sender,
		Contract: contractAddr,
		Msg:      msgBytes,
		FeeMode:  feeMode,
		GasPrice: c.gasPrice,
	})
	if err != nil {
		return nil, fmt.Errorf("encode sign doc: %w", err)
	}

	signedTx, err := c.signer.SignTx(ctx, signDoc)
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}

	var resp broadcastResponse
	req := broadcastRequest{
		TxBytes: base64.StdEncoding.EncodeToString(signedTx),
		Mode:    "BROADCAST_MODE_SYNC",
	}
	if err := c.postJSON(ctx, "/cosmos/tx/v1beta1/txs", req, &resp); err != nil {
		return nil, err
	}

	tx := resp.TxResponse
	if tx.Code != 0 {
		return nil, fmt.Errorf("transaction rejected (code %d): %s", tx.Code, tx.RawLog)
	}

	height, _ := strconv.ParseInt(tx.Height, 10, 64)
	gasUsed, _ := strconv.ParseInt(tx.GasUsed, 10, 64)
	return &models.TxResult{
		TxHash:  tx.TxHash,
		Height:  height,
		GasUsed: gasUsed,
		RawLog:  tx.RawLog,
	}, nil
}

func (c *restClient) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *restClient) postJSON(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *restClient) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, truncate(data, 256))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
