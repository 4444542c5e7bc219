// internal/chain/remotewallet.go
package chain

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RemoteWallet implements Wallet over a wallet daemon's HTTP API. The daemon
// holds the keys; this process only ever sees addresses and signatures.
type RemoteWallet struct {
	baseURL    string
	httpClient *http.Client
}

func NewRemoteWallet(baseURL string) *RemoteWallet {
	return &RemoteWallet{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (w *RemoteWallet) Enable(ctx context.Context, chainID string) error {
	body := map[string]string{"chain_id": chainID}
	return w.call(ctx, http.MethodPost, "/v1/keys/enable", body, nil)
}

func (w *RemoteWallet) OfflineSigner(chainID string) (Signer, error) {
	return &remoteSigner{wallet: w, chainID: chainID}, nil
}

type remoteSigner struct {
	wallet  *RemoteWallet
	chainID string
}

func (s *remoteSigner) Accounts(ctx context.Context) ([]Account, error) {
	var resp struct {
		Accounts []Account `json:"accounts"`
	}
	path := fmt.Sprintf("/v1/keys/%s/accounts", s.chainID)
	if err := s.wallet.call(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Accounts, nil
}

func (s *remoteSigner) SignTx(ctx context.Context, signDoc []byte) ([]byte, error) {
	body := map[string]string{
		"chain_id": s.chainID,
		"sign_doc": base64.StdEncoding.EncodeToString(signDoc),
	}
	var resp struct {
		SignedTx string `json:"signed_tx"`
	}
	if err := s.wallet.call(ctx, http.MethodPost, "/v1/tx/sign", body, &resp); err != nil {
		return nil, err
	}
	signed, err := base64.StdEncoding.DecodeString(resp.SignedTx)
	if err != nil {
		return nil, fmt.Errorf("decode signed tx: %w", err)
	}
	return signed, nil
}

func (w *RemoteWallet) call(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, w.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wallet service %s %s: status %d: %s", method, path, resp.StatusCode, truncate(data, 256))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
