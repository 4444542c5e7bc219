// internal/chain/wallet.go
package chain

import "context"

// Account is a wallet-held key pair as seen by this service.
type Account struct {
	Address string `json:"address"`
	PubKey  []byte `json:"pub_key,omitempty"`
}

// Signer produces signatures for opaque sign documents. Transaction
// construction details stay behind this boundary.
type Signer interface {
	Accounts(ctx context.Context) ([]Account, error)
	SignTx(ctx context.Context, signDoc []byte) ([]byte, error)
}

// Wallet is the injected capability standing in for the user's wallet.
// A nil Wallet means no wallet is available at all.
type Wallet interface {
	// Enable asks the wallet to authorize this service for the given chain.
	Enable(ctx context.Context, chainID string) error

	// OfflineSigner returns a signer scoped to the given chain.
	OfflineSigner(chainID string) (Signer, error)
}
