// internal/chain/client.go
package chain

import (
	"context"

	"github.com/agridex/market-gateway/internal/models"
)

// ConnectOptions carries connection-time parameters for a signing session.
type ConnectOptions struct {
	// GasPrice is the minimum gas price string, e.g. "0.025uxion".
	GasPrice string
}

// SigningClient is an established session against one execution endpoint.
// Implementations do not retry; every failure surfaces to the caller.
type SigningClient interface {
	// QueryContractSmart runs a read-only smart query and decodes the
	// contract's reply into result.
	QueryContractSmart(ctx context.Context, contractAddr string, query interface{}, result interface{}) error

	// Execute submits a state-changing message signed by the session's
	// signer. feeMode is passed through opaquely ("auto").
	Execute(ctx context.Context, sender, contractAddr string, msg interface{}, feeMode string) (*models.TxResult, error)
}

// Dialer opens signing sessions. Injected so tests can substitute a fake
// endpoint and so no package-level singleton is needed.
type Dialer interface {
	ConnectWithSigner(ctx context.Context, endpoint string, signer Signer, opts ConnectOptions) (SigningClient, error)
}
