// Package service defines the abstract ledger data-access interface the
// wallet core consults during validation, plus a caching decorator for it.
// Live implementations (JSON-RPC or websocket clients against a node) live
// outside this module.
package service

import (
	"context"
	"errors"

	"github.com/tidewallet/walletcore/internal/ledger/fields"
)

// ErrLookupFailed wraps transport-level failures from a Reader
// implementation so callers can distinguish "the line does not exist"
// (nil, nil) from "we could not find out".
var ErrLookupFailed = errors.New("ledger lookup failed")

// TrustLineView is one account's view of a trust line, as reported by the
// ledger. Balance, Limit and LimitPeer are decimal strings from the
// account's own perspective.
type TrustLineView struct {
	Currency   string `json:"currency"`
	Balance    string `json:"balance"`
	Limit      string `json:"limit"`
	LimitPeer  string `json:"limit_peer"`
	FreezePeer bool   `json:"freeze_peer"`
	NoRipple   bool   `json:"no_ripple"`
}

// LineFilter selects a single trust line by currency and issuer.
type LineFilter struct {
	Currency string
	Issuer   string
}

// TransactionsPage is one page of an account's transaction history. Marker
// is an opaque resumption token; empty means the history is exhausted.
type TransactionsPage struct {
	Transactions []fields.Doc
	Marker       string
}

// Reader is the ledger data-access collaborator. Implementations must be
// read-only and safely abandonable: a caller may stop awaiting a lookup at
// any time, so a call must have no side effects beyond the read itself.
// Timeouts and retry policy belong to the implementation, not to callers.
type Reader interface {
	// AvailableBalance returns the account's spendable native balance
	// (reserves already deducted) as a decimal string.
	AvailableBalance(ctx context.Context, address string) (string, error)

	// FilteredAccountLine returns the account's trust line matching the
	// filter, or (nil, nil) when no such line exists.
	FilteredAccountLine(ctx context.Context, address string, filter LineFilter) (*TrustLineView, error)

	// Transactions returns a page of the account's transaction history
	// starting at marker.
	Transactions(ctx context.Context, address string, marker string, limit int) (TransactionsPage, error)
}
