// Package wallet resolves configured wallet addresses for venue/chain/network triples.
package wallet

import (
	"strings"

	"balancerarb-go/internal/config"
)

// Registry answers which wallet address is configured for a given
// (chain, connector, network) triple. Lookups are case-insensitive.
type Registry struct {
	entries []config.WalletEntry
}

// NewRegistry builds a registry from configuration entries.
func NewRegistry(entries []config.WalletEntry) *Registry {
	return &Registry{entries: entries}
}

// Lookup returns the configured address, or false when no entry matches.
func (r *Registry) Lookup(chain, connector, network string) (string, bool) {
	for _, entry := range r.entries {
		if strings.EqualFold(entry.Chain, chain) &&
			strings.EqualFold(entry.Connector, connector) &&
			strings.EqualFold(entry.Network, network) &&
			entry.Address != "" {
			return entry.Address, true
		}
	}
	return "", false
}

// Empty reports whether the registry holds no entries at all.
func (r *Registry) Empty() bool { return len(r.entries) == 0 }
