package wallet

import (
	"testing"

	"balancerarb-go/internal/config"
)

func TestLookup(t *testing.T) {
	reg := NewRegistry([]config.WalletEntry{
		{Chain: "ethereum", Connector: "balancer", Network: "mainnet", Address: "0xabc"},
		{Chain: "ethereum", Connector: "uniswap", Network: "mainnet", Address: "0xdef"},
	})

	addr, ok := reg.Lookup("ethereum", "balancer", "mainnet")
	if !ok || addr != "0xabc" {
		t.Fatalf("expected 0xabc, got %q (ok=%v)", addr, ok)
	}

	addr, ok = reg.Lookup("Ethereum", "Balancer", "MAINNET")
	if !ok || addr != "0xabc" {
		t.Fatalf("expected case-insensitive match, got %q (ok=%v)", addr, ok)
	}

	if _, ok := reg.Lookup("ethereum", "balancer", "goerli"); ok {
		t.Fatalf("expected no match for goerli")
	}
}

func TestLookupSkipsEmptyAddress(t *testing.T) {
	reg := NewRegistry([]config.WalletEntry{
		{Chain: "ethereum", Connector: "balancer", Network: "mainnet", Address: ""},
	})
	if _, ok := reg.Lookup("ethereum", "balancer", "mainnet"); ok {
		t.Fatalf("expected empty address entry to be skipped")
	}
}

func TestEmpty(t *testing.T) {
	if !NewRegistry(nil).Empty() {
		t.Fatalf("expected empty registry")
	}
	reg := NewRegistry([]config.WalletEntry{{Chain: "e", Connector: "c", Network: "n", Address: "a"}})
	if reg.Empty() {
		t.Fatalf("expected non-empty registry")
	}
}
