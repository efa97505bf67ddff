package gateway

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

func paperFixture() *Paper {
	price, _ := decimal.NewFromString("0.00032")
	return NewPaper(price, map[string]decimal.Decimal{
		"WETH": decimal.NewFromInt(10),
		"DAI":  decimal.NewFromInt(1000),
	})
}

func TestPaperSellAdjustsBalances(t *testing.T) {
	paper := paperFixture()
	resp, err := paper.AmmTrade(context.Background(), TradeRequest{
		Base: "WETH", Quote: "DAI", Side: Sell, Amount: decimal.NewFromInt(1),
	})
	if err != nil {
		t.Fatalf("AmmTrade returned error: %v", err)
	}
	if resp.TxHash == "" {
		t.Fatalf("expected synthetic txHash")
	}
	if !paper.Balance("WETH").Equal(decimal.NewFromInt(9)) {
		t.Fatalf("expected WETH balance 9, got %s", paper.Balance("WETH"))
	}
	want, _ := decimal.NewFromString("1000.00032")
	if !paper.Balance("DAI").Equal(want) {
		t.Fatalf("expected DAI balance %s, got %s", want, paper.Balance("DAI"))
	}
}

func TestPaperPendingThenConfirmed(t *testing.T) {
	paper := paperFixture()
	paper.SetPendingPolls(2)
	resp, err := paper.AmmTrade(context.Background(), TradeRequest{
		Base: "WETH", Quote: "DAI", Side: Buy, Amount: decimal.NewFromInt(1),
	})
	if err != nil {
		t.Fatalf("AmmTrade returned error: %v", err)
	}

	for i := 0; i < 2; i++ {
		status, err := paper.TransactionStatus(context.Background(), "ethereum", "mainnet", resp.TxHash)
		if err != nil {
			t.Fatalf("poll %d returned error: %v", i, err)
		}
		if !PendingStatus(status.TxStatus) {
			t.Fatalf("poll %d expected pending, got %d", i, status.TxStatus)
		}
	}
	status, err := paper.TransactionStatus(context.Background(), "ethereum", "mainnet", resp.TxHash)
	if err != nil {
		t.Fatalf("final poll returned error: %v", err)
	}
	if status.TxStatus != StatusConfirmed {
		t.Fatalf("expected confirmed, got %d", status.TxStatus)
	}
}

func TestPaperReject(t *testing.T) {
	paper := paperFixture()
	paper.RejectTrades(true)
	_, err := paper.AmmTrade(context.Background(), TradeRequest{
		Base: "WETH", Quote: "DAI", Side: Buy, Amount: decimal.NewFromInt(1),
	})
	if err == nil {
		t.Fatalf("expected rejection error")
	}
}

func TestPaperUnknownHash(t *testing.T) {
	paper := paperFixture()
	_, err := paper.TransactionStatus(context.Background(), "ethereum", "mainnet", "0xmissing")
	if err == nil {
		t.Fatalf("expected error for unknown hash")
	}
}
