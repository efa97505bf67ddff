package arb

import (
	"testing"

	"github.com/shopspring/decimal"

	"balancerarb-go/internal/gateway"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestEvaluateInsideThresholdNoTrade(t *testing.T) {
	threshold := dec(t, "0.0005")
	cases := []struct{ oracle, venue string }{
		{"0.0002947", "0.0002947"},             // zero deviation
		{"100", "100.04"},                      // +0.04%, under threshold
		{"100", "99.96"},                       // -0.04%, under threshold
		{"0.0002947", "0.00029484735"},         // +0.05% exactly, boundary stays out
	}
	for _, tc := range cases {
		decision := Evaluate(
			PriceSample{Source: "oracle", Price: dec(t, tc.oracle)},
			PriceSample{Source: "balancer", Price: dec(t, tc.venue)},
			threshold,
		)
		if decision.Trade() {
			t.Fatalf("oracle=%s venue=%s: expected no trade, got %s", tc.oracle, tc.venue, decision.Side)
		}
	}
}

func TestEvaluateDirectionFollowsSign(t *testing.T) {
	threshold := dec(t, "0.0005")

	decision := Evaluate(
		PriceSample{Price: dec(t, "100")},
		PriceSample{Price: dec(t, "101")},
		threshold,
	)
	if decision.Side != gateway.Sell {
		t.Fatalf("positive deviation must sell, got %q", decision.Side)
	}

	decision = Evaluate(
		PriceSample{Price: dec(t, "100")},
		PriceSample{Price: dec(t, "99")},
		threshold,
	)
	if decision.Side != gateway.Buy {
		t.Fatalf("negative deviation must buy, got %q", decision.Side)
	}
}

func TestEvaluateScenarioLargeDeviation(t *testing.T) {
	// oracle 0.0002947, venue 0.00032: deviation roughly +8.6%.
	decision := Evaluate(
		PriceSample{Price: dec(t, "0.0002947")},
		PriceSample{Price: dec(t, "0.00032")},
		dec(t, "0.0005"),
	)
	if decision.Side != gateway.Sell {
		t.Fatalf("expected Sell, got %q", decision.Side)
	}
	if decision.Deviation.LessThan(dec(t, "0.08")) || decision.Deviation.GreaterThan(dec(t, "0.09")) {
		t.Fatalf("expected deviation near +8.6%%, got %s", decision.Deviation)
	}
}

func TestEvaluateScenarioBarelyAboveThreshold(t *testing.T) {
	// Roughly +0.1% against a 0.05% threshold: still a Sell.
	decision := Evaluate(
		PriceSample{Price: dec(t, "0.0002947")},
		PriceSample{Price: dec(t, "0.0002950")},
		dec(t, "0.0005"),
	)
	if decision.Side != gateway.Sell {
		t.Fatalf("expected Sell just above threshold, got %q", decision.Side)
	}
}

func TestEvaluateIsPure(t *testing.T) {
	oracle := PriceSample{Price: dec(t, "0.0002947")}
	venue := PriceSample{Price: dec(t, "0.00032")}
	threshold := dec(t, "0.0005")
	first := Evaluate(oracle, venue, threshold)
	for i := 0; i < 5; i++ {
		again := Evaluate(oracle, venue, threshold)
		if again.Side != first.Side || !again.Deviation.Equal(first.Deviation) {
			t.Fatalf("identical inputs produced differing decisions")
		}
	}
}

func TestLimitPrice(t *testing.T) {
	venue := dec(t, "0.00032")
	slippage := dec(t, "0.01")

	buyLimit := LimitPrice(venue, gateway.Buy, slippage)
	if !buyLimit.Equal(venue.Mul(dec(t, "1.01"))) {
		t.Fatalf("buy limit: expected venue*1.01, got %s", buyLimit)
	}

	sellLimit := LimitPrice(venue, gateway.Sell, slippage)
	if !sellLimit.Equal(venue.Mul(dec(t, "0.99"))) {
		t.Fatalf("sell limit: expected venue*0.99, got %s", sellLimit)
	}
}

func TestLimitPriceMonotonicInSlippage(t *testing.T) {
	venue := dec(t, "100")
	small := dec(t, "0.005")
	large := dec(t, "0.02")

	if !LimitPrice(venue, gateway.Buy, large).GreaterThan(LimitPrice(venue, gateway.Buy, small)) {
		t.Fatalf("larger slippage must widen the buy limit upward")
	}
	if !LimitPrice(venue, gateway.Sell, large).LessThan(LimitPrice(venue, gateway.Sell, small)) {
		t.Fatalf("larger slippage must widen the sell limit downward")
	}
}
