package core

import "github.com/shopspring/decimal"

// SplitEntryFee divides an entry fee between the platform and the
// auctioneer. The platform share is percent% of the fee with the fractional
// part truncated; the auctioneer receives the exact remainder, so the two
// shares always sum to the full fee with no rounding loss.
func SplitEntryFee(entry decimal.Decimal, percent int64) (platform, profit decimal.Decimal) {
	platform = entry.Mul(decimal.NewFromInt(percent)).Div(decimal.NewFromInt(100)).Floor()
	profit = entry.Sub(platform)
	return platform, profit
}
