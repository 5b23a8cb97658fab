package history

import "github.com/shopspring/decimal"

// TargetAchievement returns sell price / target price * 100. The second
// result is false when the scenario carries no usable target price.
func TargetAchievement(t Trade) (float64, bool) {
	target, ok := t.TargetPrice()
	if !ok || target == 0 {
		return 0, false
	}
	pct := decimal.NewFromFloat(t.SellPrice).
		Div(decimal.NewFromFloat(target)).
		Mul(decimal.NewFromInt(100))
	return pct.InexactFloat64(), true
}
