package models

const (
	pointsPerSub  = 10
	pointsPerGift = 10
	bitsPerPoint  = 100
)

// Score returns the goal points a contribution is worth.
func Score(c Contribution) int {
	return ScoreOf(c.Type, c.Amount)
}

// ScoreOf applies the per-type rule. Bits use Go integer division, which
// truncates toward zero, so -150 bits score -1 and -50 bits score 0.
// Unknown types are worth nothing.
func ScoreOf(kind ContributionType, amount int) int {
	switch kind {
	case TypeSub:
		return pointsPerSub * amount
	case TypeGift:
		return pointsPerGift * amount
	case TypeBits:
		return amount / bitsPerPoint
	default:
		return 0
	}
}
