package models

import "time"

type ContributionType string

const (
	TypeSub  ContributionType = "Sub"
	TypeGift ContributionType = "Gift"
	TypeBits ContributionType = "Bits"
)

// Contribution is a single viewer action. It is never modified after the
// ledger creates it.
type Contribution struct {
	ID        string           `json:"id"`
	User      string           `json:"user"`
	Type      ContributionType `json:"type"`
	Amount    int              `json:"amount"`
	Message   *string          `json:"message,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

// blueprint describes a contribution before it gets an id and a timestamp.
type blueprint struct {
	user    string
	kind    ContributionType
	amount  int
	message *string
}

func msg(s string) *string {
	return &s
}

var seedContributions = []blueprint{
	{user: "arin", kind: TypeSub, amount: 1, message: msg("Let’s go!")},
	{user: "bri", kind: TypeGift, amount: 5, message: msg("Hype train time")},
	{user: "casey", kind: TypeBits, amount: 300, message: msg("GGs")},
	{user: "dev", kind: TypeSub, amount: 1},
	{user: "ez", kind: TypeGift, amount: 10, message: msg("Love the stream")},
}

var samplePool = []blueprint{
	{user: "kay", kind: TypeSub, amount: 1, message: msg("🔥")},
	{user: "leo", kind: TypeGift, amount: 3},
	{user: "may", kind: TypeBits, amount: 500, message: msg("Pog")},
}
