package models

import (
	"fmt"
	"strconv"
)

// ContributionView is a contribution together with the text the page shows for it.
type ContributionView struct {
	Contribution
	Headline    string `json:"headline"`
	Detail      string `json:"detail"`
	Points      int    `json:"points"`
	PointsLabel string `json:"points_label"`
}

type Snapshot struct {
	Goal          int                `json:"goal"`
	Current       int                `json:"current"`
	Progress      float64            `json:"progress"`
	Version       uint64             `json:"version"`
	Contributions []ContributionView `json:"contributions"`
}

func NewContributionView(c Contribution) ContributionView {
	points := Score(c)
	return ContributionView{
		Contribution: c,
		Headline:     Headline(c),
		Detail:       Detail(c),
		Points:       points,
		PointsLabel:  "+" + strconv.Itoa(points),
	}
}

func Headline(c Contribution) string {
	return fmt.Sprintf("%s • %s", c.User, c.Type)
}

// Detail renders the secondary line of a list entry, e.g. "New sub • 1x • hi".
func Detail(c Contribution) string {
	var line string
	switch c.Type {
	case TypeSub:
		line = fmt.Sprintf("New sub • %dx", c.Amount)
	case TypeGift:
		line = fmt.Sprintf("Gifted subs • %dx", c.Amount)
	case TypeBits:
		line = fmt.Sprintf("Bits • %d", c.Amount)
	default:
		if c.Message != nil {
			return *c.Message
		}
		return ""
	}
	if c.Message != nil {
		line += " • " + *c.Message
	}
	return line
}

// ProgressLabel is the text under the goal bar.
func (s *Snapshot) ProgressLabel() string {
	return fmt.Sprintf("Progress: %d/%d pts", s.Current, s.Goal)
}

// ProgressPercent is the bar width in whole percent.
func (s *Snapshot) ProgressPercent() int {
	return int(s.Progress * 100)
}
