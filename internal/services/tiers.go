package services

import "math"

// Tier is one step of the informational donation-weight ladder the profile
// page shows. Unlike the achievement badge catalog this ladder is never
// persisted per user; it is derived from cumulative donated weight on every
// profile read. The two ladders are intentionally independent systems.
type Tier struct {
	Key   string  `json:"key"`
	Name  string  `json:"name"`
	Icon  string  `json:"icon"`
	MinKg float64 `json:"min_kg"`
}

// DonationTiers mirrors the ladder the original client rendered.
var DonationTiers = []Tier{
	{Key: "beginner", Name: "Beginner", Icon: "🟢", MinKg: 1},
	{Key: "helper", Name: "Helper", Icon: "🔵", MinKg: 5},
	{Key: "supporter", Name: "Supporter", Icon: "🟣", MinKg: 10},
	{Key: "hero", Name: "Hero", Icon: "🟡", MinKg: 20},
	{Key: "legend", Name: "Legend", Icon: "🔥", MinKg: 50},
	{Key: "super", Name: "Super Donor", Icon: "👑", MinKg: 100},
}

// TierStatus is a ladder step with its unlocked flag for one user.
type TierStatus struct {
	Tier
	Unlocked bool `json:"unlocked"`
}

// TierProgress describes how far the user is toward the next locked tier.
type TierProgress struct {
	Tier
	Percent float64 `json:"percent"`
}

// EvaluateTiers computes the ladder state for a cumulative donated weight.
// The progress pointer is nil once every tier is unlocked.
func EvaluateTiers(totalKg float64) ([]TierStatus, *TierProgress) {
	statuses := make([]TierStatus, 0, len(DonationTiers))
	var next *TierProgress

	for _, tier := range DonationTiers {
		unlocked := totalKg >= tier.MinKg
		statuses = append(statuses, TierStatus{Tier: tier, Unlocked: unlocked})

		if next == nil && !unlocked {
			next = &TierProgress{
				Tier:    tier,
				Percent: math.Min(100, totalKg/tier.MinKg*100),
			}
		}
	}

	return statuses, next
}
