package quota

import "github.com/pitchprep/server/pitchprep/accounts"

// Unlimited marks a tier/feature pair with no monthly cap
const Unlimited = -1

// static tier → monthly limit table per metered feature
var limits = map[accounts.Tier]map[accounts.Feature]int{
	accounts.TierStarter: {
		accounts.FeatureRoleplay: 15,
		accounts.FeatureExam:     10,
		accounts.FeatureFeedback: 5,
	},
	accounts.TierPlus: {
		accounts.FeatureRoleplay: 60,
		accounts.FeatureExam:     40,
		accounts.FeatureFeedback: 20,
	},
	accounts.TierPremier: {
		accounts.FeatureRoleplay: Unlimited,
		accounts.FeatureExam:     Unlimited,
		accounts.FeatureFeedback: Unlimited,
	},
}

// returns the monthly limit for a tier/feature pair. Unknown tiers fall back
// to the starter limits so a bad tier value can never mean unlimited usage.
func LimitFor(tier accounts.Tier, feature accounts.Feature) int {
	table, ok := limits[tier]
	if !ok {
		table = limits[accounts.TierStarter]
	}

	limit, ok := table[feature]
	if !ok {
		return 0
	}

	return limit
}
