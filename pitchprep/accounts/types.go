package accounts

import "time"

// Tier identifies a subscription level
type Tier string

const (
	TierStarter Tier = "starter"
	TierPlus    Tier = "plus"
	TierPremier Tier = "premier"
)

// reports whether the tier is one of the known subscription levels
func (t Tier) Valid() bool {
	switch t {
	case TierStarter, TierPlus, TierPremier:
		return true
	}
	return false
}

// Feature identifies a rate-limited practice feature
type Feature string

const (
	FeatureRoleplay Feature = "roleplay"
	FeatureExam     Feature = "exam"
	FeatureFeedback Feature = "feedback"
)

// all metered features, in a stable order
func Features() []Feature {
	return []Feature{FeatureRoleplay, FeatureExam, FeatureFeedback}
}

// reports whether the feature is metered
func (f Feature) Valid() bool {
	switch f {
	case FeatureRoleplay, FeatureExam, FeatureFeedback:
		return true
	}
	return false
}

// UsageCounter tracks monthly consumption of one metered feature
type UsageCounter struct {
	Count   int       `json:"count"`
	ResetAt time.Time `json:"reset_at"`
}

// Account represents a registered student in the system
type Account struct {
	ID         string    `json:"id"`
	Handle     string    `json:"handle"`
	SecretHash string    `json:"-"`
	Email      string    `json:"email,omitempty"`
	EventTrack string    `json:"event_track"`
	Tier       Tier      `json:"tier"`
	Points     int       `json:"points"`
	Streak     int       `json:"streak"`
	SessionID  string    `json:"-"`
	LastActive time.Time `json:"last_active"`

	// monthly usage counters, one per metered feature
	Usage map[Feature]UsageCounter `json:"usage"`

	// lifetime activity aggregates, never reset
	RoleplaysCompleted int `json:"roleplays_completed"`
	ExamsCompleted     int `json:"exams_completed"`
	FeedbackCompleted  int `json:"feedback_completed"`
	BestExamScore      int `json:"best_exam_score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAccount carries the fields needed to register an account
type NewAccount struct {
	Handle     string
	SecretHash string
	Email      string
	EventTrack string
}

// returns a deep copy so callers can never alias store-internal state
func (a *Account) Clone() *Account {
	clone := *a
	clone.Usage = make(map[Feature]UsageCounter, len(a.Usage))

	for f, u := range a.Usage {
		clone.Usage[f] = u
	}

	return &clone
}

// computes the streak an account reaches by logging in at now, given its
// previous last-active timestamp (UTC calendar days)
func NextStreak(current int, lastActive, now time.Time) int {
	if current == 0 {
		return 1
	}

	last := lastActive.UTC().Truncate(24 * time.Hour)
	today := now.UTC().Truncate(24 * time.Hour)

	switch today.Sub(last) {
	case 0:
		return current
	case 24 * time.Hour:
		return current + 1
	}

	return 1
}
