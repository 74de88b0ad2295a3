package accounts

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// maps the current row onto an Account by column name. This is the single
// mapping function for both the structured query path and the raw fallback
// path, so the two can never drift in shape.
func accountFromRow(rows pgx.Rows) (*Account, error) {
	values, err := rows.Values()
	if err != nil {
		return nil, fmt.Errorf("failed to read account row: %w", err)
	}

	account := &Account{Usage: make(map[Feature]UsageCounter, 3)}
	usage := map[Feature]UsageCounter{}

	for i, field := range rows.FieldDescriptions() {
		if err := assignAccountField(account, usage, field.Name, values[i]); err != nil {
			return nil, err
		}
	}

	for f, u := range usage {
		account.Usage[f] = u
	}

	return account, nil
}

// writes one column value onto the account; unknown columns are ignored so
// additive schema changes don't break reads
func assignAccountField(a *Account, usage map[Feature]UsageCounter, column string, value any) error {
	switch column {
	case "id":
		a.ID = asString(value)
	case "handle":
		a.Handle = asString(value)
	case "secret_hash":
		a.SecretHash = asString(value)
	case "email":
		a.Email = asString(value)
	case "event_track":
		a.EventTrack = asString(value)
	case "tier":
		a.Tier = Tier(asString(value))
	case "points":
		a.Points = asInt(value)
	case "streak":
		a.Streak = asInt(value)
	case "session_id":
		a.SessionID = asString(value)
	case "last_active":
		a.LastActive = asTime(value)
	case "roleplay_count":
		setUsageCount(usage, FeatureRoleplay, asInt(value))
	case "roleplay_reset_at":
		setUsageReset(usage, FeatureRoleplay, asTime(value))
	case "exam_count":
		setUsageCount(usage, FeatureExam, asInt(value))
	case "exam_reset_at":
		setUsageReset(usage, FeatureExam, asTime(value))
	case "feedback_count":
		setUsageCount(usage, FeatureFeedback, asInt(value))
	case "feedback_reset_at":
		setUsageReset(usage, FeatureFeedback, asTime(value))
	case "roleplays_completed":
		a.RoleplaysCompleted = asInt(value)
	case "exams_completed":
		a.ExamsCompleted = asInt(value)
	case "feedback_completed":
		a.FeedbackCompleted = asInt(value)
	case "best_exam_score":
		a.BestExamScore = asInt(value)
	case "created_at":
		a.CreatedAt = asTime(value)
	case "updated_at":
		a.UpdatedAt = asTime(value)
	}

	return nil
}

func setUsageCount(usage map[Feature]UsageCounter, f Feature, count int) {
	u := usage[f]
	u.Count = count
	usage[f] = u
}

func setUsageReset(usage map[Feature]UsageCounter, f Feature, at time.Time) {
	u := usage[f]
	u.ResetAt = at
	usage[f] = u
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case [16]byte:
		// pgx may return UUID columns as raw bytes
		return fmt.Sprintf("%x-%x-%x-%x-%x", s[0:4], s[4:6], s[6:8], s[8:10], s[10:16])
	case fmt.Stringer:
		return s.String()
	}
	return ""
}

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int16:
		return int(n)
	case int32:
		return int(n)
	case int64:
		return int(n)
	}
	return 0
}

func asTime(v any) time.Time {
	if t, ok := v.(time.Time); ok {
		return t
	}
	return time.Time{}
}
