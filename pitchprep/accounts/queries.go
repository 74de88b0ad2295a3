package accounts

import "fmt"

const accountColumns = `id, handle, secret_hash, email, event_track, tier, points, streak, session_id, last_active,
		roleplay_count, roleplay_reset_at, exam_count, exam_reset_at, feedback_count, feedback_reset_at,
		roleplays_completed, exams_completed, feedback_completed, best_exam_score, created_at, updated_at`

const (
	createTableSQL = `
		CREATE TABLE IF NOT EXISTS accounts (
			id UUID PRIMARY KEY,
			handle TEXT NOT NULL UNIQUE,
			secret_hash TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			event_track TEXT NOT NULL DEFAULT '',
			tier TEXT NOT NULL DEFAULT 'starter',
			points INTEGER NOT NULL DEFAULT 0,
			streak INTEGER NOT NULL DEFAULT 0,
			session_id TEXT NOT NULL DEFAULT '',
			last_active TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			roleplay_count INTEGER NOT NULL DEFAULT 0 CHECK (roleplay_count >= 0),
			roleplay_reset_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			exam_count INTEGER NOT NULL DEFAULT 0 CHECK (exam_count >= 0),
			exam_reset_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			feedback_count INTEGER NOT NULL DEFAULT 0 CHECK (feedback_count >= 0),
			feedback_reset_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			roleplays_completed INTEGER NOT NULL DEFAULT 0,
			exams_completed INTEGER NOT NULL DEFAULT 0,
			feedback_completed INTEGER NOT NULL DEFAULT 0,
			best_exam_score INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_handle ON accounts(handle);
	`

	queryGetByID = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1
	`

	queryGetByHandle = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE handle = $1
	`

	// raw fallback path: obtains rows without naming columns so a schema
	// drift on the column list cannot break the read; the row is mapped by
	// the same function as the structured path
	rawGetByID = `SELECT * FROM accounts WHERE id = $1`

	rawGetByHandle = `SELECT * FROM accounts WHERE handle = $1`

	queryCreate = `
		INSERT INTO accounts (id, handle, secret_hash, email, event_track, session_id, roleplay_reset_at, exam_reset_at, feedback_reset_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7, $7)
		RETURNING ` + accountColumns + `
	`

	queryUpdateProfile = `
		UPDATE accounts
		SET email = $2, event_track = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + accountColumns + `
	`

	queryUpdateTier = `
		UPDATE accounts
		SET tier = $2, updated_at = NOW()
		WHERE id = $1
	`

	queryUpdateSession = `
		UPDATE accounts
		SET session_id = $2, last_active = NOW(), updated_at = NOW()
		WHERE id = $1
	`

	queryUpdateStreak = `
		UPDATE accounts
		SET streak = $2, last_active = $3, updated_at = NOW()
		WHERE id = $1
	`

	queryAddPoints = `
		UPDATE accounts
		SET points = points + $2, updated_at = NOW()
		WHERE id = $1
	`

	queryTouch = `
		UPDATE accounts
		SET last_active = NOW(), updated_at = NOW()
		WHERE id = $1
	`
)

// safe column prefixes per metered feature; feature names never come from
// request input unvalidated
var featureColumns = map[Feature]string{
	FeatureRoleplay: "roleplay",
	FeatureExam:     "exam",
	FeatureFeedback: "feedback",
}

// atomic increment-and-return for one feature counter
func incrementUsageQuery(f Feature) string {
	col := featureColumns[f]
	return fmt.Sprintf(`
		UPDATE accounts
		SET %s_count = %s_count + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING %s_count
	`, col, col, col)
}

// rollback for an overshoot rejection; never drops below zero
func decrementUsageQuery(f Feature) string {
	col := featureColumns[f]
	return fmt.Sprintf(`
		UPDATE accounts
		SET %s_count = GREATEST(%s_count - 1, 0), updated_at = NOW()
		WHERE id = $1
	`, col, col)
}

// conditional monthly reset; the WHERE clause keeps the stamp forward-only
func resetUsageQuery(f Feature) string {
	col := featureColumns[f]
	return fmt.Sprintf(`
		UPDATE accounts
		SET %s_count = 0, %s_reset_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND %s_reset_at < $2
	`, col, col, col)
}

// lifetime aggregate bump; exams also track the best observed score
func recordActivityQuery(f Feature) string {
	switch f {
	case FeatureExam:
		return `
			UPDATE accounts
			SET exams_completed = exams_completed + 1,
				best_exam_score = GREATEST(best_exam_score, $2),
				updated_at = NOW()
			WHERE id = $1
		`
	case FeatureFeedback:
		return `
			UPDATE accounts
			SET feedback_completed = feedback_completed + 1, updated_at = NOW()
			WHERE id = $1
		`
	default:
		return `
			UPDATE accounts
			SET roleplays_completed = roleplays_completed + 1, updated_at = NOW()
			WHERE id = $1
		`
	}
}
