package achievements

const (
	createTableSQL = `
		CREATE TABLE IF NOT EXISTS account_achievements (
			account_id UUID NOT NULL,
			achievement_id TEXT NOT NULL,
			earned_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			displayed BOOLEAN NOT NULL DEFAULT FALSE,
			PRIMARY KEY (account_id, achievement_id)
		);
		CREATE INDEX IF NOT EXISTS idx_account_achievements_account ON account_achievements(account_id);
	`

	queryEarned = `
		SELECT account_id, achievement_id, earned_at, displayed
		FROM account_achievements
		WHERE account_id = $1
	`

	// the unique key makes the insert idempotent; points are credited in the
	// same transaction only when the row is actually inserted
	queryAward = `
		INSERT INTO account_achievements (account_id, achievement_id)
		VALUES ($1, $2)
		ON CONFLICT (account_id, achievement_id) DO NOTHING
		RETURNING achievement_id
	`

	queryCreditPoints = `
		UPDATE accounts
		SET points = points + $2, updated_at = NOW()
		WHERE id = $1
	`

	queryMarkDisplayed = `
		UPDATE account_achievements
		SET displayed = TRUE
		WHERE account_id = $1 AND achievement_id = $2
	`
)
