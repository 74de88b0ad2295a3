package challenges

const (
	createTableSQL = `
		CREATE TABLE IF NOT EXISTS daily_challenges (
			id UUID PRIMARY KEY,
			date DATE NOT NULL UNIQUE,
			category TEXT NOT NULL,
			points INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS account_daily_challenges (
			account_id UUID NOT NULL,
			challenge_id UUID NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT TRUE,
			completed_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			PRIMARY KEY (account_id, challenge_id)
		);
	`

	queryGetByDate = `
		SELECT id, date, category, points
		FROM daily_challenges
		WHERE date = $1
	`

	// the unique date key makes concurrent first-requesters converge: the
	// losing insert is a no-op and the caller re-reads the winning row
	queryCreate = `
		INSERT INTO daily_challenges (id, date, category, points)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (date) DO NOTHING
	`

	queryCompletion = `
		SELECT account_id, challenge_id, completed, completed_at
		FROM account_daily_challenges
		WHERE account_id = $1 AND challenge_id = $2
	`

	// exactly-once completion: the second attempt hits the primary key and
	// returns no row
	queryComplete = `
		INSERT INTO account_daily_challenges (account_id, challenge_id)
		VALUES ($1, $2)
		ON CONFLICT (account_id, challenge_id) DO NOTHING
		RETURNING challenge_id
	`
)
