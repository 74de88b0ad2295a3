package achievements

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// implements Repository using PostgreSQL
type PostgresRepository struct {
	db *pgxpool.Pool
}

// creates a new PostgreSQL achievement repository
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// creates the required tables if they don't exist
func (r *PostgresRepository) Initialize(ctx context.Context) error {
	_, err := r.db.Exec(ctx, createTableSQL)
	return err
}

// loads the account's earned set keyed by achievement id
func (r *PostgresRepository) Earned(ctx context.Context, accountID string) (map[string]AccountAchievement, error) {
	rows, err := r.db.Query(ctx, queryEarned, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load earned achievements: %w", err)
	}

	defer rows.Close()
	earned := make(map[string]AccountAchievement)

	for rows.Next() {
		var a AccountAchievement

		err := rows.Scan(&a.AccountID, &a.AchievementID, &a.EarnedAt, &a.Displayed)
		if err != nil {
			return nil, fmt.Errorf("failed to scan earned achievement: %w", err)
		}

		earned[a.AchievementID] = a
	}

	return earned, rows.Err()
}

// awards an achievement and credits its points in one transaction; a second
// call for the same pair hits the unique key and is a no-op
func (r *PostgresRepository) Award(ctx context.Context, accountID string, achievement Achievement) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin award transaction: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	var insertedID string

	err = tx.QueryRow(ctx, queryAward, accountID, achievement.ID).Scan(&insertedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// already earned; nothing to credit
			return false, nil
		}
		return false, fmt.Errorf("failed to award achievement: %w", err)
	}

	if _, err := tx.Exec(ctx, queryCreditPoints, accountID, achievement.Points); err != nil {
		return false, fmt.Errorf("failed to credit points: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit award: %w", err)
	}

	return true, nil
}

// flips the displayed flag on an earned achievement
func (r *PostgresRepository) MarkDisplayed(ctx context.Context, accountID, achievementID string) error {
	tag, err := r.db.Exec(ctx, queryMarkDisplayed, accountID, achievementID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNotEarned
	}

	return nil
}
