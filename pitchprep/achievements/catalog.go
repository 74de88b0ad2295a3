package achievements

// the static achievement catalog, ranked within each category
var catalog = []Achievement{
	{ID: "streak-3", Name: "Warming Up", Category: CategoryStreak, Threshold: 3, Points: 25, Rank: 1},
	{ID: "streak-7", Name: "Full Week", Category: CategoryStreak, Threshold: 7, Points: 75, Rank: 2},
	{ID: "streak-30", Name: "Competition Season", Category: CategoryStreak, Threshold: 30, Points: 300, Rank: 3},

	{ID: "roleplay-1", Name: "First Pitch", Category: CategoryRoleplayCount, Threshold: 1, Points: 10, Rank: 1},
	{ID: "roleplay-10", Name: "Seasoned Presenter", Category: CategoryRoleplayCount, Threshold: 10, Points: 50, Rank: 2},
	{ID: "roleplay-50", Name: "Boardroom Regular", Category: CategoryRoleplayCount, Threshold: 50, Points: 200, Rank: 3},

	{ID: "exam-1", Name: "Test Run", Category: CategoryExamCount, Threshold: 1, Points: 10, Rank: 1},
	{ID: "exam-10", Name: "Exam Grinder", Category: CategoryExamCount, Threshold: 10, Points: 50, Rank: 2},
	{ID: "exam-50", Name: "Hundred-Question Club", Category: CategoryExamCount, Threshold: 50, Points: 200, Rank: 3},

	{ID: "feedback-1", Name: "First Draft", Category: CategoryFeedbackCount, Threshold: 1, Points: 10, Rank: 1},
	{ID: "feedback-10", Name: "Revision Habit", Category: CategoryFeedbackCount, Threshold: 10, Points: 50, Rank: 2},

	{ID: "score-70", Name: "Passing Grade", Category: CategoryExamScore, Threshold: 70, Points: 30, Rank: 1},
	{ID: "score-85", Name: "Top Quartile", Category: CategoryExamScore, Threshold: 85, Points: 75, Rank: 2},
	{ID: "score-95", Name: "State Qualifier", Category: CategoryExamScore, Threshold: 95, Points: 150, Rank: 3},
}

// returns a copy of the achievement catalog
func Catalog() []Achievement {
	out := make([]Achievement, len(catalog))
	copy(out, catalog)
	return out
}
