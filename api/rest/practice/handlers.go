package practice

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pitchprep/server/internal/auth"
	"github.com/pitchprep/server/internal/errors"
	"github.com/pitchprep/server/internal/generator"
	"github.com/pitchprep/server/internal/logger"
	"github.com/pitchprep/server/internal/quota"
	"github.com/pitchprep/server/pitchprep/accounts"
	"github.com/pitchprep/server/pitchprep/achievements"
)

const defaultExamQuestionCount = 10

// Deps bundles what every practice handler needs
type Deps struct {
	Store     accounts.Store
	Meter     *quota.Meter
	Generator generator.Client
	Engine    *achievements.Engine
}

// RoleplayHandler godoc
// @Summary Generate a roleplay scenario
// @Description Generate a practice roleplay scenario for the account's event track, gated by the monthly quota
// @Tags practice
// @Produce json
// @Success 200 {object} ContentResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /api/v1/practice/roleplay [post]
// @Security BearerAuth
func RoleplayHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, exists := auth.GetAccountID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		account, err := deps.Store.Get(c.Request.Context(), accountID)
		if err != nil {
			errors.NotFound(c, "account")
			return
		}

		generate := func(c *gin.Context) (string, error) {
			return deps.Generator.RoleplayScenario(c.Request.Context(), account.EventTrack)
		}

		runGated(c, deps, accountID, accounts.FeatureRoleplay, generate)
	}
}

// ExamHandler godoc
// @Summary Generate practice exam questions
// @Description Generate exam questions for the account's event track, gated by the monthly quota
// @Tags practice
// @Accept json
// @Produce json
// @Param request body ExamRequest false "Question count"
// @Success 200 {object} ContentResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /api/v1/practice/exam [post]
// @Security BearerAuth
func ExamHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, exists := auth.GetAccountID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req ExamRequest
		if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
			errors.ValidationError(c, err)
			return
		}

		if req.Count == 0 {
			req.Count = defaultExamQuestionCount
		}

		account, err := deps.Store.Get(c.Request.Context(), accountID)
		if err != nil {
			errors.NotFound(c, "account")
			return
		}

		generate := func(c *gin.Context) (string, error) {
			return deps.Generator.ExamQuestions(c.Request.Context(), account.EventTrack, req.Count)
		}

		runGated(c, deps, accountID, accounts.FeatureExam, generate)
	}
}

// FeedbackHandler godoc
// @Summary Generate written-event feedback
// @Description Review a submitted draft, gated by the monthly quota
// @Tags practice
// @Accept json
// @Produce json
// @Param request body FeedbackRequest true "Draft to review"
// @Success 200 {object} ContentResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /api/v1/practice/feedback [post]
// @Security BearerAuth
func FeedbackHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, exists := auth.GetAccountID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req FeedbackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		generate := func(c *gin.Context) (string, error) {
			return deps.Generator.WrittenFeedback(c.Request.Context(), req.Draft)
		}

		runGated(c, deps, accountID, accounts.FeatureFeedback, generate)
	}
}

// SubmitScoreHandler godoc
// @Summary Submit an exam score
// @Description Record a completed exam and its score; may unlock achievements
// @Tags practice
// @Accept json
// @Produce json
// @Param request body ScoreRequest true "Exam score"
// @Success 200 {object} ScoreResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/practice/exam/score [post]
// @Security BearerAuth
func SubmitScoreHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, exists := auth.GetAccountID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req ScoreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		err := deps.Store.RecordActivity(c.Request.Context(), accountID, accounts.FeatureExam, req.Score)
		if err != nil {
			errors.InternalError(c, "failed to record exam score", err)
			return
		}

		newly, err := deps.Engine.Check(c.Request.Context(), accountID)
		if err != nil {
			logger.ErrorErr(err, "achievement check failed after score submit", "account_id", accountID)
		}

		account, err := deps.Store.Get(c.Request.Context(), accountID)
		if err != nil {
			errors.InternalError(c, "failed to reload account", err)
			return
		}

		c.JSON(http.StatusOK, ScoreResponse{
			BestScore:   account.BestExamScore,
			NewlyEarned: newly,
		})
	}
}

// runs the shared gate → generate → meter → aggregate → achievements flow.
// Usage is recorded only after generation succeeded, so a failed external
// call never costs quota; the post-increment overshoot check in the meter is
// the authoritative rejection under concurrency.
func runGated(c *gin.Context, deps Deps, accountID string, feature accounts.Feature, generate func(*gin.Context) (string, error)) {
	decision, err := deps.Meter.Allow(c.Request.Context(), accountID, feature)
	if err != nil {
		errors.InternalError(c, "failed to check allowance", err)
		return
	}

	if !decision.Allowed {
		errors.QuotaExceeded(c, string(feature), string(decision.Tier))
		return
	}

	content, err := generate(c)
	if err != nil {
		errors.InternalError(c, "content generation failed", err)
		return
	}

	if err := deps.Meter.Record(c.Request.Context(), accountID, feature); err != nil {
		var quotaErr *quota.QuotaError
		if stderrors.As(err, &quotaErr) {
			errors.QuotaExceeded(c, string(quotaErr.Feature), string(quotaErr.Tier))
			return
		}
		errors.InternalError(c, "failed to record usage", err)
		return
	}

	// exams only count as completed once a score comes in
	if feature != accounts.FeatureExam {
		if err := deps.Store.RecordActivity(c.Request.Context(), accountID, feature, 0); err != nil {
			logger.ErrorErr(err, "failed to record activity", "account_id", accountID, "feature", feature)
		}
	}

	if err := deps.Store.Touch(c.Request.Context(), accountID); err != nil {
		logger.ErrorErr(err, "failed to touch account", "account_id", accountID)
	}

	newly, err := deps.Engine.Check(c.Request.Context(), accountID)
	if err != nil {
		logger.ErrorErr(err, "achievement check failed", "account_id", accountID, "feature", feature)
	}

	remaining := quota.Unlimited
	if decision.Limit != quota.Unlimited {
		remaining = decision.Limit - decision.Used - 1
	}

	c.JSON(http.StatusOK, ContentResponse{
		Content:     content,
		NewlyEarned: newly,
		Remaining:   remaining,
	})
}
