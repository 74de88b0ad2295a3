package challenges

import "github.com/pitchprep/server/pitchprep/challenges"

// TodayResponse wraps today's challenge as seen by the caller
type TodayResponse struct {
	Challenge challenges.View `json:"challenge"`
}

// CompleteResponse reports the completion attempt
type CompleteResponse struct {
	Result challenges.Result `json:"result"`
}
