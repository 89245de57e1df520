// internal/dating/dto.go
package dating

// MatchListResponse wraps the caller's active matches.
type MatchListResponse struct {
	Matches []*Match `json:"matches"`
	Count   int      `json:"count"`
}
