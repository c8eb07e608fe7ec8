package assistant

import "ProjectSenorita/pkg/response"

var (
	ErrEmptyCommand       = response.NewError(400, "command text is empty")
	ErrHistoryUnavailable = response.NewError(503, "command history is not available")
)
