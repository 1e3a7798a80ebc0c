package handler

const (
	// APIPath is the prefix of all API routes.
	APIPath = "/api"

	// AuthPath is the prefix of the authentication routes.
	AuthPath = APIPath + "/auth"

	// ErrNilDepsFatalLogMsg is used if app or one of the handler deps is nil.
	ErrNilDepsFatalLogMsg = "app or handler dependency is nil"

	// MsgInternalServerError is the body message of unexpected failures.
	MsgInternalServerError = "Internal server error."
)
