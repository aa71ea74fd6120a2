package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// APIPrefix is the path prefix of all JSON routes.
	APIPrefix = "/api"

	// ErrNilACDFatalLogMsg is used if app, cfg, db or another dependency pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg, db or session store is nil"

	// MsgInternalError is the only detail a client sees for unexpected failures.
	MsgInternalError = "Internal server error"
)
