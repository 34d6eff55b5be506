package bootstrap

import "context"

// AuditLog is an operational event worth keeping a trace of, such as a
// server shutdown or a failed startup dependency.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
