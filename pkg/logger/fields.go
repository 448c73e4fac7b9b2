package logger

// Attribute keys shared by every log line.
const (
	FieldService   = "service"
	FieldEnv       = "env"
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldUserID    = "user_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldBytes     = "bytes"
	FieldDuration  = "duration_ms"
	FieldError     = "err"
)

const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentAuth    = "auth"
	ComponentStorage = "storage"
	ComponentFinance = "finance"
)
