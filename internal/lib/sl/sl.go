package sl

import "log/slog"

// Err attaches an error to a log record under the "error" key.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// Module tags a derived logger with the component that owns it.
func Module(name string) slog.Attr {
	return slog.String("module", name)
}

// RequestID tags a log record with the id of the request being served.
func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}
