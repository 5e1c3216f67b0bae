package sl

import (
	"log/slog"
)

// Err creates a slog.Attr with the given error.
// A nil error is logged as an empty attribute value instead of panicking.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}

	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Op creates a slog.Attr naming the operation that is being logged.
func Op(opn string) slog.Attr {
	return slog.String("op", opn)
}
