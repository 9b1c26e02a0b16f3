package logger

import (
	"log/slog"
	"time"
)

// Error returns an "error" attribute, or an empty one for nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}

// RetryCount is the 1-based attempt that just failed.
func RetryCount(attempt int) slog.Attr {
	return slog.Int("retry_count", attempt)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Provider(name string) slog.Attr {
	return slog.String("provider", name)
}

// Target is the index or collection being written.
func Target(name string) slog.Attr {
	return slog.String("target", name)
}

// Batch groups a 1-based batch index with the batch total.
func Batch(index, total int) slog.Attr {
	return slog.Group("batch", slog.Int("index", index), slog.Int("total", total))
}

func Status(code int) slog.Attr {
	return slog.Int("status", code)
}

func Count(n int) slog.Attr {
	return slog.Int("count", n)
}
