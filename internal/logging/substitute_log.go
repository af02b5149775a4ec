// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package logging

import (
	"context"
	"log/slog"
	"strings"
)

// stdLogPrefixes maps the level words some libraries put in front of their
// standard log lines. Anything else is debug chatter.
var stdLogPrefixes = []struct {
	word  string
	level slog.Level
}{
	{"ERROR", slog.LevelError},
	{"WARN", slog.LevelWarn},
	{"INFO", slog.LevelInfo},
	{"DEBUG", slog.LevelDebug},
}

// slogWriter feeds the standard logger into slog so resty and the websocket
// relay end up in the client log file with the invocation id.
type slogWriter struct{}

func (w *slogWriter) Write(p []byte) (n int, err error) {
	level, msg := stdLogLevel(strings.TrimRight(string(p), "\r\n"))
	slog.Log(context.Background(), level, msg, "source", "stdlog")
	return len(p), nil
}

func stdLogLevel(line string) (slog.Level, string) {
	for _, prefix := range stdLogPrefixes {
		rest, ok := strings.CutPrefix(line, prefix.word)
		if !ok {
			continue
		}
		rest, ok = strings.CutPrefix(rest, ":")
		if !ok && !strings.HasPrefix(rest, " ") {
			continue
		}
		return prefix.level, strings.TrimSpace(rest)
	}
	return slog.LevelDebug, line
}
