// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package logging

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gaucho-cli/gaucho/internal/util"
)

const NoLoggingLevel = slog.Level(100) // A level higher than any standard level to disable logging

const InvocationKey = "invocation"

func SetupInitialLogging() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelWarn,
			TimeFormat: time.RFC3339,
		}),
	))

	//overwrite standard log so it's always redirected to slog, in case some deep dep is using it
	redirectStdLog()
}

// SetupClientLogging writes everything to a rotated file and only records at
// consoleLevel or above to stderr. Every record carries the invocation id.
func SetupClientLogging(logFilePath string, consoleLevel slog.Level, invocationID string) {
	if err := util.EnsureFileFolderHierarchy(logFilePath); err != nil {
		slog.Error("Failed to create log folder hierarchy", "error", err)
		return
	}

	lumber := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    10,
		MaxBackups: 3,
		Compress:   true,
	}

	var consoleHandler slog.Handler
	if consoleLevel != NoLoggingLevel {
		consoleHandler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      consoleLevel,
			TimeFormat: time.Kitchen,
		})
	}

	handler := NewMultiLevelHandler(
		tint.NewHandler(lumber, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}),
		consoleHandler,
	)

	logger := slog.New(handler)
	if invocationID != "" {
		logger = logger.With(InvocationKey, invocationID)
	}
	slog.SetDefault(logger)

	redirectStdLog()
}

func redirectStdLog() {
	lw := &slogWriter{}
	log.Default().SetOutput(lw)
	log.SetOutput(lw)
}

// MultiLevelHandler fans records out to a file handler and an optional
// console handler, each with its own level.
type MultiLevelHandler struct {
	fileHandler    slog.Handler
	consoleHandler slog.Handler
}

func NewMultiLevelHandler(fileHandler, consoleHandler slog.Handler) *MultiLevelHandler {
	return &MultiLevelHandler{fileHandler: fileHandler, consoleHandler: consoleHandler}
}

func (h *MultiLevelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.fileHandler.Enabled(ctx, level) {
		return true
	}
	if h.consoleHandler != nil && h.consoleHandler.Enabled(ctx, level) {
		return true
	}
	return false
}

func (h *MultiLevelHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.fileHandler.Enabled(ctx, r.Level) {
		if err := h.fileHandler.Handle(ctx, r); err != nil {
			return err
		}
	}

	if h.consoleHandler != nil && h.consoleHandler.Enabled(ctx, r.Level) {
		if err := h.consoleHandler.Handle(ctx, r); err != nil {
			return err
		}
	}

	return nil
}

func (h *MultiLevelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandler := &MultiLevelHandler{
		fileHandler: h.fileHandler.WithAttrs(attrs),
	}

	if h.consoleHandler != nil {
		newHandler.consoleHandler = h.consoleHandler.WithAttrs(attrs)
	}

	return newHandler
}

func (h *MultiLevelHandler) WithGroup(name string) slog.Handler {
	newHandler := &MultiLevelHandler{
		fileHandler: h.fileHandler.WithGroup(name),
	}

	if h.consoleHandler != nil {
		newHandler.consoleHandler = h.consoleHandler.WithGroup(name)
	}

	return newHandler
}
