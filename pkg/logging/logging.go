// Copyright (c) 2026, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel names the environment variable holding the default log level.
const EnvLogLevel = "LOG_LEVEL"

// ParseLogLevel maps a level name to a slog.Level. Unknown or empty names
// yield slog.LevelInfo.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetDefaultStructuredLogger installs a JSON logger as the slog default,
// using the level from LOG_LEVEL.
func SetDefaultStructuredLogger(module, version string) {
	SetDefaultStructuredLoggerWithLevel(module, version, os.Getenv(EnvLogLevel))
}

// SetDefaultStructuredLoggerWithLevel installs a JSON logger at the given level.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	slog.SetDefault(NewStructuredLogger(module, version, level))
}

// NewStructuredLogger returns a JSON logger writing to stderr.
func NewStructuredLogger(module, version, level string) *slog.Logger {
	return newLogger(os.Stderr, module, version, ParseLogLevel(level))
}

func newLogger(w io.Writer, module, version string, lvl slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl <= slog.LevelDebug,
	})
	return slog.New(h).With("module", module, "version", version)
}

// NewLogLogger adapts the default slog handler to a *log.Logger at the given
// level, for libraries that only accept the standard logger. When addSource is
// false the standard logger flags are cleared.
func NewLogLogger(lvl slog.Level, addSource bool) *log.Logger {
	l := slog.NewLogLogger(slog.Default().Handler(), lvl)
	if !addSource {
		l.SetFlags(0)
	}
	return l
}
