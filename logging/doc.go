// Package logging builds the slog loggers used by jukestrip.
//
// It owns console/JSON handler selection and level parsing, and exposes typed
// attribute helpers plus a no-op logger so library packages can log without
// caring whether the caller configured output.
package logging
