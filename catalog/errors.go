package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidIdentifier = errors.New("invalid identifier format")
	ErrCatalogLookup     = errors.New("catalog lookup failure")
	ErrNoRenderableData  = errors.New("no renderable data")
	ErrLayoutGeneration  = errors.New("layout generation failure")

	// ErrUnavailable marks transport failures and throttled or 5xx responses.
	ErrUnavailable = errors.New("service unavailable")
)

// Wrap builds an error that carries stage context and is tagged with marker
// so callers can classify it with errors.Is. marker should be one of the
// sentinels above; nil falls back to ErrCatalogLookup.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrCatalogLookup
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Retryable reports whether retrying the collaborator call may help.
func Retryable(err error) bool {
	return errors.Is(err, ErrUnavailable) && !errors.Is(err, ErrInvalidIdentifier)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "catalog failure"
	}
	return strings.Join(parts, ": ")
}
