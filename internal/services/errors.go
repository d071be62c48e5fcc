package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDiscovery       = errors.New("discovery error")
	ErrConfiguration   = errors.New("configuration error")
	ErrArchive         = errors.New("archive error")
	ErrPath            = errors.New("path error")
	ErrDirectoryCreate = errors.New("directory create error")
	ErrRelocation      = errors.New("relocation error")
)

// Wrap builds an error message that includes pipeline phase context while
// tagging it with the provided marker for later classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, phase, operation, message string, err error) error {
	detail := buildDetail(phase, operation, message)
	if marker == nil {
		marker = ErrRelocation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// RunFatal reports whether an error should abort the whole run rather than
// fail a single item. Only a bad source root and misconfiguration qualify;
// every per-item error class is absorbed into that item's outcome.
func RunFatal(err error) bool {
	return errors.Is(err, ErrDiscovery) || errors.Is(err, ErrConfiguration)
}

func buildDetail(phase, operation, message string) string {
	parts := make([]string, 0, 3)
	if phase = strings.TrimSpace(phase); phase != "" {
		parts = append(parts, phase)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
