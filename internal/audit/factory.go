package audit

import (
	"fmt"

	"github.com/VadimTolstov/rococo-sub000/internal/core"
)

const (
	TypeMemory = "memory"
	TypeFile   = "file"
)

// New builds the configured auditor. Disabled auditing yields a noop
// auditor so callers never have to nil-check.
func New(enabled bool, auditorType, path string) (core.Auditor, error) {
	if !enabled {
		return NewNoopAuditor(), nil
	}
	switch auditorType {
	case TypeMemory, "":
		return NewInMemoryAuditor(), nil
	case TypeFile:
		if path == "" {
			return nil, fmt.Errorf("file auditor requires a path")
		}
		return NewFileAuditor(path)
	default:
		return nil, fmt.Errorf("unknown auditor type %q", auditorType)
	}
}
