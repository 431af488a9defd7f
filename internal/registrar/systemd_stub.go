//go:build !linux

package registrar

import (
	"fmt"

	"autoselfcontrol/pkg/logx"
)

// NewSystemd is only functional on linux; elsewhere it exists so callers
// can compile a single runtime switch over backends.
func NewSystemd(unit string, log logx.Logger) (Registrar, error) {
	return nil, fmt.Errorf("systemd backend requires linux")
}
