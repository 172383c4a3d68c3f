package silence

import (
	"context"

	"github.com/alnah/go-cutbot/internal/tool"
)

// commandRunner executes an external tool and returns its diagnostic output.
type commandRunner interface {
	RunOutput(ctx context.Context, toolPath string, args []string) (string, error)
}

// Compile-time interface verification.
var _ commandRunner = (*tool.Executor)(nil)
