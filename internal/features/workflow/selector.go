package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
)

// evalMatchScript runs a template's tengo match script against the
// requisition's variables. The script sees an `rq` map and must assign
// a boolean to `match`, e.g.:
//
//	match := rq.positions > 5 || rq.gerencia_id == "..."
func evalMatchScript(ctx context.Context, scriptContent string, rqVars map[string]interface{}) (bool, error) {
	script := tengo.NewScript([]byte(scriptContent))
	if err := script.Add("rq", rqVars); err != nil {
		return false, fmt.Errorf("failed to bind rq vars: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	compiled, err := script.RunContext(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to run match script: %w", err)
	}

	return compiled.Get("match").Bool(), nil
}
