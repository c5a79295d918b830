package repokit

import (
	"context"
	"fmt"
)

// MustGuard runs the store's dependency guard and panics on failure.
// Both services call it at boot, a bridge without its database has
// nothing useful to do.
func MustGuard(ctx context.Context, st interface{ Guard(context.Context) error }) {
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
