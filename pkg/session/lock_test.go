package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/thermoprops/pkg/adapters/memory"
	"github.com/aretw0/thermoprops/pkg/ports"
	"github.com/aretw0/thermoprops/pkg/workspace"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(memory.NewStore(), func(w ports.QueryWriter) *workspace.Controller {
		return workspace.New(nil, workspace.WithWriter(w))
	})
	ctx := context.Background()
	count := 10000

	for i := 0; i < count; i++ {
		id := fmt.Sprintf("workspace-%d", i)
		_, _ = mgr.Create(ctx, id, "")
		_ = mgr.Delete(ctx, id)
	}

	if lockCount := len(mgr.locks); lockCount != 0 {
		t.Errorf("Memory Leak Detected: %d locks remaining in memory after Delete", lockCount)
	}
}
