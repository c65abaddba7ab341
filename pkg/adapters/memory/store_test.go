package memory_test

import (
	"testing"

	"github.com/aretw0/thermoprops/pkg/adapters/memory"
	"github.com/aretw0/thermoprops/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunQueryStoreContract(t, store)
}
