package membackend

import (
	"testing"

	"github.com/ValentinKolb/rKV/lib/backend"
	backendtesting "github.com/ValentinKolb/rKV/lib/backend/testing"
)

func Test(t *testing.T) {
	backendtesting.RunBackendTests(t, "MemBackend", func() backend.IBackend {
		return New()
	})
}

func Benchmark(b *testing.B) {
	backendtesting.RunBackendBenchmarks(b, "MemBackend", func() backend.IBackend {
		return New()
	})
}
