package testing

import (
	"fmt"
	"testing"

	"github.com/ValentinKolb/rKV/lib/backend"
)

// RunBackendBenchmarks runs all benchmarks for an IBackend implementation
func RunBackendBenchmarks(b *testing.B, name string, factory BackendFactory) {

	b.Run("Set", func(b *testing.B) {
		benchmarkSet(b, factory(), false)
	})

	b.Run("SetSynced", func(b *testing.B) {
		benchmarkSet(b, factory(), true)
	})

	b.Run("SetExisting", func(b *testing.B) {
		benchmarkSetExisting(b, factory())
	})

	b.Run("Get", func(b *testing.B) {
		benchmarkGet(b, factory())
	})

	b.Run("Get(not)", func(b *testing.B) {
		benchmarkGetNot(b, factory())
	})

	b.Run("Delete", func(b *testing.B) {
		benchmarkDelete(b, factory())
	})

	b.Run("MixedUsage", func(b *testing.B) {
		benchmarkMixedUsage(b, factory())
	})
}

// --------------------------------------------------------------------------
// Benchmark functions
// --------------------------------------------------------------------------

// Benchmark for Set operation
func benchmarkSet(b *testing.B, bk backend.IBackend, syncNow bool) {

	b.Cleanup(func() {
		bk.Close()
	})

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			key := fmt.Sprintf("test-key-%d", counter)
			value := []byte(fmt.Sprintf("test-value-%d", counter))
			_ = bk.Set(key, value, syncNow)
			counter++
		}
	})
}

// Benchmark for Set operation with existing keys
func benchmarkSetExisting(b *testing.B, bk backend.IBackend) {

	b.Cleanup(func() {
		bk.Close()
	})

	// Prepare data
	numKeys := 1000
	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("test-key-%d", i)
		value := []byte(fmt.Sprintf("test-value-%d", i))
		_ = bk.Set(key, value, false)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			key := fmt.Sprintf("test-key-%d", counter%numKeys)
			value := []byte(fmt.Sprintf("test-value-%d", counter))
			_ = bk.Set(key, value, false)
			counter++
		}
	})
}

// Parallel benchmarking for Get operation
func benchmarkGet(b *testing.B, bk backend.IBackend) {

	b.Cleanup(func() {
		bk.Close()
	})

	// Prepare data
	numKeys := 10000
	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("test-key-%d", i)
		value := []byte(fmt.Sprintf("test-value-%d", i))
		_ = bk.Set(key, value, false)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			key := fmt.Sprintf("test-key-%d", counter%numKeys)
			_, _, _ = bk.Get(key)
			counter++
		}
	})
}

// Parallel benchmarking for Get operation on missing keys
func benchmarkGetNot(b *testing.B, bk backend.IBackend) {

	b.Cleanup(func() {
		bk.Close()
	})

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			key := fmt.Sprintf("missing-key-%d", counter)
			_, _, _ = bk.Get(key)
			counter++
		}
	})
}

// Parallel benchmarking for Delete operation
func benchmarkDelete(b *testing.B, bk backend.IBackend) {

	b.Cleanup(func() {
		bk.Close()
	})

	numKeys := 100000
	if b.N < numKeys {
		numKeys = b.N
	}

	// Prepare data
	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("test-key-%d", i)
		value := []byte(fmt.Sprintf("test-value-%d", i))
		_ = bk.Set(key, value, false)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			key := fmt.Sprintf("test-key-%d", counter%numKeys)
			_ = bk.Delete(key, false)
			counter++
		}
	})
}

// Benchmark simulating realistic mixed usage
func benchmarkMixedUsage(b *testing.B, bk backend.IBackend) {

	b.Cleanup(func() {
		bk.Close()
	})

	numKeys := 1000
	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("test-key-%d", i)
		value := []byte(fmt.Sprintf("test-value-%d", i))
		_ = bk.Set(key, value, false)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			key := fmt.Sprintf("test-key-%d", counter%numKeys)
			switch counter % 4 {
			case 0:
				_ = bk.Set(key, []byte(fmt.Sprintf("test-value-%d", counter)), false)
			case 3:
				_ = bk.Delete(key, false)
			default:
				_, _, _ = bk.Get(key)
			}
			counter++
		}
	})
}
