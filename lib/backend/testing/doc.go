// Package testing provides standardised tests and benchmarks for storage
// implementations that satisfy the backend.IBackend interface.
//
// The package contains:
//   - testing: A conformance test suite for the IBackend interface contract
//   - benchmark: Performance tests for measuring throughput of common backend operations
//
// This package is particularly useful for:
//   - Applications that need to select the most appropriate backend
//     based on performance characteristics
//   - Backend developers implementing the IBackend interface
//
// Example usage:
//
//	// Creating a factory function for your implementation
//	factory := func() backend.IBackend {
//		return NewMyBackend()
//	}
//
//	// Running the standard test suite
//	func Test(t *testing.T) {
//		backendtesting.RunBackendTests(t, "MyBackend", factory)
//	}
//
//	// Running the standard benchmarks
//	func Benchmark(b *testing.B) {
//		backendtesting.RunBackendBenchmarks(b, "MyBackend", factory)
//	}
package testing
