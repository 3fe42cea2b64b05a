package integrators

import (
	"context"
	"testing"
)

func benchFunc(x, y float64) (float64, error) {
	return x + y, nil
}

func BenchmarkEuler(b *testing.B) {
	stepper := NewEuler()
	y := 1.0

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		y, _ = stepper.Step(benchFunc, 0, y, 1e-6)
	}
}

func BenchmarkHeun(b *testing.B) {
	stepper := NewHeun(1)
	y := 1.0

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		y, _ = stepper.Step(benchFunc, 0, y, 1e-6)
	}
}

func BenchmarkHeunIterated(b *testing.B) {
	stepper := NewHeun(5)
	y := 1.0

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		y, _ = stepper.Step(benchFunc, 0, y, 1e-6)
	}
}

func BenchmarkIntegrate_10k(b *testing.B) {
	g, err := NewGrid(0, 1, 1e-4)
	if err != nil {
		b.Fatal(err)
	}
	stepper := NewHeun(1)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Integrate(ctx, benchFunc, stepper, "heun", g, 1)
	}
}
