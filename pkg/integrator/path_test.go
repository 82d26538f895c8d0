package integrator

import (
	"testing"

	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/geometry"
)

func TestSkyColor(t *testing.T) {
	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up", core.NewVec3(0, 1, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"straight down", core.NewVec3(0, -1, 0), core.NewVec3(1.0, 1.0, 1.0)},
		{"horizon", core.NewVec3(1, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
	}

	const tolerance = 1e-12
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SkyColor(tt.direction)
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestSkyColor_NormalizesInput(t *testing.T) {
	// Scaling the direction must not change the gradient position.
	a := SkyColor(core.NewVec3(0, 1, 0))
	b := SkyColor(core.NewVec3(0, 10, 0))

	if a.Subtract(b).Length() > 1e-12 {
		t.Errorf("Expected identical colors, got %v and %v", a, b)
	}
}

func TestRayColor_Miss(t *testing.T) {
	tracer := NewPathTracer(8)
	world := geometry.NewScene()
	rng := core.NewPixelRNG(0, 0, 0)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	color, termination := tracer.RayColor(ray, world, rng)

	if termination != TerminatedMiss {
		t.Fatalf("Expected TerminatedMiss, got %v", termination)
	}
	expected := core.NewVec3(0.5, 0.7, 1.0)
	if color.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected full-strength sky %v, got %v", expected, color)
	}
}

func TestRayColor_BudgetCap(t *testing.T) {
	// With a single bounce the surface color survives to the output,
	// halved once by the bounce attenuation.
	tracer := NewPathTracer(1)
	world := geometry.NewScene()
	albedo := core.NewVec3(1, 0, 0)
	if err := world.Add(geometry.NewSphere(core.NewVec3(0, 0, -5), 1.0, albedo)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	rng := core.NewPixelRNG(10, 20, 0)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	color, termination := tracer.RayColor(ray, world, rng)

	if termination != TerminatedBudget {
		t.Fatalf("Expected TerminatedBudget, got %v", termination)
	}
	expected := albedo.Multiply(0.5)
	if color.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, color)
	}
}

func TestRayColor_BudgetCapEnclosed(t *testing.T) {
	// Eight concentric shells around the origin. Every scatter leaves a
	// shell surface with a positive radial component, so each segment is
	// forced across the next shell outward and no segment can reach the
	// sky. The eighth hit lands on the outermost shell just as the budget
	// runs out.
	tracer := NewPathTracer(8)
	world := geometry.NewScene()
	inner := core.NewVec3(0.5, 0.5, 0.5)
	outer := core.NewVec3(0.9, 0.4, 0.2)
	for radius := 1; radius <= 8; radius++ {
		albedo := inner
		if radius == 8 {
			albedo = outer
		}
		if err := world.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), float64(radius), albedo)); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	rng := core.NewPixelRNG(3, 5, 2)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	color, termination := tracer.RayColor(ray, world, rng)

	if termination != TerminatedBudget {
		t.Fatalf("Expected TerminatedBudget, got %v", termination)
	}
	expected := outer.Multiply(1.0 / 256.0)
	if color.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected outermost albedo after eight halvings %v, got %v", expected, color)
	}
}

func TestRayColor_HitThenEscape(t *testing.T) {
	// A ray hitting the top pole of the sphere scatters into the upper
	// half-space and escapes, so the result is the scattered ray's sky
	// color carrying one bounce of attenuation. A twin RNG with the same
	// seed reproduces the scatter direction exactly.
	tracer := NewPathTracer(8)
	world := geometry.NewScene()
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -5), 1.0, core.NewVec3(1, 0, 0))
	if err := world.Add(sphere); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	rng := core.NewPixelRNG(33, 44, 7)
	twin := core.NewPixelRNG(33, 44, 7)

	color, termination := tracer.RayColor(ray, world, rng)

	record, hit := world.Hit(ray, 0.001, 1000.0)
	if !hit {
		t.Fatal("Setup ray must hit the sphere")
	}
	scatter := record.Normal.Add(twin.InUnitSphere()).Normalize()
	expected := SkyColor(scatter).Multiply(0.5)

	if termination != TerminatedMiss {
		t.Fatalf("Expected TerminatedMiss, got %v", termination)
	}
	if color.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, color)
	}
}

func TestRayColor_Deterministic(t *testing.T) {
	tracer := NewPathTracer(8)
	world := geometry.NewScene()
	if err := world.Add(geometry.NewSphere(core.NewVec3(0, 0, -5), 1.0, core.NewVec3(0.9, 0.2, 0.2))); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := world.Add(geometry.NewSphere(core.NewVec3(0, -101, -5), 100.0, core.NewVec3(0.5, 0.5, 0.5))); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0.05, -0.1, -1))

	first, firstEnd := tracer.RayColor(ray, world, core.NewPixelRNG(5, 6, 7))
	second, secondEnd := tracer.RayColor(ray, world, core.NewPixelRNG(5, 6, 7))

	if first != second {
		t.Errorf("Same seed must reproduce the color exactly: %v vs %v", first, second)
	}
	if firstEnd != secondEnd {
		t.Errorf("Same seed must reproduce the termination: %v vs %v", firstEnd, secondEnd)
	}
}

func TestNewPathTracer_BudgetFallback(t *testing.T) {
	tests := []struct {
		name     string
		budget   int
		expected int
	}{
		{"positive budget kept", 3, 3},
		{"zero falls back to default", 0, DefaultMaxBounces},
		{"negative falls back to default", -4, DefaultMaxBounces},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer := NewPathTracer(tt.budget)
			if tracer.MaxBounces() != tt.expected {
				t.Errorf("Expected budget %d, got %d", tt.expected, tracer.MaxBounces())
			}
		})
	}
}

func TestTermination_String(t *testing.T) {
	if TerminatedMiss.String() != "miss" {
		t.Errorf("Expected miss, got %s", TerminatedMiss.String())
	}
	if TerminatedBudget.String() != "budget" {
		t.Errorf("Expected budget, got %s", TerminatedBudget.String())
	}
	if Termination(99).String() != "unknown" {
		t.Errorf("Expected unknown, got %s", Termination(99).String())
	}
}
