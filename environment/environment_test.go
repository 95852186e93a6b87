package environment

import (
	"math"
	"testing"

	"github.com/corsika-go/gocascade/geometry"
	"github.com/corsika-go/gocascade/particle"
	"github.com/corsika-go/gocascade/units"
)

func nitrogenAir(t *testing.T) *NuclearComposition {
	t.Helper()
	nc, err := NewNuclearComposition(
		[]particle.Code{particle.Nitrogen14, particle.Oxygen16},
		[]float64{0.78, 0.22},
	)
	if err != nil {
		t.Fatalf("NewNuclearComposition: %v", err)
	}
	return nc
}

func TestNuclearCompositionRejectsBadFractions(t *testing.T) {
	_, err := NewNuclearComposition([]particle.Code{particle.Nitrogen14}, []float64{0.5})
	if err == nil {
		t.Fatal("want error for fractions not summing to 1")
	}
}

func TestNuclearCompositionAverageMassNumber(t *testing.T) {
	nc := nitrogenAir(t)
	got := nc.AverageMassNumber()
	want := 14*0.78 + 16*0.22
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("AverageMassNumber() = %v, want %v", got, want)
	}
}

func TestHomogeneousMediumGrammageRoundTrips(t *testing.T) {
	root := geometry.NewRoot("root")
	medium := NewHomogeneousMedium(units.MassDensity(1.2), nitrogenAir(t))

	r0 := geometry.NewPoint(root, 0, 0, 0)
	v0 := geometry.NewVector(root, 0, 0, 1)
	line := geometry.NewLine(r0, v0)

	length := units.Length(100)
	grammage, err := medium.IntegratedGrammage(line, length)
	if err != nil {
		t.Fatalf("IntegratedGrammage: %v", err)
	}
	gotLength, err := medium.ArclengthFromGrammage(line, grammage)
	if err != nil {
		t.Fatalf("ArclengthFromGrammage: %v", err)
	}
	if math.Abs(float64(gotLength-length)) > 1e-6 {
		t.Errorf("round trip: got %v, want %v", gotLength, length)
	}
}

func TestFlatExponentialMediumGrammageRoundTrips(t *testing.T) {
	root := geometry.NewRoot("root")
	p0 := geometry.NewPoint(root, 0, 0, 0)
	axis := geometry.NewVector(root, 0, 0, 1)
	medium := NewFlatExponentialMedium(p0, axis, units.MassDensity(1.2), units.Length(8000), nitrogenAir(t))

	r0 := geometry.NewPoint(root, 0, 0, 0)
	v0 := geometry.NewVector(root, 0, 0.6, 0.8)
	line := geometry.NewLine(r0, v0)

	length := units.Length(1500)
	grammage, err := medium.IntegratedGrammage(line, length)
	if err != nil {
		t.Fatalf("IntegratedGrammage: %v", err)
	}
	if grammage <= 0 {
		t.Fatalf("IntegratedGrammage() = %v, want > 0", grammage)
	}
	gotLength, err := medium.ArclengthFromGrammage(line, grammage)
	if err != nil {
		t.Fatalf("ArclengthFromGrammage: %v", err)
	}
	if math.Abs(float64(gotLength-length)) > 1e-3 {
		t.Errorf("round trip: got %v, want %v", gotLength, length)
	}
}

func TestFlatExponentialMediumDensityDecreasesWithNegativeAxis(t *testing.T) {
	root := geometry.NewRoot("root")
	p0 := geometry.NewPoint(root, 0, 0, 0)
	axis := geometry.NewVector(root, 0, 0, -1) // density falls off with +z, like an atmosphere
	medium := NewFlatExponentialMedium(p0, axis, units.MassDensity(1.2), units.Length(8000), nitrogenAir(t))

	low := geometry.NewPoint(root, 0, 0, 0)
	high := geometry.NewPoint(root, 0, 0, 10000)

	rhoLow, err := medium.MassDensity(low)
	if err != nil {
		t.Fatalf("MassDensity(low): %v", err)
	}
	rhoHigh, err := medium.MassDensity(high)
	if err != nil {
		t.Fatalf("MassDensity(high): %v", err)
	}
	if rhoHigh >= rhoLow {
		t.Errorf("density at altitude (%v) should be less than at origin (%v)", rhoHigh, rhoLow)
	}
}

func TestSlidingPlanarExponentialMediumGrammageRoundTrips(t *testing.T) {
	root := geometry.NewRoot("root")
	// rho0 is the density at the pole itself, so the pole sits one scale
	// height below the line's start to keep rho at the start finite.
	pole := geometry.NewPoint(root, 0, 0, -8000)
	medium := NewSlidingPlanarExponentialMedium(pole, units.MassDensity(1.2), units.Length(8000), nitrogenAir(t))

	r0 := geometry.NewPoint(root, 0, 0, 0)
	v0 := geometry.NewVector(root, 0, 0.1, 1)
	line := geometry.NewLine(r0, v0)

	length := units.Length(500)
	grammage, err := medium.IntegratedGrammage(line, length)
	if err != nil {
		t.Fatalf("IntegratedGrammage: %v", err)
	}
	gotLength, err := medium.ArclengthFromGrammage(line, grammage)
	if err != nil {
		t.Fatalf("ArclengthFromGrammage: %v", err)
	}
	if math.Abs(float64(gotLength-length)) > 1e-3 {
		t.Errorf("round trip: got %v, want %v", gotLength, length)
	}
}

// linearDensityField is a trivial DensityField with a constant gradient,
// used to exercise LinearApproximationIntegrator without depending on a
// transcendental model.
type linearDensityField struct {
	rho0     units.MassDensity
	gradient float64 // d(rho)/dz
}

func (f linearDensityField) Evaluate(p geometry.Point) (units.MassDensity, error) {
	_, _, z := p.XYZ()
	return units.MassDensity(float64(f.rho0) + f.gradient*float64(z)), nil
}

func (f linearDensityField) FirstDerivative(p geometry.Point, dir geometry.Vector) (float64, error) {
	_, _, dz := dir.XYZ()
	return f.gradient * float64(dz), nil
}

func TestInhomogeneousMediumLinearFieldExactForLinearDensity(t *testing.T) {
	root := geometry.NewRoot("root")
	field := linearDensityField{rho0: units.MassDensity(1.0), gradient: 1e-4}
	medium := NewInhomogeneousMedium(nitrogenAir(t), field)

	r0 := geometry.NewPoint(root, 0, 0, 0)
	v0 := geometry.NewVector(root, 0, 0, 1)
	line := geometry.NewLine(r0, v0)

	length := units.Length(1000)
	grammage, err := medium.IntegratedGrammage(line, length)
	if err != nil {
		t.Fatalf("IntegratedGrammage: %v", err)
	}
	// rho is exactly linear along this line, so the linear (trapezoidal)
	// approximation is exact: integral of (1 + 1e-4*z) dz from 0 to 1000.
	want := 1000.0 + 0.5*1e-4*1000*1000
	if math.Abs(float64(grammage)-want) > 1e-6 {
		t.Errorf("IntegratedGrammage() = %v, want %v", grammage, want)
	}
}

func TestVolumeTreeContainingNodeRespectsExclusion(t *testing.T) {
	root := geometry.NewRoot("root")
	center := geometry.NewPoint(root, 0, 0, 0)

	universe := NewNode("universe", geometry.NewSphere(center, units.Length(math.Inf(1))))
	outer := NewNode("outer", geometry.NewSphere(center, units.Length(100)))
	inner := NewNode("inner", geometry.NewSphere(center, units.Length(10)))

	universe.AddChild(outer)
	outer.ExcludeOverlapWith(inner)

	p, err := universe.ContainingNode(geometry.NewPoint(root, 0, 0, 5))
	if err != nil {
		t.Fatalf("ContainingNode: %v", err)
	}
	if p != inner {
		t.Errorf("point inside excluded inner sphere: got node %q, want %q", p.Name, inner.Name)
	}

	inner2 := NewNode("inner-child", geometry.NewSphere(center, units.Length(10)))
	outer.AddChild(inner2)
	p2, err := universe.ContainingNode(geometry.NewPoint(root, 0, 0, 5))
	if err != nil {
		t.Fatalf("ContainingNode: %v", err)
	}
	if p2 != inner2 {
		t.Errorf("point inside actual child: got node %q, want %q", p2.Name, inner2.Name)
	}
}
