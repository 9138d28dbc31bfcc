package lighting

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDefault(t *testing.T) {
	l := Default()

	for i := 0; i < 4; i++ {
		if l.Ambient[i] != 0.2 {
			t.Errorf("ambient[%d]: expected 0.2, got %f", i, l.Ambient[i])
		}
		if l.Diffuse[i] != 0.8 {
			t.Errorf("diffuse[%d]: expected 0.8, got %f", i, l.Diffuse[i])
		}
	}
	if l.Position != [4]float32{0, 5, 20, 2} {
		t.Errorf("unexpected position %v", l.Position)
	}
}

func TestAdjustDiffuse_ClampsHigh(t *testing.T) {
	l := Default()
	for i := 0; i < 15; i++ {
		l.AdjustDiffuse(0.1)
	}

	for i := 0; i < 3; i++ {
		if l.Diffuse[i] != 1.0 {
			t.Errorf("diffuse[%d]: expected 1.0, got %f", i, l.Diffuse[i])
		}
	}
	if l.Diffuse[3] != 0.8 {
		t.Errorf("alpha should stay 0.8, got %f", l.Diffuse[3])
	}
}

func TestAdjustDiffuse_ClampsLow(t *testing.T) {
	l := Default()
	for i := 0; i < 20; i++ {
		l.AdjustDiffuse(-0.1)
	}

	for i := 0; i < 3; i++ {
		if l.Diffuse[i] != 0 {
			t.Errorf("diffuse[%d]: expected 0, got %f", i, l.Diffuse[i])
		}
	}
}

func TestAdjustDiffuse_IndependentChannels(t *testing.T) {
	l := &Lights{Diffuse: [4]float32{0.95, 0.5, 0.0, 1}}
	l.AdjustDiffuse(0.1)

	if l.Diffuse[0] != 1 {
		t.Errorf("red: expected 1, got %f", l.Diffuse[0])
	}
	if math.Abs(float64(l.Diffuse[1]-0.6)) > 1e-6 {
		t.Errorf("green: expected 0.6, got %f", l.Diffuse[1])
	}
	if math.Abs(float64(l.Diffuse[2]-0.1)) > 1e-6 {
		t.Errorf("blue: expected 0.1, got %f", l.Diffuse[2])
	}
}

func TestAdjustDiffuse_LeavesOtherState(t *testing.T) {
	l := Default()
	l.AdjustDiffuse(-0.3)

	want := Default()
	if l.Ambient != want.Ambient || l.Position != want.Position {
		t.Error("ambient and position must not change")
	}
}

func TestRelativeTo(t *testing.T) {
	l := Default()
	got := l.RelativeTo(mgl32.Vec3{0, 0, 3})

	want := mgl32.Vec4{0, 5, 17, 2}
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestEyePosition_DividesByW(t *testing.T) {
	l := Default()
	got := l.EyePosition(mgl32.Ident4(), mgl32.Vec3{0, 0, 0})

	want := mgl32.Vec3{0, 2.5, 10}
	if !got.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
