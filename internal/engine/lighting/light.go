// Package lighting holds the viewer's single light and the fixed-function
// lighting constants the renderer emulates.
package lighting

import "github.com/go-gl/mathgl/mgl32"

// Fixed-function defaults: global ambient and material reflectance.
var (
	GlobalAmbient   = [4]float32{0.2, 0.2, 0.2, 1.0}
	MaterialAmbient = [4]float32{0.2, 0.2, 0.2, 1.0}
	MaterialDiffuse = [4]float32{0.8, 0.8, 0.8, 1.0}
)

// Lights is the state of the scene light.
type Lights struct {
	Ambient [4]float32
	Diffuse [4]float32 // RGB channels are kept within [0, 1]

	// Position is a world position. The fourth component is passed through
	// untouched, as the light's homogeneous w.
	Position [4]float32
}

// Default returns the startup light: dim white ambient, bright diffuse,
// placed above and in front of the object.
func Default() *Lights {
	return &Lights{
		Ambient:  [4]float32{0.2, 0.2, 0.2, 0.2},
		Diffuse:  [4]float32{0.8, 0.8, 0.8, 0.8},
		Position: [4]float32{0, 5, 20, 2},
	}
}

// AdjustDiffuse adds delta to the diffuse RGB channels, clamping each to [0, 1].
// Alpha is left alone.
func (l *Lights) AdjustDiffuse(delta float32) {
	for i := 0; i < 3; i++ {
		l.Diffuse[i] = clamp01(l.Diffuse[i] + delta)
	}
}

// RelativeTo returns the light position offset by the camera position, with w unchanged.
func (l *Lights) RelativeTo(cam mgl32.Vec3) mgl32.Vec4 {
	return mgl32.Vec4{
		l.Position[0] - cam.X(),
		l.Position[1] - cam.Y(),
		l.Position[2] - cam.Z(),
		l.Position[3],
	}
}

// EyePosition transforms the camera-relative light position by the view matrix
// and divides by w, giving the point the shader lights from.
func (l *Lights) EyePosition(view mgl32.Mat4, cam mgl32.Vec3) mgl32.Vec3 {
	p := view.Mul4x1(l.RelativeTo(cam))
	if p.W() == 0 {
		return p.Vec3()
	}
	return p.Vec3().Mul(1 / p.W())
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
