package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform represents a pose in 3D space
// A zero Scale is read as unit scale, so Transform{Position, Rotation} literals stay valid.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// WorldTransform lets a bare Transform act as its own pose owner
func (t Transform) WorldTransform() Transform {
	return t
}

// EffectiveScale returns the scale, substituting 1 for an unset (zero) scale vector
func (t Transform) EffectiveScale() mgl64.Vec3 {
	if t.Scale == (mgl64.Vec3{}) {
		return mgl64.Vec3{1, 1, 1}
	}
	return t.Scale
}

func (t Transform) rotation() mgl64.Quat {
	if t.Rotation == (mgl64.Quat{}) {
		return mgl64.QuatIdent()
	}
	return t.Rotation
}

// WorldMatrix returns T * R * S
func (t Transform) WorldMatrix() mgl64.Mat4 {
	s := t.EffectiveScale()
	return mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(t.rotation().Mat4()).
		Mul4(mgl64.Scale3D(s.X(), s.Y(), s.Z()))
}

// RotationMatrix returns the rotation-only part of the transform
func (t Transform) RotationMatrix() mgl64.Mat3 {
	return t.rotation().Mat4().Mat3()
}

// LinearMatrix returns R * S, the translation-free part of WorldMatrix
func (t Transform) LinearMatrix() mgl64.Mat3 {
	s := t.EffectiveScale()
	return t.RotationMatrix().Mul3(mgl64.Diag3(s))
}

// MaxScale returns the largest absolute scale component
func (t Transform) MaxScale() float64 {
	s := t.EffectiveScale()
	m := abs(s.X())
	if v := abs(s.Y()); v > m {
		m = v
	}
	if v := abs(s.Z()); v > m {
		m = v
	}
	return m
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
