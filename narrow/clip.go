package narrow

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ClipEpsilon is the distance under which a point counts as on a clipping plane,
// and therefore inside it
const ClipEpsilon = 1e-6

// ClipPolygon clips an incident polygon against a reference face (Sutherland-Hodgman).
//
// The incident polygon is clipped successively against the side plane of every
// reference edge: the plane containing the edge and refNormal, facing away from the
// reference centroid. Points left above the reference plane are then dropped, so every
// returned point lies on or behind the reference face and inside all its side planes.
//
// Parameters:
//   - incident: vertex loop of the incident face (world space)
//   - reference: vertex loop of the reference face (world space)
//   - refNormal: outward unit normal of the reference face
func ClipPolygon(incident, reference []mgl64.Vec3, refNormal mgl64.Vec3) []mgl64.Vec3 {
	if len(incident) == 0 || len(reference) < 3 {
		return nil
	}

	center := computeCenter(reference)
	output := incident

	for i := 0; i < len(reference); i++ {
		if len(output) == 0 {
			break
		}

		v1 := reference[i]
		v2 := reference[(i+1)%len(reference)]

		sideNormal := refNormal.Cross(v2.Sub(v1))
		length := sideNormal.Len()
		if length == 0 {
			continue // coincident reference vertices
		}
		sideNormal = sideNormal.Mul(1 / length)
		if sideNormal.Dot(center.Sub(v1)) > 0 {
			sideNormal = sideNormal.Mul(-1)
		}

		output = clipPolygonAgainstPlane(output, v1, sideNormal)
	}

	offset := refNormal.Dot(reference[0])
	contacts := make([]mgl64.Vec3, 0, len(output))
	for _, p := range output {
		if refNormal.Dot(p)-offset <= ClipEpsilon {
			contacts = append(contacts, p)
		}
	}

	return contacts
}

// clipPolygonAgainstPlane keeps the part of the polygon behind an outward-facing plane
func clipPolygonAgainstPlane(polygon []mgl64.Vec3, planePoint, planeNormal mgl64.Vec3) []mgl64.Vec3 {
	output := make([]mgl64.Vec3, 0, len(polygon)+1)

	for i := 0; i < len(polygon); i++ {
		start := polygon[i]
		end := polygon[(i+1)%len(polygon)]

		startDist := start.Sub(planePoint).Dot(planeNormal)
		endDist := end.Sub(planePoint).Dot(planeNormal)
		startInside := startDist <= ClipEpsilon
		endInside := endDist <= ClipEpsilon

		if endInside {
			if !startInside {
				output = append(output, lineIntersectPlane(start, end, startDist, endDist))
			}
			output = append(output, end)
		} else if startInside {
			output = append(output, lineIntersectPlane(start, end, startDist, endDist))
		}
	}

	return output
}

// lineIntersectPlane interpolates the segment at the plane crossing, clamped to the segment
func lineIntersectPlane(start, end mgl64.Vec3, startDist, endDist float64) mgl64.Vec3 {
	denom := startDist - endDist
	if math.Abs(denom) < 1e-12 {
		return start // segment parallel to plane
	}

	t := math.Max(0, math.Min(1, startDist/denom))
	return start.Add(end.Sub(start).Mul(t))
}

// computeCenter calculates the centroid of a set of points
func computeCenter(points []mgl64.Vec3) mgl64.Vec3 {
	if len(points) == 0 {
		return mgl64.Vec3{0, 0, 0}
	}

	sum := mgl64.Vec3{0, 0, 0}
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / float64(len(points)))
}
