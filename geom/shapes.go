package geom

import "math"

// Control point ratios for the parametric shape generators. These values
// match the output of the authoring tool and must not be re-derived.
const (
	// EllipseKappa is the control point ratio for quarter ellipses and
	// rounded rectangle corners.
	EllipseKappa = 0.55228
	// StarRoundness scales star vertex rounding.
	StarRoundness = 0.47829
	// PolygonRoundness scales polygon vertex rounding.
	PolygonRoundness = 0.25
)

// Ellipse returns a closed ellipse of the given size centered on center.
// The path starts at the top and runs clockwise on screen unless reversed.
func Ellipse(center, size Point, reversed bool) *Path {
	hw, hh := size.X/2, size.Y/2
	cw, ch := hw*EllipseKappa, hh*EllipseKappa
	cx, cy := center.X, center.Y

	p := NewPath()
	p.MoveTo(cx, cy-hh)
	if reversed {
		p.CubicTo(cx-cw, cy-hh, cx-hw, cy-ch, cx-hw, cy)
		p.CubicTo(cx-hw, cy+ch, cx-cw, cy+hh, cx, cy+hh)
		p.CubicTo(cx+cw, cy+hh, cx+hw, cy+ch, cx+hw, cy)
		p.CubicTo(cx+hw, cy-ch, cx+cw, cy-hh, cx, cy-hh)
	} else {
		p.CubicTo(cx+cw, cy-hh, cx+hw, cy-ch, cx+hw, cy)
		p.CubicTo(cx+hw, cy+ch, cx+cw, cy+hh, cx, cy+hh)
		p.CubicTo(cx-cw, cy+hh, cx-hw, cy+ch, cx-hw, cy)
		p.CubicTo(cx-hw, cy-ch, cx-cw, cy-hh, cx, cy-hh)
	}
	p.Close()
	return p
}

// quarter holds exact cosine and sine for multiples of 90 degrees.
var quarter = [4]Point{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}}

// quarterArc appends a 90 degree clockwise arc around c starting at the
// given quadrant (0 = east, 1 = south, 2 = west, 3 = north).
func quarterArc(p *Path, c Point, r float64, quadrant int) {
	a := quarter[quadrant%4]
	b := quarter[(quadrant+1)%4]
	p0 := c.Add(a.Mul(r))
	p3 := c.Add(b.Mul(r))
	k := r * EllipseKappa
	p1 := p0.Add(a.Perp().Mul(k))
	p2 := p3.Sub(b.Perp().Mul(k))
	p.CubicTo(p1.X, p1.Y, p2.X, p2.Y, p3.X, p3.Y)
}

// RoundedRect returns a closed rectangle of the given size centered on
// center, with corners rounded by radius. The radius is clamped to half of
// the smaller side. The path starts on the right edge.
func RoundedRect(center, size Point, radius float64, reversed bool) *Path {
	hw, hh := size.X/2, size.Y/2
	r := math.Max(0, math.Min(radius, math.Min(hw, hh)))
	x, y := center.X, center.Y

	p := NewPath()
	p.MoveTo(x+hw, y-hh+r)
	p.LineTo(x+hw, y+hh-r)
	if r > 0 {
		quarterArc(p, Pt(x+hw-r, y+hh-r), r, 0)
	}
	p.LineTo(x-hw+r, y+hh)
	if r > 0 {
		quarterArc(p, Pt(x-hw+r, y+hh-r), r, 1)
	}
	p.LineTo(x-hw, y-hh+r)
	if r > 0 {
		quarterArc(p, Pt(x-hw+r, y-hh+r), r, 2)
	}
	p.LineTo(x+hw-r, y-hh)
	if r > 0 {
		quarterArc(p, Pt(x+hw-r, y-hh+r), r, 3)
	}
	p.Close()

	if reversed {
		return p.Reversed()
	}
	return p
}

// StarParams describes a star or polygon.
type StarParams struct {
	Position Point
	// Points is the vertex count; stars accept fractional counts.
	Points float64
	// Rotation is in degrees, clockwise from the top.
	Rotation       float64
	OuterRadius    float64
	InnerRadius    float64
	OuterRoundness float64 // percent
	InnerRoundness float64 // percent
	Reversed       bool
}

// Star returns a closed star. A fractional point count produces a partial
// last point whose radius lies between the inner and outer radius.
func Star(sp StarParams) *Path {
	points := sp.Points
	angle := (sp.Rotation - 90) * math.Pi / 180
	anglePerPoint := 2 * math.Pi / points
	if sp.Reversed {
		anglePerPoint = -anglePerPoint
	}
	halfAngle := anglePerPoint / 2
	partial := points - math.Trunc(points)
	if partial != 0 {
		angle += halfAngle * (1 - partial)
	}

	outerR, innerR := sp.OuterRadius, sp.InnerRadius
	innerRound := sp.InnerRoundness / 100
	outerRound := sp.OuterRoundness / 100

	p := NewPath()
	var x, y, partialR float64
	if partial != 0 {
		partialR = innerR + partial*(outerR-innerR)
		x = partialR * math.Cos(angle)
		y = partialR * math.Sin(angle)
		p.MoveTo(x, y)
		angle += anglePerPoint * partial / 2
	} else {
		x = outerR * math.Cos(angle)
		y = outerR * math.Sin(angle)
		p.MoveTo(x, y)
		angle += halfAngle
	}

	// Alternates between the outer and the inner radius.
	long := false
	numPoints := int(math.Ceil(points)) * 2
	for i := 0; i < numPoints; i++ {
		r := innerR
		if long {
			r = outerR
		}
		dTheta := halfAngle
		if partialR != 0 && i == numPoints-2 {
			dTheta = anglePerPoint * partial / 2
		}
		if partialR != 0 && i == numPoints-1 {
			r = partialR
		}
		px, py := x, y
		x = r * math.Cos(angle)
		y = r * math.Sin(angle)

		if innerRound == 0 && outerRound == 0 {
			p.LineTo(x, y)
		} else {
			cp1Theta := math.Atan2(py, px) - math.Pi/2
			cp2Theta := math.Atan2(y, x) - math.Pi/2

			cp1Round, cp2Round := outerRound, innerRound
			cp1R, cp2R := outerR, innerR
			if long {
				cp1Round, cp2Round = innerRound, outerRound
				cp1R, cp2R = innerR, outerR
			}
			cp1x := cp1R * cp1Round * StarRoundness * math.Cos(cp1Theta)
			cp1y := cp1R * cp1Round * StarRoundness * math.Sin(cp1Theta)
			cp2x := cp2R * cp2Round * StarRoundness * math.Cos(cp2Theta)
			cp2y := cp2R * cp2Round * StarRoundness * math.Sin(cp2Theta)
			if partial != 0 {
				if i == 0 {
					cp1x *= partial
					cp1y *= partial
				} else if i == numPoints-1 {
					cp2x *= partial
					cp2y *= partial
				}
			}
			p.CubicTo(px-cp1x, py-cp1y, x+cp2x, y+cp2y, x, y)
		}
		angle += dTheta
		long = !long
	}
	p.Close()
	return p.Offset(sp.Position.X, sp.Position.Y)
}

// Polygon returns a closed regular polygon. The point count is floored
// and the inner radius and roundness are ignored.
func Polygon(sp StarParams) *Path {
	points := math.Floor(sp.Points)
	p := NewPath()
	if points < 1 {
		return p
	}
	angle := (sp.Rotation - 90) * math.Pi / 180
	anglePerPoint := 2 * math.Pi / points
	if sp.Reversed {
		anglePerPoint = -anglePerPoint
	}
	roundness := sp.OuterRoundness / 100
	r := sp.OuterRadius

	x := r * math.Cos(angle)
	y := r * math.Sin(angle)
	p.MoveTo(x, y)
	angle += anglePerPoint

	for i := 0; i < int(points); i++ {
		px, py := x, y
		x = r * math.Cos(angle)
		y = r * math.Sin(angle)
		if roundness != 0 {
			cp1Theta := math.Atan2(py, px) - math.Pi/2
			cp2Theta := math.Atan2(y, x) - math.Pi/2
			cp1x := r * roundness * PolygonRoundness * math.Cos(cp1Theta)
			cp1y := r * roundness * PolygonRoundness * math.Sin(cp1Theta)
			cp2x := r * roundness * PolygonRoundness * math.Cos(cp2Theta)
			cp2y := r * roundness * PolygonRoundness * math.Sin(cp2Theta)
			p.CubicTo(px-cp1x, py-cp1y, x+cp2x, y+cp2y, x, y)
		} else {
			p.LineTo(x, y)
		}
		angle += anglePerPoint
	}
	p.Close()
	return p.Offset(sp.Position.X, sp.Position.Y)
}
