// seehuhn.de/go/curveplot - overlaid time-series curve rendering
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package affine

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

func near(p, q vec.Vec2, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

func TestBuildCorners(t *testing.T) {
	device := rect.Rect{LLx: 10, LLy: 20, URx: 410, URy: 320}
	data := rect.Rect{LLx: -1, LLy: 0, URx: 3, URy: 0.5}
	T := Build(device, data)

	cases := []struct {
		in, want vec.Vec2
	}{
		{vec.Vec2{X: -1, Y: 0.5}, vec.Vec2{X: 10, Y: 20}},
		{vec.Vec2{X: 3, Y: 0}, vec.Vec2{X: 410, Y: 320}},
		{vec.Vec2{X: -1, Y: 0}, vec.Vec2{X: 10, Y: 320}},
		{vec.Vec2{X: 1, Y: 0.25}, vec.Vec2{X: 210, Y: 170}},
	}
	for _, c := range cases {
		if got := T.Map(c.in); !near(got, c.want, 1e-9) {
			t.Errorf("Map(%v) = %v, want %v", c.in, got, c.want)
		}
	}

	if T.M[1] != 0 || T.M[2] != 0 {
		t.Errorf("unexpected shear terms in %v", T.M)
	}
	if T.M[3] >= 0 {
		t.Errorf("y scale %g should be negative", T.M[3])
	}
	if T.IsUniform() {
		t.Error("100 px per unit in x and 600 px per unit in y reported as uniform")
	}
}

func TestBuildDegenerate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("no panic for a math rectangle of zero height")
		}
	}()
	Build(rect.Rect{URx: 100, URy: 100}, rect.Rect{LLx: 0, LLy: 1, URx: 1, URy: 1})
}

func TestComposeMatchesPreScaling(t *testing.T) {
	T := Build(rect.Rect{URx: 640, URy: 480}, rect.Rect{LLx: 0, LLy: -5, URx: 100, URy: 5})
	const xs, ys, xb, yb = 0.5, -3, 7, 1.25
	C := T.Compose(xs, ys, xb, yb)

	for _, p := range []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: -1}, {X: 123.5, Y: 4.75}} {
		want := T.Map(vec.Vec2{X: xs*p.X + xb, Y: ys*p.Y + yb})
		if got := C.Map(p); !near(got, want, 1e-9) {
			t.Errorf("composed map of %v = %v, want %v", p, got, want)
		}
	}
}

func TestInverse(t *testing.T) {
	T := Build(rect.Rect{LLx: 5, LLy: 5, URx: 105, URy: 55}, rect.Rect{LLx: 1, LLy: 2, URx: 3, URy: 7})
	inv, ok := T.Inverse()
	if !ok {
		t.Fatal("transform reported as singular")
	}
	p := vec.Vec2{X: 2.5, Y: 3.25}
	if got := inv.Map(T.Map(p)); !near(got, p, 1e-12) {
		t.Errorf("round trip gave %v, want %v", got, p)
	}
	if got := T.Then(inv); !near(got.Map(p), p, 1e-12) {
		t.Errorf("T.Then(inverse) is not the identity: %v", got.M)
	}

	if _, ok := (Transform{}).Inverse(); ok {
		t.Error("zero transform reported as invertible")
	}
}

func TestExtend(t *testing.T) {
	R := rect.Rect{LLx: 0, LLy: 0, URx: 500, URy: 400}
	RG := rect.Rect{LLx: 50, LLy: 20, URx: 450, URy: 380}
	M := rect.Rect{LLx: 0, LLy: -1, URx: 10, URy: 1}

	T := Build(R, Extend(R, RG, M))
	if got := T.Map(vec.Vec2{X: M.LLx, Y: M.URy}); !near(got, vec.Vec2{X: 50, Y: 20}, 1e-9) {
		t.Errorf("top-left of M maps to %v", got)
	}
	if got := T.Map(vec.Vec2{X: M.URx, Y: M.LLy}); !near(got, vec.Vec2{X: 450, Y: 380}, 1e-9) {
		t.Errorf("bottom-right of M maps to %v", got)
	}
}

func TestMapping(t *testing.T) {
	base := Build(rect.Rect{URx: 100, URy: 100}, rect.Rect{LLx: 0, LLy: 0, URx: 2, URy: 2})

	m := Mapping{Base: base, Scale: ScaleBias{XS: 10, YS: 1, XB: 0, YB: 0}, LogX: true}
	p, ok := m.Map(10, 1)
	if !ok {
		t.Fatal("positive sample rejected")
	}
	if want := base.Map(vec.Vec2{X: 2, Y: 1}); !near(p, want, 1e-9) {
		t.Errorf("got %v, want %v", p, want)
	}
	if _, ok := m.Map(-1, 1); ok {
		t.Error("negative value accepted on a log axis")
	}
	if _, ok := m.Linear(); ok {
		t.Error("log mapping reported as linear")
	}

	lin := Mapping{Base: base, Scale: ScaleBias{XS: 2, YS: 3, XB: 1, YB: -1}}
	T, ok := lin.Linear()
	if !ok {
		t.Fatal("linear mapping not reported as linear")
	}
	q, _ := lin.Map(0.25, 0.5)
	if got := T.Map(vec.Vec2{X: 0.25, Y: 0.5}); !near(got, q, 1e-12) {
		t.Errorf("Linear() gives %v, Map gives %v", got, q)
	}
}
