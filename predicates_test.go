package tessellate

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/tdewolff/test"
)

func TestPerpDotSignAxisAligned(t *testing.T) {
	e := newEngine()
	// A = (0,0)-(1,0), B = (0,0)-(0,1): turning left, positive.
	sign := e.perpDotSign(0, 0, 1, 0, 0, 0, 0, 1)
	test.That(t, sign > 0)

	sign = e.perpDotSign(0, 0, 0, 1, 0, 0, 1, 0)
	test.That(t, sign < 0)
}

func TestPerpDotSignCollinear(t *testing.T) {
	e := newEngine()
	sign := e.perpDotSign(0, 0, 2, 2, 1, 1, 3, 3)
	test.Float(t, sign, 0)
}

// TestPerpDotSignAgainstExact (P5) checks the fast-path result against
// the brute-force expansion-based sign on a battery of random and
// adversarial inputs, including near-collinear cases designed to force
// the filter to escalate.
func TestPerpDotSignAgainstExact(t *testing.T) {
	e := newEngine()
	rng := rand.New(rand.NewSource(1))

	cases := [][8]float64{}
	for i := 0; i < 200; i++ {
		cases = append(cases, [8]float64{
			rng.Float64()*2 - 1, rng.Float64()*2 - 1,
			rng.Float64()*2 - 1, rng.Float64()*2 - 1,
			rng.Float64()*2 - 1, rng.Float64()*2 - 1,
			rng.Float64()*2 - 1, rng.Float64()*2 - 1,
		})
	}
	// Near-degenerate: B nearly collinear with A, perturbed by a tiny
	// amount that should still be resolved correctly by escalation.
	for i := 0; i < 50; i++ {
		eps := math.Pow(2, -float64(20+i%30))
		cases = append(cases, [8]float64{0, 0, 1, 1, 0.5, 0.5 + eps, 1.5, 1.5 + eps})
	}

	for i, c := range cases {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			got := e.perpDotSign(c[0], c[1], c[2], c[3], c[4], c[5], c[6], c[7])
			want := e.perpDotExactSign(c[0], c[1], c[2], c[3], c[4], c[5], c[6], c[7])
			test.That(t, sameSign(got, want))
		})
	}
}

func sameSign(a, b float64) bool {
	switch {
	case a > 0:
		return b > 0
	case a < 0:
		return b < 0
	default:
		return b == 0
	}
}

func TestMakeExactIdempotent(t *testing.T) {
	e := newEngine()
	a := newEdgeBundle(0, Line{0, 0, 2, 2})
	b := newEdgeBundle(1, Line{2, 0, 0, 2})

	rp, ok := (&Tessellation{eng: e}).checkIntersection(a, b)
	test.That(t, ok)

	rp.makeExact(e)
	first := append(expansion{}, rp.xExact...)

	rp.makeExact(e)
	test.That(t, len(rp.xExact) == len(first))
	for i := range first {
		test.Float(t, rp.xExact[i], first[i])
	}
}

func TestBigSumMatchesPlainAddition(t *testing.T) {
	e := newEngine()
	sum := e.bigSum(expansion{1, 1e-20}, expansion{2, 2e-20})
	total := 0.0
	for _, v := range sum {
		total += v
	}
	test.Float(t, total, 3)
}
