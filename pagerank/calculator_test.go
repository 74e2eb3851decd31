package pagerank

import (
	"context"
	"math"
	"testing"

	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(CalculatorTestSuite))

func Test(t *testing.T) { gc.TestingT(t) }

type CalculatorTestSuite struct {
}

func (s *CalculatorTestSuite) TestSymmetricCycleFixedPoint(c *gc.C) {
	calc := s.calculator(c, Config{})
	defer func() { c.Assert(calc.Close(), gc.IsNil) }()

	// A 3-node cycle is perfectly symmetric; every document must end up
	// with exactly a third of the total rank mass.
	calc.AddVertex("P001.html")
	calc.AddVertex("P002.html")
	calc.AddVertex("P003.html")
	c.Assert(calc.AddEdge("P001.html", "P002.html"), gc.IsNil)
	c.Assert(calc.AddEdge("P002.html", "P003.html"), gc.IsNil)
	c.Assert(calc.AddEdge("P003.html", "P001.html"), gc.IsNil)

	c.Assert(calc.Run(context.TODO()), gc.IsNil)

	scores := collectScores(c, calc)
	c.Assert(scores, gc.HasLen, 3)
	for id, score := range scores {
		c.Assert(math.Abs(score-1.0/3.0) < 1e-9, gc.Equals, true,
			gc.Commentf("expected %s to converge to 1/3; got %v", id, score))
	}
}

func (s *CalculatorTestSuite) TestFanOutSplit(c *gc.C) {
	calc := s.calculator(c, Config{})
	defer func() { c.Assert(calc.Close(), gc.IsNil) }()

	// A links to B and C; nothing links to A. B and C share identical
	// incoming structure and must receive equal rank, while A only ever
	// collects the teleportation share.
	calc.AddVertex("a")
	calc.AddVertex("b")
	calc.AddVertex("cc")
	c.Assert(calc.AddEdge("a", "b"), gc.IsNil)
	c.Assert(calc.AddEdge("a", "cc"), gc.IsNil)

	c.Assert(calc.Run(context.TODO()), gc.IsNil)

	scores := collectScores(c, calc)
	c.Assert(math.Abs(scores["b"]-scores["cc"]) < 1e-9, gc.Equals, true,
		gc.Commentf("b=%v cc=%v", scores["b"], scores["cc"]))
	c.Assert(scores["a"] < scores["b"], gc.Equals, true)

	// The converged value for A satisfies a = rankSource / mass with
	// mass = 3*rankSource + (1-alpha)*a, which solves to ~0.169852 for
	// the default damping factor.
	c.Assert(math.Abs(scores["a"]-0.169852) < 1e-3, gc.Equals, true,
		gc.Commentf("a=%v", scores["a"]))

	assertUnitMass(c, scores)
}

func (s *CalculatorTestSuite) TestMassConservedAfterEveryIteration(c *gc.C) {
	calc := s.calculator(c, Config{})
	defer func() { c.Assert(calc.Close(), gc.IsNil) }()

	// Mixed shape including a dangling document ("sink") whose leaked
	// mass the normalization pass must recover.
	for _, id := range []string{"a", "b", "cc", "d", "sink"} {
		calc.AddVertex(id)
	}
	for _, e := range [][2]string{
		{"a", "b"}, {"a", "cc"}, {"b", "cc"}, {"cc", "a"}, {"d", "sink"}, {"a", "sink"},
	} {
		c.Assert(calc.AddEdge(e[0], e[1]), gc.IsNil)
	}

	ex := calc.Executor()
	for i := 0; i < 10; i++ {
		// One full iteration: a distribute plus a collect superstep.
		c.Assert(ex.RunSteps(context.TODO(), 2), gc.IsNil)
		assertUnitMass(c, collectScores(c, calc))
	}
}

func (s *CalculatorTestSuite) TestIsolatedDocument(c *gc.C) {
	calc := s.calculator(c, Config{Iterations: 5})
	defer func() { c.Assert(calc.Close(), gc.IsNil) }()

	calc.AddVertex("only")
	c.Assert(calc.Run(context.TODO()), gc.IsNil)

	scores := collectScores(c, calc)
	c.Assert(math.Abs(scores["only"]-1.0) < 1e-9, gc.Equals, true)
}

func (s *CalculatorTestSuite) TestSelfLinksAreIgnored(c *gc.C) {
	calc := s.calculator(c, Config{})
	defer func() { c.Assert(calc.Close(), gc.IsNil) }()

	calc.AddVertex("a")
	c.Assert(calc.AddEdge("a", "a"), gc.IsNil)
	c.Assert(calc.Graph().Vertices()["a"].Edges(), gc.HasLen, 0,
		gc.Commentf("a self-link must not create an edge"))
}

func (s *CalculatorTestSuite) TestConfigValidation(c *gc.C) {
	_, err := NewCalculator(Config{Alpha: 1.5})
	c.Assert(err, gc.ErrorMatches, "(?s).*damping factor.*")

	_, err = NewCalculator(Config{Iterations: -1})
	c.Assert(err, gc.ErrorMatches, "(?s).*iteration count.*")

	calc, err := NewCalculator(Config{})
	c.Assert(err, gc.IsNil)
	c.Assert(calc.cfg.Alpha, gc.Equals, 0.15)
	c.Assert(calc.cfg.Iterations, gc.Equals, 50)
	c.Assert(calc.Close(), gc.IsNil)
}

func (s *CalculatorTestSuite) calculator(c *gc.C, cfg Config) *Calculator {
	calc, err := NewCalculator(cfg)
	c.Assert(err, gc.IsNil)
	return calc
}

func collectScores(c *gc.C, calc *Calculator) map[string]float64 {
	scores := make(map[string]float64)
	err := calc.Scores(func(id string, score float64) error {
		scores[id] = score
		return nil
	})
	c.Assert(err, gc.IsNil)
	return scores
}

func assertUnitMass(c *gc.C, scores map[string]float64) {
	var sum float64
	for _, score := range scores {
		sum += score
	}
	c.Assert(math.Abs(sum-1.0) < 1e-9, gc.Equals, true,
		gc.Commentf("total rank mass %v drifted from 1.0", sum))
}
