package sat_test

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"testing"

	"github.com/operator-framework/brancher/pkg/branch/valsel"
	"github.com/operator-framework/brancher/pkg/branch/viewsel"
	"github.com/operator-framework/brancher/pkg/sat"
	"github.com/operator-framework/brancher/pkg/sat/constraint"
	"github.com/operator-framework/brancher/pkg/search"
)

var BenchmarkInput = func() []sat.Variable {
	const (
		length      = 256
		seed        = 9
		pMandatory  = .1
		pDependency = .15
		nDependency = 6
		pConflict   = .05
		nConflict   = 3
	)

	r := rand.New(rand.NewSource(seed))

	id := func(i int) sat.Identifier {
		return sat.Identifier(strconv.Itoa(i))
	}

	variable := func(i int) TestVariable {
		var c []sat.Constraint
		if r.Float64() < pMandatory {
			c = append(c, constraint.Mandatory())
		}
		if r.Float64() < pDependency {
			n := r.Intn(nDependency-1) + 1
			var d []sat.Identifier
			for x := 0; x < n; x++ {
				y := i
				for y == i {
					y = r.Intn(length)
				}
				d = append(d, id(y))
			}
			c = append(c, constraint.Dependency(d...))
		}
		if r.Float64() < pConflict {
			n := r.Intn(nConflict-1) + 1
			for x := 0; x < n; x++ {
				y := i
				for y == i {
					y = r.Intn(length)
				}
				c = append(c, constraint.Conflict(id(y)))
			}
		}
		return TestVariable{
			identifier:  id(i),
			constraints: c,
		}
	}

	result := make([]sat.Variable, length)
	for i := range result {
		result[i] = variable(i)
	}
	return result
}()

func BenchmarkSolve(b *testing.B) {
	for i := 0; i < b.N; i++ {
		s, err := sat.NewSpace(BenchmarkInput)
		var unsat sat.NotSatisfiable
		if errors.As(err, &unsat) {
			continue
		}
		if err != nil {
			b.Fatalf("failed to initialize space: %s", err)
		}
		s.Branch(s.Views(), viewsel.None[*sat.Space, sat.BoolView](), valsel.Min[*sat.Space, sat.BoolView]())
		_, err = search.Solve(context.Background(), s)
		if err != nil && !errors.Is(err, search.ErrNoSolution) {
			b.Fatalf("failed to solve: %s", err)
		}
	}
}

func BenchmarkNewSpace(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, err := sat.NewSpace(BenchmarkInput)
		var unsat sat.NotSatisfiable
		if err != nil && !errors.As(err, &unsat) {
			b.Fatalf("failed to initialize space: %s", err)
		}
	}
}
