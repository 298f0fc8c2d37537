package dimacs

import (
	"strconv"

	"github.com/operator-framework/brancher/pkg/sat"
	"github.com/operator-framework/brancher/pkg/sat/constraint"
)

// GenerateVariables turns every clause into a constraint on the variable
// of its first literal.
func GenerateVariables(dimacs *Dimacs) []sat.Variable {
	varMap := make(map[int]*sat.SimpleVariable, len(dimacs.variables))
	variables := make([]sat.Variable, 0, len(dimacs.variables))

	for i, id := range dimacs.variables {
		variable := sat.NewSimpleVariable(sat.IdentifierFromString(id))
		variables = append(variables, variable)
		varMap[i+1] = variable
	}

	for _, clause := range dimacs.clauses {
		first := clause[0]
		variable := varMap[abs(first)]
		if len(clause) == 1 {
			if first < 0 {
				variable.AddConstraint(constraint.Not())
			} else {
				variable.AddConstraint(constraint.Mandatory())
			}
			continue
		}
		literals := make([]constraint.Literal, len(clause))
		for i, lit := range clause {
			literals[i] = constraint.Literal{
				ID:      sat.Identifier(strconv.Itoa(abs(lit))),
				Negated: lit < 0,
			}
		}
		variable.AddConstraint(constraint.Clause(literals...))
	}

	return variables
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
