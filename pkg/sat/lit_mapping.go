package sat

import (
	"fmt"
	"strings"

	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

type inconsistentLitMapping []error

func (inconsistentLitMapping) Error() string {
	return "internal solver failure"
}

// litMapping performs translation between the input of NewSpace
// (Variables, Constraints) and the variables that appear in the SAT
// formula. It is read-only once built and shared by all clones of a
// Space.
type litMapping struct {
	inorder     []Variable
	variables   map[z.Lit]Variable
	lits        map[Identifier]z.Lit
	constraints map[z.Lit]AppliedConstraint
	anchors     map[z.Lit]bool
	choices     map[z.Lit][]choice
	c           *logic.C
	errs        inconsistentLitMapping
}

// newLitMapping returns a new litMapping with its state initialized based on
// the provided slice of Variables. This includes construction of
// the translation tables between Variables/Constraints and the
// inputs to the underlying solver.
func newLitMapping(variables []Variable) (*litMapping, error) {
	d := litMapping{
		inorder:     variables,
		variables:   make(map[z.Lit]Variable, len(variables)),
		lits:        make(map[Identifier]z.Lit, len(variables)),
		constraints: make(map[z.Lit]AppliedConstraint),
		anchors:     make(map[z.Lit]bool),
		choices:     make(map[z.Lit][]choice),
		c:           logic.NewC(),
	}

	// First pass to assign lits:
	for _, variable := range variables {
		im := d.c.Lit()
		if _, ok := d.lits[variable.Identifier()]; ok {
			return nil, DuplicateIdentifier(variable.Identifier())
		}
		d.lits[variable.Identifier()] = im
		d.variables[im] = variable
	}

	for _, variable := range variables {
		im := d.lits[variable.Identifier()]
		for _, constraint := range variable.Constraints() {
			d.addPreferences(im, constraint)

			m := constraint.Apply(&d, variable.Identifier())
			if m == z.LitNull {
				// This constraint doesn't have a
				// useful representation in the SAT
				// inputs.
				continue
			}

			d.constraints[m] = AppliedConstraint{
				Variable:   variable,
				Constraint: constraint,
			}
		}
	}

	return &d, nil
}

// choice is a constraint of owner that prefers candidates in order.
// index is the position of the literal the choice is recorded under.
type choice struct {
	owner      z.Lit
	index      int
	candidates []z.Lit
}

// addPreferences records whether constraint anchors the variable im and
// which variables it prefers once im is selected. Unknown identifiers
// are reported by Apply.
func (d *litMapping) addPreferences(im z.Lit, constraint Constraint) {
	if constraint.Anchor() {
		d.anchors[im] = true
	}
	var ms []z.Lit
	for _, id := range constraint.Order() {
		if m, ok := d.lits[id]; ok {
			ms = append(ms, m)
		}
	}
	for i, m := range ms {
		d.choices[m] = append(d.choices[m], choice{owner: im, index: i, candidates: ms})
	}
}

// LitOf returns the positive literal corresponding to the Variable
// with the given Identifier.
func (d *litMapping) LitOf(id Identifier) z.Lit {
	m, ok := d.lits[id]
	if ok {
		return m
	}
	d.errs = append(d.errs, fmt.Errorf("variable %q referenced but not provided", id))
	return z.LitNull
}

func (d *litMapping) LogicCircuit() *logic.C {
	return d.c
}

// VariableOf returns the Variable corresponding to the provided
// literal, or nil if no such Variable exists.
func (d *litMapping) VariableOf(m z.Lit) Variable {
	return d.variables[m]
}

// Error returns a single error value that is an aggregation of all
// errors encountered during a litMapping's lifetime, or nil if there have
// been no errors. A non-nil return value likely indicates a problem
// with the solver or constraint implementations.
func (d *litMapping) Error() error {
	if len(d.errs) == 0 {
		return nil
	}
	s := make([]string, len(d.errs))
	for i, err := range d.errs {
		s[i] = err.Error()
	}
	return fmt.Errorf("%d errors encountered: %s", len(s), strings.Join(s, ", "))
}

// AddConstraints adds the current constraints encoded in the embedded circuit to the
// solver g
func (d *litMapping) AddConstraints(g inter.S) {
	d.c.ToCnf(g)
}

// AssumeConstraints assumes every applied constraint, so that a
// conflict can be explained in terms of the constraints involved.
func (d *litMapping) AssumeConstraints(s inter.S) {
	for m := range d.constraints {
		s.Assume(m)
	}
}

func (d *litMapping) Conflicts(g inter.Assumable) []AppliedConstraint {
	whys := g.Why(nil)
	as := make([]AppliedConstraint, 0, len(whys))
	for _, why := range whys {
		if a, ok := d.constraints[why]; ok {
			as = append(as, a)
		}
	}
	return as
}
