package constraint

import (
	"fmt"
	"strings"

	"github.com/go-air/gini/z"

	"github.com/operator-framework/brancher/pkg/sat"
)

type UserFriendlyConstraintMessageFormatter func(constraint sat.Constraint, subject sat.Identifier) string

type UserFriendlyConstraint struct {
	sat.Constraint
	messageFormatter UserFriendlyConstraintMessageFormatter
}

func (constraint *UserFriendlyConstraint) String(subject sat.Identifier) string {
	return constraint.messageFormatter(constraint.Constraint, subject)
}

func NewUserFriendlyConstraint(constraint sat.Constraint, messageFormatter UserFriendlyConstraintMessageFormatter) *UserFriendlyConstraint {
	return &UserFriendlyConstraint{
		Constraint:       constraint,
		messageFormatter: messageFormatter,
	}
}

type MandatoryConstraint struct{}

func (constraint *MandatoryConstraint) String(subject sat.Identifier) string {
	return fmt.Sprintf("%s is mandatory", subject)
}

func (constraint *MandatoryConstraint) Apply(lm sat.LitMapping, subject sat.Identifier) z.Lit {
	return lm.LitOf(subject)
}

func (constraint *MandatoryConstraint) Order() []sat.Identifier {
	return nil
}

func (constraint *MandatoryConstraint) Anchor() bool {
	return true
}

// Mandatory returns a Constraint that will permit only solutions that
// contain a particular Variable.
func Mandatory() sat.Constraint {
	return &MandatoryConstraint{}
}

type ProhibitedConstraint struct{}

func (constraint *ProhibitedConstraint) String(subject sat.Identifier) string {
	return fmt.Sprintf("%s is prohibited", subject)
}

func (constraint *ProhibitedConstraint) Apply(lm sat.LitMapping, subject sat.Identifier) z.Lit {
	return lm.LitOf(subject).Not()
}

func (constraint *ProhibitedConstraint) Order() []sat.Identifier {
	return nil
}

func (constraint *ProhibitedConstraint) Anchor() bool {
	return false
}

// Prohibited returns a Constraint that will reject any solution that
// contains a particular Variable.
func Prohibited() sat.Constraint {
	return &ProhibitedConstraint{}
}

// Not is an alias of Prohibited, read as the negation of a unit clause.
func Not() sat.Constraint {
	return &ProhibitedConstraint{}
}

type DependencyConstraint struct {
	dependencyIDs []sat.Identifier
}

func (constraint *DependencyConstraint) String(subject sat.Identifier) string {
	if len(constraint.dependencyIDs) == 0 {
		return fmt.Sprintf("%s has a dependency without any candidates to satisfy it", subject)
	}
	return fmt.Sprintf("%s requires at least one of %s", subject, join(constraint.dependencyIDs))
}

func (constraint *DependencyConstraint) Apply(lm sat.LitMapping, subject sat.Identifier) z.Lit {
	m := lm.LitOf(subject).Not()
	for _, each := range constraint.dependencyIDs {
		m = lm.LogicCircuit().Or(m, lm.LitOf(each))
	}
	return m
}

func (constraint *DependencyConstraint) DependencyIDs() []sat.Identifier {
	return constraint.dependencyIDs
}

func (constraint *DependencyConstraint) Order() []sat.Identifier {
	return constraint.dependencyIDs
}

func (constraint *DependencyConstraint) Anchor() bool {
	return false
}

// Dependency returns a Constraint that will only permit solutions
// containing a given Variable on the condition that at least one
// of the Variables identified by the given Identifiers also
// appears in the solution. Identifiers appearing earlier in the
// argument list have higher preference than those appearing later.
func Dependency(ids ...sat.Identifier) sat.Constraint {
	return &DependencyConstraint{
		dependencyIDs: ids,
	}
}

type ConflictConstraint struct {
	conflictingID sat.Identifier
}

func (constraint *ConflictConstraint) String(subject sat.Identifier) string {
	return fmt.Sprintf("%s conflicts with %s", subject, constraint.conflictingID)
}

func (constraint *ConflictConstraint) Apply(lm sat.LitMapping, subject sat.Identifier) z.Lit {
	return lm.LogicCircuit().Or(lm.LitOf(subject).Not(), lm.LitOf(constraint.conflictingID).Not())
}

func (constraint *ConflictConstraint) Order() []sat.Identifier {
	return nil
}

func (constraint *ConflictConstraint) Anchor() bool {
	return false
}

// Conflict returns a Constraint that will permit solutions containing
// either the constrained Variable, the Variable identified by
// the given Identifier, or neither, but not both.
func Conflict(id sat.Identifier) sat.Constraint {
	return &ConflictConstraint{
		conflictingID: id,
	}
}

type AtMostConstraint struct {
	ids []sat.Identifier
	n   int
}

func (constraint *AtMostConstraint) String(subject sat.Identifier) string {
	return fmt.Sprintf("%s permits at most %d of %s", subject, constraint.n, join(constraint.ids))
}

func (constraint *AtMostConstraint) N() int {
	return constraint.n
}

func (constraint *AtMostConstraint) Ids() []sat.Identifier {
	return constraint.ids
}

func (constraint *AtMostConstraint) Apply(lm sat.LitMapping, _ sat.Identifier) z.Lit {
	ms := make([]z.Lit, len(constraint.ids))
	for i, each := range constraint.ids {
		ms[i] = lm.LitOf(each)
	}
	return lm.LogicCircuit().CardSort(ms).Leq(constraint.n)
}

func (constraint *AtMostConstraint) Order() []sat.Identifier {
	return nil
}

func (constraint *AtMostConstraint) Anchor() bool {
	return false
}

// AtMost returns a Constraint that forbids solutions that contain
// more than n of the Variables identified by the given
// Identifiers.
func AtMost(n int, ids ...sat.Identifier) sat.Constraint {
	return &AtMostConstraint{
		ids: ids,
		n:   n,
	}
}

type OrConstraint struct {
	operand          sat.Identifier
	isSubjectNegated bool
	isOperandNegated bool
}

func (constraint *OrConstraint) String(subject sat.Identifier) string {
	return fmt.Sprintf("%s or %s", sign(subject, constraint.isSubjectNegated), sign(constraint.operand, constraint.isOperandNegated))
}

func (constraint *OrConstraint) Apply(lm sat.LitMapping, subject sat.Identifier) z.Lit {
	subjectLit := lm.LitOf(subject)
	if constraint.isSubjectNegated {
		subjectLit = subjectLit.Not()
	}
	operandLit := lm.LitOf(constraint.operand)
	if constraint.isOperandNegated {
		operandLit = operandLit.Not()
	}
	return lm.LogicCircuit().Or(subjectLit, operandLit)
}

func (constraint *OrConstraint) Order() []sat.Identifier {
	return nil
}

func (constraint *OrConstraint) Anchor() bool {
	return false
}

// Or returns a constraints in the form subject OR identifier
// if isSubjectNegated = true, ~subject OR identifier
// if isOperandNegated = true, subject OR ~identifier
// if both are true: ~subject OR ~identifier
func Or(identifier sat.Identifier, isSubjectNegated bool, isOperandNegated bool) sat.Constraint {
	return &OrConstraint{
		operand:          identifier,
		isSubjectNegated: isSubjectNegated,
		isOperandNegated: isOperandNegated,
	}
}

// Literal is a possibly negated reference to a Variable.
type Literal struct {
	ID      sat.Identifier
	Negated bool
}

type ClauseConstraint struct {
	literals []Literal
}

func (constraint *ClauseConstraint) String(subject sat.Identifier) string {
	s := make([]string, len(constraint.literals))
	for i, l := range constraint.literals {
		s[i] = sign(l.ID, l.Negated)
	}
	return fmt.Sprintf("%s requires %s", subject, strings.Join(s, " or "))
}

func (constraint *ClauseConstraint) Apply(lm sat.LitMapping, subject sat.Identifier) z.Lit {
	if len(constraint.literals) == 0 {
		// x and not x folds to the constant false
		m := lm.LitOf(subject)
		return lm.LogicCircuit().And(m, m.Not())
	}
	var m z.Lit
	for i, l := range constraint.literals {
		each := lm.LitOf(l.ID)
		if l.Negated {
			each = each.Not()
		}
		if i == 0 {
			m = each
			continue
		}
		m = lm.LogicCircuit().Or(m, each)
	}
	return m
}

func (constraint *ClauseConstraint) Order() []sat.Identifier {
	return nil
}

func (constraint *ClauseConstraint) Anchor() bool {
	return false
}

// Clause returns a Constraint that permits only solutions in which at
// least one of the literals holds. The subject the clause is attached to
// only names it in messages.
func Clause(literals ...Literal) sat.Constraint {
	return &ClauseConstraint{
		literals: literals,
	}
}

func sign(id sat.Identifier, negated bool) string {
	if negated {
		return "not " + string(id)
	}
	return string(id)
}

func join(ids []sat.Identifier) string {
	s := make([]string, len(ids))
	for i, each := range ids {
		s[i] = string(each)
	}
	return strings.Join(s, ", ")
}
