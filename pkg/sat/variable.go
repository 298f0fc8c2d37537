package sat

var _ Variable = &SimpleVariable{}

type SimpleVariable struct {
	id          Identifier
	constraints []Constraint
}

func (s *SimpleVariable) Identifier() Identifier {
	return s.id
}

func (s *SimpleVariable) Constraints() []Constraint {
	return s.constraints
}

func (s *SimpleVariable) AddConstraint(constraint Constraint) {
	s.constraints = append(s.constraints, constraint)
}

func NewSimpleVariable(id Identifier, constraints ...Constraint) *SimpleVariable {
	return &SimpleVariable{
		id:          id,
		constraints: constraints,
	}
}
