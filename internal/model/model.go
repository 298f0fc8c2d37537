// Package model reads finite-domain problems from YAML documents.
//
//	variables:
//	  - name: q
//	    count: 8
//	    min: 0
//	    max: 7
//	constraints:
//	  - distinct: [q]
//	  - linear: {coeffs: [1, 1], vars: [a, b], rel: eq, rhs: 10}
//	  - rel: {x: a, op: lt, y: b}
//	  - rel: {x: a, op: ne, value: 3}
//	branch:
//	  - vars: [q]
//	    view: size-min
//	    value: min
//
// A variable with a count declares an array; arrays are referenced by name
// and expand to their elements, which are also reachable as name[i].
package model

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/operator-framework/brancher/internal/strategy"
	"github.com/operator-framework/brancher/pkg/fd"
)

type Model struct {
	Variables   []Variable   `yaml:"variables"`
	Constraints []Constraint `yaml:"constraints"`
	Branch      []Branch     `yaml:"branch"`
	Seed        uint32       `yaml:"seed"`
}

type Variable struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
	Min   int    `yaml:"min"`
	Max   int    `yaml:"max"`
}

type Constraint struct {
	Distinct []string `yaml:"distinct,omitempty"`
	Linear   *Linear  `yaml:"linear,omitempty"`
	Rel      *Rel     `yaml:"rel,omitempty"`
}

type Linear struct {
	Coeffs []int    `yaml:"coeffs"`
	Vars   []string `yaml:"vars"`
	Rel    string   `yaml:"rel"`
	Rhs    int      `yaml:"rhs"`
}

type Rel struct {
	X     string `yaml:"x"`
	Op    string `yaml:"op"`
	Y     string `yaml:"y,omitempty"`
	Value *int   `yaml:"value,omitempty"`
}

type Branch struct {
	Vars  []string `yaml:"vars"`
	View  string   `yaml:"view"`
	Value string   `yaml:"value"`
}

// Parse decodes a model from r.
func Parse(r io.Reader) (*Model, error) {
	var m Model
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty model")
		}
		return nil, fmt.Errorf("error decoding model: %w", err)
	}
	if len(m.Variables) == 0 {
		return nil, fmt.Errorf("invalid model: no variables declared")
	}
	return &m, nil
}

// Instance is a model posted into a space.
type Instance struct {
	Space *fd.Space
	vars  map[string][]fd.IntView
	names []string
}

// Build creates a space with the variables, constraints and branchings of
// the model. Variables that are not mentioned by any branching are
// branched on last, in declaration order, with size-min/min.
func (m *Model) Build() (*Instance, error) {
	in := &Instance{
		Space: fd.New(),
		vars:  make(map[string][]fd.IntView),
	}
	for _, v := range m.Variables {
		if v.Name == "" {
			return nil, fmt.Errorf("invalid variable: missing name")
		}
		if _, ok := in.vars[v.Name]; ok {
			return nil, fmt.Errorf("duplicate variable %q", v.Name)
		}
		if v.Count < 0 {
			return nil, fmt.Errorf("variable %q: invalid count %d", v.Name, v.Count)
		}
		if err := fd.CheckDomain(v.Min, v.Max); err != nil {
			return nil, fmt.Errorf("variable %q: %w", v.Name, err)
		}
		if v.Count == 0 {
			in.vars[v.Name] = []fd.IntView{in.Space.IntVar(v.Min, v.Max)}
			in.names = append(in.names, v.Name)
			continue
		}
		x := in.Space.IntVars(v.Count, v.Min, v.Max)
		in.vars[v.Name] = x
		for i := range x {
			elem := fmt.Sprintf("%s[%d]", v.Name, i)
			in.vars[elem] = x[i : i+1]
			in.names = append(in.names, elem)
		}
	}

	for i, c := range m.Constraints {
		if err := in.post(c); err != nil {
			return nil, fmt.Errorf("constraint %d: %w", i, err)
		}
	}

	branched := make(map[fd.IntView]struct{})
	for i, b := range m.Branch {
		x, err := in.lookup(b.Vars...)
		if err != nil {
			return nil, fmt.Errorf("branch %d: %w", i, err)
		}
		view, value := b.View, b.Value
		if view == "" {
			view = "size-min"
		}
		if value == "" {
			value = "min"
		}
		br, err := strategy.Branching[*fd.Space, fd.IntView](x, view, value, m.Seed)
		if err != nil {
			return nil, fmt.Errorf("branch %d: %w", i, err)
		}
		in.Space.AddBranching(br)
		for _, each := range x {
			branched[each] = struct{}{}
		}
	}

	var rest []fd.IntView
	for _, name := range in.names {
		x := in.vars[name][0]
		if _, ok := branched[x]; !ok {
			rest = append(rest, x)
		}
	}
	if len(rest) > 0 {
		br, err := strategy.Branching[*fd.Space, fd.IntView](rest, "size-min", "min", m.Seed)
		if err != nil {
			return nil, err
		}
		in.Space.AddBranching(br)
	}
	return in, nil
}

func (in *Instance) lookup(names ...string) ([]fd.IntView, error) {
	var x []fd.IntView
	for _, name := range names {
		vs, ok := in.vars[name]
		if !ok {
			return nil, fmt.Errorf("unknown variable %q", name)
		}
		x = append(x, vs...)
	}
	return x, nil
}

func (in *Instance) post(c Constraint) error {
	n := 0
	if c.Distinct != nil {
		n++
		x, err := in.lookup(c.Distinct...)
		if err != nil {
			return err
		}
		in.Space.Post(fd.Distinct(x))
	}
	if c.Linear != nil {
		n++
		x, err := in.lookup(c.Linear.Vars...)
		if err != nil {
			return err
		}
		op, err := fd.ParseRelOp(c.Linear.Rel)
		if err != nil {
			return err
		}
		p, err := fd.Linear(c.Linear.Coeffs, x, op, c.Linear.Rhs)
		if err != nil {
			return err
		}
		in.Space.Post(p)
	}
	if c.Rel != nil {
		n++
		if err := in.postRel(c.Rel); err != nil {
			return err
		}
	}
	if n != 1 {
		return fmt.Errorf("expected exactly one of distinct, linear or rel, found %d", n)
	}
	return nil
}

func (in *Instance) postRel(r *Rel) error {
	op, err := fd.ParseRelOp(r.Op)
	if err != nil {
		return err
	}
	x, err := in.scalar(r.X)
	if err != nil {
		return err
	}
	switch {
	case r.Value != nil && r.Y == "":
		in.Space.Post(fd.RelConst(x, op, *r.Value))
	case r.Value == nil && r.Y != "":
		y, err := in.scalar(r.Y)
		if err != nil {
			return err
		}
		in.Space.Post(fd.Rel(x, op, y))
	default:
		return fmt.Errorf("rel needs exactly one of y and value")
	}
	return nil
}

func (in *Instance) scalar(name string) (fd.IntView, error) {
	x, err := in.lookup(name)
	if err != nil {
		return fd.IntView{}, err
	}
	if len(x) != 1 {
		return fd.IntView{}, fmt.Errorf("%q is an array, expected a single variable", name)
	}
	return x[0], nil
}

// Assignment returns the value of every scalar variable and array element
// of a solved space, sorted by name.
func (in *Instance) Assignment(s *fd.Space) []Value {
	values := make([]Value, 0, len(in.names))
	for _, name := range in.names {
		values = append(values, Value{Name: name, Val: in.vars[name][0].Val(s)})
	}
	sort.SliceStable(values, func(i, j int) bool {
		return values[i].Name < values[j].Name
	})
	return values
}

type Value struct {
	Name string
	Val  int
}
