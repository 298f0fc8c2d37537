// Package strategy resolves view and value selection policies by name.
package strategy

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/operator-framework/brancher/pkg/branch"
	"github.com/operator-framework/brancher/pkg/branch/valsel"
	"github.com/operator-framework/brancher/pkg/branch/viewsel"
	"github.com/operator-framework/brancher/pkg/sat"
)

const (
	// Anchored names the view selection of sat.Anchored.
	Anchored = "anchored"
	// Preferred names the value selection of sat.Preferred.
	Preferred = "preferred"
)

// View is a view usable with every named policy.
type View[S any] interface {
	viewsel.Sized[S]
	valsel.Tellable[S]
}

// ViewSel returns the view selection policy called name. seed is used by
// the random policy only.
func ViewSel[S any, V View[S]](name string, seed uint32) (branch.ViewSelector[S, V], error) {
	switch name {
	case "none", "first":
		return viewsel.None[S, V](), nil
	case "size-min", "first-fail":
		return viewsel.SizeMin[S, V](), nil
	case "size-max":
		return viewsel.SizeMax[S, V](), nil
	case "min-min":
		return viewsel.MinMin[S, V](), nil
	case "min-max":
		return viewsel.MinMax[S, V](), nil
	case "max-min":
		return viewsel.MaxMin[S, V](), nil
	case "max-max":
		return viewsel.MaxMax[S, V](), nil
	case "rnd", "random":
		return viewsel.Rnd[S, V](seed), nil
	}
	return nil, fmt.Errorf("unknown view selection %q, expected one of %s", name, strings.Join(ViewSelNames(), ", "))
}

// ValSel returns the binary value selection policy called name.
func ValSel[S any, V View[S]](name string) (branch.ValueSelector[S, V, int], error) {
	switch name {
	case "min":
		return valsel.Min[S, V](), nil
	case "max":
		return valsel.Max[S, V](), nil
	case "med":
		return valsel.Med[S, V](), nil
	case "split-min":
		return valsel.SplitMin[S, V](), nil
	case "split-max":
		return valsel.SplitMax[S, V](), nil
	}
	return nil, fmt.Errorf("unknown value selection %q, expected one of %s", name, strings.Join(ValSelNames(), ", "))
}

// Branching builds a branching over x from policy names. Value selections
// of the form "interval:<k>" create a k-ary interval branching.
func Branching[S any, V View[S]](x []V, view, value string, seed uint32) (branch.Branching[S], error) {
	vs, err := ViewSel[S, V](view, seed)
	if err != nil {
		return nil, err
	}
	if rest, ok := strings.CutPrefix(value, "interval:"); ok {
		k, err := strconv.Atoi(rest)
		if err != nil || k < 1 {
			return nil, fmt.Errorf("invalid interval value selection %q", value)
		}
		return branch.NewViewValBranching[S, V, valsel.Bounds](x, vs, valsel.Interval[S, V](k)), nil
	}
	va, err := ValSel[S, V](value)
	if err != nil {
		return nil, err
	}
	return branch.NewViewValBranching[S, V, int](x, vs, va), nil
}

// BoolBranching builds a branching over boolean views. Besides the
// generic policies it knows the preference driven policies of package sat,
// which may be combined with any binary generic policy.
func BoolBranching(x []sat.BoolView, view, value string, seed uint32) (branch.Branching[*sat.Space], error) {
	if view != Anchored && value != Preferred {
		return Branching[*sat.Space, sat.BoolView](x, view, value, seed)
	}
	vs := sat.Anchored()
	if view != Anchored {
		var err error
		if vs, err = ViewSel[*sat.Space, sat.BoolView](view, seed); err != nil {
			return nil, err
		}
	}
	va := sat.Preferred()
	if value != Preferred {
		var err error
		if va, err = ValSel[*sat.Space, sat.BoolView](value); err != nil {
			return nil, err
		}
	}
	return branch.NewViewValBranching[*sat.Space, sat.BoolView, int](x, vs, va), nil
}

func ViewSelNames() []string {
	names := []string{"none", "size-min", "size-max", "min-min", "min-max", "max-min", "max-max", "rnd"}
	sort.Strings(names)
	return names
}

func ValSelNames() []string {
	return []string{"max", "med", "min", "split-max", "split-min", "interval:<k>"}
}

// BoolViewSelNames returns the view selections BoolBranching accepts.
func BoolViewSelNames() []string {
	names := append(ViewSelNames(), Anchored)
	sort.Strings(names)
	return names
}

// BoolValSelNames returns the value selections BoolBranching accepts.
func BoolValSelNames() []string {
	return append([]string{Preferred}, ValSelNames()...)
}
