package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Dimacs holds the variables and clauses that make up
// a CNF problem described in DIMACS format
// see: https://logic.pdmi.ras.ru/~basolver/dimacs.html
type Dimacs struct {
	variables []string
	clauses   [][]int
}

func (d *Dimacs) Variables() []string {
	return d.variables
}

// Clauses returns the clauses of the problem; a negative number is a
// negated variable.
func (d *Dimacs) Clauses() [][]int {
	return d.clauses
}

var (
	commentLine = regexp.MustCompile(`^c(\s.*)?$`)
	headerLine  = regexp.MustCompile(`^p\s+cnf\s+(\d+)\s+(\d+)$`)
	clauseLine  = regexp.MustCompile(`^(-?\d+\s+)+0$`)
)

// NewDimacs creates a Dimacs struct with the values
// parsed from the DIMACS formatted stream afforded by dimacsReader
func NewDimacs(dimacsReader io.Reader) (*Dimacs, error) {
	scanner := bufio.NewScanner(dimacsReader)

	used := map[int]struct{}{}
	numVariables := 0
	numClauses := 0
	var clauses [][]int

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// ignore comments and blank lines
		if line == "" || commentLine.MatchString(line) {
			continue
		}

		// parse header
		if m := headerLine.FindStringSubmatch(line); m != nil {
			if clauses != nil {
				return nil, fmt.Errorf("invalid statement: (%s). Duplicate header", line)
			}
			var err error
			if numVariables, err = strconv.Atoi(m[1]); err != nil {
				return nil, fmt.Errorf("invalid number (%s) in statement (%s)", m[1], line)
			}
			if numClauses, err = strconv.Atoi(m[2]); err != nil {
				return nil, fmt.Errorf("invalid number (%s) in statement (%s)", m[2], line)
			}
			clauses = make([][]int, 0, numClauses)
			continue
		}

		// collect clauses
		if clauseLine.MatchString(line) {
			if clauses == nil {
				return nil, fmt.Errorf("invalid dimacs format: missing header 'p cnf <variables> <clauses>'")
			}
			fields := strings.Fields(line)
			clause, err := parseClause(fields[:len(fields)-1], numVariables)
			if err != nil {
				return nil, fmt.Errorf("invalid clause (%s): %w", line, err)
			}

			// remember variables seen to check them against the header
			for _, lit := range clause {
				if lit < 0 {
					lit = -lit
				}
				used[lit] = struct{}{}
			}
			clauses = append(clauses, clause)
			continue
		}

		// error out if the instruction is invalid
		return nil, fmt.Errorf("invalid dimacs command: %s", line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dimacs data: %w", err)
	}

	if numVariables == 0 || numClauses == 0 || clauses == nil {
		return nil, fmt.Errorf("invalid format: no variables or clauses found")
	}

	if len(clauses) != numClauses {
		return nil, fmt.Errorf("invalid format: header declares %d clauses, found %d", numClauses, len(clauses))
	}

	if len(used) != numVariables {
		return nil, fmt.Errorf("invalid format: header declares %d variables, clauses use %d", numVariables, len(used))
	}

	variables := make([]string, 0, numVariables)
	for i := 1; i <= numVariables; i++ {
		variables = append(variables, strconv.Itoa(i))
	}
	return &Dimacs{
		variables: variables,
		clauses:   clauses,
	}, nil
}

func parseClause(fields []string, numVariables int) ([]int, error) {
	clause := make([]int, len(fields))
	for i, lit := range fields {
		n, err := strconv.Atoi(lit)
		if err != nil {
			return nil, fmt.Errorf("%s is not a number", lit)
		}
		if n == 0 {
			return nil, fmt.Errorf("0 is not a valid variable")
		}
		if n > numVariables || n < -numVariables {
			return nil, fmt.Errorf("%s is not a valid variable", lit)
		}
		clause[i] = n
	}
	return clause, nil
}
