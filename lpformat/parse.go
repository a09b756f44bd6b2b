// Package lpformat reads the structured, bracketed-section text format
// spec §6.1 describes into a problem.Problem[S]. It is deliberately
// generic over the scalar backend: callers supply the parse function
// for their chosen S (strconv.ParseFloat for scalar.Float64,
// scalar.ParseBigFloat for arbitrary precision) since there is no way
// to pick one inside a package that must stay backend-agnostic.
package lpformat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dualphase/simplex/problem"
	"github.com/dualphase/simplex/scalar"
)

// ParseFunc converts one decimal token to S. scalar.ParseBigFloat
// already has this shape; ParseFloat64 wraps strconv.ParseFloat into it.
type ParseFunc[S scalar.Field[S]] func(string) (S, error)

// Error is returned for any malformed input line; it carries the
// 1-based line number for diagnostics.
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("lpformat: line %d: %s", e.Line, e.Msg) }

// Parse reads the structured format from r. proto supplies Zero/One
// for the backend; parse converts decimal tokens.
func Parse[S scalar.Field[S]](r io.Reader, parse ParseFunc[S], proto S) (*problem.Problem[S], error) {
	sc := bufio.NewScanner(r)
	p := &problem.Problem[S]{}
	numVars := -1
	varsDeclared := 0
	section := ""
	line := 0

	for sc.Scan() {
		line++
		raw := sc.Text()
		if idx := strings.Index(raw, "//"); idx >= 0 {
			raw = raw[:idx]
		}
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
			section = strings.ToUpper(strings.TrimSpace(text[1 : len(text)-1]))
			continue
		}

		fields := strings.Fields(text)
		switch section {
		case "METADATA":
			if err := parseMetadata(fields, p, &numVars, line); err != nil {
				return nil, err
			}
		case "VARIABLES":
			if numVars < 0 {
				return nil, &Error{line, "VARIABLES section requires [METADATA] vars to be declared first"}
			}
			if varsDeclared >= numVars {
				return nil, &Error{line, "more variable rows than declared vars count"}
			}
			v, b, err := parseVariable(fields, parse, proto, line)
			if err != nil {
				return nil, err
			}
			p.Variables = append(p.Variables, v)
			p.RawBounds = append(p.RawBounds, b)
			varsDeclared++
		case "CONSTRAINTS":
			if numVars < 0 || varsDeclared < numVars {
				return nil, &Error{line, "CONSTRAINTS section requires VARIABLES to be fully declared first"}
			}
			rows, err := parseConstraint(fields, parse, numVars, line)
			if err != nil {
				return nil, err
			}
			p.Constraints = append(p.Constraints, rows...)
		case "OBJECTIVE":
			obj, err := parseObjective(fields, parse, numVars, line)
			if err != nil {
				return nil, err
			}
			p.Objective = obj
		default:
			return nil, &Error{line, "content outside any [SECTION]"}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if varsDeclared != numVars {
		return nil, &Error{line, fmt.Sprintf("declared %d vars but VARIABLES section had %d rows", numVars, varsDeclared)}
	}
	return p, nil
}

func parseMetadata[S scalar.Field[S]](fields []string, p *problem.Problem[S], numVars *int, line int) error {
	if len(fields) < 2 {
		return &Error{line, "malformed METADATA row"}
	}
	switch fields[0] {
	case "name":
		p.Name = strings.Join(fields[1:], " ")
	case "vars":
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return &Error{line, "vars count must be an integer"}
		}
		*numVars = n
	default:
		return &Error{line, "unknown METADATA key " + fields[0]}
	}
	return nil
}

// parseVariable accepts either "<lb> <name> <ub>" or the two-sided
// relational form "<lb> <op> <name> <op> <ub>" with op in {<, <=}.
func parseVariable[S scalar.Field[S]](fields []string, parse ParseFunc[S], proto S, line int) (problem.Variable, problem.Bounds[S], error) {
	var lbTok, name, ubTok string
	switch len(fields) {
	case 3:
		lbTok, name, ubTok = fields[0], fields[1], fields[2]
	case 5:
		if !isRelOp(fields[1]) || !isRelOp(fields[3]) {
			return problem.Variable{}, problem.Bounds[S]{}, &Error{line, "two-sided VARIABLES row needs comparison operators"}
		}
		lbTok, name, ubTok = fields[0], fields[2], fields[4]
	default:
		return problem.Variable{}, problem.Bounds[S]{}, &Error{line, "VARIABLES row must have 3 or 5 fields"}
	}

	b := problem.Bounds[S]{}
	if !isInfToken(lbTok, false) {
		lb, err := parse(lbTok)
		if err != nil {
			return problem.Variable{}, problem.Bounds[S]{}, &Error{line, "bad lower bound: " + err.Error()}
		}
		b.HasLower, b.Lower = true, lb
	}
	if !isInfToken(ubTok, true) {
		ub, err := parse(ubTok)
		if err != nil {
			return problem.Variable{}, problem.Bounds[S]{}, &Error{line, "bad upper bound: " + err.Error()}
		}
		b.HasUpper, b.Upper = true, ub
	}
	return problem.Variable{Name: name, Origin: problem.Original, PairedIndex: -1}, b, nil
}

func isRelOp(s string) bool { return s == "<" || s == "<=" }

func isOrderedOp(s string) bool {
	switch s {
	case "<", "<=", ">", ">=":
		return true
	default:
		return false
	}
}

func isInfToken(s string, upper bool) bool {
	switch strings.ToLower(s) {
	case "inf", "+inf":
		return upper
	case "-inf":
		return !upper
	}
	return false
}

// parseConstraint accepts "<a1>..<an> <op> <rhs>", returning one row, or
// the two-sided "<lb> <op> <a1>..<an> <op> <ub>", which names two
// independent bounds on the same linear expression and so returns two
// rows: GreaterEqual lb and LessEqual ub, both over the same coeffs.
func parseConstraint[S scalar.Field[S]](fields []string, parse ParseFunc[S], n int, line int) ([]problem.Constraint[S], error) {
	if len(fields) == n+2 {
		coeffs, err := parseCoeffs(fields[:n], parse, line)
		if err != nil {
			return nil, err
		}
		sense, err := parseSense(fields[n], line)
		if err != nil {
			return nil, err
		}
		rhs, err := parse(fields[n+1])
		if err != nil {
			return nil, &Error{line, "bad RHS: " + err.Error()}
		}
		return []problem.Constraint[S]{{Coeffs: coeffs, Sense: sense, RHS: rhs}}, nil
	}
	if len(fields) == n+4 {
		lowOp, highOp := fields[1], fields[len(fields)-2]
		if lowOp != highOp {
			return nil, &Error{line, "two-sided CONSTRAINTS row needs matching operators"}
		}
		if !isOrderedOp(lowOp) {
			return nil, &Error{line, "two-sided CONSTRAINTS row needs < or <= (or >, >=) operators, not ="}
		}
		coeffs, err := parseCoeffs(fields[2:2+n], parse, line)
		if err != nil {
			return nil, err
		}
		lb, err := parse(fields[0])
		if err != nil {
			return nil, &Error{line, "bad lower bound: " + err.Error()}
		}
		ub, err := parse(fields[len(fields)-1])
		if err != nil {
			return nil, &Error{line, "bad upper bound: " + err.Error()}
		}
		coeffsOther := make([]S, len(coeffs))
		copy(coeffsOther, coeffs)
		// "lb <= expr <= ub" means expr >= lb and expr <= ub.
		// "lb >= expr >= ub" means expr <= lb and expr >= ub.
		if lowOp == "<" || lowOp == "<=" {
			return []problem.Constraint[S]{
				{Coeffs: coeffsOther, Sense: problem.GreaterEqual, RHS: lb},
				{Coeffs: coeffs, Sense: problem.LessEqual, RHS: ub},
			}, nil
		}
		return []problem.Constraint[S]{
			{Coeffs: coeffsOther, Sense: problem.LessEqual, RHS: lb},
			{Coeffs: coeffs, Sense: problem.GreaterEqual, RHS: ub},
		}, nil
	}
	return nil, &Error{line, fmt.Sprintf("CONSTRAINTS row must have %d or %d fields, got %d", n+2, n+4, len(fields))}
}

func parseCoeffs[S scalar.Field[S]](toks []string, parse ParseFunc[S], line int) ([]S, error) {
	out := make([]S, len(toks))
	for i, t := range toks {
		v, err := parse(t)
		if err != nil {
			return nil, &Error{line, "bad coefficient: " + err.Error()}
		}
		out[i] = v
	}
	return out, nil
}

func parseSense(op string, line int) (problem.Sense, error) {
	switch op {
	case "<", "<=":
		return problem.LessEqual, nil
	case ">", ">=":
		return problem.GreaterEqual, nil
	case "=":
		return problem.Equal, nil
	default:
		return 0, &Error{line, "unknown comparison operator " + op}
	}
}

func parseObjective[S scalar.Field[S]](fields []string, parse ParseFunc[S], n int, line int) (problem.Objective[S], error) {
	if len(fields) != n+1 {
		return problem.Objective[S]{}, &Error{line, fmt.Sprintf("OBJECTIVE row must have %d fields, got %d", n+1, len(fields))}
	}
	var dir problem.Direction
	switch strings.ToLower(fields[0]) {
	case "maximize", "max":
		dir = problem.Maximize
	case "minimize", "min":
		dir = problem.Minimize
	default:
		return problem.Objective[S]{}, &Error{line, "OBJECTIVE must start with maximize or minimize"}
	}
	costs, err := parseCoeffs(fields[1:], parse, line)
	if err != nil {
		return problem.Objective[S]{}, err
	}
	return problem.Objective[S]{Direction: dir, Costs: costs}, nil
}

// ParseFloat64 is the convenience entry point for the binary64 backend.
func ParseFloat64(r io.Reader) (*problem.Problem[scalar.Float64], error) {
	return Parse[scalar.Float64](r, func(s string) (scalar.Float64, error) {
		v, err := strconv.ParseFloat(s, 64)
		return scalar.Float64(v), err
	}, 0)
}
