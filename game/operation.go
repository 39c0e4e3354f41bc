package game

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var operationPattern = regexp.MustCompile(`^([+\-*])(\d+)$`)

// Operation is a fixed arithmetic step applied to the pile, e.g. "+2" or "*3".
type Operation struct {
	Kind    Kind
	Operand int
}

func NewOperation(kind Kind, operand int) (Operation, error) {
	if !kind.valid() {
		return Operation{}, fmt.Errorf("unsupported operator %s: %w", kind, ErrInvalidOperation)
	}
	return Operation{Kind: kind, Operand: operand}, nil
}

// ParseOperation parses an operator symbol followed by a non-negative integer.
func ParseOperation(text string) (Operation, error) {
	text = strings.TrimSpace(text)
	groups := operationPattern.FindStringSubmatch(text)
	if groups == nil {
		return Operation{}, fmt.Errorf("malformed operation %q: %w", text, ErrInvalidOperation)
	}

	kind, _ := kindOf(groups[1][0])
	operand, err := strconv.Atoi(groups[2])
	if err != nil { // Digits only, so this is a range error
		return Operation{}, fmt.Errorf("operand of %q: %v: %w", text, err, ErrInvalidOperation)
	}
	return NewOperation(kind, operand)
}

// ParseOperations parses an ordered, non-empty list of operations. The order is
// kept and defines the order in which successors are explored.
func ParseOperations(texts []string) ([]Operation, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no operations given: %w", ErrInvalidOperation)
	}
	ops := make([]Operation, 0, len(texts))
	for _, text := range texts {
		op, err := ParseOperation(text)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// Moves converts operations into the Move values the classifier consumes.
func Moves(ops []Operation) []Move {
	moves := make([]Move, len(ops))
	for i, op := range ops {
		moves[i] = op
	}
	return moves
}

// Apply returns the pile size after this operation. Results that do not fit in
// an int are reported as ErrArithmeticOverflow instead of wrapping around.
func (o Operation) Apply(size int) (int, error) {
	switch o.Kind {
	case Add:
		if (o.Operand > 0 && size > math.MaxInt-o.Operand) ||
			(o.Operand < 0 && size < math.MinInt-o.Operand) {
			return 0, o.overflow(size)
		}
		return size + o.Operand, nil
	case Subtract:
		if (o.Operand > 0 && size < math.MinInt+o.Operand) ||
			(o.Operand < 0 && size > math.MaxInt+o.Operand) {
			return 0, o.overflow(size)
		}
		return size - o.Operand, nil
	case Multiply:
		if size == 0 || o.Operand == 0 {
			return 0, nil
		}
		product := size * o.Operand
		if product/o.Operand != size ||
			(o.Operand == -1 && size == math.MinInt) ||
			(size == -1 && o.Operand == math.MinInt) {
			return 0, o.overflow(size)
		}
		return product, nil
	}
	panic(fmt.Sprintf("unexpected operation kind %d", int(o.Kind)))
}

func (o Operation) overflow(size int) error {
	return fmt.Errorf("%d %s %d: %w", size, o.Kind, o.Operand, ErrArithmeticOverflow)
}

func (o Operation) String() string {
	return o.Kind.String() + strconv.Itoa(o.Operand)
}
