package game

import "fmt"

// Kind is the arithmetic performed by an Operation.
type Kind int

const (
	Add Kind = iota
	Subtract
	Multiply
)

var symbols = [...]string{
	Add:      "+",
	Subtract: "-",
	Multiply: "*",
}

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return symbols[k]
}

func (k Kind) valid() bool {
	return k >= Add && k <= Multiply
}

func kindOf(symbol byte) (Kind, bool) {
	switch symbol {
	case '+':
		return Add, true
	case '-':
		return Subtract, true
	case '*':
		return Multiply, true
	}
	return 0, false
}
