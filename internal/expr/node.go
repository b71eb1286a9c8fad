package expr

import (
	"fmt"
	"math"
)

type node interface {
	eval() (float64, error)
}

type number float64

func (n number) eval() (float64, error) {
	return float64(n), nil
}

type negate struct {
	operand node
}

func (n *negate) eval() (float64, error) {
	v, err := n.operand.eval()
	if err != nil {
		return 0, err
	}
	return -v, nil
}

type binary struct {
	op          tokenKind
	left, right node
}

func (b *binary) eval() (float64, error) {
	x, err := b.left.eval()
	if err != nil {
		return 0, err
	}
	y, err := b.right.eval()
	if err != nil {
		return 0, err
	}
	switch b.op {
	case tokPlus:
		return x + y, nil
	case tokMinus:
		return x - y, nil
	case tokStar:
		return x * y, nil
	case tokSlash:
		if y == 0 {
			return 0, ErrDivisionByZero
		}
		return x / y, nil
	case tokPercent:
		if y == 0 {
			return 0, ErrDivisionByZero
		}
		return floorMod(x, y), nil
	case tokPower:
		return pow(x, y)
	}
	return 0, fmt.Errorf("%w: unknown operator %s", ErrEval, b.op)
}

// floorMod returns x mod y with the sign of y.
func floorMod(x, y float64) float64 {
	m := math.Mod(x, y)
	if m != 0 && (m < 0) != (y < 0) {
		m += y
	}
	return m
}

func pow(x, y float64) (float64, error) {
	if x == 0 && y < 0 {
		return 0, ErrDivisionByZero
	}
	if x < 0 && y != math.Trunc(y) {
		return 0, fmt.Errorf("%w: fractional power of a negative number", ErrDomain)
	}
	return math.Pow(x, y), nil
}

type apply struct {
	name string
	fn   func(float64) (float64, error)
	arg  node
}

func (a *apply) eval() (float64, error) {
	v, err := a.arg.eval()
	if err != nil {
		return 0, err
	}
	out, err := a.fn(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", a.name, err)
	}
	return out, nil
}

// Trigonometric functions take radians; the session's angle mode is
// display-only.
var functions = map[string]func(float64) (float64, error){
	"sin": total(math.Sin),
	"cos": total(math.Cos),
	"tan": total(math.Tan),
	"exp": total(math.Exp),
	"log": func(x float64) (float64, error) {
		if x <= 0 {
			return 0, ErrDomain
		}
		return math.Log(x), nil
	},
}

var constants = map[string]float64{
	"π":  math.Pi,
	"pi": math.Pi,
	"e":  math.E,
}

func total(f func(float64) float64) func(float64) (float64, error) {
	return func(x float64) (float64, error) {
		return f(x), nil
	}
}
