package editcontrol

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// evalTimeout bounds one expression evaluation
const evalTimeout = 250 * time.Millisecond

// Eval evaluates an arithmetic expression such as "2*pi*3" or
// "sqrt(2)/2". The math library functions are available unqualified.
func Eval(expr string) (float64, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0, fmt.Errorf("%w: empty expression", ErrValidation)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	lua.OpenBase(L)
	lua.OpenMath(L)
	exposeMath(L)

	ctx, cancel := context.WithTimeout(context.Background(), evalTimeout)
	defer cancel()
	L.SetContext(ctx)

	if err := L.DoString("return (" + expr + ")"); err != nil {
		return 0, fmt.Errorf("%w: cannot evaluate %q", ErrValidation, expr)
	}
	ret := L.Get(-1)
	L.Pop(1)
	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a number", ErrValidation, expr)
	}
	v := float64(n)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrValidation, expr)
	}
	return v, nil
}

// exposeMath copies math.* into the globals so "sin(pi/6)" works
func exposeMath(L *lua.LState) {
	m, ok := L.GetGlobal("math").(*lua.LTable)
	if !ok {
		return
	}
	m.ForEach(func(k, v lua.LValue) {
		if name, ok := k.(lua.LString); ok {
			L.SetGlobal(string(name), v)
		}
	})
}
