package briar

// Interp is the tree-walking evaluator: a global Environment plus the
// sinks it borrows for the lifetime of a run. It has no other mutable
// state beyond the environment chain it walks and the call-depth counter,
// matching a single-threaded, synchronous execution model — every call
// runs to completion before its caller resumes.
type Interp struct {
	global *Env
	diag *diag
	sinks Sinks
	cfg Config

	callDepth int
}

// NewInterp creates an interpreter with the global environment pre-loaded
// with the "print"/"len" builtins plus the supplemental "error"/"printf",
// subject to cfg's toggles.
func NewInterp(sinks Sinks, cfg Config) *Interp {
	in := &Interp{
		global: NewEnv(nil),
		diag: newDiag(sinks),
		sinks: sinks,
		cfg: cfg,
	}
	in.installBuiltins()
	return in
}

// Run evaluates root (normally a "program" node from ParseProgram) in the
// global environment and returns any RuntimeError raised along the way. A
// failure is logged to the error sink before it is returned, the same way
// ParseProgram logs a SyntaxError to the same sink — this is the one place
// every runtime error kind (Name/Type/Index/Arithmetic, and user exceptions
// raised via error()) passes through diag.errorf, rather than each of the
// new*Error call sites in eval.go/builtins.go logging individually.
func (in *Interp) Run(root *Node) error {
	_, err := in.eval(root, in.global)
	if err != nil {
		in.diag.errorf("%s", err)
	}
	return err
}

func (in *Interp) bindNative(name string, fn func(*Interp, []Value, *SrcLoc) (Value, error)) {
	in.global.Assign(name, &ValueNative{Name: name, Fn: fn})
}

// eval dispatches solely on n.Tag. Node kinds not listed descend into
// their single child, a blanket transparent-pass-through rule — this only
// matters for single-child nodes the optimize pass left in place.
func (in *Interp) eval(n *Node, env *Env) (Value, error) {
	switch n.Tag {
	case "program", "block":
		return in.evalBlock(n, env)
	case "NUMBER":
		return NewInt(n.Num), nil
	case "STRING":
		return NewStr(n.Text), nil
	case "NAME":
		v, err := env.Lookup(n.Text, &n.Loc)
		if err != nil {
			return nil, err
		}
		in.diag.varf("read %s = %s", n.Text, v.String())
		return v, nil
	case "assignment":
		return in.evalAssignment(n, env)
	case "expression":
		return in.evalExpression(n, env)
	case "term":
		return in.evalTerm(n, env)
	case "function":
		return in.evalFunctionDecl(n, env)
	case "call":
		return in.evalCall(n, env)
	case "list_create":
		return in.evalListCreate(n, env)
	case "list_value":
		return in.evalListValue(n, env)
	case "list_assign":
		return in.evalListAssign(n, env)
	case "raw_list":
		return in.evalRawList(n, env)
	case "if":
		return in.evalIf(n, env)
	case "while":
		return in.evalWhile(n, env)
	case "return_stmt":
		return in.eval(n.Children[0], env)
	default:
		if len(n.Children) == 1 {
			return in.eval(n.Children[0], env)
		}
		return nil, newErr(KindSyntax, &n.Loc, "internal: unhandled AST node %q", n.Tag)
	}
}

// evalBlock evaluates a block's children in order: a return_stmt child
// terminates the block immediately with its value; a non-None result from
// a nested `if` child also terminates the block immediately (propagating a
// return through nested conditionals is a possibly-surprising but
// intentionally preserved behavior: any `if` whose taken branch evaluates
// to a non-None value aborts the enclosing block, not just an explicit
// `return`).
func (in *Interp) evalBlock(n *Node, env *Env) (Value, error) {
	for _, child := range n.Children {
		in.diag.tracef("eval %s", child.Tag)
		if child.Tag == "return_stmt" {
			return in.eval(child, env)
		}
		if child.Tag == "if" {
			v, err := in.eval(child, env)
			if err != nil {
				return nil, err
			}
			if _, isNull := v.(*ValueNull); !isNull {
				return v, nil
			}
			continue
		}
		if _, err := in.eval(child, env); err != nil {
			return nil, err
		}
	}
	return NewNull(), nil
}

func (in *Interp) evalAssignment(n *Node, env *Env) (Value, error) {
	nameNode, rhs := n.Children[0], n.Children[1]
	v, err := in.eval(rhs, env)
	if err != nil {
		return nil, err
	}
	env.Assign(nameNode.Text, v)
	in.diag.varf("assign %s = %s", nameNode.Text, v.String())
	return NewNull(), nil
}

// evalExpression evaluates a signed sum of terms, dispatched on the shape
// and runtime type of the first operand.
func (in *Interp) evalExpression(n *Node, env *Env) (Value, error) {
	// Case 1: a lone call/list_value/STRING term returns directly,
	// regardless of any leading sign, matching
	// original_source/Interpreter.hpp's eval_expr.
	if len(n.Children) == 1 {
		switch n.Children[0].Tag {
		case "call", "list_value", "STRING":
			return in.eval(n.Children[0], env)
		}
	}

	first := n.Children[0]

	// Case 2: list concatenation.
	if isListOperand(first, env) {
		elems, err := in.listOperandElems(first, env, true)
		if err != nil {
			return nil, err
		}
		for i, op := range n.Ops {
			if op != "+" {
				return nil, newErr(KindType, &n.Loc, "'-' is not defined for List")
			}
			more, err := in.listOperandElems(n.Children[i+1], env, false)
			if err != nil {
				return nil, err
			}
			elems = append(elems, more...)
		}
		return NewList(elems), nil
	}

	// Case 3: string concatenation.
	if first.Tag == "NAME" {
		if v, err := env.Lookup(first.Text, &first.Loc); err == nil {
			if sv, ok := v.(*ValueStr); ok {
				result := sv.S
				for i, op := range n.Ops {
					if op != "+" {
						return nil, newErr(KindType, &n.Loc, "'%s' is not defined for Str", op)
					}
					rv, err := in.eval(n.Children[i+1], env)
					if err != nil {
						return nil, err
					}
					s, err := asStr(rv, &n.Loc)
					if err != nil {
						return nil, err
					}
					result += s
				}
				return NewStr(result), nil
			}
		}
	}

	// Case 4: integer arithmetic.
	firstVal, err := in.eval(first, env)
	if err != nil {
		return nil, err
	}
	val, err := asInt(firstVal, &first.Loc)
	if err != nil {
		return nil, err
	}
	if n.Sign == "-" {
		val = -val
	}
	for i, op := range n.Ops {
		rv, err := in.eval(n.Children[i+1], env)
		if err != nil {
			return nil, err
		}
		r, err := asInt(rv, &n.Children[i+1].Loc)
		if err != nil {
			return nil, err
		}
		switch op {
		case "+":
			val += r
		case "-":
			val -= r
		default:
			return nil, newErr(KindSyntax, &n.Loc, "unrecognized expression operator %q", op)
		}
	}
	return NewInt(val), nil
}

// isListOperand reports whether n is a raw_list literal or a NAME currently
// bound to a List, the trigger for expression's list-concatenation case.
func isListOperand(n *Node, env *Env) bool {
	if n.Tag == "raw_list" {
		return true
	}
	if n.Tag == "NAME" {
		if v, err := env.Lookup(n.Text, &n.Loc); err == nil {
			_, ok := v.(*ValueList)
			return ok
		}
	}
	return false
}

// listOperandElems evaluates one operand of a list-concatenation chain.
// When leading is true, this is the leftmost operand: None placeholders
// are filtered from a NAME operand's elements; a raw_list leftmost
// operand's own literal elements are never filtered.
// Subsequent (non-leading) operands are filtered the same way regardless
// of whether they are a raw_list or a NAME, matching
// original_source/Interpreter.hpp's eval_expr (a raw_list continuation
// pushes its evaluated elements unfiltered only when it is itself the
// first operand of the whole chain).
func (in *Interp) listOperandElems(n *Node, env *Env, leading bool) ([]Value, error) {
	if n.Tag == "raw_list" {
		var elems []Value
		for _, c := range n.Children {
			v, err := in.eval(c, env)
			if err != nil {
				return nil, err
			}
			if !leading {
				if _, isNull := v.(*ValueNull); isNull {
					continue
				}
			}
			elems = append(elems, v)
		}
		return elems, nil
	}
	v, err := in.eval(n, env)
	if err != nil {
		return nil, err
	}
	lv, err := asList(v, &n.Loc)
	if err != nil {
		return nil, err
	}
	var elems []Value
	for _, e := range lv.Elems {
		if _, isNull := e.(*ValueNull); isNull {
			continue
		}
		elems = append(elems, e)
	}
	return elems, nil
}

// evalTerm folds integer `*`/`/` left-to-right; division by zero is an
// ArithmeticError.
func (in *Interp) evalTerm(n *Node, env *Env) (Value, error) {
	firstVal, err := in.eval(n.Children[0], env)
	if err != nil {
		return nil, err
	}
	val, err := asInt(firstVal, &n.Children[0].Loc)
	if err != nil {
		return nil, err
	}
	for i, op := range n.Ops {
		rv, err := in.eval(n.Children[i+1], env)
		if err != nil {
			return nil, err
		}
		r, err := asInt(rv, &n.Children[i+1].Loc)
		if err != nil {
			return nil, err
		}
		switch op {
		case "*":
			val *= r
		case "/":
			if r == 0 {
				return nil, newArithmeticError(&n.Loc, "division by zero")
			}
			val /= r
		default:
			return nil, newErr(KindSyntax, &n.Loc, "unrecognized term operator %q", op)
		}
	}
	return NewInt(val), nil
}

// evalCompare evaluates both operands as Int and compares them with one of
// the six recognized operators.
func (in *Interp) evalCompare(n *Node, env *Env) (*ValueBool, error) {
	if len(n.Children) != 2 || len(n.Ops) != 1 {
		return nil, newErr(KindSyntax, &n.Loc, "unsupported comparator form")
	}
	op := n.Ops[0]
	switch op {
	case "==", "!=", "<", "<=", ">", ">=":
	default:
		return nil, newErr(KindSyntax, &n.Loc, "unrecognized comparator operator %q", op)
	}
	lv, err := in.eval(n.Children[0], env)
	if err != nil {
		return nil, err
	}
	l, err := asInt(lv, &n.Children[0].Loc)
	if err != nil {
		return nil, err
	}
	rv, err := in.eval(n.Children[1], env)
	if err != nil {
		return nil, err
	}
	r, err := asInt(rv, &n.Children[1].Loc)
	if err != nil {
		return nil, err
	}
	var result bool
	switch op {
	case "==":
		result = l == r
	case "!=":
		result = l != r
	case "<":
		result = l < r
	case "<=":
		result = l <= r
	case ">":
		result = l > r
	case ">=":
		result = l >= r
	}
	return NewBool(result), nil
}

// evalIf evaluates the condition and takes the matching branch, if any.
func (in *Interp) evalIf(n *Node, env *Env) (Value, error) {
	cmp, err := in.evalCompare(n.Children[0], env)
	if err != nil {
		return nil, err
	}
	if cmp.B {
		return in.eval(n.Children[1], env)
	}
	if len(n.Children) > 2 {
		return in.eval(n.Children[2], env)
	}
	return NewNull(), nil
}

// evalWhile loops while the condition holds; the condition's own
// three-part comparator form is the only one evalCompare supports
// (`and`/`or` compounds are accepted by the grammar but not evaluated).
func (in *Interp) evalWhile(n *Node, env *Env) (Value, error) {
	for {
		cmp, err := in.evalCompare(n.Children[0], env)
		if err != nil {
			return nil, err
		}
		if !cmp.B {
			break
		}
		if _, err := in.eval(n.Children[1], env); err != nil {
			return nil, err
		}
	}
	return NewNull(), nil
}

// evalFunctionDecl captures env by reference (so later self-recursive
// lookups see the binding this statement is about to install — the
// closure late-binding test relies on exactly this), then binds the
// resulting Fun under its name in env.
func (in *Interp) evalFunctionDecl(n *Node, env *Env) (Value, error) {
	nameNode := n.Children[0]
	params := n.Children[1 : len(n.Children)-1]
	body := n.Children[len(n.Children)-1]

	paramNames := make([]string, len(params))
	for i, p := range params {
		paramNames[i] = p.Text
	}
	fn := &ValueFun{Name: nameNode.Text, Params: paramNames, Body: body, Env: env}
	env.Assign(nameNode.Text, fn)
	return NewNull(), nil
}

// evalCall resolves the callee, evaluates arguments left-to-right, and
// dispatches the call.
func (in *Interp) evalCall(n *Node, env *Env) (Value, error) {
	nameNode := n.Children[0]
	callee, err := env.Lookup(nameNode.Text, &nameNode.Loc)
	if err != nil {
		return nil, err
	}
	args := make([]Value, len(n.Children)-1)
	for i, argNode := range n.Children[1:] {
		v, err := in.eval(argNode, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return in.callValue(callee, args, &n.Loc)
}

func (in *Interp) callValue(callee Value, args []Value, loc *SrcLoc) (Value, error) {
	if fn, ok := callee.(*ValueNative); ok {
		in.diag.tracef("call native %s", fn.Name)
		return fn.Fn(in, args, loc)
	}
	fn, err := asFun(callee, loc)
	if err != nil {
		return nil, err
	}
	return in.callFun(fn, args, loc)
}

func (in *Interp) callFun(fn *ValueFun, args []Value, loc *SrcLoc) (Value, error) {
	if len(args) != len(fn.Params) {
		return nil, newErr(KindType, loc, "%s() takes %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
	}
	if in.cfg.MaxCallDepth > 0 && in.callDepth >= in.cfg.MaxCallDepth {
		return nil, newErr(KindType, loc, "maximum call depth %d exceeded calling %s()", in.cfg.MaxCallDepth, fn.Name)
	}

	callEnv := NewEnv(fn.Env)
	for i, p := range fn.Params {
		callEnv.Assign(p, args[i])
	}

	in.callDepth++
	in.diag.tracef("call %s(%d args)", fn.Name, len(args))
	v, err := in.eval(fn.Body, callEnv)
	in.callDepth--
	in.diag.tracef("return from %s: %s", fn.Name, describeReturn(v, err))
	return v, err
}

func describeReturn(v Value, err error) string {
	if err != nil {
		return err.Error()
	}
	return v.String()
}

// evalListCreate evaluates a `NAME = [args...]` list literal and binds it.
func (in *Interp) evalListCreate(n *Node, env *Env) (Value, error) {
	nameNode := n.Children[0]
	elemNodes := n.Children[1:]
	var list *ValueList
	if len(elemNodes) == 0 {
		list = NewEmptyList()
	} else {
		elems := make([]Value, len(elemNodes))
		for i, en := range elemNodes {
			v, err := in.eval(en, env)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		list = NewList(elems)
	}
	env.Assign(nameNode.Text, list)
	return NewNull(), nil
}

// evalRawList implements a bare `[...]` literal appearing directly as a
// value (e.g. a call argument), rather than as the right-hand side of a
// list_create assignment.
func (in *Interp) evalRawList(n *Node, env *Env) (Value, error) {
	elems := make([]Value, len(n.Children))
	for i, c := range n.Children {
		v, err := in.eval(c, env)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return NewList(elems), nil
}

// evalListValue reads a list index or splice.
func (in *Interp) evalListValue(n *Node, env *Env) (Value, error) {
	nameNode, opNode := n.Children[0], n.Children[1]
	v, err := env.Lookup(nameNode.Text, &nameNode.Loc)
	if err != nil {
		return nil, err
	}
	list, err := asList(v, &nameNode.Loc)
	if err != nil {
		return nil, err
	}

	if opNode.Tag == "list_splice" {
		l, r, err := in.resolveSplice(opNode, env, len(list.Elems))
		if err != nil {
			return nil, err
		}
		return NewList(sliceValues(list.Elems, l, r)), nil
	}

	idxVal, err := in.eval(opNode, env)
	if err != nil {
		return nil, err
	}
	idx, err := asInt(idxVal, &opNode.Loc)
	if err != nil {
		return nil, err
	}
	if idx < 0 || int(idx) >= len(list.Elems) {
		return nil, newIndexError(&opNode.Loc, int(idx), len(list.Elems))
	}
	return list.Elems[idx], nil
}

// evalListAssign writes a list index or splice.
func (in *Interp) evalListAssign(n *Node, env *Env) (Value, error) {
	nameNode, opNode, rhsNode := n.Children[0], n.Children[1], n.Children[2]
	v, err := env.Lookup(nameNode.Text, &nameNode.Loc)
	if err != nil {
		return nil, err
	}
	list, err := asList(v, &nameNode.Loc)
	if err != nil {
		return nil, err
	}

	if opNode.Tag == "list_splice" {
		l, r, err := in.resolveSplice(opNode, env, len(list.Elems))
		if err != nil {
			return nil, err
		}
		l, r = clampRange(l, r, len(list.Elems))
		rhs, err := in.eval(rhsNode, env)
		if err != nil {
			return nil, err
		}
		rhsList, err := asList(rhs, &rhsNode.Loc)
		if err != nil {
			return nil, err
		}
		for i, j := l, 0; i < r && j < len(rhsList.Elems); i, j = i+1, j+1 {
			list.Elems[i] = rhsList.Elems[j]
		}
		env.Assign(nameNode.Text, list)
		return NewNull(), nil
	}

	idxVal, err := in.eval(opNode, env)
	if err != nil {
		return nil, err
	}
	idx, err := asInt(idxVal, &opNode.Loc)
	if err != nil {
		return nil, err
	}
	upper := list.nonNullCount()
	if idx < 0 || int(idx) >= upper {
		return nil, newIndexError(&opNode.Loc, int(idx), upper)
	}
	rhs, err := in.eval(rhsNode, env)
	if err != nil {
		return nil, err
	}
	list.Elems[idx] = rhs
	env.Assign(nameNode.Text, list)
	return NewNull(), nil
}

// resolveSplice resolves the four leftSp/rightSp presence combinations of a
// list splice into a concrete [l, r) range.
func (in *Interp) resolveSplice(n *Node, env *Env, length int) (int, int, error) {
	l, r := 0, length
	haveLeft, haveRight := false, false
	for _, c := range n.Children {
		switch c.Tag {
		case "leftSp":
			v, err := in.eval(c.Children[0], env)
			if err != nil {
				return 0, 0, err
			}
			iv, err := asInt(v, &c.Loc)
			if err != nil {
				return 0, 0, err
			}
			l = int(iv)
			haveLeft = true
		case "rightSp":
			v, err := in.eval(c.Children[0], env)
			if err != nil {
				return 0, 0, err
			}
			iv, err := asInt(v, &c.Loc)
			if err != nil {
				return 0, 0, err
			}
			r = int(iv)
			haveRight = true
		}
	}
	if haveLeft && !haveRight {
		r = length
	} else if !haveLeft && haveRight {
		l = 0
	}
	return l, r, nil
}

// clampRange bounds a splice's [l, r) endpoints to a valid slice range over
// a sequence of the given length, matching Python-style splice tolerance:
// an out-of-range endpoint truncates rather than errors.
func clampRange(l, r, length int) (int, int) {
	if l < 0 {
		l = 0
	}
	if r > length {
		r = length
	}
	if l > r {
		l = r
	}
	return l, r
}

func sliceValues(elems []Value, l, r int) []Value {
	l, r = clampRange(l, r, len(elems))
	if l >= r {
		return nil
	}
	out := make([]Value, r-l)
	copy(out, elems[l:r])
	return out
}
