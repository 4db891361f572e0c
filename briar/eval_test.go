package briar

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runProgram parses and evaluates src, returning everything written to the
// program's standard-output sink, and any error the pipeline raised.
func runProgram(t *testing.T, src string) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	sinks := Sinks{Stdout: &stdout}
	root, err := ParseProgram(src, "test.py", sinks)
	if err != nil {
		return stdout.String(), err
	}
	in := NewInterp(sinks, DefaultConfig())
	err = in.Run(root)
	return stdout.String(), err
}

// The six end-to-end scenarios.

func TestScenarioArithmetic(t *testing.T) {
	out, err := runProgram(t, "x = 1\ny = 2\nprint(x + y)\n")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestScenarioListIndexAndLen(t *testing.T) {
	out, err := runProgram(t, "a = [1,2,3]\nprint(a[0], a[2], len(a))\n")
	require.NoError(t, err)
	assert.Equal(t, "1 3 3\n", out)
}

func TestScenarioRecursiveFibonacciLike(t *testing.T) {
	src := "def f(n):\n    if n <= 1:\n        return n\n    return f(n-1) + f(n-2)\nprint(f(10))\n"
	out, err := runProgram(t, src)
	require.NoError(t, err)
	assert.Equal(t, "55\n", out)
}

func TestScenarioStringConcat(t *testing.T) {
	out, err := runProgram(t, `s = "he"
s = s + "llo"
print(s)
`)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestScenarioListConcat(t *testing.T) {
	src := "a = [1,2,3]\nb = a + [4,5]\nprint(b[3], b[4], len(b))\n"
	out, err := runProgram(t, src)
	require.NoError(t, err)
	assert.Equal(t, "4 5 5\n", out)
}

func TestScenarioWhileLoop(t *testing.T) {
	src := "i = 0\nwhile(i < 3):\n    print(i)\n    i = i + 1\n"
	out, err := runProgram(t, src)
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n", out)
}

// Closures capture the environment, not a value snapshot.

func TestClosureLateBinding(t *testing.T) {
	src := "x = 1\ndef f():\n    return x\nx = 2\nprint(f())\n"
	out, err := runProgram(t, src)
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

// Failure scenarios: each must fail with the stated error kind.

func TestFailureNameError(t *testing.T) {
	_, err := runProgram(t, "print(y)\n")
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindName, kind)
}

func TestFailureTypeErrorIndexingNonList(t *testing.T) {
	_, err := runProgram(t, "a = 1\nprint(a[0])\n")
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindType, kind)
}

func TestFailureIndexError(t *testing.T) {
	_, err := runProgram(t, "a = [1]\nprint(a[5])\n")
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindIndex, kind)
}

func TestFailureArithmeticErrorDivisionByZero(t *testing.T) {
	_, err := runProgram(t, "print(1/0)\n")
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindArithmetic, kind)
}

func TestFailureLenOnNonList(t *testing.T) {
	_, err := runProgram(t, `print(len("hi"))` + "\n")
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindType, kind)
}

// Additional coverage beyond the six scenarios: splice reads/writes, and
// the "if propagates a non-None result out of the enclosing block" quirk
// evalBlock intentionally preserves.

func TestListSplice(t *testing.T) {
	src := `a = [1,2,3,4,5]
b = a[1:3]
print(b[0], b[1], len(b))
c = a[:2]
print(c[0], c[1], len(c))
d = a[3:]
print(d[0], d[1], len(d))
e = a[:]
print(len(e))
`
	out, err := runProgram(t, src)
	require.NoError(t, err)
	assert.Equal(t, "2 3 2\n1 2 2\n4 5 2\n5\n", out)
}

func TestListSpliceAssignShortRHSRetainsPriorValues(t *testing.T) {
	src := `a = [1,2,3,4,5]
a[1:4] = [9]
print(a[0], a[1], a[2], a[3], a[4])
`
	out, err := runProgram(t, src)
	require.NoError(t, err)
	assert.Equal(t, "1 9 3 4 5\n", out)
}

// Out-of-range splice endpoints truncate rather than crash, matching the
// read path's tolerance (a[0:10] on a 3-element list, a[-1:2] with a
// negative left endpoint).

func TestListSpliceAssignRightEndpointPastLength(t *testing.T) {
	src := `a = [1,2,3]
a[0:10] = [1,2,3,4,5,6,7,8,9,10]
print(a[0], a[1], a[2])
`
	out, err := runProgram(t, src)
	require.NoError(t, err)
	assert.Equal(t, "1 2 3\n", out)
}

func TestListSpliceAssignNegativeLeftEndpoint(t *testing.T) {
	src := `a = [1,2,3]
a[-1:2] = [9,9]
print(a[0], a[1], a[2])
`
	out, err := runProgram(t, src)
	require.NoError(t, err)
	assert.Equal(t, "9 9 3\n", out)
}

func TestListIndexAssign(t *testing.T) {
	src := `a = [1,2,3]
a[1] = 20
print(a[0], a[1], a[2])
`
	out, err := runProgram(t, src)
	require.NoError(t, err)
	assert.Equal(t, "1 20 3\n", out)
}

func TestIfInsideBlockAbortsBlockWhenNonNone(t *testing.T) {
	// The `if` node's own evaluated result (here, its then-branch's
	// return_stmt) is non-None, so the enclosing block treats the `if`
	// itself as if it were a return and aborts immediately, skipping the
	// unconditional `return 1` below it — the possibly-surprising
	// behavior evalBlock intentionally preserves rather than "fixes".
	src := `def f():
    if 1 == 1:
        return 99
    return 1
print(f())
`
	out, err := runProgram(t, src)
	require.NoError(t, err)
	assert.Equal(t, "99\n", out)
}

func TestUnrecognizedCompareOperatorIsAnError(t *testing.T) {
	_, err := runProgram(t, "if 1 and 1:\n    print(1)\n")
	require.Error(t, err)
}
