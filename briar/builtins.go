package briar

import (
	"fmt"
	"strings"
)

// installBuiltins registers the global functions "print" and "len" plus
// the supplemental "error" and "printf", each as a *ValueNative bound in
// the interpreter's global environment. Grounded in narfscript/native.go's
// registerNatives, which binds a fixed table of Go closures into the
// global symbol table the same way at startup.
func (in *Interp) installBuiltins() {
	in.bindNative("print", nativePrint)
	in.bindNative("len", nativeLen)
	if in.cfg.EnableError {
		in.bindNative("error", nativeError)
	}
	if in.cfg.EnablePrintf {
		in.bindNative("printf", nativePrintf)
	}
}

// nativePrint implements "print(args...)": writes the display form of
// each argument, space-joined, followed by a newline, to Sinks.Stdout.
func nativePrint(in *Interp, args []Value, loc *SrcLoc) (Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	if in.sinks.Stdout != nil {
		fmt.Fprintln(in.sinks.Stdout, strings.Join(parts, " "))
	}
	return NewNull(), nil
}

// nativeLen implements "len(list)": exactly one List argument, counting
// every element including the None placeholder of an empty list — len()
// reports the raw slot count, not ValueList.nonNullCount's "genuinely
// non-empty" count, so a freshly created empty list still reports 1 rather
// than 0.
func nativeLen(in *Interp, args []Value, loc *SrcLoc) (Value, error) {
	if len(args) != 1 {
		return nil, newErr(KindType, loc, "len() takes exactly 1 argument, got %d", len(args))
	}
	list, err := asList(args[0], loc)
	if err != nil {
		return nil, err
	}
	return NewInt(int64(len(list.Elems))), nil
}

// nativeError implements the interpreter-level supplement's error(msg): it
// raises a RuntimeError carrying the passed Value, aborting evaluation.
// There is no user-level catch in this language, so only the top-level
// driver sees it. Grounded in narfscript/native.go's nativeError.
func nativeError(in *Interp, args []Value, loc *SrcLoc) (Value, error) {
	if len(args) != 1 {
		return nil, newErr(KindType, loc, "error() takes exactly 1 argument, got %d", len(args))
	}
	return nil, newException(loc, args[0])
}

// nativePrintf implements the interpreter-level supplement's printf(fmt,
// args...): a minimal %d/%s/%% formatter, grounded in narfscript/native.go's
// doSprintf. Any other verb is copied through literally rather than
// erroring, matching narfscript's tolerant behavior.
func nativePrintf(in *Interp, args []Value, loc *SrcLoc) (Value, error) {
	if len(args) == 0 {
		return nil, newErr(KindType, loc, "printf() takes at least 1 argument, got 0")
	}
	format, err := asStr(args[0], loc)
	if err != nil {
		return nil, err
	}
	out, err := doSprintf(format, args[1:], loc)
	if err != nil {
		return nil, err
	}
	if in.sinks.Stdout != nil {
		fmt.Fprint(in.sinks.Stdout, out)
	}
	return NewNull(), nil
}

// doSprintf implements the %d/%s/%% subset of printf verbs against a Value
// argument list, grounded in narfscript/native.go's doSprintf.
func doSprintf(format string, args []Value, loc *SrcLoc) (string, error) {
	var b strings.Builder
	argi := 0
	runes := []rune(format)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		if ch != '%' {
			b.WriteRune(ch)
			continue
		}
		i++
		if i >= len(runes) {
			b.WriteByte('%')
			break
		}
		switch runes[i] {
		case '%':
			b.WriteByte('%')
		case 'd':
			if argi >= len(args) {
				return "", newErr(KindType, loc, "printf: not enough arguments for format %q", format)
			}
			n, err := asInt(args[argi], loc)
			if err != nil {
				return "", err
			}
			argi++
			fmt.Fprintf(&b, "%d", n)
		case 's':
			if argi >= len(args) {
				return "", newErr(KindType, loc, "printf: not enough arguments for format %q", format)
			}
			b.WriteString(args[argi].String())
			argi++
		default:
			b.WriteByte('%')
			b.WriteRune(runes[i])
		}
	}
	return b.String(), nil
}
