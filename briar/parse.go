package briar

// ParseProgram runs the full pipeline: normalize indentation, tokenize,
// and parse+optimize into an AST. Parse diagnostics are routed to
// sinks.ErrorSink as "line:col: msg | rule: R".
func ParseProgram(source, filename string, sinks Sinks) (*Node, error) {
	normalized, err := normalizeIndent(source)
	if err != nil {
		return nil, err
	}

	tz := newTokenizer(normalized, filename)
	var toks []*token
	for {
		t := tz.Next()
		toks = append(toks, t)
		if t.isEOF() {
			break
		}
	}

	d := newDiag(sinks)
	p := newParser(toks, filename)
	root, ok := p.apply("program", p.parseProgram)
	if !ok || !p.cur().isEOF() {
		loc := p.toks[p.failPos].loc
		d.errorf("%d:%d: %s | rule: %s", loc.Line, loc.Col, p.failMsg, p.failRule)
		return nil, newSyntaxError(&loc, "%s | rule: %s", p.failMsg, p.failRule)
	}

	optimized := optimize(root)
	d.tracef("---- BEG AST ----\n%s---- END AST ----", optimized.dump(0))
	return optimized, nil
}
