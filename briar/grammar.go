package briar

// grammarText is the literal PEG grammar (Bryan Ford's PEG notation,
// https://bford.info/pub/lang/peg.pdf) this parser implements, recovered
// from original_source/minipython.cpp. It is not executed at runtime —
// parser.go is a hand-written recursive-descent parser, one function per
// rule below, with packrat memoization — but it is kept here verbatim as
// the grammar's source of truth, the way a PEG-generated parser keeps its
// .peg alongside the generated code.
//
// One correction versus the original: original_source's compare_infix rule
// omits '!=' even though its own evaluator switches on it. compare_infix
// below includes it.
//
// The `!keyword` lookahead in the NAME rule is enforced by tokenizer.go's
// isKeywordText at scan time (tokKeyword vs tokIdent), not by consulting
// this text — isKeywordText's five-word set is a superset of the `keyword`
// rule below since else/return also need to scan as keyword tokens rather
// than NAME, even though they're matched as fixed literals elsewhere.
const grammarText = `
program <- (NEWLINE / Comment / function / stmt / indent_block)+ EOF
indent_block <- NEWLINE* _ '{' block NEWLINE* _ '}' NEWLINE*
block <- (indent_block / statement)+ { no_ast_opt }
function <- ('def' __ NAME __'(' _ Args(NAME)? ')' __ ':' indent_block)

stmt <- (while / if / Comment / list_expr / assignment / call) ';'?
statement <- NEWLINE? Samedent (while / if / NEWLINE / Comment / list_expr / assignment / call / return_stmt) ';'?

list_expr <- list_assign / list_create
list_assign <- (NAME '[' _ (list_op / expression) _ ']' _ '=' _ expression)
list_create <- NAME '=' _ '[' _ Args(expression)? ']' _ !term_op { no_ast_opt }
assignment <- NAME '=' _ expression
call <- NAME '(' _ Args(call / VALUE / expression)? ')' _ { no_ast_opt }

if <- 'if' __ compare ':' _ indent_block _ ('else' ':' indent_block)?
compare <- (compare_prefix VALUE) / ((VALUE compare_infix ' '* VALUE)) / ('(' (VALUE compare_infix ' '* VALUE) ')')
compare_prefix <- 'not'
compare_infix <- '==' / '!=' / '<=' / '>=' / '<' / '>' / 'and' / 'or'

while <- 'while' __ '(' _ compare _ ')' _ ':' indent_block
return_stmt <- 'return' _ expression { no_ast_opt }

expression <- sign term (term_op term)*
sign <- < [-+]? > _
term_op <- < [-+] > _
term <- factor (factor_op factor)*
factor_op <- < [*/] > _
factor <- VALUE / '(' _ expression ')' _
VALUE <- raw_list / list_value / call / STRING / NAME / NUMBER

raw_list <- _ '[' _ Args(expression / VALUE)? ']' _ { no_ast_opt }
list_value <- NAME '[' _ (':' / list_op) ']' _
list_op <- list_splice / NUMBER / NAME
list_splice <- leftSp? ':' rightSp? { no_ast_opt }
leftSp <- expression { no_ast_opt }
rightSp <- expression { no_ast_opt }

keyword <- 'while' / 'if' / 'def'

STRING <- '"' < (!'"' .)* > '"'
NAME <- !keyword < [a-zA-Z] [a-zA-Z0-9]* > _
NUMBER <- < [0-9]+ > _

~Samedent <- (' ')* {}
Args(x) <- x _ (',' _ x)*
~Comment <- '#' [^\r\n]* _
~NEWLINE <- [\r\n]+
~_ <- [ \t]*
~__ <- ![a-z0-9_] _
~EOF <- !.
`

// compareOps is the set of compare_infix tokens parseCompare accepts.
// "and"/"or" parse (per the grammar above) but are not implemented by the
// evaluator: evalCompare has its own switch over the six relational
// operators and rejects anything else.
var compareOps = map[string]bool{
	"==": true, "!=": true, "<=": true, ">=": true, "<": true, ">": true,
	"and": true, "or": true,
}
