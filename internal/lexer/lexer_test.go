package lexer

import (
	"testing"

	"github.com/avelang/ave/internal/token"
)

func typesOf(data ScannedData) []token.Type {
	var out []token.Type
	for _, tok := range data.Tokens {
		out = append(out, tok.Type)
	}
	return out
}

func assertTypes(t *testing.T, got []token.Type, want []token.Type) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d\ngot:  %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token[%d] = %s, want %s\ngot:  %v\nwant: %v", i, got[i], want[i], got, want)
		}
	}
}

// scenario 4: while loop with layout.
func TestLexWhileLoopWithLayout(t *testing.T) {
	src := "var k = 4\nwhile k\n  k -= 1\n"
	data := Lex("test.ave", src)
	if len(data.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", data.Errors)
	}
	want := []token.Type{
		token.VAR, token.IDENT, token.ASSIGN, token.NUMBER, token.NEWLINE,
		token.WHILE, token.IDENT, token.NEWLINE,
		token.INDENT, token.IDENT, token.MINUSEQ, token.NUMBER, token.NEWLINE,
		token.DEDENT, token.EOF,
	}
	assertTypes(t, typesOf(data), want)
}

// scenario 8: unterminated string.
func TestLexUnterminatedString(t *testing.T) {
	src := `x = "hello`
	data := Lex("test.ave", src)
	if len(data.Errors) != 1 {
		t.Fatalf("expected exactly one error, got %d: %v", len(data.Errors), data.Errors)
	}
	if data.Errors[0].Code != "L001" {
		t.Errorf("expected ErrUnterminatedString, got %s", data.Errors[0].Code)
	}

	var sawString bool
	for _, tok := range data.Tokens {
		if tok.Type == token.STRING {
			sawString = true
		}
	}
	if !sawString {
		t.Error("lexer should still produce a best-effort STRING token for recovery")
	}
}

func TestLexFloorDivisionAndExponentAssign(t *testing.T) {
	data := Lex("test.ave", "a = b // c\na //= c\na **= 2")
	want := []token.Type{
		token.IDENT, token.ASSIGN, token.IDENT, token.SLASH2, token.IDENT, token.NEWLINE,
		token.IDENT, token.SLASH2EQ, token.IDENT, token.NEWLINE,
		token.IDENT, token.POWEQ, token.NUMBER, token.NEWLINE, token.EOF,
	}
	assertTypes(t, typesOf(data), want)
}

func TestLexKeywordOperators(t *testing.T) {
	data := Lex("test.ave", "a and b or c is d")
	want := []token.Type{
		token.IDENT, token.AND, token.IDENT, token.OR, token.IDENT, token.IS, token.IDENT, token.NEWLINE, token.EOF,
	}
	assertTypes(t, typesOf(data), want)
}

func TestLexElifAndVoid(t *testing.T) {
	data := Lex("test.ave", "elif void")
	want := []token.Type{token.ELIF, token.VOID, token.NEWLINE, token.EOF}
	assertTypes(t, typesOf(data), want)
}

func TestLexHashCommentDoesNotConflictWithFloorDivision(t *testing.T) {
	data := Lex("test.ave", "a // b # trailing comment\n")
	if len(data.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", data.Errors)
	}
	want := []token.Type{token.IDENT, token.SLASH2, token.IDENT, token.NEWLINE, token.EOF}
	assertTypes(t, typesOf(data), want)
}

func TestLexHexAndBinaryLiterals(t *testing.T) {
	data := Lex("test.ave", "0xFF 0b101")
	if len(data.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", data.Errors)
	}
	if data.Tokens[0].Type != token.NUMBER || data.Tokens[0].Literal.(float64) != 255 {
		t.Errorf("0xFF: got type %s literal %v, want NUMBER 255", data.Tokens[0].Type, data.Tokens[0].Literal)
	}
	if data.Tokens[1].Type != token.NUMBER || data.Tokens[1].Literal.(float64) != 5 {
		t.Errorf("0b101: got type %s literal %v, want NUMBER 5", data.Tokens[1].Type, data.Tokens[1].Literal)
	}
}

func TestLexIdentifierImmediatelyAfterNumberIsError(t *testing.T) {
	data := Lex("test.ave", "1abc")
	if len(data.Errors) != 1 || data.Errors[0].Code != "L006" {
		t.Fatalf("expected one ErrIdentAfterNumber, got %v", data.Errors)
	}
}

func TestLexEmptyHexLiteralIsError(t *testing.T) {
	data := Lex("test.ave", "0x")
	if len(data.Errors) != 1 {
		t.Fatalf("expected one error for bare '0x', got %v", data.Errors)
	}
}

func TestLexInconsistentDedentRecovers(t *testing.T) {
	src := "if a\n    b\n  c\n"
	data := Lex("test.ave", src)
	if len(data.Errors) != 1 || data.Errors[0].Code != "L002" {
		t.Fatalf("expected one ErrInconsistentDedent, got %v", data.Errors)
	}
	// Recovery still produces a balanced INDENT/DEDENT stream ending in EOF.
	if data.Tokens[len(data.Tokens)-1].Type != token.EOF {
		t.Fatalf("expected stream to end in EOF, got %v", typesOf(data))
	}
}

func TestLexBlankAndCommentOnlyLinesAreInvisibleToLayout(t *testing.T) {
	src := "if a\n  b\n\n  # just a comment\n  c\n"
	data := Lex("test.ave", src)
	if len(data.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", data.Errors)
	}
	want := []token.Type{
		token.IF, token.IDENT, token.NEWLINE,
		token.INDENT, token.IDENT, token.NEWLINE,
		token.IDENT, token.NEWLINE,
		token.DEDENT, token.EOF,
	}
	assertTypes(t, typesOf(data), want)
}
