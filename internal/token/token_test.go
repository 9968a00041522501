package token

import "testing"

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		word string
		want Type
	}{
		{"var", VAR},
		{"let", LET},
		{"const", CONST},
		{"func", FUNC},
		{"record", RECORD},
		{"if", IF},
		{"elif", ELIF},
		{"else", ELSE},
		{"while", WHILE},
		{"for", FOR},
		{"return", RETURN},
		{"true", TRUE},
		{"false", FALSE},
		{"any", ANY},
		{"void", VOID},
		{"and", AND},
		{"or", OR},
		{"is", IS},
		{"notAKeyword", IDENT},
		{"Record", IDENT}, // case-sensitive
	}
	for _, tt := range tests {
		if got := LookupIdent(tt.word); got != tt.want {
			t.Errorf("LookupIdent(%q) = %s, want %s", tt.word, got, tt.want)
		}
	}
}

func TestIsAssignOp(t *testing.T) {
	yes := []Type{ASSIGN, PLUSEQ, MINUSEQ, STAREQ, SLASHEQ, PERCENTEQ, POWEQ, SLASH2EQ}
	for _, ty := range yes {
		if !IsAssignOp(ty) {
			t.Errorf("IsAssignOp(%s) = false, want true", ty)
		}
	}
	no := []Type{PLUS, EQ, ARROW, COLON}
	for _, ty := range no {
		if IsAssignOp(ty) {
			t.Errorf("IsAssignOp(%s) = true, want false", ty)
		}
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Type: IDENT, Lexeme: "foo", Line: 3, Column: 5}
	got := tok.String()
	want := `3:5 IDENT "foo"`
	if got != want {
		t.Errorf("Token.String() = %q, want %q", got, want)
	}
}
