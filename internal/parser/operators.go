package parser

import "github.com/flc-lang/flc/internal/lexer"

// reservedWords are multi-character tokens the grammar owns outright;
// using one as an identifier is a parse error (but parsing continues).
var reservedWords = map[string]bool{
	"->":  true,
	",":   true,
	"\\":  true,
	"|->": true,
}

func isReserved(word string) bool { return reservedWords[word] }

// isOperatorWord reports whether every rune of word belongs to the
// operator alphabet. The reserved token "->" passes this test too
// ("|->" does not, since '|' is not an operator rune) — callers must
// check isReserved first, which the parser's main loop does.
func isOperatorWord(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !lexer.IsOperatorRune(r) {
			return false
		}
	}
	return true
}

// charPriority ranks an operator's leading characters from tightest (1)
// to loosest (7); unlisted characters (comparisons, custom symbols) sit
// in the middle at 4.
func charPriority(c byte) int {
	switch c {
	case '^':
		return 1
	case '*', '/', '%':
		return 2
	case '+', '-':
		return 3
	case '&', '|':
		return 5
	case ':':
		return 6
	case ';':
		return 7
	default:
		return 4
	}
}

// compareOperators orders two operator spellings for the fold pass:
// 1 means a binds tighter (folds first) than b, -1 means looser, 0 means
// they belong to the same fold group. Ties on leading characters are
// broken by length: the shorter operator binds looser.
func compareOperators(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		pa, pb := charPriority(a[i]), charPriority(b[i])
		if pa < pb {
			return 1
		}
		if pa > pb {
			return -1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
