// Package tokenizer provides TextGrid and tier-order tokenization using
// Shape's tokenizer framework.
package tokenizer

// Token type constants for the Praat TextGrid text formats.
//
// Note: TextGrid readers only care about the sequence of values (strings,
// numbers and flags). Labels such as "xmin =" and indices such as "[3]:" are
// tokenized so the parser can skip them.
const (
	// Values
	TokenString = "String" // "..." with "" as an escaped quote
	TokenNumber = "Number" // 0, -1.5, 2.3e-05
	TokenFlag   = "Flag"   // <exists> or <absent>

	// Labels and punctuation
	TokenLabel    = "Label"    // xmin, tiers?, intervals
	TokenEquals   = "Equals"   // =
	TokenColon    = "Colon"    // :
	TokenLBracket = "LBracket" // [
	TokenRBracket = "RBracket" // ]

	// Trivia
	TokenWhitespace = "Whitespace" // spaces and tabs
	TokenNewline    = "Newline"    // \n, \r\n or \r
	TokenComment    = "Comment"    // ! to end of line

	// TokenUnterminated is a quoted string that reaches end of input.
	TokenUnterminated = "Unterminated"
)

// Token type constants for tier-order lists such as ['phone', u'word'].
const (
	TokenListOpen  = "ListOpen"  // [
	TokenListClose = "ListClose" // ]
	TokenComma     = "Comma"     // ,
	TokenQuoted    = "Quoted"    // 'a', "a", u'a' (raw text, escapes intact)
	TokenBare      = "Bare"      // unquoted name
)
