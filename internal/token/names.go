package token

import "strings"

var kindNames = [...]string{
	Invalid:                "T_INVALID",
	Other:                  "T_OTHER",
	OpenTag:                "T_OPEN_TAG",
	OpenTagWithEcho:        "T_OPEN_TAG_WITH_ECHO",
	CloseTag:               "T_CLOSE_TAG",
	InlineHTML:             "T_INLINE_HTML",
	Whitespace:             "T_WHITESPACE",
	Comment:                "T_COMMENT",
	DocComment:             "T_DOC_COMMENT",
	String:                 "T_STRING",
	Variable:               "T_VARIABLE",
	ConstantEncapsedString: "T_CONSTANT_ENCAPSED_STRING",
	DoubleQuotedString:     "T_DOUBLE_QUOTED_STRING",
	EncapsedAndWhitespace:  "T_ENCAPSED_AND_WHITESPACE",
	LNumber:                "T_LNUMBER",
	DNumber:                "T_DNUMBER",
	NameQualified:          "T_NAME_QUALIFIED",
	NameFullyQualified:     "T_NAME_FULLY_QUALIFIED",
	NsSeparator:            "T_NS_SEPARATOR",
	Function:               "T_FUNCTION",
	Fn:                     "T_FN",
	Const:                  "T_CONST",
	Use:                    "T_USE",
	New:                    "T_NEW",
	Class:                  "T_CLASS",
	Interface:              "T_INTERFACE",
	Trait:                  "T_TRAIT",
	Namespace:              "T_NAMESPACE",
	Return:                 "T_RETURN",
	Echo:                   "T_ECHO",
	Public:                 "T_PUBLIC",
	Protected:              "T_PROTECTED",
	Private:                "T_PRIVATE",
	Extends:                "T_EXTENDS",
	Implements:             "T_IMPLEMENTS",
	Array:                  "T_ARRAY",
	Eval:                   "T_EVAL",
	Exit:                   "T_EXIT",
	Include:                "T_INCLUDE",
	IncludeOnce:            "T_INCLUDE_ONCE",
	Require:                "T_REQUIRE",
	RequireOnce:            "T_REQUIRE_ONCE",
	Isset:                  "T_ISSET",
	Unset:                  "T_UNSET",
	Empty:                  "T_EMPTY",
	Self:                   "T_SELF",
	Static:                 "T_STATIC",
	Parent:                 "T_PARENT",
	ObjectOperator:         "T_OBJECT_OPERATOR",
	NullsafeObjectOperator: "T_NULLSAFE_OBJECT_OPERATOR",
	DoubleColon:            "T_DOUBLE_COLON",
	DoubleArrow:            "T_DOUBLE_ARROW",
	BitwiseAnd:             "T_BITWISE_AND",
	Equal:                  "T_EQUAL",
	OpenParenthesis:        "T_OPEN_PARENTHESIS",
	CloseParenthesis:       "T_CLOSE_PARENTHESIS",
	OpenCurlyBracket:       "T_OPEN_CURLY_BRACKET",
	CloseCurlyBracket:      "T_CLOSE_CURLY_BRACKET",
	OpenSquareBracket:      "T_OPEN_SQUARE_BRACKET",
	CloseSquareBracket:     "T_CLOSE_SQUARE_BRACKET",
	Semicolon:              "T_SEMICOLON",
	Comma:                  "T_COMMA",
	StringConcat:           "T_STRING_CONCAT",
	DoubleQuote:            "T_DOUBLE_QUOTE",
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = Kind(k)
	}
	return m
}()

// charKinds maps the single-character tokens PHP reports without an id.
var charKinds = map[string]Kind{
	"(":  OpenParenthesis,
	")":  CloseParenthesis,
	"{":  OpenCurlyBracket,
	"}":  CloseCurlyBracket,
	"[":  OpenSquareBracket,
	"]":  CloseSquareBracket,
	";":  Semicolon,
	",":  Comma,
	".":  StringConcat,
	"=":  Equal,
	"&":  BitwiseAnd,
	"\"": DoubleQuote,
}

// String returns the tokenizer name of the kind, e.g. "T_STRING".
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "T_INVALID"
}

// LookupKind resolves a tokenizer name such as "T_CONSTANT_ENCAPSED_STRING".
// Names are matched case-insensitively.
func LookupKind(name string) (Kind, bool) {
	k, ok := kindByName[strings.ToUpper(strings.TrimSpace(name))]
	if !ok || k == Invalid || k == Other {
		return Invalid, false
	}
	return k, true
}

// LookupChar resolves a single-character token as emitted by token_get_all.
func LookupChar(text string) (Kind, bool) {
	k, ok := charKinds[text]
	return k, ok
}
