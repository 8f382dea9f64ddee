package token

// Kind represents the category of a PHP token.
type Kind uint16

const (
	// Invalid indicates an unknown token kind.
	Invalid Kind = iota
	// Other marks a tokenizer kind this package does not classify; the
	// original name is kept in Token.Name.
	Other

	// OpenTag represents `<?php`.
	OpenTag // T_OPEN_TAG
	// OpenTagWithEcho represents `<?=`.
	OpenTagWithEcho // T_OPEN_TAG_WITH_ECHO
	// CloseTag represents `?>`.
	CloseTag // T_CLOSE_TAG
	// InlineHTML represents text outside PHP tags.
	InlineHTML // T_INLINE_HTML
	// Whitespace represents spaces, tabs and newlines.
	Whitespace // T_WHITESPACE
	// Comment represents `//`, `#` and `/* */` comments.
	Comment // T_COMMENT
	// DocComment represents `/** */` comments.
	DocComment // T_DOC_COMMENT

	// String represents a bare identifier (function, method, class or constant name).
	String // T_STRING
	// Variable represents `$name`.
	Variable // T_VARIABLE
	// ConstantEncapsedString represents a quoted string literal without interpolation.
	ConstantEncapsedString // T_CONSTANT_ENCAPSED_STRING
	// DoubleQuotedString represents an interpolated double quoted string.
	DoubleQuotedString // T_DOUBLE_QUOTED_STRING
	// EncapsedAndWhitespace represents literal parts of an interpolated string.
	EncapsedAndWhitespace // T_ENCAPSED_AND_WHITESPACE
	// LNumber represents an integer literal.
	LNumber // T_LNUMBER
	// DNumber represents a float literal.
	DNumber // T_DNUMBER
	// NameQualified represents `Foo\Bar` (PHP 8).
	NameQualified // T_NAME_QUALIFIED
	// NameFullyQualified represents `\Foo\Bar` (PHP 8).
	NameFullyQualified // T_NAME_FULLY_QUALIFIED
	// NsSeparator represents `\`.
	NsSeparator // T_NS_SEPARATOR

	// Function represents the `function` keyword.
	Function // T_FUNCTION
	// Fn represents the `fn` keyword.
	Fn // T_FN
	// Const represents the `const` keyword.
	Const // T_CONST
	// Use represents the `use` keyword.
	Use // T_USE
	// New represents the `new` keyword.
	New // T_NEW
	// Class represents the `class` keyword.
	Class // T_CLASS
	// Interface represents the `interface` keyword.
	Interface // T_INTERFACE
	// Trait represents the `trait` keyword.
	Trait // T_TRAIT
	// Namespace represents the `namespace` keyword.
	Namespace // T_NAMESPACE
	// Return represents the `return` keyword.
	Return // T_RETURN
	// Echo represents the `echo` keyword.
	Echo // T_ECHO
	// Public represents the `public` keyword.
	Public // T_PUBLIC
	// Protected represents the `protected` keyword.
	Protected // T_PROTECTED
	// Private represents the `private` keyword.
	Private // T_PRIVATE
	// Extends represents the `extends` keyword.
	Extends // T_EXTENDS
	// Implements represents the `implements` keyword.
	Implements // T_IMPLEMENTS
	// Array represents the `array` keyword.
	Array // T_ARRAY

	// Eval represents the `eval` language construct.
	Eval // T_EVAL
	// Exit represents `exit` / `die`.
	Exit // T_EXIT
	// Include represents `include`.
	Include // T_INCLUDE
	// IncludeOnce represents `include_once`.
	IncludeOnce // T_INCLUDE_ONCE
	// Require represents `require`.
	Require // T_REQUIRE
	// RequireOnce represents `require_once`.
	RequireOnce // T_REQUIRE_ONCE
	// Isset represents `isset`.
	Isset // T_ISSET
	// Unset represents `unset`.
	Unset // T_UNSET
	// Empty represents `empty`.
	Empty // T_EMPTY
	// Self represents `self`.
	Self // T_SELF
	// Static represents `static`.
	Static // T_STATIC
	// Parent represents `parent`.
	Parent // T_PARENT

	// ObjectOperator represents `->`.
	ObjectOperator // T_OBJECT_OPERATOR
	// NullsafeObjectOperator represents `?->`.
	NullsafeObjectOperator // T_NULLSAFE_OBJECT_OPERATOR
	// DoubleColon represents `::`.
	DoubleColon // T_DOUBLE_COLON
	// DoubleArrow represents `=>`.
	DoubleArrow // T_DOUBLE_ARROW
	// BitwiseAnd represents `&`.
	BitwiseAnd // T_BITWISE_AND
	// Equal represents `=`.
	Equal // T_EQUAL
	// OpenParenthesis represents `(`.
	OpenParenthesis // T_OPEN_PARENTHESIS
	// CloseParenthesis represents `)`.
	CloseParenthesis // T_CLOSE_PARENTHESIS
	// OpenCurlyBracket represents `{`.
	OpenCurlyBracket // T_OPEN_CURLY_BRACKET
	// CloseCurlyBracket represents `}`.
	CloseCurlyBracket // T_CLOSE_CURLY_BRACKET
	// OpenSquareBracket represents `[`.
	OpenSquareBracket // T_OPEN_SQUARE_BRACKET
	// CloseSquareBracket represents `]`.
	CloseSquareBracket // T_CLOSE_SQUARE_BRACKET
	// Semicolon represents `;`.
	Semicolon // T_SEMICOLON
	// Comma represents `,`.
	Comma // T_COMMA
	// StringConcat represents `.`.
	StringConcat // T_STRING_CONCAT
	// DoubleQuote represents a bare `"` around an interpolated string.
	DoubleQuote // T_DOUBLE_QUOTE

	kindCount
)
