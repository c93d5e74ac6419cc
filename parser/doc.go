// Package parser reads a small expression language into drill.Reader values.
//
// Expressions are written against logical field names, so the same text can
// be run under any prefix:
//
//	r, err := parser.Parse("numbers + prefix('modified_', numbers) as total")
//
// # Syntax
//
// Literals are integers, decimals, 'single quoted strings', true, false and
// null. Bare identifiers (letters, digits, underscores and dots) and "double
// quoted identifiers" name fields.
//
// Operators, from lowest to highest precedence:
//
//	as                      alias the result
//	or  |                   logical or / bitwise or
//	^                       exclusive or
//	and &                   logical and / bitwise and
//	not                     logical not
//	== = != <> < <= > >=    comparison
//	+ -                     addition, subtraction, string concatenation
//	* / // %                multiplication, true division, floor division, modulo
//	- + ~                   unary minus, plus, bitwise not
//	**                      power, right associative
//
// # Functions
//
//	prefix('p', expr)    evaluate expr with prefix p
//	noprefix(expr)       evaluate expr with no prefix
//	prefix_len()         length of the active prefix
//
// Any function in the query registry (ABS, ROUND, UPPER, COALESCE, ...) may be
// called by name, case-insensitively. Unknown functions and wrong argument
// counts are reported at parse time.
package parser
