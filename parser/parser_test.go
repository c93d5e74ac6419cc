package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/datadrill/drill"
	"github.com/vegasq/datadrill/query"
)

func testTable(t *testing.T) *query.Table {
	t.Helper()

	table, err := query.NewTable(
		query.NewSeries("numbers", []interface{}{1, 2, 3}),
		query.NewSeries("modified_numbers", []interface{}{10, 20, 30}),
		query.NewSeries("name", []interface{}{"alice", "bob", nil}),
		query.NewSeries("my col", []interface{}{0.5, 1.5, 2.5}),
	)
	require.NoError(t, err)
	return table
}

func run(t *testing.T, input string, prefix string) (string, []interface{}) {
	t.Helper()

	table := testTable(t)
	r, err := Parse(input)
	require.NoError(t, err)

	env := drill.NewEnvironment(drill.NewFieldResolver(table.Columns())).WithPrefix(prefix)
	expr, err := r(env)
	require.NoError(t, err)
	out, err := table.Select(expr)
	require.NoError(t, err)
	return out.Columns()[0], out.Series()[0].Values()
}

func TestParse_Evaluation(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		prefix string
		want   []interface{}
	}{
		{"field", "numbers", "", []interface{}{int64(1), int64(2), int64(3)}},
		{"field under prefix", "numbers", "modified_", []interface{}{int64(10), int64(20), int64(30)}},
		{"plus one", "numbers + 1", "", []interface{}{int64(2), int64(3), int64(4)}},
		{"precedence", "1 + numbers * 2", "", []interface{}{int64(3), int64(5), int64(7)}},
		{"parentheses", "(1 + numbers) * 2", "", []interface{}{int64(4), int64(6), int64(8)}},
		{"left associative", "10 - numbers - 1", "", []interface{}{int64(8), int64(7), int64(6)}},
		{"power right associative", "2 ** numbers ** 2", "", []interface{}{int64(2), int64(16), int64(512)}},
		{"unary minus binds looser than power", "-numbers ** 2", "", []interface{}{int64(-1), int64(-4), int64(-9)}},
		{"negative exponent", "2 ** -numbers", "", []interface{}{0.5, 0.25, 0.125}},
		{"true division", "numbers / 2", "", []interface{}{0.5, 1.0, 1.5}},
		{"floor division and modulo", "numbers // 2 + numbers % 2", "", []interface{}{int64(1), int64(1), int64(2)}},
		{"bitwise not", "~numbers", "", []interface{}{int64(-2), int64(-3), int64(-4)}},
		{"comparison", "numbers >= 2", "", []interface{}{false, true, true}},
		{"sql equality", "numbers = 2", "", []interface{}{false, true, false}},
		{"sql inequality", "numbers <> 2", "", []interface{}{true, false, true}},
		{"and binds tighter than or", "numbers == 1 or numbers > 1 and numbers < 3", "", []interface{}{true, true, false}},
		{"symbolic logic", "(numbers > 1) & (numbers < 3) | (numbers == 3)", "", []interface{}{false, true, true}},
		{"xor", "(numbers > 1) ^ (numbers > 2)", "", []interface{}{false, true, false}},
		{"not", "not numbers > 1", "", []interface{}{true, false, false}},
		{"prefix override", "numbers + prefix('modified_', numbers)", "", []interface{}{int64(11), int64(22), int64(33)}},
		{"nested prefixes", "prefix('x_', prefix('modified_', numbers))", "", []interface{}{int64(10), int64(20), int64(30)}},
		{"noprefix", "noprefix(numbers)", "modified_", []interface{}{int64(1), int64(2), int64(3)}},
		{"prefix length", "prefix_len()", "modified_", []interface{}{int64(9), int64(9), int64(9)}},
		{"quoted identifier", `"my col" * 2`, "", []interface{}{1.0, 3.0, 5.0}},
		{"string concatenation", "name + '!'", "", []interface{}{"alice!", "bob!", nil}},
		{"registered function", "upper(name)", "", []interface{}{"ALICE", "BOB", nil}},
		{"function with literal", "coalesce(name, 'unknown')", "", []interface{}{"alice", "bob", "unknown"}},
		{"cast", "cast(numbers, 'string')", "", []interface{}{"1", "2", "3"}},
		{"timestamp function", "month(to_timestamp('2024-03-15')) + numbers", "", []interface{}{int64(4), int64(5), int64(6)}},
		{"math function", "ROUND(\"my col\" * 3, 1)", "", []interface{}{1.5, 4.5, 7.5}},
		{"null literal propagates", "numbers + null", "", []interface{}{nil, nil, nil}},
		{"bool literal", "true and numbers > 1", "", []interface{}{false, true, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := run(t, tt.input, tt.prefix)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Alias(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"numbers + 1 as next", "next"},
		{`numbers as "Next Value"`, "Next Value"},
		{"numbers + 1", "numbers"},
		{"1 + numbers", "literal"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			name, _ := run(t, tt.input, "")
			assert.Equal(t, tt.want, name)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "", ErrSyntax},
		{"whitespace", "   ", ErrSyntax},
		{"dangling operator", "numbers +", ErrSyntax},
		{"unbalanced parenthesis", "(numbers + 1", ErrSyntax},
		{"extra parenthesis", "numbers)", ErrSyntax},
		{"chained comparison", "1 < numbers < 3", ErrSyntax},
		{"bad number", "1.2.3", ErrSyntax},
		{"unterminated string", "'abc", ErrSyntax},
		{"invalid character", "numbers $ 1", ErrSyntax},
		{"alias without name", "numbers as", ErrSyntax},
		{"alias with literal", "numbers as 1", ErrSyntax},
		{"unknown function", "frobnicate(numbers)", query.ErrUnknownFunction},
		{"too many arguments", "upper(name, name)", ErrSyntax},
		{"too few arguments", "pow(numbers)", ErrSyntax},
		{"prefix needs string", "prefix(numbers, numbers)", ErrSyntax},
		{"prefix_len takes nothing", "prefix_len(numbers)", ErrSyntax},
		{"too deep", strings.Repeat("(", 200) + "1" + strings.Repeat(")", 200), ErrExpressionTooDeep},
		{"too long", strings.Repeat("a", MaxExpressionLength+1), ErrExpressionTooLong},
		{"too many tokens", strings.Repeat("1 + ", MaxTokens) + "1", ErrTooManyTokens},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestParse_UnknownFieldFailsAtRun(t *testing.T) {
	r, err := Parse("missing + 1")
	require.NoError(t, err)

	env := drill.NewEnvironment(drill.NewFieldResolver([]string{"numbers"}))
	_, err = r(env)
	assert.ErrorIs(t, err, drill.ErrUnknownColumn)
}

func TestParseList(t *testing.T) {
	readers, err := ParseList([]string{"numbers", "numbers + 1"})
	require.NoError(t, err)
	assert.Len(t, readers, 2)

	_, err = ParseList([]string{"numbers +", "numbers", "frobnicate()"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyntax)
	assert.ErrorIs(t, err, query.ErrUnknownFunction)
	assert.Contains(t, err.Error(), `"numbers +"`)
}

func TestParse_NonASCII(t *testing.T) {
	table, err := query.NewTable(
		query.NewSeries("café", []interface{}{"crème", "thé"}),
	)
	require.NoError(t, err)
	env := drill.NewEnvironment(drill.NewFieldResolver(table.Columns()))

	r, err := Parse(`"café" == 'thé'`)
	require.NoError(t, err)
	expr, err := r(env)
	require.NoError(t, err)

	out, err := table.Filter(expr)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"thé"}, out.Series()[0].Values())
}
