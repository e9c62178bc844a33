package markup

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		pos   int
		want  string
		ok    bool
	}{
		{name: "plain name", input: "div id", want: "div", ok: true},
		{name: "stops at gt", input: "br>", want: "br", ok: true},
		{name: "stops at slash", input: "br/>", want: "br", ok: true},
		{name: "stops at equals", input: "id=1", want: "id", ok: true},
		{name: "stops at tab", input: "a\tb", want: "a", ok: true},
		{name: "stops at form feed", input: "a\fb", want: "a", ok: true},
		{name: "keeps quotes and lt", input: `a"<b c`, want: `a"<b`, ok: true},
		{name: "multibyte runes", input: "日本 x", want: "日本", ok: true},
		{name: "offset start", input: "<div>", pos: 1, want: "div", ok: true},
		{name: "empty input", input: "", ok: false},
		{name: "leading space", input: " div", ok: false},
		{name: "leading slash", input: "/div", ok: false},
		{name: "at end", input: "abc", pos: 3, ok: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			end, ok := scanName(testCase.input, testCase.pos)
			assert.Equal(t, testCase.ok, ok)
			if ok {
				assert.Equal(t, testCase.want, testCase.input[testCase.pos:end])
			} else {
				assert.Equal(t, testCase.pos, end)
			}
		})
	}
}

func TestSkipSpace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 4, skipSpace(" \t\r\fx", 0))
	assert.Equal(t, 0, skipSpace("x", 0))
	assert.Equal(t, 2, skipSpace("  ", 0))
}

func TestTrimSpace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b", trimSpace("  a b \t"))
	assert.Empty(t, trimSpace(" \f "))
	assert.Equal(t, "a", trimSpaceRight("a  "))
}

func TestParseValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		rest    string
		wantErr error
	}{
		{name: "double quoted", input: `="id1" x`, want: "id1", rest: " x"},
		{name: "single quoted", input: `='id1'>`, want: "id1", rest: ">"},
		{name: "spaces around equals", input: ` =  "v"`, want: "v", rest: ""},
		{name: "empty quoted", input: `=""`, want: "", rest: ""},
		{name: "escaped quote kept", input: `="a\"b">`, want: `a\"b`, rest: ">"},
		{name: "escaped backslash kept", input: `="a\\"`, want: `a\\`, rest: ""},
		{name: "other quote inside", input: `="it's"`, want: "it's", rest: ""},
		{name: "bare value", input: "=red>", want: "red", rest: ">"},
		{name: "bare value stops at slash", input: "=x/>", want: "x", rest: "/>"},
		{name: "no equals", input: " disabled", wantErr: ErrNoMatch},
		{name: "equals then gt", input: "=>", wantErr: ErrNoMatch},
		{name: "equals at end", input: "= ", wantErr: ErrNoMatch},
		{name: "unterminated", input: `="abc>`, wantErr: ErrUnterminatedQuotedValue},
		{name: "invalid escape", input: `="a\b"`, wantErr: ErrUnterminatedQuotedValue},
		{name: "trailing backslash", input: `="a\`, wantErr: ErrUnterminatedQuotedValue},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			value, end, err := parseValue(testCase.input, 0)
			if testCase.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, testCase.wantErr), "got %v", err)
				assert.Equal(t, 0, end, "failed parse must not consume input")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.want, value)
			assert.Equal(t, testCase.rest, testCase.input[end:])
		})
	}
}

func TestParseValue_ErrorOffsets(t *testing.T) {
	t.Parallel()

	_, _, err := parseValue(`= "abc`, 0)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, UnterminatedQuotedValue, perr.Kind)
	assert.Equal(t, 2, perr.Offset)
}

func TestClassify_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"<",
		"< div>",
		"<div",
		`<a title="x>`,
		`<a b="c\d">`,
		"text <b>",
		"</div>",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			start1, _, end1, err1 := classify(input, 0)
			start2, _, end2, err2 := classify(input, 0)

			require.Error(t, err1)
			assert.Equal(t, err1, err2)
			assert.Equal(t, start1, start2)
			assert.Equal(t, end1, end2)
		})
	}
}

func TestClassify_SkipsLeadingSpace(t *testing.T) {
	t.Parallel()

	start, elem, end, err := classify("   <p>x", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, start)
	assert.Equal(t, 6, end)
	assert.Equal(t, "p", elem.Tag.Name)
}

func TestElementParser_RememberedFailuresMatchFreshParse(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"<a <a <a <a",
		"<a <b",
		`<a x="<b> y`,
		"<a x=' <a x=' <a x=' <a x=' >",
		"<<<<<<<<",
		" <a <<<<<< b c",
		`<a b="c\d" <e f>`,
		`<a x="<b y <b y <b y`,
		"<a <b/> <c <d>",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			shared := newElementParser(input)
			for pos := range len(input) {
				if input[pos] != '<' {
					continue
				}

				elem, end, err := shared.parse(pos)
				wantElem, wantEnd, wantErr := newElementParser(input).parse(pos)

				assert.Equal(t, wantErr, err, "offset %d", pos)
				assert.Equal(t, wantEnd, end, "offset %d", pos)
				assert.Equal(t, wantElem, elem, "offset %d", pos)
			}
		})
	}
}

func TestElementParser_RenamesRememberedMalformedTag(t *testing.T) {
	t.Parallel()

	parser := newElementParser("<a <b")

	_, _, err := parser.parse(0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tag <a>")

	_, _, err = parser.parse(3)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, MalformedTag, perr.Kind)
	assert.Equal(t, 5, perr.Offset)
	assert.Contains(t, perr.Message, "tag <b>")
}

func TestScanner_ReusesLastRun(t *testing.T) {
	t.Parallel()

	scan := &scanner{src: "abcdef gh"}

	end, ok := scan.name(1)
	require.True(t, ok)
	assert.Equal(t, 6, end)

	end, ok = scan.name(4)
	require.True(t, ok)
	assert.Equal(t, 6, end)

	end, ok = scan.name(7)
	require.True(t, ok)
	assert.Equal(t, 9, end)

	_, ok = scan.name(6)
	assert.False(t, ok)
}

func TestPositionAt(t *testing.T) {
	t.Parallel()

	starts := buildLineStarts([]byte("ab\ncd\n\nef"))
	assert.Equal(t, []int{0, 3, 6, 7}, starts)

	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{6, 3, 1},
		{8, 4, 2},
	}

	for _, tc := range tests {
		pos := positionAt(starts, tc.offset)
		assert.Equal(t, tc.line, pos.Line, "offset %d", tc.offset)
		assert.Equal(t, tc.column, pos.Column, "offset %d", tc.offset)
	}
}
