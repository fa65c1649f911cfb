package jlengine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runPattern(t *testing.T, pattern, sep, input string) string {
	t.Helper()
	var out strings.Builder
	eng, err := Compile(pattern, sep, &out)
	if err != nil {
		t.Fatalf("compile %q: %v", pattern, err)
	}
	if err := eng.Run(strings.NewReader(input)); err != nil {
		t.Fatalf("run %q against %q: %v", pattern, input, err)
	}
	return out.String()
}

func Test_Engine_scenarios(t *testing.T) {
	testCases := []struct {
		name    string
		pattern string
		sep     string
		input   string
		expect  string
	}{
		{
			name:    "S1 flat array collect",
			pattern: "[*]",
			sep:     "\t",
			input:   `[1,2,3]`,
			expect:  "1\n2\n3\n",
		},
		{
			name:    "S2 object of scalars",
			pattern: "{a,b}",
			sep:     "\t",
			input:   `{"a":1,"b":2}`,
			expect:  "1\t2\n",
		},
		{
			name:    "S3 scalar crossed with nested array",
			pattern: "{name,tags[*]}",
			sep:     "\t",
			input:   `{"name":"x","tags":["p","q"]}`,
			expect:  "x\tp\nx\tq\n",
		},
		{
			name:    "S4 array of objects with nested array",
			pattern: "[{id,vals[*]}]",
			sep:     "\t",
			input:   `[{"id":"a","vals":[1,2]},{"id":"b","vals":[3]}]`,
			expect:  "a\t1\na\t2\nb\t3\n",
		},
		{
			name:    "S5 shape mismatch yields no output",
			pattern: "{a}",
			sep:     "\t",
			input:   `[1,2,3]`,
			expect:  "",
		},
		{
			name:    "S6 unmatched property is skipped with its nested content",
			pattern: "{x,y}",
			sep:     "\t",
			input:   `{"x":1,"q":{"deep":9},"y":2}`,
			expect:  "1\t2\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			got := runPattern(t, tc.pattern, tc.sep, tc.input)
			assert.Equal(tc.expect, got)
		})
	}
}

func Test_Engine_customSeparator(t *testing.T) {
	assert := assert.New(t)
	got := runPattern(t, "{a,b}", ",", `{"a":1,"b":2}`)
	assert.Equal("1,2\n", got)
}

func Test_Engine_multipleTopLevelValues(t *testing.T) {
	assert := assert.New(t)
	got := runPattern(t, "[*]", "\t", "[1,2]\n[3,4]\n")
	assert.Equal("1\n2\n3\n4\n", got)
}

func Test_Engine_invalidPatternFailsToCompile(t *testing.T) {
	assert := assert.New(t)
	_, err := Compile("", "\t", &strings.Builder{})
	assert.Error(err)
}
