package minify

import "testing"

// Whitespace policy cases, one per rule clause, exercised through Minify.
func TestMinify_whitespacePolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"leading_whitespace_dropped", "  a{b:c}", "a{b:c}"},
		{"after_semicolon_dropped", "a{b:c; d:e}", "a{b:c;d:e}"},
		{"descendant_kept", ".a .b{c:d}", ".a .b{c:d}"},
		{"child_combinator_tightened", "a > b{c:d}", "a>b{c:d}"},
		{"adjacent_combinator_tightened", "a + b{c:d}", "a+b{c:d}"},
		{"general_sibling_tightened", "a ~ b{c:d}", "a~b{c:d}"},
		{"comma_tightened", "a , b{c:d}", "a,b{c:d}"},
		{"pseudo_space_kept_in_selector", "a :hover{b:c}", "a :hover{b:c}"},
		{"colon_tightened_in_block", "a{b : c}", "a{b:c}"},
		{"value_list_space_kept", "a{margin:1px 2px}", "a{margin:1px 2px}"},
		{"before_open_brace_dropped", "a {b:c}", "a{b:c}"},
		{"inside_braces_dropped", "a{ b:c }", "a{b:c}"},
		{"attribute_equals_tightened", "a[href = 'x']{b:c}", "a[href='x']{b:c}"},
		{"calc_plus_spaces_kept", "a{width:calc(1em + 2px)}", "a{width:calc(1em + 2px)}"},
		{"calc_minus_spaces_kept", "a{width:calc(1em - 2px)}", "a{width:calc(1em - 2px)}"},
		{"calc_mul_spaces_dropped", "a{width:calc(2 * 3px)}", "a{width:calc(2*3px)}"},
		{"exclamation_tightened", "a{b:c !important}", "a{b:c!important}"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Minify(tt.in); got != tt.want {
				t.Errorf("Minify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestByteClasses(t *testing.T) {
	t.Parallel()

	for _, c := range []byte{'a', 'Z', '0', '_', '-', '\\', 0x80, 0xE6} {
		if !isIdent(c) {
			t.Errorf("isIdent(%q) = false, want true", c)
		}
	}
	for _, c := range []byte{' ', '{', '#', '.', '+', ':', 0} {
		if isIdent(c) {
			t.Errorf("isIdent(%q) = true, want false", c)
		}
	}
	for _, c := range []byte{' ', '\t', '\n', '\r', '\f'} {
		if !isSpace(c) {
			t.Errorf("isSpace(%q) = false, want true", c)
		}
	}
	if isSpace('a') || isSpace(0) {
		t.Error("isSpace matched a non-whitespace byte")
	}
}
