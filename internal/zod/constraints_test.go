// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package zod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/zodgen/internal/graph"
)

func TestConstraintMethod(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"min", "gte"},
		{"max", "lte"},
		{"minExclusive", "gt"},
		{"maxExclusive", "lt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := constraintMethod(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := constraintMethod("multipleOf")
	require.ErrorIs(t, err, ErrUnknownConstraint)
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name      string
		intrinsic bounds
		decorator bounds
		want      bounds
	}{
		{
			name:      "no intrinsic keeps decorators",
			decorator: bounds{min: num("1"), max: num("9")},
			want:      bounds{min: num("1"), max: num("9")},
		},
		{
			name:      "exclusive above inclusive drops inclusive",
			decorator: bounds{min: num("1"), minExclusive: num("3")},
			want:      bounds{minExclusive: num("3")},
		},
		{
			name:      "equal bounds keep inclusive",
			decorator: bounds{max: num("5"), maxExclusive: num("5")},
			want:      bounds{max: num("5")},
		},
		{
			name:      "tighter intrinsic wins",
			intrinsic: bounds{min: num("0"), max: num("255")},
			decorator: bounds{min: num("-5"), maxExclusive: num("300")},
			want:      bounds{min: num("0"), max: num("255")},
		},
		{
			name:      "tighter decorator wins",
			intrinsic: bounds{min: num("0"), max: num("255")},
			decorator: bounds{minExclusive: num("10"), max: num("100")},
			want:      bounds{minExclusive: num("10"), max: num("100")},
		},
		{
			name:      "safe marker survives",
			intrinsic: bounds{safe: true},
			decorator: bounds{min: num("2")},
			want:      bounds{min: num("2"), safe: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reconcile(tt.intrinsic, tt.decorator)
			assert.Equal(t, boundsMap(tt.want), boundsMap(got))
		})
	}
}

func boundsMap(b bounds) map[string]string {
	out := map[string]string{}
	add := func(k string, n *graph.Number) {
		if n != nil {
			out[k] = n.String()
		}
	}
	add("min", b.min)
	add("minExclusive", b.minExclusive)
	add("max", b.max)
	add("maxExclusive", b.maxExclusive)
	if b.safe {
		out["safe"] = "true"
	}
	return out
}

func TestRegexLiteral(t *testing.T) {
	assert.Equal(t, `/^a\/b$/`, regexLiteral(`^a/b$`))
	assert.Equal(t, `/^a\/b$/`, regexLiteral(`^a\/b$`))
	assert.Equal(t, `/\d+/`, regexLiteral(`\d+`))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"plain"`, Quote("plain"))
	assert.Equal(t, `"say \"hi\"\n"`, Quote("say \"hi\"\n"))
	assert.Equal(t, `"back\\slash"`, Quote(`back\slash`))
	assert.Equal(t, `"\u0001"`, Quote("\x01"))
	assert.Equal(t, `"\u2028"`, Quote("\u2028"))
	assert.Equal(t, `"héllo"`, Quote("héllo"))
}
