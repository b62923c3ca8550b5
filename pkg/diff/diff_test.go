package diff

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestTextStat(t *testing.T) {
	tests := []struct {
		name   string
		before string
		after  string
		want   Stat
	}{
		{"unchanged", "same", "same", Stat{}},
		{"append", "hello", "hello world", Stat{Inserted: 6}},
		{"delete", "hello world", "hello", Stat{Deleted: 6}},
		{"from empty", "", "# title", Stat{Inserted: 7}},
		{"multibyte", "", "笔记", Stat{Inserted: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TextStat(tt.before, tt.after))
		})
	}
	assert.True(t, TextStat("a", "a").IsZero())
}

func TestPatchEmptyWhenUnchanged(t *testing.T) {
	assert.Equal(t, "", Patch("x", "x"))

	got, ok := Apply("", "x")
	assert.True(t, ok)
	assert.Equal(t, "x", got)
}

// 补丁应用到原文后应得到新文本
func TestProperty_PatchApplyReproducesAfter(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("apply(patch(a, b), a) == b", prop.ForAll(
		func(before, after string) bool {
			got, ok := Apply(Patch(before, after), before)
			return ok && got == after
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
