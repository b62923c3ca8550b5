package code

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithDetailsDoesNotMutateRegisteredCode(t *testing.T) {
	detailed := ErrorSpaceNotFound.WithDetails("space-1")

	assert.Equal(t, []string{"space-1"}, detailed.Details())
	assert.False(t, ErrorSpaceNotFound.HaveDetails())
	assert.Equal(t, ErrorSpaceNotFound.Code(), detailed.Code())
}

func TestIsMatchesByNumber(t *testing.T) {
	wrapped := fmt.Errorf("switch: %w", ErrorSpaceNotFound.WithDetails("x"))

	assert.True(t, errors.Is(wrapped, ErrorSpaceNotFound))
	assert.False(t, errors.Is(wrapped, ErrorDecode))
}

func TestLanguageFallback(t *testing.T) {
	defer func() { _ = SetGlobalDefaultLang("en") }()

	assert.NoError(t, SetGlobalDefaultLang("zh_cn"))
	assert.Equal(t, "空间不存在", ErrorSpaceNotFound.Msg())

	assert.Error(t, SetGlobalDefaultLang("fr"))
	assert.Equal(t, "en", GetGlobalDefaultLang())
	assert.Equal(t, "space not found", ErrorSpaceNotFound.Msg())
}

func TestErrorIncludesDetails(t *testing.T) {
	err := ErrorSpaceNotFound.WithDetails("space-9")
	assert.Equal(t, "space not found: [space-9]", err.Error())
	assert.Equal(t, "space not found", ErrorSpaceNotFound.Error())
}

func TestStatusCodeFollowsNumber(t *testing.T) {
	assert.Equal(t, 404, ErrorSpaceNotFound.StatusCode())
	assert.False(t, ErrorSpaceNotFound.Status())
	assert.Equal(t, 200, Success.StatusCode())
	assert.True(t, Success.Status())
}

func TestWithDataKeepsDetails(t *testing.T) {
	c := ErrorSpaceNotFound.WithDetails("a").WithData(map[string]int{"n": 1})

	assert.Equal(t, []string{"a"}, c.Details())
	assert.Equal(t, map[string]int{"n": 1}, c.Data())
	assert.Nil(t, ErrorSpaceNotFound.Data())
}
