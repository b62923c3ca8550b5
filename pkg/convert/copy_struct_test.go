package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type source struct {
	ID      string
	Name    string
	Hidden  int
	Created int64
}

type target struct {
	ID      string
	Name    string
	Created int64
	Extra   string
}

func TestStructAssign(t *testing.T) {
	dst := &target{Extra: "kept"}
	StructAssign(&source{ID: "space-1", Name: "Notes", Hidden: 3, Created: 7}, dst)

	assert.Equal(t, target{ID: "space-1", Name: "Notes", Created: 7, Extra: "kept"}, *dst)
}
