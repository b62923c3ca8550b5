package global

import (
	"io"

	dumpx "github.com/gookit/goutil/dump"
)

// Fdump writes a structured dump of values to w
// Fdump 将变量的结构化输出写入 w
func Fdump(w io.Writer, a ...any) {
	dumpx.Fprint(w, a...)
}
