package convert

import (
	"github.com/jinzhu/copier"
)

// StructAssign copies same-named fields of src into dst
// StructAssign 把 src 与 dst 的相同字段名的值复制到 dst 中
func StructAssign(src any, dst any) any {
	_ = copier.Copy(dst, src)
	return dst
}
