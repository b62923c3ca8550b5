package diff

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Stat 文本变更统计（按字符计）
type Stat struct {
	Inserted int
	Deleted  int
}

// IsZero 是否没有任何变化
func (s Stat) IsZero() bool {
	return s.Inserted == 0 && s.Deleted == 0
}

// TextStat 统计从 before 到 after 插入与删除的字符数
func TextStat(before, after string) Stat {
	var st Stat
	if before == after {
		return st
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			st.Inserted += utf8.RuneCountInString(d.Text)
		case diffmatchpatch.DiffDelete:
			st.Deleted += utf8.RuneCountInString(d.Text)
		}
	}
	return st
}

// Patch 生成从 before 到 after 的补丁文本，无变化时返回空字符串
func Patch(before, after string) string {
	if before == after {
		return ""
	}
	dmp := diffmatchpatch.New()
	return dmp.PatchToText(dmp.PatchMake(before, after))
}

// Apply 将 Patch 生成的补丁应用到 text，全部成功时 ok 为 true
func Apply(patch, text string) (result string, ok bool) {
	if patch == "" {
		return text, true
	}
	dmp := diffmatchpatch.New()
	patches, err := dmp.PatchFromText(patch)
	if err != nil {
		return text, false
	}
	result, applied := dmp.PatchApply(patches, text)
	for _, a := range applied {
		if !a {
			return result, false
		}
	}
	return result, true
}
