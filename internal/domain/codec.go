package domain

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/ivywong/webwriter/pkg/code"
	"github.com/pkg/errors"
)

// appDataDoc 解码用的文档形状，用指针区分 spaces 缺失与空列表
type appDataDoc struct {
	Spaces         *[]Space `json:"spaces"`
	CurrentSpaceID string   `json:"currentSpaceId"`
}

// Serialize 将文档编码为持久化文本
func Serialize(d *AppData) (string, error) {
	data, err := sonic.Marshal(d)
	if err != nil {
		return "", errors.Wrap(err, "serialize app data")
	}
	return string(data), nil
}

// Deserialize 从持久化文本重建文档
// 缺少 spaces、字段类型不匹配、空间 ID 为空或重复时返回 code.ErrorDecode；嵌套集合为 null 时视为空
func Deserialize(text string) (*AppData, error) {
	var doc appDataDoc
	if err := sonic.UnmarshalString(text, &doc); err != nil {
		return nil, errors.Wrap(code.ErrorDecode.WithDetails(err.Error()), "deserialize app data")
	}
	if doc.Spaces == nil {
		return nil, errors.Wrap(code.ErrorDecode.WithDetails("missing spaces"), "deserialize app data")
	}
	if err := checkSpaceIDs(*doc.Spaces); err != nil {
		return nil, errors.Wrap(err, "deserialize app data")
	}
	return NewAppData(*doc.Spaces, doc.CurrentSpaceID), nil
}

// checkSpaceIDs 空间 ID 必须非空且互不相同，null 元素解码为空 ID
func checkSpaceIDs(spaces []Space) error {
	seen := make(map[string]struct{}, len(spaces))
	for i, sp := range spaces {
		if sp.ID == "" {
			return code.ErrorDecode.WithDetails(fmt.Sprintf("space %d has no id", i))
		}
		if _, ok := seen[sp.ID]; ok {
			return code.ErrorDecode.WithDetails("duplicate space id " + sp.ID)
		}
		seen[sp.ID] = struct{}{}
	}
	return nil
}
