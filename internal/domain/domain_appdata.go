// Package domain 定义领域模型和接口
package domain

// AppData 持久化的根文档：有序空间列表与当前空间 ID
// 不变量：Spaces 非空，CurrentSpaceID 恰好解析到其中一个空间
type AppData struct {
	Spaces         []Space `json:"spaces"`
	CurrentSpaceID string  `json:"currentSpaceId"`
}

// NewAppData 构造根文档并保证不变量
// 没有空间时合成一个默认空间；currentSpaceID 为空或无法解析时采用第一个空间
func NewAppData(spaces []Space, currentSpaceID string) *AppData {
	d := &AppData{Spaces: spaces, CurrentSpaceID: currentSpaceID}
	if d.Spaces == nil {
		d.Spaces = []Space{}
	}
	for i := range d.Spaces {
		d.Spaces[i].normalize()
	}
	d.Repair(func() Space { return NewSpace("", DefaultSpaceSettings()) })
	return d
}

// Repair 恢复非空与当前空间可解析的不变量，newSpace 用于生成替代空间
// 当前 ID 无法解析时取第一个有 ID 的空间，一个都没有时追加 newSpace()
func (d *AppData) Repair(newSpace func() Space) {
	if d.SpaceIndex(d.CurrentSpaceID) >= 0 {
		return
	}
	for i := range d.Spaces {
		if d.Spaces[i].ID != "" {
			d.CurrentSpaceID = d.Spaces[i].ID
			return
		}
	}
	sp := newSpace()
	d.Spaces = append(d.Spaces, sp)
	d.CurrentSpaceID = sp.ID
}

// SpaceIndex 返回空间下标，不存在时返回 -1
func (d *AppData) SpaceIndex(id string) int {
	if id == "" {
		return -1
	}
	for i := range d.Spaces {
		if d.Spaces[i].ID == id {
			return i
		}
	}
	return -1
}

// Space 返回指向实时空间的指针，仅供 Store 内部修改使用
func (d *AppData) Space(id string) *Space {
	if i := d.SpaceIndex(id); i >= 0 {
		return &d.Spaces[i]
	}
	return nil
}

// Current 返回当前空间
func (d *AppData) Current() *Space {
	return d.Space(d.CurrentSpaceID)
}

// Clone 深拷贝整个文档
func (d *AppData) Clone() *AppData {
	out := &AppData{
		Spaces:         make([]Space, len(d.Spaces)),
		CurrentSpaceID: d.CurrentSpaceID,
	}
	for i, s := range d.Spaces {
		out.Spaces[i] = s.Clone()
	}
	return out
}
