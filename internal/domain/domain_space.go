package domain

// Space defaults
// 空间默认值
const (
	DefaultSpaceName           = "Untitled"
	DefaultSpaceWidth  float64 = 2000
	DefaultSpaceHeight float64 = 1500
)

// Link 块/卡片之间的有向边（当前未接入 Store 操作）
type Link struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SpaceSettings 画布尺寸
type SpaceSettings struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultSpaceSettings 默认画布尺寸 2000x1500
func DefaultSpaceSettings() SpaceSettings {
	return SpaceSettings{Width: DefaultSpaceWidth, Height: DefaultSpaceHeight}
}

// SpaceSettingsPatch 画布尺寸的部分更新
type SpaceSettingsPatch struct {
	Width  *float64
	Height *float64
}

// Apply 将补丁合并到 s
func (p SpaceSettingsPatch) Apply(s SpaceSettings) SpaceSettings {
	if p.Width != nil {
		s.Width = *p.Width
	}
	if p.Height != nil {
		s.Height = *p.Height
	}
	return s
}

// Space 独立画布，拥有自己的块、卡片、堆叠、连线和设置
type Space struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Stacks   []Stack       `json:"stacks"`
	Cards    []Card        `json:"cards"`
	Links    []Link        `json:"links"`
	Blocks   []Block       `json:"blocks"`
	Settings SpaceSettings `json:"settings"`
}

// NewSpace 创建空空间，name 为空时使用默认名称
func NewSpace(name string, settings SpaceSettings) Space {
	if name == "" {
		name = DefaultSpaceName
	}
	return Space{
		ID:       NewID(PrefixSpace),
		Name:     name,
		Stacks:   []Stack{},
		Cards:    []Card{},
		Links:    []Link{},
		Blocks:   []Block{},
		Settings: settings,
	}
}

// Clone 深拷贝空间，快照与实时状态不共享任何可变结构
func (s Space) Clone() Space {
	out := s
	out.Stacks = make([]Stack, len(s.Stacks))
	for i, st := range s.Stacks {
		out.Stacks[i] = st.Clone()
	}
	out.Cards = make([]Card, len(s.Cards))
	copy(out.Cards, s.Cards)
	out.Links = make([]Link, len(s.Links))
	copy(out.Links, s.Links)
	out.Blocks = make([]Block, len(s.Blocks))
	copy(out.Blocks, s.Blocks)
	return out
}

// BlockIndex 返回块下标，不存在时返回 -1
func (s *Space) BlockIndex(id string) int {
	for i := range s.Blocks {
		if s.Blocks[i].ID == id {
			return i
		}
	}
	return -1
}

// CardIndex 返回 ContentID 为 id 的卡片下标，不存在时返回 -1
func (s *Space) CardIndex(id string) int {
	for i := range s.Cards {
		if s.Cards[i].ContentID == id {
			return i
		}
	}
	return -1
}

// DanglingCards 返回引用了本空间不存在的块的卡片
func (s *Space) DanglingCards() []Card {
	var out []Card
	for _, c := range s.Cards {
		if s.BlockIndex(c.ContentID) < 0 {
			out = append(out, c)
		}
	}
	return out
}

func (s *Space) normalize() {
	if s.Stacks == nil {
		s.Stacks = []Stack{}
	}
	for i := range s.Stacks {
		if s.Stacks[i].BlockIDs == nil {
			s.Stacks[i].BlockIDs = []string{}
		}
	}
	if s.Cards == nil {
		s.Cards = []Card{}
	}
	if s.Links == nil {
		s.Links = []Link{}
	}
	if s.Blocks == nil {
		s.Blocks = []Block{}
	}
}
