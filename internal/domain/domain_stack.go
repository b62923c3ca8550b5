package domain

// DefaultStackTitle 堆叠默认标题
const DefaultStackTitle = "Untitled Stack"

// Stack 同一位置的一组块（当前未接入 Store 操作）
type Stack struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Position    Position `json:"position"`
	BlockIDs    []string `json:"blockIds"`
	IsLocked    bool     `json:"isLocked"`
	IsCollapsed bool     `json:"isCollapsed"`
}

// NewStack 创建堆叠，title 为空时使用默认标题
func NewStack(pos Position, blockIDs []string, title string) Stack {
	if title == "" {
		title = DefaultStackTitle
	}
	return Stack{
		ID:       NewID(PrefixStack),
		Title:    title,
		Position: pos,
		BlockIDs: cloneStrings(blockIDs),
	}
}

// Clone 深拷贝堆叠
func (s Stack) Clone() Stack {
	s.BlockIDs = cloneStrings(s.BlockIDs)
	return s
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
