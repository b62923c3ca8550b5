package api_router

import (
	"github.com/ivywong/webwriter/internal/app"
	"github.com/ivywong/webwriter/internal/domain"
	"github.com/ivywong/webwriter/internal/dto"
	pkgapp "github.com/ivywong/webwriter/pkg/app"
	"github.com/ivywong/webwriter/pkg/code"

	"github.com/gin-gonic/gin"
)

// SpaceHandler 空间只读接口
type SpaceHandler struct {
	*Handler
}

// NewSpaceHandler 创建空间处理器实例
func NewSpaceHandler(a *app.App) *SpaceHandler {
	return &SpaceHandler{Handler: NewHandler(a)}
}

// HistoryResponse 当前空间的撤销/重做状态
type HistoryResponse struct {
	SpaceID string `json:"spaceId"`
	Undos   int    `json:"undos"`
	Redos   int    `json:"redos"`
}

// List 空间列表，q 参数按名称过滤（忽略大小写）
func (h *SpaceHandler) List(c *gin.Context) {
	store := h.App.Store
	current := store.CurrentSpaceID()

	var spaces []domain.Space
	if q := c.Query("q"); q != "" {
		for s := range store.FilterSpaces(q) {
			spaces = append(spaces, s)
		}
	} else {
		spaces = store.Spaces()
	}

	list := make([]*dto.SpaceDTO, 0, len(spaces))
	for _, s := range spaces {
		list = append(list, dto.NewSpaceDTO(s, current))
	}
	pkgapp.NewResponse(c).ToResponseList(code.Success, list, len(list))
}

// Get 单个空间，id 为 current 时返回当前空间
func (h *SpaceHandler) Get(c *gin.Context) {
	s, err := h.space(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(dto.NewSpaceDTO(s, h.App.Store.CurrentSpaceID())))
}

// Cards 空间中的卡片及其内容
func (h *SpaceHandler) Cards(c *gin.Context) {
	s, err := h.space(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	cards := dto.NewCardDTOs(s)
	pkgapp.NewResponse(c).ToResponseList(code.Success, cards, len(cards))
}

// History 当前空间的历史深度
func (h *SpaceHandler) History(c *gin.Context) {
	undos, redos := h.App.Store.HistoryLen()
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(HistoryResponse{
		SpaceID: h.App.Store.CurrentSpaceID(),
		Undos:   undos,
		Redos:   redos,
	}))
}

func (h *SpaceHandler) space(id string) (domain.Space, error) {
	if id == "current" {
		return h.App.Store.CurrentSpace(), nil
	}
	return h.App.Store.GetSpace(id)
}
