package app

import (
	"strings"

	"github.com/ivywong/webwriter/pkg/code"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Ctx *gin.Context
}

type ListRes struct {
	List  any `json:"list"`  // Data list // 数据清单
	Total int `json:"total"` // Total rows // 总行数
}

// Res is the unified response structure: Code/Status/Message/Data
// Res 是统一的响应结构：Code/Status/Message/Data
type Res struct {
	Code    int    `json:"code"`
	Status  bool   `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Details string `json:"details,omitempty"`
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{
		Ctx: ctx,
	}
}

// ToResponse writes the code as JSON, details joined by comma
// ToResponse 以 JSON 输出错误码，详情以逗号拼接
func (r *Response) ToResponse(codeObj *code.Code) {
	r.Ctx.Set("status_code", codeObj.StatusCode())

	content := Res{
		Code:    codeObj.Code(),
		Status:  codeObj.Status(),
		Message: codeObj.Msg(),
		Data:    codeObj.Data(),
	}
	if codeObj.HaveDetails() {
		content.Details = strings.Join(codeObj.Details(), ",")
	}

	r.Ctx.JSON(codeObj.StatusCode(), content)
}

// ToResponseList writes a list wrapped in ListRes
// ToResponseList 输出列表响应，Data 为 ListRes
func (r *Response) ToResponseList(codeObj *code.Code, list any, total int) {
	r.ToResponse(codeObj.WithData(ListRes{List: list, Total: total}))
}
