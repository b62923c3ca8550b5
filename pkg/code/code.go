package code

import (
	"fmt"
)

// Code numbered error carrying a localized message
// Code 带有本地化消息的编号错误
type Code struct {
	// 错误码
	code int
	// 错误消息
	Lang lang
	// 错误详细信息
	details []string
	// 响应数据
	data any
}

var codes = map[int]string{}

// NewError registers a new error code, panics on duplicates
// NewError 注册一个新的错误码，重复注册时 panic
func NewError(code int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", code))
	}
	codes[code] = l.GetMessage()

	return &Code{code: code, Lang: l}
}

// Clone returns a copy without details
// Clone 创建一个不含详情的副本
func (e *Code) Clone() *Code {
	return &Code{
		code:    e.code,
		Lang:    e.Lang,
		details: []string{},
	}
}

func (e *Code) copy() *Code {
	return &Code{
		code:    e.code,
		Lang:    e.Lang,
		details: append([]string{}, e.details...),
		data:    e.data,
	}
}

func (e *Code) Error() string {
	if len(e.details) == 0 {
		return e.Msg()
	}
	return fmt.Sprintf("%s: %v", e.Msg(), e.details)
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

// StatusCode HTTP status, taken from the leading digits of the code
// StatusCode 对应的 HTTP 状态码，取错误码的前三位
func (e *Code) StatusCode() int {
	return e.code / 1000
}

// Status reports whether the code represents success
// Status 是否为成功状态
func (e *Code) Status() bool {
	return e.StatusCode() < 400
}

func (e *Code) Data() any {
	return e.data
}

// WithData returns a copy carrying response data
// WithData 返回携带响应数据的副本
func (e *Code) WithData(data any) *Code {
	c := e.copy()
	c.data = data
	return c
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) HaveDetails() bool {
	return len(e.details) > 0
}

// WithDetails returns a copy carrying details, the registered code is never mutated
// WithDetails 返回携带详情的副本，不修改已注册的错误码
func (e *Code) WithDetails(details ...string) *Code {
	c := e.copy()
	c.details = append(c.details, details...)
	return c
}

// Is matches any Code with the same number, so detailed copies satisfy errors.Is
// Is 按错误码匹配，带详情的副本同样满足 errors.Is
func (e *Code) Is(target error) bool {
	t, ok := target.(*Code)
	if !ok {
		return false
	}
	return t.code == e.code
}
