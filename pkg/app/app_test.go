package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ivywong/webwriter/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestToResponseUsesCodeStatus(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	NewResponse(c).ToResponse(code.ErrorSpaceNotFound.WithDetails("a", "b"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"code":404101,"status":false,"message":"space not found","details":"a,b"}`, w.Body.String())
}

func TestToResponseList(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	NewResponse(c).ToResponseList(code.Success, []string{"x"}, 1)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":200000,"status":true,"message":"ok","data":{"list":["x"],"total":1}}`, w.Body.String())
}
