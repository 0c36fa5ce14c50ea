// file: utils/response.go
package utils

import (
	"RecipeBattle/services"
	"errors"
	"github.com/gin-gonic/gin"
	"net/http"
)

type Response struct {
	Code int         `json:"code"`
	Kind string      `json:"kind,omitempty"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Msg: msg, Data: data})
}

// Created 201，用于新建资源（报名、投票、上传凭证）
func Created(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: 0, Msg: msg, Data: data})
}

// Error 返回带机器可读 kind 的错误响应
func Error(c *gin.Context, status int, kind string, msg string) {
	c.JSON(status, Response{Code: status, Kind: kind, Msg: msg})
}

// ServiceError 将 services 层的类型化错误映射为 HTTP 响应。
// 非类型化错误按 500 处理，生产模式下不暴露细节。
func ServiceError(c *gin.Context, err error) {
	var se *services.Error
	if errors.As(err, &se) {
		Error(c, se.HTTPStatus(), se.Kind, se.Message)
		return
	}
	msg := "服务器内部错误"
	if gin.IsDebugging() {
		msg = err.Error()
	}
	Error(c, http.StatusInternalServerError, services.KindInternal, msg)
}
