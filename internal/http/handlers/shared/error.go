package shared

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/littlelemon-api/internal/http/response"
	"github.com/littlelemon-api/internal/logger"
)

// RequestLog 返回携带 request_id 的日志器
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	requestID := ""
	if c != nil {
		if value, ok := c.Get("request_id"); ok {
			if id, ok := value.(string); ok {
				requestID = id
			}
		}
	}
	if requestID == "" {
		return logger.S()
	}
	return logger.SW().With("request_id", requestID)
}

// RespondError 写出错误响应
func RespondError(c *gin.Context, statusCode int, msg string) {
	response.Error(c, statusCode, msg)
}

// RespondInternalError 记录并写出 500 响应
func RespondInternalError(c *gin.Context, event string, err error) {
	RequestLog(c).Errorw(event, "error", err)
	response.Error(c, response.CodeInternal, "internal server error")
}

// RespondBindingError 将参数绑定失败映射为 400 响应，校验错误带字段明细
func RespondBindingError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fieldErr := range validationErrs {
			fields[fieldErr.Field()] = validationMessage(fieldErr)
		}
		response.ErrorWithData(c, response.CodeBadRequest, "invalid request payload", gin.H{"errors": fields})
		return
	}
	response.Error(c, response.CodeBadRequest, "invalid request payload")
}

func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return "Value is below the allowed minimum."
	case "max":
		return "Value is above the allowed maximum."
	case "gt":
		return "Value must be greater than " + fieldErr.Param() + "."
	default:
		return "This field is invalid."
	}
}
