package http

import (
	"net/http"

	"vidstream/pkg/apperr"

	"github.com/gin-gonic/gin"
)

type apiResponse struct {
	Success    bool        `json:"success"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
}

func respond(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, apiResponse{
		Success:    true,
		StatusCode: code,
		Message:    message,
		Data:       data,
	})
}

type errorResponse struct {
	Success    bool     `json:"success"`
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors,omitempty"`
}

// respondError is the single boundary that turns any error into a
// response. Foreign errors are normalized into the taxonomy first, so
// nothing internal leaks to the client.
func respondError(c *gin.Context, err error) {
	appErr := apperr.Wrap(err, "something went wrong")
	if appErr == nil {
		appErr = apperr.Internal("something went wrong")
	}
	c.JSON(appErr.Code, errorResponse{
		Success:    false,
		StatusCode: appErr.Code,
		Message:    appErr.Message,
		Errors:     appErr.Errs,
	})
}

func currentUserID(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, errorResponse{
			Success:    false,
			StatusCode: http.StatusUnauthorized,
			Message:    "unauthorized",
		})
		return "", false
	}
	return userID, true
}
