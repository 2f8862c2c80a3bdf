package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONSuccess writes {"success": true, ...payload}.
func JSONSuccess(c *gin.Context, code int, payload gin.H) {
	out := gin.H{"success": true}
	for k, v := range payload {
		out[k] = v
	}
	c.JSON(code, out)
}

// JSONError writes {"success": false, "message": message}.
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "message": message})
}

// RespondError maps an error coming out of the service layer onto the
// HTTP response. Anything that is not an *AppError is treated as a
// storage failure.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewStorageError(err)
	}

	out := gin.H{"success": false, "message": appErr.Message}
	if len(appErr.Fields) > 0 {
		out["errors"] = appErr.Fields
	}
	for k, v := range appErr.Extra {
		out[k] = v
	}

	status := appErr.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.JSON(status, out)
}
