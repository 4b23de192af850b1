package api

import (
	"log"
	"net/http"

	"expensetracker/config"

	"github.com/gin-gonic/gin"
)

// MessageResponse is the body used for every non-resource response.
type MessageResponse struct {
	Message string `json:"message"`
}

// Message writes a {"message": ...} body with the given status.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, MessageResponse{Message: message})
}

// BadRequest writes a 400 response.
func BadRequest(c *gin.Context, message string) {
	Message(c, http.StatusBadRequest, message)
}

// Unauthorized writes a 401 response.
func Unauthorized(c *gin.Context, message string) {
	Message(c, http.StatusUnauthorized, message)
}

// NotFound writes a 404 response.
func NotFound(c *gin.Context, message string) {
	Message(c, http.StatusNotFound, message)
}

// ServerError logs the underlying cause and writes a 500 response. The cause
// only reaches the client through config.SafeErrorMessage, which redacts it
// outside debug mode.
func ServerError(c *gin.Context, err error) {
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	Message(c, http.StatusInternalServerError, config.SafeErrorMessage(err, "Server error"))
}
