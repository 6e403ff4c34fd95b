package public

import (
	"github.com/halotrubus/internal/constants"
	handlershared "github.com/halotrubus/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getSessionID(c *gin.Context) (string, bool) {
	return handlershared.GetContextStringWithKeys(c, constants.ContextKeySessionID, "error.session_token_invalid")
}
