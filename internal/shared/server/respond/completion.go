package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careercraft-backend/internal/llm"
)

// Completion reports a failed language-model call as 502 with code
// llm_<reason> and the text clients show in place of a reply.
func Completion(c *gin.Context, err error) {
	reason := llm.ReasonOf(err)
	if reason == "" {
		reason = llm.ReasonNetwork
	}
	Error(c, http.StatusBadGateway, "llm_"+string(reason), llm.FallbackText(err), gin.H{"reason": reason})
}
