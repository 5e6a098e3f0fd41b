package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RespondJSONWithETag marshals payload once, tags it with a strong ETag of the
// body and answers 304 when the client already holds that version.
func RespondJSONWithETag(ctx *gin.Context, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		RespondInternal(ctx, "Could not encode response")
		return
	}

	sum := sha256.Sum256(body)
	etag := `"` + hex.EncodeToString(sum[:16]) + `"`

	ctx.Header("ETag", etag)
	ctx.Header("Cache-Control", "no-cache")

	if ifNoneMatchMatches(ctx.GetHeader("If-None-Match"), etag) {
		ctx.Status(http.StatusNotModified)
		return
	}

	ctx.Data(status, "application/json; charset=utf-8", body)
}

func ifNoneMatchMatches(headerValue, etag string) bool {
	headerValue = strings.TrimSpace(headerValue)

	if headerValue == "" {
		return false
	}

	if headerValue == "*" {
		return true
	}

	for _, part := range strings.Split(headerValue, ",") {
		// weak comparison, W/"x" matches "x"
		candidate := strings.TrimPrefix(strings.TrimSpace(part), "W/")
		if candidate == etag {
			return true
		}
	}

	return false
}
