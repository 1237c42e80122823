package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"freelancehub/middleware"
	"freelancehub/models"
	"freelancehub/services/errs"
	"freelancehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requireIdentity returns the caller, or responds 401 when auth did not run.
func requireIdentity(c *gin.Context) (models.Identity, bool) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.RespondError(c, errs.Unauthorized("identity", "authentication required"))
	}
	return id, ok
}

// bindJSON decodes the body, responding 400 on malformed input.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		getLogger(c).Debug("Invalid request body", zap.String("path", c.Request.URL.Path), zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return false
	}
	return true
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// parseDate accepts RFC 3339 timestamps and plain dates. Empty input yields
// the zero time.
func parseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errs.Validation("parseDate", "%s must be a date (YYYY-MM-DD) or RFC 3339 timestamp", field)
}

// queryFloat parses an optional numeric query parameter.
func queryFloat(c *gin.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errs.Validation("query", "%s must be a number", name)
	}
	return &v, nil
}

// splitList reads a comma separated query parameter, also accepting repeats.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
