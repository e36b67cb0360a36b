package middleware

import (
	"net/http"
	"regexp"

	"github.com/gorilla/handlers"
)

var localhostOrigin = regexp.MustCompile(`^https?://localhost(:\d+)?$`)

// corsMaxAge is the largest preflight cache gorilla/handlers accepts.
const corsMaxAge = 600

// CORS answers preflight requests and sets the Access-Control headers for
// the configured origins. "*" allows any origin without credentials;
// "http://localhost:*" allows a local dev server on any port.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	opts := []handlers.CORSOption{
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodHead, http.MethodPost}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.MaxAge(corsMaxAge),
		handlers.OptionStatusCode(http.StatusNoContent),
	}
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		opts = append(opts, handlers.AllowedOrigins(allowedOrigins))
	} else {
		opts = append(opts, handlers.AllowedOriginValidator(func(origin string) bool {
			return originAllowed(allowedOrigins, origin)
		}))
	}
	return handlers.CORS(opts...)
}

func originAllowed(allowed []string, origin string) bool {
	for _, a := range allowed {
		if a == origin {
			return true
		}
		if (a == "http://localhost:*" || a == "https://localhost:*") && localhostOrigin.MatchString(origin) {
			return true
		}
	}
	return false
}
