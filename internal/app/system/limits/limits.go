// Package limits caps request body sizes so oversized payloads fail fast
// instead of exhausting memory in the JSON decoder.
package limits

import "net/http"

// MaxJSONBody is the largest request body any JSON endpoint accepts.
// Forum posts carry the biggest payloads and stay well under this.
const MaxJSONBody = 1 << 20 // 1 MB

// Body wraps each request body with a hard size cap. The JSON decoder
// surfaces the overflow as a read error, which handlers report as 400.
func Body(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBody)
		next.ServeHTTP(w, r)
	})
}
