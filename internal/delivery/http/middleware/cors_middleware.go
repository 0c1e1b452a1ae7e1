package middleware

import "net/http"

// CORSMiddleware permits exactly one origin. The relay surface allows
// only GET/POST/OPTIONS with a Content-Type header; the dashboard
// surface additionally needs Authorization for session tokens.
type CORSMiddleware struct {
	origin  string
	headers string
}

func NewRelayCORSMiddleware(origin string) *CORSMiddleware {
	return &CORSMiddleware{origin: origin, headers: "Content-Type"}
}

func NewDashboardCORSMiddleware(origin string) *CORSMiddleware {
	return &CORSMiddleware{origin: origin, headers: "Content-Type, Authorization"}
}

func (m *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", m.origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", m.headers)

		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, req)
	})
}
