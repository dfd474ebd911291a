package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// SPA serves the prebuilt frontend bundle. Unknown paths fall back to
// index.html so client-side routing works; /api paths never fall through.
func SPA(frontendDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api") {
			http.NotFound(w, r)
			return
		}
		requested := filepath.Join(frontendDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			http.ServeFile(w, r, requested)
			return
		}
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	}
}

// Uploads serves stored image files from the upload directory.
func Uploads(uploadDir string) http.Handler {
	return http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir)))
}
