package httpx

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// UploadsHandler serves stored resumes from dir. Directory listings and nested paths are refused.
type UploadsHandler struct {
	Dir string
}

func (h UploadsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("file")
	if name == "" || name != path.Base(name) || strings.HasPrefix(name, ".") || strings.ContainsRune(name, '\\') {
		http.NotFound(w, r)
		return
	}

	full := filepath.Join(h.Dir, name)
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		http.NotFound(w, r)
		return
	}

	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeFile(w, r, full)
}
