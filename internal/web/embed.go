// Package web содержит встроенную одностраничную оболочку загрузки отчётов.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed dist/*
var staticFiles embed.FS

// FileSystem возвращает встроенную файловую систему с корнем в dist
func FileSystem() (fs.FS, error) {
	return fs.Sub(staticFiles, "dist")
}

// Handler отдаёт статику фронтенда; неизвестные пути получают index.html
func Handler() (http.Handler, error) {
	staticFS, err := FileSystem()
	if err != nil {
		return nil, err
	}

	fileServer := http.FileServer(http.FS(staticFS))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path
		if len(name) > 0 && name[0] == '/' {
			name = name[1:]
		}

		if name != "" {
			if _, err := fs.Stat(staticFS, name); err != nil {
				// SPA: отдаём корневую страницу
				http.ServeFileFS(w, r, staticFS, "index.html")
				return
			}
		}

		fileServer.ServeHTTP(w, r)
	}), nil
}
