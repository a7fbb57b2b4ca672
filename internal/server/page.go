package server

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net/http"
)

//go:embed web/index.html web/static/*
var webFS embed.FS

var pageTmpl = template.Must(template.ParseFS(webFS, "web/index.html"))

type pageData struct {
	Title string
}

func renderPage(w io.Writer, title string) error {
	return pageTmpl.Execute(w, pageData{Title: title})
}

// staticFS serves the page's script and stylesheet.
func staticFS() http.FileSystem {
	sub, err := fs.Sub(webFS, "web/static")
	if err != nil {
		return nil
	}
	return http.FS(sub)
}
