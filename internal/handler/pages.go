package handler

import (
	"net/http"
	"strings"

	appsync "chatrelay/internal/app/sync"
	"chatrelay/internal/pkg/resp"
)

// Page shells only. Rendering is the client's business; these exist so the
// gate's navigation targets (login page, registration page, chat view)
// resolve and the AUTH_ONLY redirect has somewhere to land.
const pageShell = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>{title}</title></head>
<body><div id="app" data-view="{view}"></div><script src="/assets/app.js"></script></body>
</html>`

func servePage(title, view string) http.HandlerFunc {
	page := strings.NewReplacer("{title}", title, "{view}", view).Replace(pageShell)

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}
}

// HandleSyncContract tells clients how often to poll each view.
func HandleSyncContract() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.WriteOK(w, r, appsync.Contract())
	}
}
