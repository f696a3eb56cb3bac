package server

import (
	"net/http"

	"github.com/vango-dev/navheader/pkg/nav"
	"github.com/vango-dev/navheader/pkg/render"
	"github.com/vango-dev/navheader/pkg/vdom"
)

// HandlePage renders the page for the request path.
func (s *Server) HandlePage(w http.ResponseWriter, r *http.Request) {
	history := nav.NewHistory(startPath(r.URL.EscapedPath()))
	navigator, _ := s.navigator(history)
	header, err := s.factory(r.Context(), navigator)
	if err != nil {
		s.logger.Error("header factory failed", "path", r.URL.Path, "error", err)
		http.Error(w, "failed to build header", http.StatusInternalServerError)
		return
	}

	page := s.document(header.Render(), history.Current())
	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(page)
	if err != nil {
		s.logger.Error("render failed", "path", r.URL.Path, "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte("<!DOCTYPE html>" + html))
}

// startPath returns the cleaned location a client asked for, or "/" when it
// is not a usable same-origin path.
func startPath(location string) string {
	if !nav.IsRelative(location) {
		return "/"
	}
	cleaned, err := nav.Clean(location)
	if err != nil {
		return "/"
	}
	return cleaned
}

// document wraps a rendered header in the page shell.
func (s *Server) document(header *vdom.VNode, path string) *vdom.VNode {
	return vdom.Html(vdom.Lang("en"),
		vdom.Head(
			vdom.Meta(vdom.Charset("utf-8")),
			vdom.Meta(vdom.Name("viewport"), vdom.Content("width=device-width, initial-scale=1")),
			vdom.Title(vdom.Text(s.config.Title)),
		),
		vdom.Body(vdom.Data("live", s.config.LivePath),
			header,
			vdom.Main(vdom.ID("content"), vdom.Class("container mx-auto p-4"),
				vdom.P(vdom.Text("Current path: "), vdom.Span(vdom.ID("path"), vdom.Text(path))),
			),
			vdom.Script(vdom.Raw(clientScript)),
		),
	)
}

// clientScript forwards clicks inside the header to the live endpoint and
// applies the updates it receives.
const clientScript = `(function () {
  var live = document.body.dataset.live;
  var scheme = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(scheme + location.host + live + "?path=" + encodeURIComponent(location.pathname));
  var header = function () { return document.querySelector('[data-component="navheader"]'); };

  ws.onmessage = function (msg) {
    var u = JSON.parse(msg.data);
    if (u.error) {
      console.warn("navheader:", u.error.code, u.error.message);
    }
    var h = header();
    if (u.html && h) {
      h.outerHTML = u.html;
    }
    if (u.path && u.path !== location.pathname) {
      if (u.replace) {
        history.replaceState(null, "", u.path);
      } else {
        history.pushState(null, "", u.path);
      }
      var p = document.getElementById("path");
      if (p) {
        p.textContent = u.path;
      }
    }
  };

  document.addEventListener("click", function (e) {
    var h = header();
    var el = e.target.closest("[data-hid]");
    if (!h || !el || !h.contains(el) || ws.readyState !== WebSocket.OPEN) {
      return;
    }
    e.preventDefault();
    ws.send(JSON.stringify({ hid: el.dataset.hid, event: "click" }));
  });
})();`
