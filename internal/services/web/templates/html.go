package templates

import (
	"io"

	"github.com/a-h/templ"
)

// htmlWriter keeps the first write error so components read top to bottom.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + "=\"")
	h.text(value)
	h.raw("\"")
}

func (h *htmlWriter) element(tag, class, content string) {
	h.raw("<" + tag)
	if class != "" {
		h.attr("class", class)
	}
	h.raw(">")
	h.text(content)
	h.raw("</" + tag + ">")
}

func (h *htmlWriter) link(href, content string) {
	h.raw("<a")
	h.attr("href", href)
	h.raw(">")
	h.text(content)
	h.raw("</a>")
}

func (h *htmlWriter) hidden(name, value string) {
	if value == "" {
		return
	}
	h.raw("<input type=\"hidden\"")
	h.attr("name", name)
	h.attr("value", value)
	h.raw(">")
}

func (h *htmlWriter) input(kind, name, label, value string) {
	h.raw("<label>")
	h.text(label)
	h.raw("<input")
	h.attr("type", kind)
	h.attr("name", name)
	if value != "" {
		h.attr("value", value)
	}
	h.raw(" required></label>")
}

func (h *htmlWriter) formOpen(action string) {
	h.raw("<form method=\"post\"")
	h.attr("action", action)
	h.raw(">")
}

func (h *htmlWriter) submit(label string) {
	h.raw("<button type=\"submit\">")
	h.text(label)
	h.raw("</button>")
}
