// Package csp builds Content-Security-Policy header values.
//
// Policies are assembled with CSPBuilder and rendered in a fixed directive
// order, so the same configuration always yields the same header string.
//
//	policy := csp.NewCSPBuilder().
//	    DefaultSrc("'self'").
//	    FrameAncestors("'none'")
//	header := policy.Build() // "default-src 'self'; frame-ancestors 'none'"
package csp

import (
	"strings"
)

const (
	// HeaderEnforce is the header that enforces a policy.
	HeaderEnforce = "Content-Security-Policy"
	// HeaderReportOnly is the header that only reports violations.
	HeaderReportOnly = "Content-Security-Policy-Report-Only"
)

// directiveOrder is the order directives appear in the rendered header.
var directiveOrder = []string{
	"default-src",
	"script-src",
	"style-src",
	"img-src",
	"font-src",
	"connect-src",
	"frame-ancestors",
	"form-action",
	"base-uri",
	"object-src",
	"report-uri",
}

// CSPBuilder accumulates directives. Setting a directive twice replaces it.
type CSPBuilder struct {
	directives map[string][]string
	reportOnly bool
}

// NewCSPBuilder returns an empty builder.
func NewCSPBuilder() *CSPBuilder {
	return &CSPBuilder{directives: make(map[string][]string)}
}

func (b *CSPBuilder) set(name string, sources []string) *CSPBuilder {
	b.directives[name] = append([]string(nil), sources...)
	return b
}

// DefaultSrc sets the fallback for every fetch directive.
func (b *CSPBuilder) DefaultSrc(sources ...string) *CSPBuilder { return b.set("default-src", sources) }

// ScriptSrc sets the allowed script sources.
func (b *CSPBuilder) ScriptSrc(sources ...string) *CSPBuilder { return b.set("script-src", sources) }

// StyleSrc sets the allowed stylesheet sources.
func (b *CSPBuilder) StyleSrc(sources ...string) *CSPBuilder { return b.set("style-src", sources) }

// ImgSrc sets the allowed image sources.
func (b *CSPBuilder) ImgSrc(sources ...string) *CSPBuilder { return b.set("img-src", sources) }

// FontSrc sets the allowed font sources.
func (b *CSPBuilder) FontSrc(sources ...string) *CSPBuilder { return b.set("font-src", sources) }

// ConnectSrc sets the allowed fetch/XHR targets.
func (b *CSPBuilder) ConnectSrc(sources ...string) *CSPBuilder { return b.set("connect-src", sources) }

// FrameAncestors sets which origins may embed the page.
func (b *CSPBuilder) FrameAncestors(sources ...string) *CSPBuilder {
	return b.set("frame-ancestors", sources)
}

// FormAction sets the allowed form submission targets.
func (b *CSPBuilder) FormAction(sources ...string) *CSPBuilder { return b.set("form-action", sources) }

// BaseURI restricts the document base element.
func (b *CSPBuilder) BaseURI(sources ...string) *CSPBuilder { return b.set("base-uri", sources) }

// ObjectSrc sets the allowed plugin sources.
func (b *CSPBuilder) ObjectSrc(sources ...string) *CSPBuilder { return b.set("object-src", sources) }

// ReportURI sets where browsers send violation reports.
func (b *CSPBuilder) ReportURI(uri string) *CSPBuilder { return b.set("report-uri", []string{uri}) }

// ReportOnly toggles report-only mode.
func (b *CSPBuilder) ReportOnly(enabled bool) *CSPBuilder {
	b.reportOnly = enabled
	return b
}

// Build renders the header value. Directives without sources are omitted.
func (b *CSPBuilder) Build() string {
	parts := make([]string, 0, len(b.directives))
	for _, name := range directiveOrder {
		if sources := b.directives[name]; len(sources) > 0 {
			parts = append(parts, name+" "+strings.Join(sources, " "))
		}
	}
	return strings.Join(parts, "; ")
}

// HeaderName returns the header the policy should be sent in.
func (b *CSPBuilder) HeaderName() string {
	if b.reportOnly {
		return HeaderReportOnly
	}
	return HeaderEnforce
}

// ShellPolicy is the policy for the HTML page and its static assets.
// Scripts and styles load only from same-origin files; no inline code runs.
func ShellPolicy() *CSPBuilder {
	return NewCSPBuilder().
		DefaultSrc("'self'").
		ScriptSrc("'self'").
		StyleSrc("'self'").
		ImgSrc("'self'").
		FrameAncestors("'none'").
		FormAction("'self'").
		BaseURI("'self'").
		ObjectSrc("'none'")
}

// StrictPolicy is the policy for machine endpoints such as /health and /metrics,
// which never render active content.
func StrictPolicy() *CSPBuilder {
	return NewCSPBuilder().
		DefaultSrc("'none'").
		FrameAncestors("'none'").
		BaseURI("'none'").
		FormAction("'none'")
}
