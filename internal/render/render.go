package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strconv"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/SAP-F-2025/gradable-block-service/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

const (
	studentTemplate  = "student_view.html"
	settingsTemplate = "settings_view.html"

	// StudioInitFn is the JS constructor the studio page calls for the settings fragment
	StudioInitFn = "BlockSettingsView"
)

var studentJS = []string{
	"block-utils.js",
	"block.js",
	"modals/init-modals.js",
	"modals/state-modal.js",
	"modals/debug-info-modal.js",
}

var studentCSS = []string{"base.css", "modal.css"}

var studioJS = []string{"block-utils.js", "block-studio.js"}

var studioCSS = []string{"settings.css"}

// mdRenderer keeps goldmark's default of dropping raw HTML from descriptions
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// Fragment is a rendered view: HTML plus the ordered assets the page must load
type Fragment struct {
	Content  string                 `json:"content"`
	JS       []string               `json:"js"`
	CSS      []string               `json:"css"`
	JSInitFn string                 `json:"js_init_fn,omitempty"`
	Context  map[string]interface{} `json:"context"`
}

// Renderer composes fragments from the embedded templates
type Renderer struct {
	templates *template.Template
	assetBase string
}

// NewRenderer parses the embedded templates. assetBase is the URL prefix the
// asset file system is served under.
func NewRenderer(assetBase string) (*Renderer, error) {
	tpl, err := template.New("block").Funcs(template.FuncMap{
		"renderMarkdown": renderMarkdown,
		"formValue":      formValue,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{
		templates: tpl,
		assetBase: assetBase,
	}, nil
}

// Assets exposes the embedded js and css directories
func Assets() fs.FS {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

// StudentView renders the learner-facing fragment. The caller context is
// deep-merged with the render context under "render_context".
func (r *Renderer) StudentView(callerCtx map[string]interface{}, rc *models.RenderContext) (*Fragment, error) {
	return r.fragment(studentTemplate, studentJS, studentCSS, "", callerCtx, rc)
}

// StudioView renders the authoring fragment
func (r *Renderer) StudioView(callerCtx map[string]interface{}, sc *models.SettingsContext) (*Fragment, error) {
	return r.fragment(settingsTemplate, studioJS, studioCSS, StudioInitFn, callerCtx, sc)
}

func (r *Renderer) fragment(name string, js, css []string, initFn string, callerCtx map[string]interface{}, renderCtx interface{}) (*Fragment, error) {
	rcMap, err := toMap(renderCtx)
	if err != nil {
		return nil, err
	}

	ctx := callerCtx
	if ctx == nil {
		ctx = map[string]interface{}{}
	}
	deepUpdate(ctx, map[string]interface{}{"render_context": rcMap})

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, ctx); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}

	return &Fragment{
		Content:  buf.String(),
		JS:       r.urls("js", js),
		CSS:      r.urls("css", css),
		JSInitFn: initFn,
		Context:  ctx,
	}, nil
}

func (r *Renderer) urls(kind string, names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = path.Join(r.assetBase, kind, name)
	}
	return out
}

func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// formValue prints a settings value for a form field. Only a missing value is
// blank; zero stays "0".
func formValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// toMap converts a context struct to the generic shape the templates and the
// JSON response share
func toMap(v interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode render context: %w", err)
	}
	out := map[string]interface{}{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode render context: %w", err)
	}
	return out, nil
}

// deepUpdate merges src into dst in place. Nested maps are merged key by key,
// anything else in src replaces the value in dst.
func deepUpdate(dst, src map[string]interface{}) {
	for key, value := range src {
		srcMap, srcIsMap := value.(map[string]interface{})
		dstMap, dstIsMap := dst[key].(map[string]interface{})
		if srcIsMap && dstIsMap {
			deepUpdate(dstMap, srcMap)
			continue
		}
		dst[key] = value
	}
}
