package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
)

// Renderer turns a template name and context into an email body.
type Renderer interface {
	Render(name string, data Object) (string, error)
}

// SubjectRenderer is implemented by renderers whose templates can carry a subject.
type SubjectRenderer interface {
	// Subject returns the rendered subject of name and whether it defines one.
	Subject(name string, data Object) (string, bool, error)
}

// TextRenderer is implemented by renderers that can produce a plain-text
// rendition of a template next to its HTML body.
type TextRenderer interface {
	// RenderText returns the plain-text rendition of name and whether the
	// template has one.
	RenderText(name string, data Object) (string, bool, error)
}

// RendererConfig configures the template renderer.
type RendererConfig struct {
	LayoutDir     string // Default: "layouts"
	DefaultLayout string // Layout for markdown templates; empty renders the bare fragment
}

// TemplateRenderer renders templates loaded once from a file system.
// Markdown templates (.md) carry optional YAML front matter, are executed as
// Go text templates, converted to HTML and wrapped in a layout. Every other
// file is an html/template rendered as is. Referencing a missing context key
// is an error.
//
// All files are parsed by NewRenderer, so a TemplateRenderer is read-only and
// safe for concurrent use.
type TemplateRenderer struct {
	md            goldmark.Markdown
	templates     map[string]*compiledTemplate
	layouts       map[string]*template.Template
	defaultLayout string
}

type compiledTemplate struct {
	metadata map[string]any
	subject  *texttemplate.Template // nil when the front matter has no Subject
	layout   string                 // Front matter override of the default layout
	markdown *texttemplate.Template // set for .md files
	html     *template.Template     // set for everything else
}

// NewRenderer parses every template and layout in fsys.
// A missing root yields a renderer without templates.
func NewRenderer(fsys fs.FS, cfg RendererConfig) (*TemplateRenderer, error) {
	if cfg.LayoutDir == "" {
		cfg.LayoutDir = "layouts"
	}

	r := &TemplateRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(NewButtonExtension()),
		),
		templates:     make(map[string]*compiledTemplate),
		layouts:       make(map[string]*template.Template),
		defaultLayout: cfg.DefaultLayout,
	}

	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			if name == "." && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			if name != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}

		if layout, ok := strings.CutPrefix(name, cfg.LayoutDir+"/"); ok {
			return r.addLayout(layout, content)
		}
		return r.addTemplate(name, content)
	})
	if err != nil {
		return nil, fmt.Errorf("mailer: load templates: %w", err)
	}

	if r.defaultLayout != "" {
		if _, ok := r.layouts[r.defaultLayout]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrLayoutNotFound, r.defaultLayout)
		}
	}

	return r, nil
}

func (r *TemplateRenderer) addLayout(name string, content []byte) error {
	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return fmt.Errorf("%w: failed to parse layout %s: %v", ErrRenderFailed, name, err)
	}
	r.layouts[name] = tmpl
	return nil
}

func (r *TemplateRenderer) addTemplate(name string, content []byte) error {
	parsed, err := ParseTemplate(content)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	ct := &compiledTemplate{
		metadata: parsed.Metadata,
		layout:   parsed.stringMeta("Layout"),
	}

	if subject := parsed.stringMeta("Subject"); subject != "" {
		ct.subject, err = texttemplate.New(name + ":subject").Option("missingkey=error").Parse(subject)
		if err != nil {
			return fmt.Errorf("%w: %s: failed to parse subject: %v", ErrRenderFailed, name, err)
		}
	}

	if path.Ext(name) == ".md" {
		ct.markdown, err = texttemplate.New(name).Option("missingkey=error").Parse(parsed.Body)
	} else {
		ct.html, err = template.New(name).Option("missingkey=error").Parse(parsed.Body)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: failed to parse template body: %v", ErrRenderFailed, name, err)
	}

	r.templates[name] = ct
	return nil
}

// Templates returns the names of all loaded templates in sorted order.
func (r *TemplateRenderer) Templates() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render executes the named template with data and returns the HTML body.
func (r *TemplateRenderer) Render(name string, data Object) (string, error) {
	ct, ok := r.templates[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	vars := data.Map()

	if ct.html != nil {
		var out bytes.Buffer
		if err := ct.html.Execute(&out, vars); err != nil {
			return "", fmt.Errorf("%w: failed to execute template: %v", ErrRenderFailed, err)
		}
		return out.String(), nil
	}

	processed, err := ct.executeMarkdown(vars)
	if err != nil {
		return "", err
	}

	var content bytes.Buffer
	if err := r.md.Convert(processed, &content); err != nil {
		return "", fmt.Errorf("%w: failed to convert markdown: %v", ErrRenderFailed, err)
	}

	layoutName := ct.layout
	if layoutName == "" {
		layoutName = r.defaultLayout
	}
	if layoutName == "" {
		return content.String(), nil
	}

	layout, ok := r.layouts[layoutName]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrLayoutNotFound, layoutName)
	}

	var out bytes.Buffer
	err = layout.Execute(&out, map[string]any{
		"Content":  template.HTML(content.String()),
		"Metadata": ct.metadata,
		"Data":     vars,
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute layout: %v", ErrRenderFailed, err)
	}
	return out.String(), nil
}

// RenderText implements TextRenderer. The plain text of a markdown template
// is the executed markdown before HTML conversion; HTML templates have none.
func (r *TemplateRenderer) RenderText(name string, data Object) (string, bool, error) {
	ct, ok := r.templates[name]
	if !ok {
		return "", false, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	if ct.markdown == nil {
		return "", false, nil
	}

	processed, err := ct.executeMarkdown(data.Map())
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(string(processed)), true, nil
}

func (ct *compiledTemplate) executeMarkdown(vars map[string]any) ([]byte, error) {
	var processed bytes.Buffer
	if err := ct.markdown.Execute(&processed, vars); err != nil {
		return nil, fmt.Errorf("%w: failed to execute template: %v", ErrRenderFailed, err)
	}
	return processed.Bytes(), nil
}

// Subject implements SubjectRenderer using the Subject front matter field,
// executed as a text template with data.
func (r *TemplateRenderer) Subject(name string, data Object) (string, bool, error) {
	ct, ok := r.templates[name]
	if !ok {
		return "", false, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	if ct.subject == nil {
		return "", false, nil
	}

	var out bytes.Buffer
	if err := ct.subject.Execute(&out, data.Map()); err != nil {
		return "", false, fmt.Errorf("%w: failed to execute subject: %v", ErrRenderFailed, err)
	}
	return out.String(), true, nil
}
