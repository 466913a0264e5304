package tmplx

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

var (
	ErrRenderTemplate = errors.New("tmplx: render error")
	ErrParseTemplate  = errors.New("tmplx: parse error")
	ErrUnknownMessage = errors.New("tmplx: unknown message")
)

type Template struct {
	tmpl *template.Template
}

// Parse creates a new Template with the given name and text. Missing keys
// render as zero values.
func Parse(name string, text string) (*Template, error) {
	tmpl, err := template.New(name).
		Option("missingkey=zero").
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseTemplate, err)
	}

	return &Template{tmpl: tmpl}, nil
}

func (t *Template) Render(data any) (string, error) {
	buf := new(bytes.Buffer)
	if err := t.tmpl.Execute(buf, data); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRenderTemplate, err)
	}
	return buf.String(), nil
}

// Catalog is a named set of message templates. Lookups fall back through
// the keys given to Render, so callers can register a specific message and
// a generic one.
type Catalog struct {
	mu    sync.RWMutex
	items map[string]*Template
}

func NewCatalog() *Catalog {
	return &Catalog{
		items: make(map[string]*Template),
	}
}

func (c *Catalog) Add(key, text string) error {
	t, err := Parse(key, text)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = t
	return nil
}

func (c *Catalog) MustAdd(key, text string) *Catalog {
	if err := c.Add(key, text); err != nil {
		panic(err)
	}
	return c
}

// Render renders the first registered key.
func (c *Catalog) Render(data any, keys ...string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, key := range keys {
		if t, ok := c.items[key]; ok {
			return t.Render(data)
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownMessage, strings.Join(keys, ","))
}
