package view

import (
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/render"
)

const (
	layoutFile  = "layout.html"
	partialsDir = "partials"
	pagesDir    = "pages"
	layoutEntry = "layout"
	templateExt = ".html"
)

// TemplateManager хранит шаблоны страниц и отдает их gin как render.HTMLRender.
// Страницы из pages/ собираются вместе с layout.html и partials/,
// остальные файлы (вход, ошибка) рендерятся без layout.
type TemplateManager struct {
	templates map[string]*template.Template
	entries   map[string]string
	mutex     sync.RWMutex
}

// NewTemplateManager создает новый менеджер шаблонов
func NewTemplateManager() *TemplateManager {
	return &TemplateManager{
		templates: make(map[string]*template.Template),
		entries:   make(map[string]string),
	}
}

// Funcs - функции, доступные во всех шаблонах
func Funcs() template.FuncMap {
	return template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}
}

// LoadTemplates загружает шаблоны из fsys (обычно embed.FS из пакета web)
func (tm *TemplateManager) LoadTemplates(fsys fs.FS) error {
	base := template.New("base").Funcs(Funcs())

	partials, err := fs.Glob(fsys, path.Join(partialsDir, "*"+templateExt))
	if err != nil {
		return fmt.Errorf("failed to list partials: %w", err)
	}
	for _, p := range partials {
		if err := parseInto(base, fsys, p); err != nil {
			return err
		}
	}

	// отдельные страницы: только partials, без layout
	standalone, err := fs.Glob(fsys, "*"+templateExt)
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}
	for _, p := range standalone {
		if path.Base(p) == layoutFile {
			continue
		}
		name := templateName(p)
		tpl, err := base.Clone()
		if err != nil {
			return fmt.Errorf("failed to clone base for %s: %w", name, err)
		}
		if err := parseInto(tpl, fsys, p); err != nil {
			return err
		}
		tm.add(name, name, tpl)
	}

	withLayout, err := base.Clone()
	if err != nil {
		return fmt.Errorf("failed to clone base: %w", err)
	}
	if err := parseInto(withLayout, fsys, layoutFile); err != nil {
		return err
	}

	pages, err := fs.Glob(fsys, path.Join(pagesDir, "*"+templateExt))
	if err != nil {
		return fmt.Errorf("failed to list pages: %w", err)
	}
	for _, p := range pages {
		name := templateName(p)
		tpl, err := withLayout.Clone()
		if err != nil {
			return fmt.Errorf("failed to clone layout for %s: %w", name, err)
		}
		if err := parseInto(tpl, fsys, p); err != nil {
			return err
		}
		tm.add(name, layoutEntry, tpl)
	}

	return nil
}

func parseInto(tpl *template.Template, fsys fs.FS, file string) error {
	content, err := fs.ReadFile(fsys, file)
	if err != nil {
		return fmt.Errorf("failed to read template file %s: %w", file, err)
	}
	if _, err := tpl.New(templateName(file)).Parse(string(content)); err != nil {
		return fmt.Errorf("failed to parse template %s: %w", file, err)
	}
	return nil
}

func templateName(file string) string {
	return strings.TrimSuffix(path.Base(file), templateExt)
}

func (tm *TemplateManager) add(name, entry string, tpl *template.Template) {
	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.entries[name] = entry
	tm.mutex.Unlock()
}

// Instance реализует render.HTMLRender
func (tm *TemplateManager) Instance(name string, data any) render.Render {
	tm.mutex.RLock()
	tpl, ok := tm.templates[name]
	entry := tm.entries[name]
	tm.mutex.RUnlock()

	if !ok {
		// неизвестная страница: вместо паники отдаем строку с именем
		tpl = template.Must(template.New(name).Parse(`template "` + template.HTMLEscapeString(name) + `" not found`))
		entry = name
	}
	return render.HTML{Template: tpl, Name: entry, Data: data}
}

// GetTemplate возвращает шаблон по имени (для тестирования)
func (tm *TemplateManager) GetTemplate(name string) *template.Template {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()
	return tm.templates[name]
}

// TemplateNames возвращает список имен загруженных шаблонов
func (tm *TemplateManager) TemplateNames() []string {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()

	names := make([]string, 0, len(tm.templates))
	for name := range tm.templates {
		names = append(names, name)
	}

	return names
}
