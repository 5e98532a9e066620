package richtext

import (
	"html/template"
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Field - редактор форматированного текста на странице.
// Страница владеет значением, редактор только показывает и отдает его обратно в форме.
type Field struct {
	Name        string
	Label       string
	Value       string
	Placeholder string
}

// NewField создает поле с уже очищенным значением
func NewField(name, label, value string) Field {
	return Field{Name: name, Label: label, Value: Normalize(value)}
}

// HTML - значение для вставки в редактируемую область
func (f Field) HTML() template.HTML {
	return template.HTML(Normalize(f.Value))
}

// policy - разметка, которую дает редактор: абзацы, списки, ссылки, картинки, таблицы.
// Скрипты, обработчики событий, SVG и опасные схемы URL не проходят.
var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^ql-[a-z0-9-]+( ql-[a-z0-9-]+)*$`)).Globally()
	p.AllowElements("u", "s")
	return p
}

// элементы, у которых есть содержимое без текста
var media = map[atom.Atom]bool{
	atom.Img:   true,
	atom.Video: true,
	atom.Audio: true,
	atom.Hr:    true,
}

// Normalize очищает HTML из редактора по политике bluemonday.
// Пустой документ редактора ("<p><br></p>") становится "".
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	clean := strings.TrimSpace(policy.Sanitize(input))
	if clean == "" || isBlankDocument(clean) {
		return ""
	}
	return clean
}

// isBlankDocument - нет ни текста, ни медиа
func isBlankDocument(fragment string) bool {
	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), container)
	if err != nil {
		return false
	}
	for _, n := range nodes {
		if !isBlank(n) {
			return false
		}
	}
	return true
}

func isBlank(n *html.Node) bool {
	switch n.Type {
	case html.TextNode:
		return strings.TrimFunc(n.Data, unicode.IsSpace) == ""
	case html.ElementNode:
		if media[n.DataAtom] {
			return false
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !isBlank(c) {
			return false
		}
	}
	return true
}
