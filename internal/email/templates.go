package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateReviewPending - письмо модератору о новом отзыве
const TemplateReviewPending = "review_pending"

const reviewPendingTemplate = `<p>A new review is waiting for moderation.</p>
<p><b>Parent:</b> {{.ParentName}}<br>
<b>Student:</b> {{.StudentName}}<br>
<b>Rating:</b> {{.Rating}} / 5<br>
<b>Submitted:</b> {{.CreatedAt}}</p>
<blockquote>{{.Comment}}</blockquote>
<p>Review ID: {{.ID}}</p>`

// TemplateManager реализует TemplateRenderer для управления шаблонами email
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер с встроенными шаблонами
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	if err := tm.AddTemplate(TemplateReviewPending, reviewPendingTemplate); err != nil {
		panic(err)
	}
	return tm
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate добавляет шаблон в менеджер
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}
