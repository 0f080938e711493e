package pdf

import (
	"errors"
	"fmt"
	"strings"

	"presentation-service-go/internal/domain/presentation"
)

// Определяем пользовательские ошибки
var (
	ErrUnknownTemplate      = errors.New("unknown template")
	ErrTemplateNotSupported = errors.New("template has no document builder")
	ErrValidationFailed     = errors.New("presentation data is invalid")
	ErrEmptyDocument        = errors.New("no block produced a page")
)

// Форматы документа
const (
	FormatPDF  = "pdf"
	FormatHTML = "html"
)

// Document готовый документ презентации
type Document struct {
	ID      string
	Format  string
	Content []byte
	Pages   int
}

// FileKey ключ документа в хранилище
func (d *Document) FileKey() string {
	return d.ID + "." + d.Format
}

// ValidationError блоки, не прошедшие проверку
type ValidationError struct {
	Blocks []presentation.BlockDescriptor
}

func (e *ValidationError) Error() string {
	kinds := make([]string, 0, len(e.Blocks))
	for _, b := range e.Blocks {
		kinds = append(kinds, string(b.BlockID))
	}
	if len(kinds) == 0 {
		return ErrValidationFailed.Error() + ": no blocks requested"
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(kinds, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// TemplateInfo шаблон, доступный для выбора
type TemplateInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TemplatesResponse ответ get-templates
type TemplatesResponse struct {
	DataType  presentation.DataType `json:"dataType"`
	Templates []TemplateInfo        `json:"templates"`
}

// BlocksResponse ответ get-blocks
type BlocksResponse struct {
	Blocks []presentation.BlockDescriptor `json:"blocks"`
}
