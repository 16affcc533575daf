package publisher

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shouni/go-slide-kit/pkg/backend"
	"github.com/shouni/go-slide-kit/pkg/backend/markdown"
	"github.com/shouni/go-slide-kit/pkg/backend/pdf"
	"github.com/shouni/go-slide-kit/pkg/backend/pptx"
	"github.com/shouni/go-slide-kit/pkg/theme"
)

const defaultExtension = ".pptx"

// ResolveOutputPath は拡張子の無い出力パスに .pptx を補います。
func ResolveOutputPath(path string) string {
	if filepath.Ext(path) == "" {
		return path + defaultExtension
	}
	return path
}

// SupportedExtensions は NewDocument が受け付ける拡張子です。
func SupportedExtensions() []string {
	return []string{".pptx", ".pdf", ".md"}
}

// NewDocument は出力パスの拡張子からバックエンドを選びます。
func NewDocument(path string, t *theme.Theme) (backend.Document, error) {
	switch ext := strings.ToLower(filepath.Ext(ResolveOutputPath(path))); ext {
	case ".pptx":
		return pptx.New(t), nil
	case ".pdf":
		return pdf.New(t), nil
	case ".md", ".markdown":
		return markdown.New(), nil
	default:
		return nil, fmt.Errorf("未対応の出力形式です: %s (対応形式: %s)", ext, strings.Join(SupportedExtensions(), ", "))
	}
}
