// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"github.com/pdiddy/cardex/pkg/types"
)

//go:embed card.html
var defaultCardTemplate string

// marginMM is 0.75 inch, the fixed margin on all four sides.
const marginMM = 19

// CardHTML renders each card through the template and concatenates the
// results into one HTML document body. templatePath overrides the
// embedded default when non-empty.
func CardHTML(cards []types.QuizCard, templatePath string) (string, error) {
	text := defaultCardTemplate
	if templatePath != "" {
		data, err := os.ReadFile(templatePath)
		if err != nil {
			return "", fmt.Errorf("reading template: %w", err)
		}
		text = string(data)
	}

	tpl, err := template.New("card").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing card template: %w", err)
	}

	var buf bytes.Buffer
	for _, c := range cards {
		if err := tpl.Execute(&buf, c.Trimmed()); err != nil {
			return "", fmt.Errorf("rendering card: %w", err)
		}
	}
	return buf.String(), nil
}

// WritePDF renders the cards to a paginated PDF at outPath: A4 pages,
// 0.75in margins all around, UTF-8, local resource access enabled for
// templates that reference files, and no document outline.
func WritePDF(outPath string, cards []types.QuizCard, templatePath string) error {
	html, err := CardHTML(cards, templatePath)
	if err != nil {
		return err
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return fmt.Errorf("initializing wkhtmltopdf: %w", err)
	}

	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)
	pdfg.MarginTop.Set(marginMM)
	pdfg.MarginRight.Set(marginMM)
	pdfg.MarginBottom.Set(marginMM)
	pdfg.MarginLeft.Set(marginMM)
	pdfg.NoOutline.Set(true)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(html)))
	page.Encoding.Set("utf-8")
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return fmt.Errorf("rendering PDF: %w", err)
	}
	if err := pdfg.WriteFile(outPath); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}
