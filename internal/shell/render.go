package shell

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nguyentranbao-ct/product-console/internal/form"
	"github.com/nguyentranbao-ct/product-console/internal/models"
	"github.com/nguyentranbao-ct/product-console/internal/view"
	"github.com/nguyentranbao-ct/product-console/pkg/util"
)

type styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Current lipgloss.Style
	Border  lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Current: lipgloss.NewStyle().Bold(true).Reverse(true),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1),
	}
}

func (s styles) alert(a *view.Alert) string {
	if a == nil {
		return ""
	}
	return s.Border.Render(s.Error.Render(a.Title) + "\n" + a.Message)
}

func (s styles) fieldErrors(errs form.FieldErrors) string {
	if len(errs) == 0 {
		return ""
	}
	return s.Error.Render(errs.Error())
}

func formatQuantity(q *int) string {
	if q == nil {
		return "-"
	}
	return strconv.Itoa(*q)
}

func productRow(p models.Product) []string {
	return []string{strconv.Itoa(p.ID), p.Name, strconv.FormatFloat(p.Price, 'f', -1, 64), formatQuantity(p.Quantity)}
}

func (s styles) products(title string, section view.Section, products []models.Product) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(title))
	b.WriteString("\n")
	if section.Err != "" {
		b.WriteString(s.Error.Render(section.Err))
		return b.String()
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Name", "Price", "Quantity")
	t.Rows(util.ConvertList(products, productRow)...)
	if len(products) == 0 {
		t.Row("", "No products", "", "")
	}
	b.WriteString(t.String())
	return b.String()
}

func (s styles) pages(p *view.MainPage) string {
	parts := make([]string, 0, view.PageCount)
	for _, n := range p.Pages() {
		label := strconv.Itoa(n)
		if n == p.Page {
			label = s.Current.Render(" " + label + " ")
		}
		parts = append(parts, label)
	}
	return s.Muted.Render("Page: ") + strings.Join(parts, " ")
}

func (s styles) main(p *view.MainPage) string {
	var b strings.Builder
	switch {
	case p.User != nil:
		b.WriteString(s.Title.Render(p.User.Name))
		b.WriteString("\n")
		b.WriteString(s.Muted.Render(fmt.Sprintf("%s · %s", p.User.Email, p.User.Gender)))
	case p.ProfileState.Err != "":
		b.WriteString(s.Error.Render(p.ProfileState.Err))
	}
	b.WriteString("\n\n")
	b.WriteString(s.products("All Products", p.ProductsState, p.Products))
	b.WriteString("\n\n")
	b.WriteString(s.products("My Products", p.UserProductsState, p.UserProducts))
	b.WriteString("\n\n")
	b.WriteString(s.pages(p))
	b.WriteString("\n")
	return b.String()
}
