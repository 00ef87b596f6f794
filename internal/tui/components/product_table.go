package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/pricetrack/internal/domain"
	"github.com/mmcdole/pricetrack/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// EmptyStateText is shown instead of the table when nothing is tracked
const EmptyStateText = "You are not tracking any products yet."

// ProductTable lists tracked products, one row per request. Each visible row
// is tagged with its request id so deletes can target it.
type ProductTable struct {
	table    table.Model
	products []domain.TrackedProduct
	rowIDs   []int64 // parallel to the visible rows

	filterInput  textinput.Model
	filterActive bool
	filterQuery  string

	width  int
	height int
}

// NewProductTable creates an empty product table
func NewProductTable() ProductTable {
	t := table.New(
		table.WithColumns(productColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(styles.TableStyles())

	fi := textinput.New()
	fi.Cursor.SetMode(cursor.CursorStatic)
	fi.Prompt = "/"
	fi.PromptStyle = styles.FilterPromptStyle
	fi.Placeholder = "filter"
	fi.CharLimit = 64

	return ProductTable{
		table:       t,
		filterInput: fi,
		width:       80,
		height:      12,
	}
}

func productColumns(width int) []table.Column {
	const (
		numberW = 16
		priceW  = 12
	)
	nameW := width - numberW - 2*priceW - 8
	if nameW < 12 {
		nameW = 12
	}
	return []table.Column{
		{Title: "Product", Width: nameW},
		{Title: "Number", Width: numberW},
		{Title: "Max Price", Width: priceW},
		{Title: "Current", Width: priceW},
	}
}

// SetSize sets the available area
func (p *ProductTable) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.table.SetColumns(productColumns(width))
	h := height - 2
	if p.filterActive || p.filterQuery != "" {
		h--
	}
	if h < 3 {
		h = 3
	}
	p.table.SetHeight(h)
	p.table.SetWidth(width)
}

// SetProducts replaces the rows. The filter query, if any, is re-applied.
func (p *ProductTable) SetProducts(products []domain.TrackedProduct) {
	p.products = products
	p.rebuild()
}

// Clear empties the table
func (p *ProductTable) Clear() {
	p.products = nil
	p.clearFilter()
	p.rebuild()
}

// RemoveByID removes the row tagged with id. Returns false if no row matched.
func (p *ProductTable) RemoveByID(id int64) bool {
	for i, prod := range p.products {
		if prod.PriceTrackingRequestID == id {
			p.products = append(p.products[:i:i], p.products[i+1:]...)
			p.rebuild()
			return true
		}
	}
	return false
}

// Products returns every loaded product, ignoring the filter
// RowCount returns the number of visible rows
func (p ProductTable) RowCount() int {
	return len(p.rowIDs)
}

// RowIDs returns the request ids of the visible rows in order
func (p ProductTable) RowIDs() []int64 {
	return p.rowIDs
}

// IsEmpty reports whether no products are loaded; the empty state is shown
func (p ProductTable) IsEmpty() bool {
	return len(p.products) == 0
}

// SelectedID returns the request id of the highlighted row
func (p ProductTable) SelectedID() (int64, bool) {
	i := p.table.Cursor()
	if i < 0 || i >= len(p.rowIDs) {
		return 0, false
	}
	return p.rowIDs[i], true
}

// SelectedProduct returns the product behind the highlighted row
func (p ProductTable) SelectedProduct() (domain.TrackedProduct, bool) {
	id, ok := p.SelectedID()
	if !ok {
		return domain.TrackedProduct{}, false
	}
	for _, prod := range p.products {
		if prod.PriceTrackingRequestID == id {
			return prod, true
		}
	}
	return domain.TrackedProduct{}, false
}

// SelectedName returns the display name of the highlighted row
func (p ProductTable) SelectedName() string {
	prod, ok := p.SelectedProduct()
	if !ok {
		return ""
	}
	return prod.DisplayName()
}

// IsFiltering reports whether the filter input has focus
func (p ProductTable) IsFiltering() bool {
	return p.filterActive
}

// FilterQuery returns the applied filter
func (p ProductTable) FilterQuery() string {
	return p.filterQuery
}

// StartFilter focuses the filter input
func (p *ProductTable) StartFilter() tea.Cmd {
	p.filterActive = true
	p.table.Blur()
	p.SetSize(p.width, p.height)
	return p.filterInput.Focus()
}

// AcceptFilter keeps the current query and returns focus to the table
func (p *ProductTable) AcceptFilter() {
	p.filterActive = false
	p.filterInput.Blur()
	p.table.Focus()
	p.SetSize(p.width, p.height)
}

// CancelFilter drops the query and shows every row again
func (p *ProductTable) CancelFilter() {
	p.clearFilter()
	p.rebuild()
}

// SetFilter applies query directly
func (p *ProductTable) SetFilter(query string) {
	p.filterInput.SetValue(query)
	p.filterQuery = query
	p.rebuild()
}

func (p *ProductTable) clearFilter() {
	p.filterActive = false
	p.filterQuery = ""
	p.filterInput.SetValue("")
	p.filterInput.Blur()
	p.table.Focus()
	p.SetSize(p.width, p.height)
}

// visible returns the products passing the filter, best match first
func (p ProductTable) visible() []domain.TrackedProduct {
	if p.filterQuery == "" {
		return p.products
	}

	// Match against "name number" so either field narrows the list
	targets := make([]string, len(p.products))
	for i, prod := range p.products {
		targets[i] = strings.ToLower(prod.DisplayName() + " " + prod.ProductNumber)
	}

	matches := fuzzy.Find(strings.ToLower(p.filterQuery), targets)
	out := make([]domain.TrackedProduct, len(matches))
	for i, match := range matches {
		out[i] = p.products[match.Index]
	}
	return out
}

func (p *ProductTable) rebuild() {
	visible := p.visible()
	rows := make([]table.Row, len(visible))
	p.rowIDs = make([]int64, len(visible))
	for i, prod := range visible {
		rows[i] = table.Row{
			prod.DisplayName(),
			prod.ProductNumber,
			prod.DisplayMaxPrice(),
			prod.DisplayCurrentPrice(),
		}
		p.rowIDs[i] = prod.PriceTrackingRequestID
	}
	p.table.SetRows(rows)
	if c := p.table.Cursor(); c >= len(rows) {
		p.table.SetCursor(max(len(rows)-1, 0))
	}
}

// Update handles navigation and filter input
func (p ProductTable) Update(msg tea.Msg) (ProductTable, tea.Cmd) {
	var cmd tea.Cmd
	if p.filterActive {
		p.filterInput, cmd = p.filterInput.Update(msg)
		if q := p.filterInput.Value(); q != p.filterQuery {
			p.filterQuery = q
			p.rebuild()
			p.table.GotoTop()
		}
		return p, cmd
	}
	p.table, cmd = p.table.Update(msg)
	return p, cmd
}

// View renders the table, or the empty state when nothing is loaded
func (p ProductTable) View() string {
	if p.IsEmpty() {
		return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center,
			styles.SubtitleStyle.Render(EmptyStateText))
	}

	var parts []string
	if p.filterActive || p.filterQuery != "" {
		parts = append(parts, p.filterInput.View()+"  "+
			styles.DimStyle.Render(strconv.Itoa(len(p.rowIDs))+"/"+strconv.Itoa(len(p.products))))
	}
	if len(p.rowIDs) == 0 {
		parts = append(parts, styles.DimStyle.Render("No products match the filter."))
	} else {
		parts = append(parts, p.table.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
