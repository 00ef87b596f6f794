package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pricetrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func sampleProducts() []domain.TrackedProduct {
	return []domain.TrackedProduct{
		{PriceTrackingRequestID: 7, ProductNumber: "P-1", ProductName: ptr("Lamp"), MaxPrice: ptr(19.5)},
		{PriceTrackingRequestID: 8, ProductNumber: "Q-2"},
		{PriceTrackingRequestID: 9, ProductNumber: "R-3", ProductName: ptr("Desk Chair"), MaxPrice: ptr(120.0), CurrentPrice: ptr(99.99)},
	}
}

func TestBannerLatestMessageOwnsExpiry(t *testing.T) {
	var b Banner

	first := b.Show("one", MessageInfo)
	second := b.Show("two", MessageError)

	assert.False(t, b.Expire(first), "stale tick must not hide the newer message")
	assert.True(t, b.IsVisible())
	assert.Equal(t, "two", b.Text())
	assert.Equal(t, MessageError, b.Kind())

	assert.True(t, b.Expire(second))
	assert.False(t, b.IsVisible())
	assert.False(t, b.Expire(second), "already hidden")
}

func TestBannerHideKeepsSequence(t *testing.T) {
	var b Banner
	seq := b.Show("hello", MessageSuccess)
	b.Hide()
	assert.False(t, b.IsVisible())
	assert.Equal(t, seq, b.Seq())
}

func TestMessageKindString(t *testing.T) {
	assert.Equal(t, "info", MessageInfo.String())
	assert.Equal(t, "success", MessageSuccess.String())
	assert.Equal(t, "error", MessageError.String())
}

func TestConfirmModalLastShowWins(t *testing.T) {
	m := NewConfirmModal()

	_, ok := m.Pending()
	assert.False(t, ok)

	m.Show(3, "Lamp")
	m.Show(5, "Chair")
	id, ok := m.Pending()
	require.True(t, ok)
	assert.Equal(t, int64(5), id)
	assert.True(t, m.IsVisible())
	assert.Contains(t, m.View(), "Chair")

	m.Hide()
	_, ok = m.Pending()
	assert.False(t, ok)
	assert.False(t, m.IsVisible())
	assert.Empty(t, m.View())
}

func TestAuthFormCredentialsAreTrimmed(t *testing.T) {
	f := NewAuthForm()
	f.SetValues(TabLogin, "  a@b.com ", " secret ")
	f.SetValues(TabRegister, "new@b.com", "pw")

	assert.Equal(t, domain.Credentials{Email: "a@b.com", Password: "secret"}, f.LoginCredentials())
	assert.Equal(t, domain.Credentials{Email: "new@b.com", Password: "pw"}, f.RegisterCredentials())

	f.Reset(TabLogin)
	assert.Equal(t, domain.Credentials{}, f.LoginCredentials())
	assert.Equal(t, "new@b.com", f.RegisterCredentials().Email)
}

func TestAuthFormBusyLabels(t *testing.T) {
	f := NewAuthForm()
	assert.Equal(t, "Login", f.ButtonLabel(TabLogin))

	f.SetBusy(TabLogin, true)
	assert.True(t, f.Busy(TabLogin))
	assert.Equal(t, "Logging in...", f.ButtonLabel(TabLogin))

	f.SetBusy(TabRegister, true)
	assert.Equal(t, "Registering...", f.ButtonLabel(TabRegister))

	f.SetBusy(TabLogin, false)
	assert.Equal(t, "Login", f.ButtonLabel(TabLogin))
}

func TestAuthFormIgnoresTypingWhileBusy(t *testing.T) {
	f := NewAuthForm()
	f.SetBusy(TabLogin, true)
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Empty(t, f.LoginCredentials().Email)

	f.SetBusy(TabLogin, false)
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, "x", f.LoginCredentials().Email)
}

func TestAuthFormTabsAndFocus(t *testing.T) {
	f := NewAuthForm()
	assert.Equal(t, TabLogin, f.Tab())
	assert.False(t, f.OnLastField())

	f.NextField()
	assert.True(t, f.OnLastField())

	f.ToggleTab()
	assert.Equal(t, TabRegister, f.Tab())
	assert.False(t, f.OnLastField(), "switching tabs focuses the email field")
	assert.Contains(t, f.View(), "Register")
}

func TestInputModalLifecycle(t *testing.T) {
	m := NewInputModal("Reset password", "", "Reset", "Resetting...",
		InputField{Label: "Token"},
		InputField{Label: "Password", Secret: true},
	)
	assert.False(t, m.IsVisible())

	m.Show()
	m.SetValue(0, "tok")
	m.SetValue(1, "newpass")
	assert.Equal(t, "tok", m.Value(0))
	assert.Equal(t, "newpass", m.Value(1))
	assert.Empty(t, m.Value(5))

	m.SetBusy(true)
	assert.Equal(t, "Resetting...", m.ButtonLabel())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")})
	assert.Equal(t, "tok", m.Value(0), "busy modal ignores input")

	m.Show()
	assert.False(t, m.Busy())
	assert.Empty(t, m.Value(0), "reopening clears fields")

	m.Hide()
	assert.Empty(t, m.View())
}

func TestProductTableRendersRowsTaggedByID(t *testing.T) {
	p := NewProductTable()
	assert.True(t, p.IsEmpty())
	assert.Contains(t, p.View(), EmptyStateText)

	p.SetProducts(sampleProducts())
	assert.Equal(t, 3, p.RowCount())
	assert.Equal(t, []int64{7, 8, 9}, p.RowIDs())

	id, ok := p.SelectedID()
	require.True(t, ok)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, "Lamp", p.SelectedName())

	view := p.View()
	assert.Contains(t, view, "$19.50")
	assert.Contains(t, view, "N/A")
	assert.Contains(t, view, "$N/A")
}

func TestProductTableRemoveByID(t *testing.T) {
	p := NewProductTable()
	original := sampleProducts()
	p.SetProducts(original)

	assert.True(t, p.RemoveByID(8))
	assert.Equal(t, []int64{7, 9}, p.RowIDs())
	assert.Len(t, original, 3)
	assert.Equal(t, int64(8), original[1].PriceTrackingRequestID, "caller slice untouched")

	assert.False(t, p.RemoveByID(42))

	p.RemoveByID(7)
	p.RemoveByID(9)
	assert.True(t, p.IsEmpty())
	assert.Contains(t, p.View(), EmptyStateText)
}

func TestProductTableFilterNarrowsRows(t *testing.T) {
	p := NewProductTable()
	p.SetProducts(sampleProducts())

	p.SetFilter("chair")
	assert.Equal(t, []int64{9}, p.RowIDs())

	p.SetFilter("q-2")
	assert.Equal(t, []int64{8}, p.RowIDs())

	p.SetFilter("zzzz")
	assert.Equal(t, 0, p.RowCount())
	_, ok := p.SelectedID()
	assert.False(t, ok)

	p.CancelFilter()
	assert.Equal(t, 3, p.RowCount())
	assert.Empty(t, p.FilterQuery())
}

func TestProductTableFilterTyping(t *testing.T) {
	p := NewProductTable()
	p.SetProducts(sampleProducts())

	p.StartFilter()
	assert.True(t, p.IsFiltering())
	for _, r := range "lamp" {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	assert.Equal(t, "lamp", p.FilterQuery())
	assert.Equal(t, []int64{7}, p.RowIDs())

	p.AcceptFilter()
	assert.False(t, p.IsFiltering())
	assert.Equal(t, []int64{7}, p.RowIDs(), "accepted filter stays applied")
}
