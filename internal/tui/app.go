package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pricetrack/internal/domain"
	"github.com/mmcdole/pricetrack/internal/service"
	"github.com/mmcdole/pricetrack/internal/tui/components"
)

// View is the top-level screen. It is derived from session presence and
// only updateUIVisibility assigns it.
type View int

const (
	ViewAuth View = iota
	ViewApp
)

// User-facing messages
const (
	defaultWelcome = "Welcome, shopper!"

	msgLoggedOut        = "You have been logged out."
	msgLoginSuccess     = "Login successful!"
	msgRegisterSuccess  = "Registration successful! You can now log in."
	msgConnectFailed    = "Failed to connect to the server. Please try again."
	msgLoadingProducts  = "Loading your tracked products..."
	msgNoProducts       = "No products are being tracked yet."
	msgInvalidData      = "Error: Received invalid data from server."
	msgResetLinkSent    = "If an account with that email exists, a password reset link has been sent."
	msgPasswordReset    = "Password has been reset. You can now log in."
	msgNoDeleteTarget   = "No request selected for deletion."
	msgNotLoggedIn      = "You are not logged in."
	msgDeleted          = "Price tracking request deleted successfully!"
	msgSessionExpired   = "Session expired or unauthorized. Please log in again."
	msgDeleteConnFailed = "Failed to connect to the server to delete request. Please check your backend."
	msgNoImage          = "No image available for this product."
	fallbackBody        = "Something went wrong."
)

// URLOpener opens a link outside the terminal
type URLOpener interface {
	Open(url string) error
}

// Options tunes the model
type Options struct {
	ServerURL      string
	MessageTimeout time.Duration // banner auto-hide
	RequestTimeout time.Duration // per backend call
	Opener         URLOpener     // nil disables opening images
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Services
	session  *service.SessionService
	tracking *service.TrackingService
	account  *service.AccountService
	logger   *slog.Logger

	opener         URLOpener
	keys           KeyMap
	serverURL      string
	messageTimeout time.Duration
	requestTimeout time.Duration

	view    View
	welcome string

	// UI Components
	authForm components.AuthForm
	products components.ProductTable
	confirm  components.ConfirmModal
	forgot   components.InputModal
	reset    components.InputModal
	banner   components.Banner

	// UI state
	loading      bool
	spinnerFrame int
	showHelp     bool

	// Dimensions
	Width  int
	Height int
	Ready  bool

	startCmd tea.Cmd
}

// NewModel creates the application model and decides the initial view
func NewModel(
	session *service.SessionService,
	tracking *service.TrackingService,
	account *service.AccountService,
	opts Options,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MessageTimeout <= 0 {
		opts.MessageTimeout = 5 * time.Second
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}

	m := Model{
		session:        session,
		tracking:       tracking,
		account:        account,
		logger:         logger,
		opener:         opts.Opener,
		keys:           DefaultKeyMap(),
		serverURL:      opts.ServerURL,
		messageTimeout: opts.MessageTimeout,
		requestTimeout: opts.RequestTimeout,
		welcome:        defaultWelcome,
		authForm:       components.NewAuthForm(),
		products:       components.NewProductTable(),
		confirm:        components.NewConfirmModal(),
		forgot: components.NewInputModal(
			"Forgot password",
			"Enter your account email and we will send you a reset link.",
			"Send reset link", "Sending...",
			components.InputField{Label: "Email", Placeholder: "you@example.com"},
		),
		reset: components.NewInputModal(
			"Reset password",
			"Paste the token from the reset email and choose a new password.",
			"Reset password", "Resetting...",
			components.InputField{Label: "Token", Placeholder: "reset token"},
			components.InputField{Label: "Password", Placeholder: "new password", Secret: true},
		),
	}

	// Page-load equivalent: pick the view and start the first fetch
	m.startCmd = m.updateUIVisibility()
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.startCmd, TickCmd(100*time.Millisecond))
}

// CurrentView returns the visible screen
func (m Model) CurrentView() View {
	return m.view
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.spinnerFrame++
		return m, TickCmd(100 * time.Millisecond)

	case ClearStatusMsg:
		m.banner.Expire(msg.Seq)
		return m, nil

	case LoginResultMsg:
		return m, m.handleLoginResult(msg)

	case RegisterResultMsg:
		return m, m.handleRegisterResult(msg)

	case ForgotPasswordResultMsg:
		return m, m.handleForgotPasswordResult(msg)

	case ResetPasswordResultMsg:
		return m, m.handleResetPasswordResult(msg)

	case ProductsLoadedMsg:
		return m, m.handleProductsLoaded(msg)

	case DeleteResultMsg:
		return m, m.handleDeleteResult(msg)

	case OpenImageResultMsg:
		if msg.Err != nil {
			m.logger.Error("failed to open image", "url", msg.URL, "error", msg.Err)
			return m, m.showMessage("Could not open image: "+msg.Err.Error(), components.MessageError)
		}
		return m, nil
	}

	return m, nil
}

// handleKeyMsg resolves a key to an intent, or forwards it to the focused widget
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if intent, ok := m.resolveIntent(msg); ok {
		return m, m.dispatch(intent)
	}

	var cmd tea.Cmd
	switch {
	case m.forgot.IsVisible():
		m.forgot, cmd = m.forgot.Update(msg)
	case m.reset.IsVisible():
		m.reset, cmd = m.reset.Update(msg)
	case m.view == ViewAuth:
		m.authForm, cmd = m.authForm.Update(msg)
	default:
		m.products, cmd = m.products.Update(msg)
	}
	return m, cmd
}

// updateUIVisibility is the single place that decides auth vs app.
// Entering the app view always starts a products fetch.
func (m *Model) updateUIVisibility() tea.Cmd {
	if m.session.IsAuthenticated() {
		m.view = ViewApp
		return m.fetchUserProducts()
	}
	m.view = ViewAuth
	return nil
}

// showMessage replaces the banner and schedules its auto-hide
func (m *Model) showMessage(text string, kind components.MessageKind) tea.Cmd {
	seq := m.banner.Show(text, kind)
	m.logger.Debug("banner", "kind", kind.String(), "text", text, "seq", seq)
	return ClearStatusCmd(m.messageTimeout, seq)
}

// logout clears the session and returns to the auth view. No request is sent.
func (m *Model) logout() tea.Cmd {
	if err := m.session.Logout(); err != nil {
		m.logger.Error("failed to clear session", "error", err)
	}

	m.confirm.Hide()
	m.products.Clear()
	m.welcome = defaultWelcome
	m.loading = false

	cmd := m.showMessage(msgLoggedOut, components.MessageInfo)
	m.updateUIVisibility()
	return cmd
}

// fetchUserProducts loads the table. A partial session logs out instead.
func (m *Model) fetchUserProducts() tea.Cmd {
	if !m.session.IsAuthenticated() {
		m.logger.Info("session missing or partial, logging out")
		return m.logout()
	}

	if email := m.session.UserEmail(); email != "" {
		m.welcome = fmt.Sprintf("Welcome, %s!", email)
	} else {
		m.welcome = defaultWelcome
	}

	m.loading = true
	return tea.Batch(
		m.showMessage(msgLoadingProducts, components.MessageInfo),
		FetchProductsCmd(m.tracking, m.requestTimeout),
	)
}

func (m *Model) submitLogin() tea.Cmd {
	if m.authForm.Busy(components.TabLogin) {
		return nil
	}
	m.authForm.SetBusy(components.TabLogin, true)
	return LoginCmd(m.session, m.authForm.LoginCredentials(), m.requestTimeout)
}

func (m *Model) submitRegister() tea.Cmd {
	if m.authForm.Busy(components.TabRegister) {
		return nil
	}
	m.authForm.SetBusy(components.TabRegister, true)
	return RegisterCmd(m.account, m.authForm.RegisterCredentials(), m.requestTimeout)
}

// submitForgotPassword validates locally so an empty email never reaches the network
func (m *Model) submitForgotPassword() tea.Cmd {
	if m.forgot.Busy() {
		return nil
	}
	m.forgot.SetBusy(true)

	email, err := service.NormalizeEmail(m.forgot.Value(0))
	if err != nil {
		m.forgot.SetBusy(false)
		return m.showValidationError(err)
	}
	return ForgotPasswordCmd(m.account, email, m.requestTimeout)
}

func (m *Model) submitResetPassword() tea.Cmd {
	if m.reset.Busy() {
		return nil
	}
	m.reset.SetBusy(true)

	newPassword := m.reset.Value(1)
	token, err := service.ValidateReset(m.reset.Value(0), newPassword)
	if err != nil {
		m.reset.SetBusy(false)
		return m.showValidationError(err)
	}
	return ResetPasswordCmd(m.account, token, newPassword, m.requestTimeout)
}

func (m *Model) showValidationError(err error) tea.Cmd {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return m.showMessage(ve.Reason, components.MessageError)
	}
	return m.showMessage(err.Error(), components.MessageError)
}

// confirmDeleteRequest takes the pending id and hides the modal before
// anything else, so a repeated confirm cannot target the same request.
func (m *Model) confirmDeleteRequest() tea.Cmd {
	id, ok := m.confirm.Pending()
	m.confirm.Hide()

	if !ok {
		return m.showMessage(msgNoDeleteTarget, components.MessageError)
	}

	if _, hasToken := m.session.AccessToken(); !hasToken {
		logoutCmd := m.logout()
		return tea.Batch(logoutCmd, m.showMessage(msgNotLoggedIn, components.MessageError))
	}

	return DeleteRequestCmd(m.tracking, id, m.requestTimeout)
}

func (m *Model) handleLoginResult(msg LoginResultMsg) tea.Cmd {
	m.authForm.SetBusy(components.TabLogin, false)

	if msg.Err != nil {
		m.logger.Error("login failed", "email", msg.Email, "error", msg.Err)
		if se, ok := domain.AsStatusError(msg.Err); ok {
			return m.showMessage("Login failed: "+se.Message, components.MessageError)
		}
		return m.showMessage(msgConnectFailed, components.MessageError)
	}

	cmd := m.showMessage(msgLoginSuccess, components.MessageSuccess)
	m.authForm.Reset(components.TabLogin)
	return tea.Batch(cmd, m.updateUIVisibility())
}

func (m *Model) handleRegisterResult(msg RegisterResultMsg) tea.Cmd {
	m.authForm.SetBusy(components.TabRegister, false)

	if msg.Err != nil {
		m.logger.Error("registration failed", "email", msg.Email, "error", msg.Err)
		if se, ok := domain.AsStatusError(msg.Err); ok {
			return m.showMessage(
				fmt.Sprintf("Registration failed: %d - %s", se.Code, se.BodyOr(fallbackBody)),
				components.MessageError,
			)
		}
		return m.showMessage(msgConnectFailed, components.MessageError)
	}

	cmd := m.showMessage(msgRegisterSuccess, components.MessageSuccess)
	m.authForm.Reset(components.TabRegister)
	// Programmatic switch keeps the success banner visible
	return tea.Batch(cmd, m.authForm.SetTab(components.TabLogin))
}

func (m *Model) handleForgotPasswordResult(msg ForgotPasswordResultMsg) tea.Cmd {
	m.forgot.SetBusy(false)

	switch {
	case msg.Err == nil:
		m.forgot.Hide()
		return m.showMessage(msgResetLinkSent, components.MessageSuccess)
	case errors.Is(msg.Err, domain.ErrValidation):
		return m.showValidationError(msg.Err)
	}

	if _, ok := domain.AsStatusError(msg.Err); ok {
		// Same text as success so account existence is not revealed
		return m.showMessage(msgResetLinkSent, components.MessageInfo)
	}
	m.logger.Error("forgot password request failed", "error", msg.Err)
	return m.showMessage(msgConnectFailed, components.MessageError)
}

func (m *Model) handleResetPasswordResult(msg ResetPasswordResultMsg) tea.Cmd {
	m.reset.SetBusy(false)

	if msg.Err == nil {
		m.reset.Hide()
		return tea.Batch(
			m.showMessage(msgPasswordReset, components.MessageSuccess),
			m.authForm.SetTab(components.TabLogin),
		)
	}

	m.logger.Error("password reset failed", "error", msg.Err)
	if errors.Is(msg.Err, domain.ErrValidation) {
		return m.showValidationError(msg.Err)
	}
	if se, ok := domain.AsStatusError(msg.Err); ok {
		return m.showMessage(
			fmt.Sprintf("Password reset failed: %s", se.BodyOr(fallbackBody)),
			components.MessageError,
		)
	}
	return m.showMessage(msgConnectFailed, components.MessageError)
}

func (m *Model) handleProductsLoaded(msg ProductsLoadedMsg) tea.Cmd {
	m.loading = false

	// A logout may have happened while the request was in flight
	if !m.session.IsAuthenticated() {
		m.logger.Debug("dropping products for a closed session")
		return nil
	}

	if msg.Err != nil {
		if errors.Is(msg.Err, domain.ErrInvalidData) {
			return m.showMessage(msgInvalidData, components.MessageError)
		}
		if se, ok := domain.AsStatusError(msg.Err); ok {
			return m.showMessage(
				fmt.Sprintf("Error fetching products: %d - %s", se.Code, se.BodyOr(fallbackBody)),
				components.MessageError,
			)
		}
		// Transport failures are logged only; the banner stays as is
		m.logger.Error("network or server error fetching products", "error", msg.Err)
		return nil
	}

	m.products.SetProducts(msg.Result.Products)
	if msg.Result.Empty {
		return m.showMessage(msgNoProducts, components.MessageInfo)
	}
	return nil
}

func (m *Model) handleDeleteResult(msg DeleteResultMsg) tea.Cmd {
	if msg.Err == nil {
		m.products.RemoveByID(msg.ID)
		return m.showMessage(msgDeleted, components.MessageSuccess)
	}

	m.logger.Error("delete failed", "id", msg.ID, "error", msg.Err)

	switch {
	case errors.Is(msg.Err, domain.ErrUnauthorized):
		// Logout first so the expiry message is the one left on screen
		logoutCmd := m.logout()
		return tea.Batch(logoutCmd, m.showMessage(msgSessionExpired, components.MessageError))
	case errors.Is(msg.Err, domain.ErrNoSession):
		logoutCmd := m.logout()
		return tea.Batch(logoutCmd, m.showMessage(msgNotLoggedIn, components.MessageError))
	}

	if se, ok := domain.AsStatusError(msg.Err); ok {
		return m.showMessage("Failed to delete request: "+se.BodyOr(fallbackBody), components.MessageError)
	}
	return m.showMessage(msgDeleteConnFailed, components.MessageError)
}

// openSelectedImage hands the highlighted product's image URL to the opener
func (m *Model) openSelectedImage() tea.Cmd {
	prod, ok := m.products.SelectedProduct()
	if !ok {
		return nil
	}
	if prod.ProductImageURL == nil || *prod.ProductImageURL == "" || m.opener == nil {
		return m.showMessage(msgNoImage, components.MessageInfo)
	}
	return OpenImageCmd(m.opener, *prod.ProductImageURL)
}

// updateLayout propagates the window size to sized components
func (m *Model) updateLayout() {
	m.authForm.SetWidth(m.Width)
	m.products.SetSize(m.Width-2, m.Height-ChromeHeight)
}
