package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/common-nighthawk/go-figure"
	"github.com/mmcdole/pricetrack/internal/adapter"
	"github.com/mmcdole/pricetrack/internal/adapter/backend"
	"github.com/mmcdole/pricetrack/internal/domain"
	"github.com/mmcdole/pricetrack/internal/service"
	"github.com/mmcdole/pricetrack/internal/store"
	"github.com/mmcdole/pricetrack/internal/tui"
	"github.com/mmcdole/pricetrack/internal/tui/styles"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

const usage = `Usage: pricetrack [flags] [command]

Commands:
  (none)          start the dashboard
  login           sign in from the terminal
  logout          clear the stored session
  list [-match q] print tracked products
  delete <id>     delete a price tracking request
  forgot [email]  request a password reset link
  reset           set a new password with a reset token
  config          update the saved configuration

Flags:
`

func main() {
	var showVersion bool
	var serverURL string
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&serverURL, "server", "", "backend base URL (overrides config)")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		figure.NewFigure("pricetrack", "", true).Print()
		fmt.Printf("pricetrack %s\n", Version)
		return
	}

	if err := run(serverURL, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles the wired dependencies shared by every command
type app struct {
	cfg      *adapter.Config
	logger   *slog.Logger
	store    *store.SessionStore
	session  *service.SessionService
	tracking *service.TrackingService
	account  *service.AccountService
}

func run(serverURL string, args []string) error {
	// Load configuration
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if serverURL != "" {
		cfg.Server.URL = serverURL
	}

	// Setup logger
	logger, closeLog, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		defer closeLog()
	}
	slog.SetDefault(logger)

	logger.Info("starting pricetrack", "version", Version, "server", cfg.Server.URL)

	if len(args) > 0 && args[0] == "config" {
		return runConfig(cfg, args[1:])
	}

	if !cfg.IsConfigured() {
		return errors.New("no backend URL configured; run `pricetrack config -url <url>`")
	}

	storePath, err := adapter.ExpandPath(cfg.Storage.Path)
	if err != nil {
		return err
	}
	st, err := store.NewSessionStore(storePath)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer st.Close()

	client := backend.NewClient(cfg.Server.URL, cfg.Server.Timeout, logger)
	session := service.NewSessionService(st, client, logger)

	a := &app{
		cfg:      cfg,
		logger:   logger,
		store:    st,
		session:  session,
		tracking: service.NewTrackingService(client, session, logger),
		account:  service.NewAccountService(client, logger),
	}

	if len(args) == 0 {
		return a.runTUI()
	}

	switch args[0] {
	case "login":
		return a.runLogin()
	case "logout":
		return a.runLogout()
	case "list":
		return a.runList(args[1:])
	case "delete":
		return a.runDelete(args[1:])
	case "forgot":
		return a.runForgot(args[1:])
	case "reset":
		return a.runReset()
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *app) runTUI() error {
	model := tui.NewModel(a.session, a.tracking, a.account, tui.Options{
		ServerURL:      a.cfg.Server.URL,
		MessageTimeout: a.cfg.UI.MessageTimeout,
		RequestTimeout: a.cfg.Server.Timeout,
		Opener:         adapter.NewOpener(a.cfg.Opener.Command, a.cfg.Opener.Args, a.logger),
	}, a.logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	a.logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	a.logger.Info("shutting down")
	return nil
}

func (a *app) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.cfg.Server.Timeout)
}

func (a *app) runLogin() error {
	creds, err := backend.PromptCredentials(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	ctx, cancel := a.requestContext()
	defer cancel()

	if err := a.session.Login(ctx, creds); err != nil {
		if se, ok := domain.AsStatusError(err); ok {
			return fmt.Errorf("login failed: %s", se.Message)
		}
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Println(styles.SuccessStyle.Render("✓ Login successful!"))
	if exp, ok := a.session.TokenExpiry(); ok {
		fmt.Printf("Session token expires %s\n", exp.Local().Format(time.RFC1123))
	}
	return nil
}

func (a *app) runLogout() error {
	if err := a.session.Logout(); err != nil {
		return err
	}
	fmt.Println("You have been logged out.")
	return nil
}

func (a *app) runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	match := fs.String("match", "", "only show products matching this text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := a.requestContext()
	defer cancel()

	result, err := a.tracking.FetchProducts(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			return errors.New("you are not logged in; run `pricetrack login`")
		}
		return fmt.Errorf("failed to fetch products: %w", err)
	}

	products := service.Match(*match, result.Products)
	if len(products) == 0 {
		fmt.Println("No products are being tracked yet.")
		return nil
	}

	return printProducts(os.Stdout, products)
}

// printProducts renders products as a table sized to the terminal
func printProducts(w io.Writer, products []domain.TrackedProduct) error {
	rows := make([][]string, len(products))
	for i, p := range products {
		rows[i] = []string{
			strconv.FormatInt(p.PriceTrackingRequestID, 10),
			p.DisplayName(),
			p.ProductNumber,
			p.DisplayMaxPrice(),
			p.DisplayCurrentPrice(),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.DimGray)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Foreground(styles.Accent).Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("ID", "Product", "Number", "Max Price", "Current").
		Rows(rows...)

	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		t = t.Width(width)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func (a *app) runDelete(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: pricetrack delete <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid request id %q", args[0])
	}

	ctx, cancel := a.requestContext()
	defer cancel()

	err = a.tracking.Delete(ctx, id)
	switch {
	case err == nil:
		fmt.Println("Price tracking request deleted successfully!")
		return nil
	case errors.Is(err, domain.ErrUnauthorized):
		if logoutErr := a.session.Logout(); logoutErr != nil {
			a.logger.Error("failed to clear session", "error", logoutErr)
		}
		return errors.New("session expired or unauthorized; please log in again")
	case errors.Is(err, domain.ErrNoSession):
		return errors.New("you are not logged in; run `pricetrack login`")
	}

	if se, ok := domain.AsStatusError(err); ok {
		return fmt.Errorf("failed to delete request: %s", se.BodyOr("Something went wrong."))
	}
	return fmt.Errorf("failed to delete request: %w", err)
}

func (a *app) runForgot(args []string) error {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		var err error
		email, err = backend.PromptLine(os.Stdin, os.Stdout, "Email: ")
		if err != nil {
			return err
		}
	}

	ctx, cancel := a.requestContext()
	defer cancel()

	err := a.account.ForgotPassword(ctx, email)
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return errors.New(ve.Reason)
	case err == nil || isStatusError(err):
		// Same outcome either way so account existence is not revealed
		fmt.Println("If an account with that email exists, a password reset link has been sent.")
		return nil
	}
	return fmt.Errorf("failed to connect to the server: %w", err)
}

func isStatusError(err error) bool {
	_, ok := domain.AsStatusError(err)
	return ok
}

func (a *app) runReset() error {
	token, err := backend.PromptLine(os.Stdin, os.Stdout, "Reset token: ")
	if err != nil {
		return err
	}
	password, err := backend.PromptSecret(os.Stdin, os.Stdout, "New password: ")
	if err != nil {
		return err
	}

	ctx, cancel := a.requestContext()
	defer cancel()

	if err := a.account.ResetPassword(ctx, token, password); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return errors.New(ve.Reason)
		}
		if se, ok := domain.AsStatusError(err); ok {
			return fmt.Errorf("password reset failed: %s", se.BodyOr("Something went wrong."))
		}
		return fmt.Errorf("password reset failed: %w", err)
	}

	fmt.Println("Password has been reset. You can now log in.")
	return nil
}

// runConfig updates and saves the config file
func runConfig(cfg *adapter.Config, args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	url := fs.String("url", cfg.Server.URL, "backend base URL")
	timeout := fs.Duration("timeout", cfg.Server.Timeout, "per-request timeout")
	messageTimeout := fs.Duration("message-timeout", cfg.UI.MessageTimeout, "how long notifications stay visible")
	level := fs.String("log-level", cfg.Logging.Level, "log level (DEBUG, INFO, WARN, ERROR)")
	opener := fs.String("opener", cfg.Opener.Command, "command used to open product images (empty to auto-detect)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.Server.URL = *url
	cfg.Server.Timeout = *timeout
	cfg.UI.MessageTimeout = *messageTimeout
	cfg.Logging.Level = *level
	if *opener != cfg.Opener.Command {
		cfg.Opener.Command = *opener
		cfg.Opener.Args = nil
	}

	if err := adapter.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println("✓ Configuration saved!")
	return nil
}
