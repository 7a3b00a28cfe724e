// Command spendly is the command-line client of the spendly API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"spendly/internal/client"
	"spendly/internal/config"
	apperrors "spendly/internal/errors"
	"spendly/internal/logger"
	"spendly/internal/report"
	"spendly/internal/session"
	"spendly/internal/store"
)

const usage = `usage: spendly <command> [flags] [args]

commands:
  login       -username NAME [-password PASS]
  register    -username NAME -email EMAIL -first-name F -last-name L [-password PASS]
  logout
  categories  [add [-parent REF] NAME | rename REF NAME | move REF PARENT|- | delete REF]
  spendings   [-page N] [add FLAGS | edit FLAGS ID | delete ID]
  report      [-category NAME] [-month YYYY-MM] [-roots]
  upload-receipt FILE
  ask         PROMPT
`

var commands = []string{"login", "register", "logout", "categories", "spendings", "report", "upload-receipt", "ask", "help"}

func main() {
	os.Exit(cli())
}

func cli() int {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "spendly: %v\n", err)
		return 2
	}
	logger.Init(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := newApp(cfg, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spendly: %v\n", err)
		return 2
	}
	if err := a.run(ctx, os.Args[1:]); err != nil {
		printError(os.Stderr, err)
		return 1
	}
	return 0
}

// app holds what one invocation needs: the session-bound client, both
// stores and a locale-aware printer.
type app struct {
	cfg        *config.ClientConfig
	in         io.Reader
	out        io.Writer
	printer    *message.Printer
	client     *client.Client
	categories *store.CategoryStore
	spendings  *store.TransactionStore
}

func newApp(cfg *config.ClientConfig, in io.Reader, out io.Writer) (*app, error) {
	token := cfg.Token
	if token == "" && cfg.TokenFile != "" {
		saved, err := session.LoadToken(cfg.TokenFile)
		if err != nil {
			return nil, err
		}
		token = saved
	}

	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		logger.Get().Warnw("unknown locale, using en-US", "locale", cfg.Locale, "error", err)
		tag = language.AmericanEnglish
	}

	c := client.New(cfg.APIURL, session.NewWithScheme(token, cfg.TokenScheme), &http.Client{Timeout: cfg.RequestTimeout})
	return &app{
		cfg:        cfg,
		in:         in,
		out:        out,
		printer:    message.NewPrinter(tag),
		client:     c,
		categories: store.NewCategoryStore(c),
		spendings:  store.NewTransactionStore(c),
	}, nil
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return errors.New("no command given")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return a.login(ctx, rest)
	case "register":
		return a.register(ctx, rest)
	case "logout":
		return a.logout()
	case "categories":
		return a.categoriesCmd(ctx, rest)
	case "spendings":
		return a.spendingsCmd(ctx, rest)
	case "report":
		return a.reportCmd(ctx, rest)
	case "upload-receipt":
		return a.uploadReceipt(ctx, rest)
	case "ask":
		return a.ask(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	}
	return unknown("command", cmd, commands)
}

// load fetches both collections concurrently.
func (a *app) load(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.categories.Refresh(ctx) })
	g.Go(func() error { return a.spendings.Refresh(ctx) })
	return g.Wait()
}

func (a *app) requireLogin() error {
	if !a.client.Session().Authenticated() {
		return errors.New("not logged in; run `spendly login` first")
	}
	return nil
}

// unknown reports an unrecognised value, with the closest known one as a hint.
func unknown(kind, value string, known []string) error {
	opts := make([]report.Option, len(known))
	for i, k := range known {
		opts[i] = report.Option{Value: k, Label: k}
	}
	if guess, ok := report.Suggest(value, opts, 3); ok {
		return fmt.Errorf("unknown %s %q (did you mean %q?)", kind, value, guess)
	}
	return fmt.Errorf("unknown %s %q", kind, value)
}

// printError writes one line per message carried by err.
func printError(w io.Writer, err error) {
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(w, "spendly: interrupted")
		return
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		fmt.Fprintf(w, "spendly: %v\n", err)
		return
	}
	for _, msg := range apperrors.Flatten(err, 0) {
		fmt.Fprintf(w, "spendly: %s\n", strings.TrimSpace(msg))
	}
}
