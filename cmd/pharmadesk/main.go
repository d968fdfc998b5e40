package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pharmadesk/pharmadesk/cmd/pharmadesk/cli"
	"github.com/pharmadesk/pharmadesk/internal/app"
	"github.com/pharmadesk/pharmadesk/internal/gateway"
	"github.com/pharmadesk/pharmadesk/internal/pages"
	"github.com/pharmadesk/pharmadesk/internal/platform/cache"
	"github.com/pharmadesk/pharmadesk/internal/platform/httpc"
	"github.com/pharmadesk/pharmadesk/internal/session"
)

const usage = `usage: pharmadesk <command> [flags]

commands:
  login         sign in (-u login -p password)
  logout        clear the local session
  whoami        show the cached session user
  stock         list medicines and medical devices
  shipments     list shipments (-pending) or act: accept|reject|cancel|retry|show <id>
  transfers     list inter-branch transfers grouped by medicine
  arrivals      list central-warehouse receipts
  dispensing    list dispensing records, or calendar -month M -year Y
  notifications list notifications, or read <id>
  report        run a report (-type stock|dispensing|arrivals|transfers|patients|medical_devices)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pharmadesk: config: %v\n", err)
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "pharmadesk: %s\n", cli.Friendly(err))
		os.Exit(1)
	}
}

type env struct {
	cfg    *app.Config
	logger *slog.Logger
	store  session.Store
	gw     *gateway.Gateway
	opts   pages.Options
}

func run(ctx context.Context, cfg *app.Config, logger *slog.Logger, command string, args []string) error {
	e, err := setup(ctx, cfg, logger, command)
	if err != nil {
		return err
	}

	out := os.Stdout
	switch command {
	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		login := fs.String("u", "", "login")
		password := fs.String("p", "", "password")
		_ = fs.Parse(args)
		if *login == "" || *password == "" {
			return errors.New("login requires -u and -p")
		}
		user, err := pages.SignIn(ctx, e.gw, e.store, *login, *password)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "signed in as %s (%s)\n", user.Login, user.Role)
		return nil

	case "logout":
		if err := pages.SignOut(ctx, e.store); err != nil {
			return err
		}
		fmt.Fprintln(out, "signed out")
		return nil

	case "whoami":
		sess, err := e.store.Load(ctx)
		if err != nil {
			return err
		}
		u := sess.User
		if u.BranchName != "" {
			fmt.Fprintf(out, "%s (%s) branch=%s\n", u.Login, u.Role, u.BranchName)
		} else {
			fmt.Fprintf(out, "%s (%s)\n", u.Login, u.Role)
		}
		return nil

	case "stock":
		page := pages.NewStockPage(e.gw, e.opts)
		if err := page.Load(ctx); err != nil {
			return err
		}
		if err := cli.RenderMedicines(out, page); err != nil {
			return err
		}
		if err := cli.RenderDevices(out, page); err != nil {
			return err
		}
		fmt.Fprintf(out, "total on hand: %d\n", page.TotalStock())
		return nil

	case "shipments":
		return runShipments(ctx, e, out, args)

	case "transfers":
		page := pages.NewTransfersPage(e.gw, e.opts)
		if err := page.Load(ctx); err != nil {
			return err
		}
		return cli.RenderTransferGroups(out, page.Groups())

	case "arrivals":
		page := pages.NewArrivalsPage(e.gw, e.opts)
		if err := page.Load(ctx); err != nil {
			return err
		}
		if err := cli.RenderArrivals(out, page); err != nil {
			return err
		}
		fmt.Fprintf(out, "total received: %d\n", page.TotalReceived())
		return nil

	case "dispensing":
		page := pages.NewDispensingPage(e.gw, e.opts)
		if len(args) > 0 && args[0] == "calendar" {
			fs := flag.NewFlagSet("calendar", flag.ExitOnError)
			month := fs.Int("month", 0, "month 1-12")
			year := fs.Int("year", 0, "year")
			_ = fs.Parse(args[1:])
			days, err := page.Calendar(ctx, *month, *year)
			if err != nil {
				return err
			}
			return cli.RenderCalendar(out, days)
		}
		if err := page.Load(ctx); err != nil {
			return err
		}
		return cli.RenderDispensing(out, page.Records)

	case "notifications":
		page := pages.NewNotificationsPage(e.gw, e.opts)
		if len(args) > 1 && args[0] == "read" {
			if err := page.Load(ctx); err != nil {
				return err
			}
			return page.MarkRead(ctx, args[1])
		}
		if err := page.Load(ctx); err != nil {
			return err
		}
		if err := cli.RenderNotifications(out, page.Notifications); err != nil {
			return err
		}
		fmt.Fprintf(out, "%d unread\n", page.Unread())
		return nil

	case "report":
		fs := flag.NewFlagSet("report", flag.ExitOnError)
		reportType := fs.String("type", "", "report type")
		branch := fs.String("branch", "", "branch id")
		from := fs.String("from", "", "date from (YYYY-MM-DD)")
		to := fs.String("to", "", "date to (YYYY-MM-DD)")
		_ = fs.Parse(args)
		page := pages.NewReportsPage(e.gw, e.opts)
		err := page.Generate(ctx, gateway.ReportRequest{
			Type:     *reportType,
			BranchID: *branch,
			DateFrom: *from,
			DateTo:   *to,
		})
		if err != nil {
			return err
		}
		return cli.RenderReport(out, page.Rows)

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func runShipments(ctx context.Context, e *env, out *os.File, args []string) error {
	page := pages.NewShipmentsPage(e.gw, e.opts)
	ops := cli.NewShipmentOps(page, out)

	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		fs := flag.NewFlagSet("shipments", flag.ExitOnError)
		pending := fs.Bool("pending", false, "only pending shipments")
		_ = fs.Parse(args)
		return ops.List(ctx, *pending)
	}

	action := args[0]
	rest := args[1:]
	if len(rest) == 0 {
		return fmt.Errorf("shipments %s requires a shipment id", action)
	}
	id := rest[0]
	switch action {
	case "show":
		return ops.Show(ctx, id)
	case "accept":
		return ops.Accept(ctx, id)
	case "reject":
		fs := flag.NewFlagSet("reject", flag.ExitOnError)
		reason := fs.String("reason", "", "rejection reason")
		_ = fs.Parse(rest[1:])
		return ops.Reject(ctx, id, *reason)
	case "cancel":
		return ops.Cancel(ctx, id)
	case "retry":
		return ops.Retry(ctx, id)
	default:
		return fmt.Errorf("unknown shipments action %q", action)
	}
}

// setup wires the session store, HTTP client, gateway and page options.
func setup(ctx context.Context, cfg *app.Config, logger *slog.Logger, command string) (*env, error) {
	var store session.Store
	var listCache cache.Store = cache.NewMemory()
	if cfg.RedisAddr != "" {
		client, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		store = session.NewRedisStore(client, cfg.TerminalName, cfg.SessionTTL)
		listCache = cache.NewRedis(client)
	} else {
		fileStore, err := session.NewFileStore(cfg.SessionPath)
		if err != nil {
			return nil, err
		}
		store = fileStore
	}

	var user session.User
	token := ""
	sess, err := store.Load(ctx)
	switch {
	case err == nil:
		user = sess.User
		token = sess.Token
	case errors.Is(err, session.ErrNoSession):
		if command != "login" && command != "logout" {
			return nil, errors.New("not signed in; run: pharmadesk login -u <login> -p <password>")
		}
	default:
		return nil, err
	}

	hc, err := httpc.New(httpc.Config{
		BaseURL:      cfg.BaseURL,
		Scheme:       cfg.APIScheme,
		Host:         cfg.APIHost,
		Port:         cfg.APIPort,
		DevProxy:     cfg.DevProxy,
		DevProxyAddr: cfg.DevProxyAddr,
		Timeout:      cfg.RequestTimeout,
	}, httpc.WithLogger(logger), httpc.WithToken(func() string { return token }))
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:    cfg,
		logger: logger,
		store:  store,
		gw:     gateway.New(hc),
		opts: pages.Options{
			Cache:  listCache,
			TTL:    cfg.CacheTTL,
			Logger: logger,
			User:   user,
		},
	}, nil
}
