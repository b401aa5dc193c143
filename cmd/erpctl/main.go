// Comando erpctl: operaciones de mostrador desde la terminal contra la API del ERP.
//
//	erpctl login -email ana@panaderia.ni -password ****
//	erpctl whoami
//	erpctl tipo-cambio [-set 36.80]
//	erpctl cambio -total 1250 -nio 500 -usd 25
//	erpctl costo rec-1 [-pdf ficha.pdf]
//	erpctl logout
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/application/auth"
	"github.com/jhoicas/panaderia-erp/internal/application/costing"
	"github.com/jhoicas/panaderia-erp/internal/application/dto"
	"github.com/jhoicas/panaderia-erp/internal/application/mutation"
	"github.com/jhoicas/panaderia-erp/internal/application/sales"
	"github.com/jhoicas/panaderia-erp/internal/application/settings"
	"github.com/jhoicas/panaderia-erp/internal/domain"
	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
	"github.com/jhoicas/panaderia-erp/internal/infrastructure/apiclient"
	"github.com/jhoicas/panaderia-erp/internal/infrastructure/cachestore"
	infrapdf "github.com/jhoicas/panaderia-erp/internal/infrastructure/pdf"
	"github.com/jhoicas/panaderia-erp/internal/infrastructure/session"
	"github.com/jhoicas/panaderia-erp/pkg/config"
	"github.com/jhoicas/panaderia-erp/pkg/logger"
	"github.com/jhoicas/panaderia-erp/pkg/money"
)

const usage = `uso: erpctl <comando> [opciones]

comandos:
  login        inicia sesión y guarda el token
  logout       cierra la sesión
  whoami       usuario de la sesión actual
  tipo-cambio  muestra o actualiza (-set) el tipo de cambio
  cambio       calcula el cambio de un pago mixto
  costo        costo de una receta; -pdf guarda la ficha de costo
`

type cli struct {
	cfg      *config.Config
	out      io.Writer
	tokens   *session.FileStore
	auth     *auth.UseCase
	settings *settings.UseCase
	sales    *sales.UseCase
	costing  *costing.UseCase
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	c, err := newCLI(cfg, log, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar erpctl")
	}
	if err := c.run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", describe(err))
		os.Exit(1)
	}
}

func newCLI(cfg *config.Config, log *logger.Logger, out io.Writer) (*cli, error) {
	path := cfg.Session.File
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("directorio de configuración: %w", err)
		}
		path = filepath.Join(dir, "panaderia-erp", "session.json")
	}
	tokens := session.NewFileStore(path)

	client := apiclient.New(apiclient.Options{
		BaseURL:    cfg.API.BaseURL,
		Timeout:    cfg.API.Timeout,
		MaxRetries: cfg.API.MaxRetries,
		Backoff:    cfg.API.Backoff,
		Logger:     log,
	})
	// 401 con token: cierre de sesión forzado
	client.OnUnauthorized(func(context.Context) {
		if err := tokens.Clear(); err != nil {
			log.Error().Err(err).Msg("borrar sesión")
		}
	})

	store := cachestore.NewMemoryStore(cfg.Cache.TTL)
	runner := mutation.NewRunner(store, nil, log)
	settingsUC := settings.NewUseCase(client, store, runner, cfg.Currency.Primary, cfg.Currency.Secondary)

	return &cli{
		cfg:      cfg,
		out:      out,
		tokens:   tokens,
		auth:     auth.NewUseCase(client, store, runner, cfg.JWT.Secret, tokens),
		settings: settingsUC,
		sales:    sales.NewUseCase(client, settingsUC, store, runner),
		costing:  costing.NewUseCase(client, store, infrapdf.NewMarotoPDFGenerator(), cfg.App.Business, cfg.Currency.Primary),
	}, nil
}

func (c *cli) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return c.login(ctx, args)
	case "logout":
		if err := c.auth.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "sesión cerrada")
		return nil
	case "whoami":
		return c.whoami()
	case "tipo-cambio":
		return c.exchangeRate(ctx, args)
	case "cambio":
		return c.change(ctx, args)
	case "costo":
		return c.cost(ctx, args)
	case "help", "-h", "--help":
		fmt.Fprint(c.out, usage)
		return nil
	}
	return fmt.Errorf("comando desconocido %q\n%s", cmd, usage)
}

// authed contexto con el token de la sesión guardada.
func (c *cli) authed(ctx context.Context) (context.Context, error) {
	tok, _, err := c.auth.Session()
	if err != nil {
		return nil, err
	}
	return apiclient.WithToken(ctx, tok), nil
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "correo del usuario")
	password := fs.String("password", "", "contraseña")
	if err := fs.Parse(args); err != nil {
		return err
	}
	out, err := c.auth.Login(ctx, dto.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "bienvenido, %s (%s)\n", out.User.Name, out.User.Role)
	return nil
}

func (c *cli) whoami() error {
	_, claims, err := c.auth.Session()
	if err != nil {
		return err
	}
	me := auth.Me(claims)
	fmt.Fprintf(c.out, "%s <%s> rol=%s expira=%s\n", me.Name, me.Email, me.Role, me.ExpiresAt.Format("2006-01-02 15:04"))
	return nil
}

func (c *cli) exchangeRate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tipo-cambio", flag.ContinueOnError)
	set := fs.String("set", "", "nuevo tipo de cambio (solo administradores)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ctx, err := c.authed(ctx)
	if err != nil {
		return err
	}

	var out *dto.ExchangeRateResponse
	if *set != "" {
		rate, perr := decimal.NewFromString(*set)
		if perr != nil {
			return domain.Invalid("tipoCambio", "debe ser un número")
		}
		out, err = c.settings.UpdateExchangeRate(ctx, dto.ExchangeRateRequest{Rate: rate})
	} else {
		out, err = c.settings.ExchangeRate(ctx)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "1 %s = %s\n", out.Secondary, money.Format(out.Rate, out.Primary))
	return nil
}

func (c *cli) change(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cambio", flag.ContinueOnError)
	total := fs.String("total", "", "total a cobrar en "+c.cfg.Currency.Primary)
	primary := fs.String("nio", "0", "monto recibido en "+c.cfg.Currency.Primary)
	secondary := fs.String("usd", "0", "monto recibido en "+c.cfg.Currency.Secondary)
	if err := fs.Parse(args); err != nil {
		return err
	}
	in := dto.ChangeRequest{}
	var err error
	if in.Total, err = decimal.NewFromString(*total); err != nil {
		return domain.Invalid("total", "debe ser un número")
	}
	tendered := []struct{ code, raw string }{
		{c.cfg.Currency.Primary, *primary},
		{c.cfg.Currency.Secondary, *secondary},
	}
	for _, t := range tendered {
		amount, perr := decimal.NewFromString(t.raw)
		if perr != nil {
			return domain.Invalid(t.code, "debe ser un número")
		}
		if amount.IsPositive() {
			in.Payments = append(in.Payments, dto.PaymentInput{Currency: t.code, Amount: amount, Rate: optional.None[decimal.Decimal]()})
		}
	}

	ctx, err = c.authed(ctx)
	if err != nil {
		return err
	}
	out, err := c.sales.CalculateChange(ctx, in)
	if err != nil {
		return err
	}
	cur := c.cfg.Currency.Primary
	fmt.Fprintf(c.out, "total:    %s\nrecibido: %s\n", money.Format(out.TotalDue, cur), money.Format(out.TotalTendered, cur))
	if !out.Sufficient {
		fmt.Fprintf(c.out, "faltan:   %s\n", money.Format(out.Shortfall, cur))
		return nil
	}
	fmt.Fprintf(c.out, "cambio:   %s\n", money.Format(out.Change, cur))
	return nil
}

func (c *cli) cost(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("costo", flag.ContinueOnError)
	pdfPath := fs.String("pdf", "", "archivo donde guardar la ficha de costo")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return domain.Invalid("recetaId", "indique el id de la receta")
	}
	recipeID := fs.Arg(0)

	ctx, err := c.authed(ctx)
	if err != nil {
		return err
	}
	out, err := c.costing.RecipeCost(ctx, recipeID)
	if err != nil {
		return err
	}
	cur := c.cfg.Currency.Primary
	for _, l := range out.Cost.Lines {
		fmt.Fprintf(c.out, "  %-24s %12s  %s\n", l.IngredientName, money.Quantity(l.ConvertedQuantity, l.NativeUnit), money.Format(l.Cost, cur))
	}
	fmt.Fprintf(c.out, "insumos:        %s\n", money.Format(out.Cost.IngredientsCost, cur))
	fmt.Fprintf(c.out, "mano de obra:   %s\n", money.Format(out.Cost.LaborCost, cur))
	fmt.Fprintf(c.out, "indirectos:     %s\n", money.Format(out.Cost.OverheadCost, cur))
	fmt.Fprintf(c.out, "total:          %s\n", money.Format(out.Cost.TotalCost, cur))
	fmt.Fprintf(c.out, "costo unitario: %s (rinde %s)\n", money.Format(out.Cost.UnitCost, cur), out.Cost.Yield.String())
	if a, ok := out.Pricing.Get(); ok {
		fmt.Fprintf(c.out, "precio %s, margen %s, markup %s\n", money.Format(a.Price, cur), money.Percent(a.MarginPct), money.Percent(a.MarkupPct))
	}

	if *pdfPath == "" {
		return nil
	}
	body, _, err := c.costing.CostSheetPDF(ctx, recipeID)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*pdfPath, body, 0o644); err != nil {
		return fmt.Errorf("guardar PDF: %w", err)
	}
	fmt.Fprintln(c.out, "ficha guardada en", *pdfPath)
	return nil
}

// describe mensaje para el operador.
func describe(err error) string {
	var rerr *apiclient.RequestError
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return "sesión expirada o inexistente; ejecute erpctl login"
	case errors.As(err, &rerr) && rerr.Message != "":
		return rerr.Message
	}
	return err.Error()
}
