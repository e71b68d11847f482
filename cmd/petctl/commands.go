package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"petverse/internal/adapters/storage"
	"petverse/internal/domain/pets"
	"petverse/internal/platform/config"
	"petverse/internal/platform/httpclient"
)

// EnvLookup devuelve el valor de una variable si existe.
type EnvLookup func(string) (string, bool)

const usage = `usage: petctl [-addr URL] [-timeout D] <command> [args]

API commands (need a running server):
  list
  show <name>
  create <name> [species]
  feed <name>
  play <name> [-minutes N]
  rest <name> [-minutes N]
  work <name> [-minutes N]
  buy <name> <item>
  daily <name>
  delete <name>
  activity <name> [-limit N] [-kinds a,b]

Store commands (use STORE_* env / .env):
  migrate -from DRIVER [-from-path P] -to DRIVER [-to-path P]
  inspect [-driver D] [-path P] <name>
`

// errUsage marca errores de uso: se imprime el texto de ayuda y se sale con 2.
var errUsage = errors.New("invalid usage")

type cli struct {
	out    io.Writer
	client *httpclient.Client
}

// petView es lo que la CLI muestra de una mascota.
type petView struct {
	Name        string     `json:"name"`
	Species     string     `json:"species"`
	DisplayForm string     `json:"display_form"`
	Hunger      float64    `json:"hunger"`
	Happiness   float64    `json:"happiness"`
	Energy      float64    `json:"energy"`
	MaxEnergy   float64    `json:"max_energy"`
	Level       int        `json:"level"`
	XP          int        `json:"xp"`
	Coins       int        `json:"coins"`
	Evolved     bool       `json:"evolved"`
	GiftMessage *string    `json:"gift_message,omitempty"`
	LastDaily   *time.Time `json:"last_daily_claim,omitempty"`
}

type outcomeView struct {
	OK      bool     `json:"ok"`
	Message string   `json:"message"`
	Reason  string   `json:"reason,omitempty"`
	Pet     *petView `json:"pet,omitempty"`
}

type activityView struct {
	Kind       string    `json:"kind"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, lookup EnvLookup) int {
	fs := flag.NewFlagSet("petctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }

	addr := httpclient.DefaultBaseURL
	if v, ok := lookup("PETVERSE_ADDR"); ok && strings.TrimSpace(v) != "" {
		addr = strings.TrimSpace(v)
	}
	fs.StringVar(&addr, "addr", addr, "petverse server base URL")
	timeout := fs.Duration("timeout", httpclient.DefaultTimeout, "request timeout")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	cmd, cmdArgs := rest[0], rest[1:]

	var err error
	switch cmd {
	case "migrate":
		err = runMigrate(ctx, stdout, cmdArgs)
	case "inspect":
		err = runInspect(ctx, stdout, cmdArgs)
	default:
		var client *httpclient.Client
		client, err = httpclient.New(addr, *timeout)
		if err == nil {
			c := &cli{out: stdout, client: client}
			err = c.dispatch(ctx, cmd, cmdArgs)
		}
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "petctl: %v\n\n%s", err, usage)
		return 2
	default:
		fmt.Fprintf(stderr, "petctl: %v\n", err)
		return 1
	}
}

func (c *cli) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "list":
		return c.list(ctx)
	case "show":
		name, err := oneName(cmd, args)
		if err != nil {
			return err
		}
		return c.show(ctx, name)
	case "create":
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("%w: create <name> [species]", errUsage)
		}
		body := map[string]string{"name": args[0]}
		if len(args) == 2 {
			body["species"] = args[1]
		}
		return c.action(ctx, http.MethodPost, "/pets", body)
	case "feed", "daily":
		name, err := oneName(cmd, args)
		if err != nil {
			return err
		}
		return c.action(ctx, http.MethodPost, petPath(name, cmd), nil)
	case "play", "rest", "work":
		return c.minutes(ctx, cmd, args)
	case "buy":
		if len(args) != 2 {
			return fmt.Errorf("%w: buy <name> <item>", errUsage)
		}
		return c.action(ctx, http.MethodPost, petPath(args[0], "buy"), map[string]string{"item": args[1]})
	case "delete":
		name, err := oneName(cmd, args)
		if err != nil {
			return err
		}
		return c.action(ctx, http.MethodDelete, petPath(name, ""), nil)
	case "activity":
		return c.activity(ctx, args)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func (c *cli) list(ctx context.Context) error {
	var items []petView
	if err := c.client.DoJSON(ctx, http.MethodGet, "/pets", nil, &items); err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(c.out, "No pets yet.")
		return nil
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tFORM\tLEVEL\tXP\tCOINS\tHUNGER\tHAPPINESS\tENERGY")
	for _, p := range items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%.0f\t%.0f\t%.0f/%.0f\n",
			p.Name, p.DisplayForm, p.Level, p.XP, p.Coins, p.Hunger, p.Happiness, p.Energy, p.MaxEnergy)
	}
	return tw.Flush()
}

func (c *cli) show(ctx context.Context, name string) error {
	var p petView
	if err := c.client.DoJSON(ctx, http.MethodGet, petPath(name, ""), nil, &p); err != nil {
		if httpclient.StatusCode(err) == http.StatusNotFound {
			return errors.New("Pet not found.")
		}
		return err
	}
	printPet(c.out, p)
	return nil
}

func (c *cli) minutes(ctx context.Context, cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	minutes := fs.Int("minutes", 0, "duration in minutes (server default when 0)")
	name, err := parseWithName(fs, cmd, args)
	if err != nil {
		return err
	}

	var body any
	if *minutes != 0 {
		body = map[string]int{"minutes": *minutes}
	}
	return c.action(ctx, http.MethodPost, petPath(name, cmd), body)
}

func (c *cli) activity(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("activity", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	limit := fs.Int("limit", 0, "max entries")
	kinds := fs.String("kinds", "", "comma separated kinds")
	name, err := parseWithName(fs, "activity", args)
	if err != nil {
		return err
	}

	q := url.Values{}
	if *limit > 0 {
		q.Set("limit", strconv.Itoa(*limit))
	}
	if strings.TrimSpace(*kinds) != "" {
		q.Set("kinds", *kinds)
	}
	path := petPath(name, "activity")
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var entries []activityView
	if err := c.client.DoJSON(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(c.out, "No activity yet.")
		return nil
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.OccurredAt.Local().Format(time.DateTime), e.Kind, e.Message)
	}
	return tw.Flush()
}

// action imprime el mensaje del Outcome. Un rechazo del servidor es un error
// con el mismo mensaje; el estado actualizado se muestra solo en éxito.
func (c *cli) action(ctx context.Context, method, path string, body any) error {
	var out outcomeView
	err := c.client.DoJSON(ctx, method, path, body, &out)
	if err != nil {
		if out.Message != "" {
			return errors.New(out.Message)
		}
		return err
	}

	fmt.Fprintln(c.out, out.Message)
	if out.Pet != nil {
		printPet(c.out, *out.Pet)
	}
	return nil
}

func printPet(w io.Writer, p petView) {
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s (%s)\n", p.Name, p.DisplayForm)
	fmt.Fprintf(tw, "Level:\t%d (XP %d)\n", p.Level, p.XP)
	fmt.Fprintf(tw, "Coins:\t%d\n", p.Coins)
	fmt.Fprintf(tw, "Hunger:\t%.1f\n", p.Hunger)
	fmt.Fprintf(tw, "Happiness:\t%.1f\n", p.Happiness)
	fmt.Fprintf(tw, "Energy:\t%.1f/%.0f\n", p.Energy, p.MaxEnergy)
	if p.GiftMessage != nil {
		fmt.Fprintf(tw, "Gift:\t%s\n", *p.GiftMessage)
	}
	_ = tw.Flush()
}

// -------------------------
// Store commands
// -------------------------

func runMigrate(ctx context.Context, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	from := fs.String("from", "", "source driver")
	fromPath := fs.String("from-path", "", "source path, DSN or URL")
	to := fs.String("to", "", "target driver")
	toPath := fs.String("to-path", "", "target path, DSN or URL")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *from == "" || *to == "" {
		return fmt.Errorf("%w: migrate needs -from and -to", errUsage)
	}

	base, err := baseStoreConfig()
	if err != nil {
		return err
	}
	src, err := storage.Open(ctx, storeConfig(base, *from, *fromPath))
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer src.Close()
	dst, err := storage.Open(ctx, storeConfig(base, *to, *toPath))
	if err != nil {
		return fmt.Errorf("open target: %w", err)
	}
	defer dst.Close()

	records, err := src.Pets.LoadAll(ctx)
	var partial *pets.PartialLoadError
	switch {
	case errors.Is(err, pets.ErrNoData):
		fmt.Fprintln(out, "Source is empty; nothing to migrate.")
		return nil
	case errors.As(err, &partial):
		names := make([]string, 0, len(partial.Skipped))
		for n := range partial.Skipped {
			names = append(names, n)
		}
		sort.Strings(names)
		fmt.Fprintf(out, "Skipping unreadable records: %s\n", strings.Join(names, ", "))
	case err != nil:
		return fmt.Errorf("load source: %w", err)
	}

	if err := dst.Pets.SaveAll(ctx, records); err != nil {
		return fmt.Errorf("save target: %w", err)
	}
	fmt.Fprintf(out, "Migrated %d pets from %s to %s.\n", len(records), src.Driver, dst.Driver)
	return nil
}

func runInspect(ctx context.Context, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	driver := fs.String("driver", "", "store driver (default STORE_DRIVER)")
	path := fs.String("path", "", "store path, DSN or URL")
	name, err := parseWithName(fs, "inspect", args)
	if err != nil {
		return err
	}

	base, err := baseStoreConfig()
	if err != nil {
		return err
	}
	if *driver == "" {
		*driver = base.Driver
	}
	b, err := storage.Open(ctx, storeConfig(base, *driver, *path))
	if err != nil {
		return err
	}
	defer b.Close()

	rec, err := b.Pets.Get(ctx, name)
	if errors.Is(err, pets.ErrRecordNotFound) {
		return errors.New("Pet not found.")
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

// baseStoreConfig lee STORE_* del entorno (y .env) sin exigir el resto.
func baseStoreConfig() (config.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Store{}, err
	}
	return cfg.Store, nil
}

// storeConfig sobreescribe driver y, si viene, la ubicación que ese driver usa.
func storeConfig(base config.Store, driver, location string) config.Store {
	cfg := base
	cfg.Driver = strings.ToLower(strings.TrimSpace(driver))
	if location = strings.TrimSpace(location); location == "" {
		return cfg
	}
	switch cfg.Driver {
	case config.DriverJSONFile:
		cfg.Path = location
	case config.DriverSQLite:
		cfg.SQLitePath = location
	case config.DriverPostgres:
		cfg.DSN = location
	case config.DriverRedis:
		cfg.RedisURL = location
	}
	return cfg
}

// -------------------------
// Helpers
// -------------------------

func petPath(name, action string) string {
	p := "/pets/" + url.PathEscape(name)
	if action != "" {
		p += "/" + action
	}
	return p
}

func oneName(cmd string, args []string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", fmt.Errorf("%w: %s <name>", errUsage, cmd)
	}
	return args[0], nil
}

// parseWithName acepta el nombre antes o después de los flags.
func parseWithName(fs *flag.FlagSet, cmd string, args []string) (string, error) {
	var name string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return "", fmt.Errorf("%w: %v", errUsage, err)
	}
	if name == "" && fs.NArg() == 1 {
		name = fs.Arg(0)
	} else if fs.NArg() > 0 {
		return "", fmt.Errorf("%w: %s <name>", errUsage, cmd)
	}
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: %s <name>", errUsage, cmd)
	}
	return name, nil
}
