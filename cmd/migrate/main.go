package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/angelmondragon/windowquote-backend/pkg/config"
	"github.com/angelmondragon/windowquote-backend/pkg/logger"
	"github.com/angelmondragon/windowquote-backend/pkg/migrate"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "migrate", Format: "console"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "up|down|status|version|to|create|validate")
	dir := flag.String("dir", "", "read migrations from this directory instead of the embedded set")
	name := flag.String("name", "", "migration name for -cmd=create")
	target := flag.String("version", "", "target version (YYYYMMDDHHMMSS) for -cmd=to")
	flag.Parse()

	source := migrate.Migrations()
	if *dir != "" {
		source = os.DirFS(*dir)
	}

	// create and validate never touch the database.
	switch *cmd {
	case "create":
		outDir := *dir
		if outDir == "" {
			outDir = migrate.DefaultDir
		}
		if *name == "" {
			fail(ctx, logg, "missing -name for create", nil)
		}
		path, err := migrate.Create(outDir, *name, time.Now())
		if err != nil {
			fail(ctx, logg, "create migration", err)
		}
		fmt.Println(path)
		return
	case "validate":
		if err := migrate.Validate(source); err != nil {
			fail(ctx, logg, "migrations are invalid", err)
		}
		fmt.Println("migrations valid")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fail(ctx, logg, "load config", err)
	}
	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
		Fields:      map[string]string{"env": cfg.App.Env},
	})
	ctx = logg.WithField(ctx, "cmd", *cmd)

	if cfg.FeatureFlags.UseSQLite {
		fail(ctx, logg, "sql migrations target postgres; the api auto-migrates sqlite from its models", nil)
	}

	conn, err := migrate.OpenPostgres(ctx, cfg.DB.DSN)
	if err != nil {
		fail(ctx, logg, "open database", err)
	}
	defer conn.Close()

	runner, err := migrate.NewRunner(conn, goose.DialectPostgres, source, logg)
	if err != nil {
		fail(ctx, logg, "prepare migrations", err)
	}

	if err := run(ctx, runner, *cmd, *target); err != nil {
		fail(ctx, logg, "migrate "+*cmd, err)
	}
}

func run(ctx context.Context, runner *migrate.Runner, cmd, target string) error {
	switch cmd {
	case "up":
		_, err := runner.Up(ctx)
		return err
	case "down":
		return runner.Down(ctx)
	case "version":
		v, err := runner.Version(ctx)
		if err == nil {
			fmt.Println(v)
		}
		return err
	case "to":
		if target == "" {
			return fmt.Errorf("missing -version")
		}
		return runner.MigrateTo(ctx, target)
	case "status":
		statuses, err := runner.Status(ctx)
		if err != nil {
			return err
		}
		printStatus(statuses)
		return nil
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func printStatus(statuses []*goose.MigrationStatus) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tSTATE\tAPPLIED AT\tFILE")
	for _, st := range statuses {
		applied := "-"
		if !st.AppliedAt.IsZero() {
			applied = st.AppliedAt.UTC().Format(time.RFC3339)
		}
		var (
			version int64
			file    string
		)
		if st.Source != nil {
			version, file = st.Source.Version, st.Source.Path
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", version, st.State, applied, file)
	}
	_ = w.Flush()
}

func fail(ctx context.Context, logg *logger.Logger, msg string, err error) {
	if err == nil {
		err = errors.New(msg)
	}
	logg.Error(ctx, msg, err)
	os.Exit(1)
}
