// Command migrate manages the database schema outside the server process.
// The API applies pending migrations at startup on its own; this tool exists
// for rollbacks and inspecting the current version.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"

	"hrsystem/internal/config"
	"hrsystem/migrations"
)

func main() {
	var steps int
	flag.IntVar(&steps, "steps", 0, "number of migrations to apply (down only)")
	flag.Parse()

	action := flag.Arg(0)
	if action == "" {
		action = "up"
	}

	cfg := config.Load()

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		logrus.Fatalf("migrations source: %v", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("migrate init: %v", err)
	}
	defer m.Close()

	switch action {
	case "up":
		err = m.Up()
	case "down":
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
	case "drop":
		err = m.Drop()
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil {
			logrus.Fatalf("version: %v", verr)
		}
		fmt.Printf("version=%d dirty=%v\n", version, dirty)
		return
	default:
		fmt.Fprintf(os.Stderr, "usage: migrate [-steps n] {up|down|drop|version}\n")
		os.Exit(2)
	}

	if err != nil {
		if err == migrate.ErrNoChange {
			logrus.Info("schema up to date")
			return
		}
		logrus.Fatalf("%s failed: %v", action, err)
	}
	logrus.Infof("%s complete", action)
}
