package main

import (
	"flag"
	"log"
	"strings"

	"course_market/internal/pkg/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	down := flag.Bool("down", false, "回滚所有迁移而不是执行迁移")
	flag.Parse()

	config.LoadConfig()
	cfg := config.GlobalConfig.Database
	dsn := "postgres://" + cfg.User + ":" + cfg.Password + "@" + cfg.Host + ":" + cfg.Port + "/" + cfg.DBName + "?sslmode=" + cfg.SSLMode

	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		log.Fatal(err)
	}

	if *down {
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			log.Fatal(err)
		}
		log.Println("Rollback successful")
		return
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		// dirty 状态先强制回到当前版本再重试
		if strings.Contains(err.Error(), "Dirty database version") {
			version, _, verr := m.Version()
			if verr != nil {
				log.Fatal(verr)
			}
			log.Printf("Database is dirty, forcing version %d...", version)
			if err := m.Force(int(version)); err != nil {
				log.Fatal("Failed to force version:", err)
			}
			if err := m.Up(); err != nil && err != migrate.ErrNoChange {
				log.Fatal(err)
			}
		} else {
			log.Fatal(err)
		}
	}

	log.Println("Migration successful")
}
