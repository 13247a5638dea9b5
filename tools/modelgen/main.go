package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gen"
	"gorm.io/gorm"
)

// Tables owned by the grid server. schema_migrations is bookkeeping and is
// never modelled.
const defaultTables = "harvest_events,terrain_maps"

func main() {
	var dsn, out, tables string
	flag.StringVar(&dsn, "dsn", os.Getenv("GRID_DB_DSN"), "postgres dsn")
	flag.StringVar(&out, "out", "internal/adapter/repo/gorm/model", "output dir for generated models")
	flag.StringVar(&tables, "tables", defaultTables, "comma separated tables to model")
	flag.Parse()

	if dsn == "" {
		log.Fatal("missing --dsn or GRID_DB_DSN")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:       out,
		ModelPkgPath:  "model",
		Mode:          gen.WithoutContext,
		FieldNullable: false,
	})
	g.UseDB(db)
	n := 0
	for _, table := range strings.Split(tables, ",") {
		table = strings.TrimSpace(table)
		if table == "" {
			continue
		}
		g.GenerateModel(table)
		n++
	}
	g.Execute()

	fmt.Printf("generated %d gorm models at %s\n", n, out)
}
