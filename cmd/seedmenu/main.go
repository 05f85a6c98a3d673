// Command seedmenu converts a menu spreadsheet into a SQL seed file for one tenant.
// Every item goes through the same VAT checks as the API; rows that fail are reported
// and left out.
// Usage: go run ./cmd/seedmenu -tenant <uuid> -in menu.xlsx
// Output: db/seeds/menu_items.sql
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"vatledger/internal/domain"
)

const batchSize = 200

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("seedmenu", flag.ContinueOnError)
	in := fs.String("in", "menu.xlsx", "menu workbook with Items and Components sheets")
	out := fs.String("out", "db/seeds/menu_items.sql", "SQL file to write")
	tenant := fs.String("tenant", "", "tenant UUID the items belong to")
	strict := fs.Bool("strict", false, "fail instead of skipping items that do not pass VAT checks")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tenantID, err := uuid.Parse(*tenant)
	if err != nil {
		return fmt.Errorf("-tenant must be a UUID: %w", err)
	}

	f, err := excelize.OpenFile(*in)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	items, rejects, err := readMenu(f, tenantID)
	if err != nil {
		return err
	}
	for _, r := range rejects {
		log.Printf("skipping %s", r)
	}
	if *strict && len(rejects) > 0 {
		return fmt.Errorf("%d items failed VAT checks", len(rejects))
	}

	file, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := writeSeed(file, items); err != nil {
		return err
	}

	log.Printf("Generated %d menu items (%d skipped) in %s", len(items), len(rejects), *out)
	return nil
}

func writeSeed(out io.Writer, items []domain.MenuItem) error {
	var b strings.Builder
	b.WriteString("-- Menu item seed data generated from Excel.\n")
	fmt.Fprintf(&b, "-- %d items in batches of %d.\n", len(items), batchSize)
	b.WriteString("BEGIN;\n\n")
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		if err := writeBatch(&b, items[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}
	b.WriteString("\nCOMMIT;\n")

	_, err := io.WriteString(out, b.String())
	return err
}
