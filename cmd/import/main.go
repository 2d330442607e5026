// import carga compras o ventas en lote desde un CSV exportado de planilla.
//
// Uso: go run ./cmd/import -kind purchases -file compras.csv [-encoding latin1] [-sep ';']
// Cabeceras: sku,name,date,unit_cost,quantity (compras)
//            sku,name,marketplace,date,unit_price,quantity (ventas)
// Cada fila pasa por la misma validación que la API; las filas con error se
// informan y se omiten, el resto queda registrado.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/jhoicas/profit-ledger/internal/application/ledger"
	"github.com/jhoicas/profit-ledger/internal/infrastructure/storage"
	"github.com/jhoicas/profit-ledger/pkg/config"
	"github.com/jhoicas/profit-ledger/pkg/logger"
)

func main() {
	kind := flag.String("kind", kindPurchases, "purchases o sales")
	file := flag.String("file", "", "ruta del CSV")
	encoding := flag.String("encoding", "utf-8", "utf-8 o latin1")
	sep := flag.String("sep", ",", "separador de columnas")
	flag.Parse()

	if *file == "" || utf8.RuneCountInString(*sep) != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	base := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	log := base.Component("import")

	f, err := os.Open(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	sepRune, _ := utf8.DecodeRuneInString(*sep)
	reader, err := newReader(f, *encoding, sepRune)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rows, err := readRows(reader, *kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir almacén: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()

	uc := ledger.NewLedgerUseCase(backend.Purchases, backend.Sales, backend.Tx, base)

	imported, failed := 0, 0
	for _, r := range rows {
		if err := importRow(ctx, uc, *kind, r); err != nil {
			failed++
			log.Warn().Int("line", r.line).Err(err).Msg("fila omitida")
			continue
		}
		imported++
	}

	log.Info().Str("kind", *kind).Int("imported", imported).Int("failed", failed).Msg("importación terminada")
	if failed > 0 {
		// defer no corre con os.Exit
		backend.Close()
		os.Exit(1)
	}
}

func importRow(ctx context.Context, uc *ledger.LedgerUseCase, kind string, r row) error {
	if kind == kindSales {
		in, err := toSale(r)
		if err != nil {
			return err
		}
		_, err = uc.RecordSale(ctx, in)
		return err
	}
	in, err := toPurchase(r)
	if err != nil {
		return err
	}
	_, err = uc.RecordPurchase(ctx, in)
	return err
}
