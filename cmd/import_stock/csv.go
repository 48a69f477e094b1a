package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
)

// Columnas reconocidas en la cabecera; product, supplier, quantity y unitPrice son obligatorias.
var requiredColumns = []string{"product", "supplier", "quantity", "unitPrice"}

// readEntries lee entradas desde CSV con cabecera. product y supplier pueden ser ID o nombre;
// se resuelven después contra el registro.
func readEntries(r io.Reader, latin1 bool) ([]dto.CreateStockInRequest, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("falta la columna %q", name)
		}
	}

	var entries []dto.CreateStockInRequest
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		entry, err := parseEntry(get)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseEntry(get func(string) string) (dto.CreateStockInRequest, error) {
	e := dto.CreateStockInRequest{
		ProductID:     get("product"),
		SupplierID:    get("supplier"),
		PaymentStatus: get("paymentStatus"),
		Notes:         get("notes"),
	}
	qty, err := strconv.Atoi(get("quantity"))
	if err != nil {
		return e, fmt.Errorf("quantity: %w", err)
	}
	e.Quantity = qty
	if e.UnitPrice, err = decimal.NewFromString(get("unitPrice")); err != nil {
		return e, fmt.Errorf("unitPrice: %w", err)
	}
	if e.TotalAmount, err = optionalDecimal(get("totalAmount")); err != nil {
		return e, fmt.Errorf("totalAmount: %w", err)
	}
	if e.AmountPaid, err = optionalDecimal(get("amountPaid")); err != nil {
		return e, fmt.Errorf("amountPaid: %w", err)
	}
	if s := get("deliveryDate"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return e, fmt.Errorf("deliveryDate: use YYYY-MM-DD")
		}
		e.DeliveryDate = &dto.Date{Time: t}
	}
	return e, nil
}

func optionalDecimal(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
