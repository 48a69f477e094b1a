package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestReadEntries(t *testing.T) {
	in := "product,supplier,quantity,unitPrice,paymentStatus,amountPaid,deliveryDate,notes\n" +
		"Rice,Acme,10,80,Partial,300,2024-03-01,first load\n" +
		"p-2,s-1,5,12.5,,,,\n"

	entries, err := readEntries(strings.NewReader(in), false)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	e := entries[0]
	assert.Equal(t, "Rice", e.ProductID)
	assert.Equal(t, "Acme", e.SupplierID)
	assert.Equal(t, 10, e.Quantity)
	assert.True(t, decimal.NewFromInt(80).Equal(e.UnitPrice))
	assert.Equal(t, "Partial", e.PaymentStatus)
	require.NotNil(t, e.AmountPaid)
	assert.True(t, decimal.NewFromInt(300).Equal(*e.AmountPaid))
	require.NotNil(t, e.DeliveryDate)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), e.DeliveryDate.Time)
	assert.Equal(t, "first load", e.Notes)

	assert.Nil(t, entries[1].AmountPaid)
	assert.Nil(t, entries[1].TotalAmount)
	assert.Nil(t, entries[1].DeliveryDate)
}

func TestReadEntries_Latin1(t *testing.T) {
	raw := "product,supplier,quantity,unitPrice\nCafé,Ñandú SA,1,2\n"
	encoded, err := charmap.ISO8859_1.NewEncoder().String(raw)
	require.NoError(t, err)

	entries, err := readEntries(bytes.NewBufferString(encoded), true)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Café", entries[0].ProductID)
	assert.Equal(t, "Ñandú SA", entries[0].SupplierID)
}

func TestReadEntries_Errors(t *testing.T) {
	_, err := readEntries(strings.NewReader("product,quantity\nx,1\n"), false)
	assert.ErrorContains(t, err, `"supplier"`)

	_, err = readEntries(strings.NewReader("product,supplier,quantity,unitPrice\nx,y,diez,1\n"), false)
	assert.ErrorContains(t, err, "línea 2")

	_, err = readEntries(strings.NewReader("product,supplier,quantity,unitPrice,deliveryDate\nx,y,1,1,03/01/2024\n"), false)
	assert.ErrorContains(t, err, "YYYY-MM-DD")
}
