package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

func TestInvoice_Editable(t *testing.T) {
	cases := map[string]bool{
		entity.InvoiceStatusDraft:   true,
		entity.InvoiceStatusSent:    true,
		entity.InvoiceStatusPartial: false,
		entity.InvoiceStatusPaid:    false,
	}
	for status, want := range cases {
		inv := &entity.Invoice{Status: status}
		assert.Equal(t, want, inv.Editable(), "estado %s", status)
	}
}

func TestInvoice_IsOverdue(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	ayer := now.AddDate(0, 0, -1)
	manana := now.AddDate(0, 0, 1)

	inv := &entity.Invoice{Status: entity.InvoiceStatusSent, DueDate: &ayer}
	assert.True(t, inv.IsOverdue(now))

	inv.DueDate = &manana
	assert.False(t, inv.IsOverdue(now))

	inv.DueDate = nil
	assert.False(t, inv.IsOverdue(now), "sin vencimiento nunca está vencida")

	// Una factura pagada no se marca vencida aunque el plazo haya pasado.
	inv = &entity.Invoice{Status: entity.InvoiceStatusPaid, DueDate: &ayer}
	assert.False(t, inv.IsOverdue(now))
}
