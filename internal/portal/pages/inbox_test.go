package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interseguro-qa/paynova-e2e/internal/suite/money"
)

const inboxHTML = `<html><body>
<table class="solicitudes-table">
  <thead>
    <tr><th>Correlativo</th><th>Incidente</th><th>Memo</th><th>Monto</th><th>Moneda</th><th>Estado</th><th></th></tr>
  </thead>
  <tbody>
    <tr>
      <td>2025-VIDA-0441</td><td>633287</td><td>PAGO DE SOBREVIVENCIA</td>
      <td>800.00</td><td>Dolares</td><td>PENDIENTE</td>
      <td><button title="Ver Detalle">👁️</button></td>
    </tr>
    <tr>
      <td>2025-VIDA-0442</td><td>633288</td><td>RESCATE POLIZA</td>
      <td>25,000.00</td><td>Soles</td><td>OBSERVADO</td>
      <td><button title="Ver Detalle">👁️</button></td>
    </tr>
    <tr><td colspan="7">Mostrando 2 de 2 registros</td></tr>
  </tbody>
</table>
</body></html>`

func TestParseInbox(t *testing.T) {
	rows, err := ParseInbox(inboxHTML)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, InboxRow{
		Correlative: "2025-VIDA-0441",
		Incident:    "633287",
		Memo:        "PAGO DE SOBREVIVENCIA",
		Amount:      money.FromFloat(800),
		Currency:    "Dolares",
		State:       "PENDIENTE",
	}, rows[0])

	assert.Equal(t, money.FromFloat(25000), rows[1].Amount)
	assert.Equal(t, "OBSERVADO", rows[1].State)
}

func TestParseInbox_NoTable(t *testing.T) {
	_, err := ParseInbox("<html><body><p>Sin resultados</p></body></html>")
	assert.Error(t, err)
}

func TestParseInbox_BadAmount(t *testing.T) {
	html := `<table><tbody><tr>
	  <td>2025-VIDA-0441</td><td>1</td><td>MEMO</td>
	  <td>n/a</td><td>Soles</td><td>PENDIENTE</td>
	</tr></tbody></table>`

	_, err := ParseInbox(html)
	assert.Error(t, err)
}

func TestFindInboxRow(t *testing.T) {
	rows, err := ParseInbox(inboxHTML)
	require.NoError(t, err)

	row, ok := FindInboxRow(rows, "2025-VIDA-0442", "")
	require.True(t, ok)
	assert.Equal(t, "633288", row.Incident)

	// Incident alone is enough.
	row, ok = FindInboxRow(rows, "", "633287")
	require.True(t, ok)
	assert.Equal(t, "2025-VIDA-0441", row.Correlative)

	_, ok = FindInboxRow(rows, "2025-VIDA-9999", "000000")
	assert.False(t, ok)
}
