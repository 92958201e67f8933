package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const detailHTML = `
<html><body>
<h2>Detalle de Solicitud</h2>
<div class="info-general">
  <p>Correlativo: SOL-2026-00123</p>
  <p>Incidente: 45678</p>
  <p>Asunto: Pago por Sobrevivencia</p>
  <p>Monto: S/ 8,500.00</p>
  <p>Estado: Pendiente de Aprobación</p>
  <p>Fecha Creación: 15/01/2026</p>
</div>
<h3>Datos (2 registros)</h3>
<table><tbody><tr><td>Juan Perez</td><td>45678912</td><td>BCP</td></tr></tbody></table>
<h3>Documentos</h3>
<h3>Observaciones</h3>
<h3>Distribución</h3>
</body></html>`

func TestParseDetail(t *testing.T) {
	view, err := ParseDetail(detailHTML)
	require.NoError(t, err)

	assert.Equal(t, "SOL-2026-00123", view.Correlative)
	assert.Equal(t, "45678", view.Incident)
	assert.Equal(t, "Pago por Sobrevivencia", view.Subject)
	assert.Equal(t, "S/ 8,500.00", view.Amount)
	assert.Equal(t, "Pendiente de Aprobación", view.State)
	assert.Equal(t, "15/01/2026", view.CreatedAt)
	assert.Equal(t, 2, view.DataRecords)
}

func TestParseDetail_Sections(t *testing.T) {
	view, err := ParseDetail(detailHTML)
	require.NoError(t, err)

	assert.True(t, view.HasSection("Datos"))
	assert.True(t, view.HasSection("documentos"))
	assert.True(t, view.HasSection("Observaciones"))
	assert.True(t, view.HasSection("Distribución"))
	assert.False(t, view.HasSection("Asientos"))
}

func TestParseDetail_MissingFields(t *testing.T) {
	view, err := ParseDetail(`<html><body><p>Cargando detalle de solicitud...</p></body></html>`)
	require.NoError(t, err)

	assert.Empty(t, view.Correlative)
	assert.Empty(t, view.State)
	assert.Zero(t, view.DataRecords)
	assert.Empty(t, view.Sections)
}
