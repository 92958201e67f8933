package correlation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractConfirmation(t *testing.T) {
	tests := []struct {
		name            string
		text            string
		wantCorrelative string
		wantIncident    string
	}{
		{
			name:            "colon separators",
			text:            "Solicitud registrada con éxito. Correlativo: 2025-VIDA-0441 Incidente: 633287",
			wantCorrelative: "2025-VIDA-0441",
			wantIncident:    "633287",
		},
		{
			name:            "whitespace separators and lowercase labels",
			text:            "correlativo  2025-RRHH-0100\nincidente  700112",
			wantCorrelative: "2025-RRHH-0100",
			wantIncident:    "700112",
		},
		{
			name:            "embedded in modal noise",
			text:            "✅ ÉXITO\nSe generó el correlativo: 2025-SINIESTROS-0012 con número de incidente: 98765. Presione Entendido.",
			wantCorrelative: "2025-SINIESTROS-0012",
			wantIncident:    "98765",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, ok := ExtractConfirmation(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.wantCorrelative, conf.Correlative)
			assert.Equal(t, tt.wantIncident, conf.Incident)
		})
	}
}

func TestExtractConfirmation_Incomplete(t *testing.T) {
	// Correlative without incident.
	_, ok := ExtractConfirmation("Correlativo: 2025-VIDA-0441")
	assert.False(t, ok)

	// Incident without correlative.
	_, ok = ExtractConfirmation("Incidente: 633287")
	assert.False(t, ok)

	// Neither.
	_, ok = ExtractConfirmation("La solicitud no pudo ser registrada")
	assert.False(t, ok)
}
