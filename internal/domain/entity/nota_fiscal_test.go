package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almoxpro/almox-api/internal/domain"
	"github.com/almoxpro/almox-api/internal/domain/entity"
)

func TestTransition_PendenteParaEstoque(t *testing.T) {
	n := &entity.NotaFiscal{Status: entity.NotaStatusPendente}
	at := time.Now()

	err := n.Transition(entity.NotaStatusProcessadaEstoque, entity.ProcessamentoEstoque, "user-1", at)
	require.NoError(t, err)

	assert.Equal(t, entity.NotaStatusProcessadaEstoque, n.Status)
	assert.Equal(t, entity.ProcessamentoEstoque, n.ProcessingType)
	assert.Equal(t, "user-1", n.ProcessedBy)
	require.NotNil(t, n.ProcessedAt)
	assert.True(t, n.ProcessedAt.Equal(at))
}

func TestTransition_PendenteParaConsumo(t *testing.T) {
	n := &entity.NotaFiscal{Status: entity.NotaStatusPendente}

	err := n.Transition(entity.NotaStatusProcessadaConsumo, entity.ProcessamentoConsumo, "user-1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, entity.NotaStatusProcessadaConsumo, n.Status)
}

// Estados processados são terminais: qualquer nova transição falha sem
// alterar a nota.
func TestTransition_EstadoTerminal(t *testing.T) {
	n := &entity.NotaFiscal{Status: entity.NotaStatusPendente}
	first := time.Now()
	require.NoError(t, n.Transition(entity.NotaStatusProcessadaEstoque, entity.ProcessamentoEstoque, "user-1", first))

	err := n.Transition(entity.NotaStatusProcessadaConsumo, entity.ProcessamentoConsumo, "user-2", time.Now())
	require.ErrorIs(t, err, domain.ErrAlreadyProcessed)

	assert.Equal(t, entity.NotaStatusProcessadaEstoque, n.Status, "o estado não pode mudar")
	assert.Equal(t, "user-1", n.ProcessedBy, "o processador original não pode mudar")
	assert.True(t, n.ProcessedAt.Equal(first))
}

func TestTransition_DestinoInvalido(t *testing.T) {
	n := &entity.NotaFiscal{Status: entity.NotaStatusPendente}
	err := n.Transition("cancelada", "", "user-1", time.Now())
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.NotaStatusPendente, n.Status)
}
