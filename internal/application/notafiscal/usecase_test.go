package notafiscal_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almoxpro/almox-api/internal/application/notafiscal"
	"github.com/almoxpro/almox-api/internal/domain"
	"github.com/almoxpro/almox-api/internal/domain/entity"
	"github.com/almoxpro/almox-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória com semântica transacional (igual aos testes de
// transferência): o runner clona o estado e só promove a cópia no sucesso.
// ──────────────────────────────────────────────────────────────────────────────

type memState struct {
	notas    map[string]*entity.NotaFiscal
	products map[string]*entity.Product
	audits   []*entity.AuditEntry
	consumos []*entity.ConsumoDireto
}

func newMemState() *memState {
	return &memState{
		notas:    make(map[string]*entity.NotaFiscal),
		products: make(map[string]*entity.Product),
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for id, n := range s.notas {
		c.notas[id] = cloneNota(n)
	}
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	c.audits = append(c.audits, s.audits...)
	c.consumos = append(c.consumos, s.consumos...)
	return c
}

func cloneNota(n *entity.NotaFiscal) *entity.NotaFiscal {
	cp := *n
	cp.Items = append([]entity.NotaFiscalItem(nil), n.Items...)
	if n.ProcessedAt != nil {
		t := *n.ProcessedAt
		cp.ProcessedAt = &t
	}
	return &cp
}

type fakeNotaRepo struct{ s *memState }

func (r *fakeNotaRepo) Create(n *entity.NotaFiscal) error {
	r.s.notas[n.ID] = cloneNota(n)
	return nil
}

func (r *fakeNotaRepo) GetByID(id string) (*entity.NotaFiscal, error) {
	n, ok := r.s.notas[id]
	if !ok {
		return nil, nil
	}
	return cloneNota(n), nil
}

func (r *fakeNotaRepo) GetByIDForUpdate(id string) (*entity.NotaFiscal, error) {
	return r.GetByID(id)
}

func (r *fakeNotaRepo) GetByAccessKey(accessKey string) (*entity.NotaFiscal, error) {
	for _, n := range r.s.notas {
		if n.AccessKey == accessKey {
			return cloneNota(n), nil
		}
	}
	return nil, nil
}

func (r *fakeNotaRepo) UpdateProcessing(n *entity.NotaFiscal) error {
	stored, ok := r.s.notas[n.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = n.Status
	stored.ProcessingType = n.ProcessingType
	stored.ProcessedBy = n.ProcessedBy
	stored.ProcessedAt = n.ProcessedAt
	stored.UpdatedAt = n.UpdatedAt
	return nil
}

func (r *fakeNotaRepo) UpdateItemBinding(itemID, productID string) error {
	for _, n := range r.s.notas {
		for i := range n.Items {
			if n.Items[i].ID == itemID {
				n.Items[i].BoundProductID = productID
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (r *fakeNotaRepo) CreateConsumption(c *entity.ConsumoDireto) error {
	r.s.consumos = append(r.s.consumos, c)
	return nil
}

func (r *fakeNotaRepo) ListByStatus(status string, limit, offset int) ([]*entity.NotaFiscal, error) {
	var out []*entity.NotaFiscal
	for _, n := range r.s.notas {
		if n.Status == status {
			out = append(out, cloneNota(n))
		}
	}
	return out, nil
}

type fakeProductRepo struct{ s *memState }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) GetByMaterialAndDeposit(materialCode, depositID string) (*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) GetByMaterialAndDepositForUpdate(materialCode, depositID string) (*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) UpdateQuantity(productID string, quantity decimal.Decimal) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	return nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error { return nil }

func (r *fakeProductRepo) Search(term, depositID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) ListByDeposit(depositID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) ListBelowMinimum(depositID string) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Delete(id string) error { return nil }

type fakeAuditRepo struct{ s *memState }

func (r *fakeAuditRepo) Append(e *entity.AuditEntry) error {
	r.s.audits = append(r.s.audits, e)
	return nil
}

func (r *fakeAuditRepo) ListByKind(kind string, from, to *time.Time, limit, offset int) ([]*entity.AuditEntry, error) {
	return nil, nil
}

func (r *fakeAuditRepo) ListByReference(referenceID string) ([]*entity.AuditEntry, error) {
	return nil, nil
}

type fakeCostCenterRepo struct{ centers map[string]*entity.CostCenter }

func (r *fakeCostCenterRepo) Create(c *entity.CostCenter) error {
	r.centers[c.ID] = c
	return nil
}

func (r *fakeCostCenterRepo) GetByID(id string) (*entity.CostCenter, error) {
	return r.centers[id], nil
}

func (r *fakeCostCenterRepo) List() ([]*entity.CostCenter, error) { return nil, nil }

type fakeNotaTxRunner struct{ state *memState }

func (f *fakeNotaTxRunner) RunNota(ctx context.Context, fn func(
	notaRepo repository.NotaFiscalRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditRepository,
) error) error {
	work := f.state.clone()
	err := fn(&fakeNotaRepo{s: work}, &fakeProductRepo{s: work}, &fakeAuditRepo{s: work})
	if err != nil {
		return err
	}
	*f.state = *work
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Cenário base: nota pendente com dois itens e dois produtos no estoque.
// ──────────────────────────────────────────────────────────────────────────────

const (
	notaID    = "nota-1"
	itemCabo  = "item-cabo"
	itemFita  = "item-fita"
	prodCabo  = "prod-cabo"
	prodFita  = "prod-fita"
	centerEng = "cc-engenharia"
	centerMan = "cc-manutencao"
)

func testIdentity() entity.Identity {
	return entity.Identity{UserID: "user-1", Name: "Maria Silva", Role: entity.RoleAlmoxarife, Unit: "Matriz"}
}

func newFixture() (*notafiscal.ProcessNotaUseCase, *memState) {
	state := newMemState()
	state.notas[notaID] = &entity.NotaFiscal{
		ID:         notaID,
		Number:     "12345",
		Supplier:   "Elétrica Brasil LTDA",
		AccessKey:  "35240812345678000190550010000123451000012345",
		TotalValue: decimal.NewFromFloat(275.00),
		Status:     entity.NotaStatusPendente,
		Items: []entity.NotaFiscalItem{
			{
				ID:           itemCabo,
				NotaFiscalID: notaID,
				Code:         "CB-10",
				Description:  "Cabo Flexível 2,5mm",
				Quantity:     decimal.NewFromInt(50),
				Unit:         "M",
				UnitValue:    decimal.NewFromFloat(3.50),
				TotalValue:   decimal.NewFromFloat(175.00),
			},
			{
				ID:           itemFita,
				NotaFiscalID: notaID,
				Code:         "FT-01",
				Description:  "Fita Isolante 19mm",
				Quantity:     decimal.NewFromInt(20),
				Unit:         "UN",
				UnitValue:    decimal.NewFromFloat(5.00),
				TotalValue:   decimal.NewFromFloat(100.00),
			},
		},
	}
	state.products[prodCabo] = &entity.Product{
		ID: prodCabo, MaterialCode: "MAT-CB10", Name: "Cabo Flexível 2,5mm",
		Unit: "M", DepositID: "dep-central", Quantity: decimal.NewFromInt(100),
	}
	state.products[prodFita] = &entity.Product{
		ID: prodFita, MaterialCode: "MAT-FT01", Name: "Fita Isolante 19mm",
		Unit: "UN", DepositID: "dep-central", Quantity: decimal.NewFromInt(30),
	}

	centers := &fakeCostCenterRepo{centers: map[string]*entity.CostCenter{
		centerEng: {ID: centerEng, Name: "Engenharia", UnitName: "Matriz"},
		centerMan: {ID: centerMan, Name: "Manutenção", UnitName: "Matriz"},
	}}
	runner := &fakeNotaTxRunner{state: state}
	uc := notafiscal.NewProcessNotaUseCase(runner, &fakeNotaRepo{s: state}, centers)
	return uc, state
}

func allBindings() []notafiscal.BindingDTO {
	return []notafiscal.BindingDTO{
		{ItemID: itemCabo, ProductID: prodCabo},
		{ItemID: itemFita, ProductID: prodFita},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Processamento para estoque
// ──────────────────────────────────────────────────────────────────────────────

// Todos os itens vinculados: incrementa cada produto, marca a nota como
// processada_estoque e grava um lançamento por item mais o resumo.
func TestProcessToStock_IncrementaEstoqueETransiciona(t *testing.T) {
	uc, state := newFixture()

	nota, err := uc.ProcessToStock(context.Background(), notaID, allBindings(), testIdentity())
	require.NoError(t, err)

	assert.Equal(t, entity.NotaStatusProcessadaEstoque, nota.Status)
	assert.Equal(t, entity.ProcessamentoEstoque, nota.ProcessingType)
	assert.Equal(t, "user-1", nota.ProcessedBy)
	require.NotNil(t, nota.ProcessedAt)

	assert.True(t, state.products[prodCabo].Quantity.Equal(decimal.NewFromInt(150)), "100 + 50 do item da nota")
	assert.True(t, state.products[prodFita].Quantity.Equal(decimal.NewFromInt(50)), "30 + 20 do item da nota")

	stored := state.notas[notaID]
	assert.Equal(t, entity.NotaStatusProcessadaEstoque, stored.Status)
	assert.Equal(t, prodCabo, stored.Items[0].BoundProductID)
	assert.Equal(t, prodFita, stored.Items[1].BoundProductID)

	// Dois lançamentos entrada_estoque + um resumo.
	require.Len(t, state.audits, 3)
	assert.Equal(t, entity.AuditKindEntradaEstoque, state.audits[0].Kind)
	assert.Equal(t, entity.AuditKindEntradaEstoque, state.audits[1].Kind)
	resumo := state.audits[2]
	assert.Equal(t, entity.AuditKindResumoNota, resumo.Kind)
	assert.True(t, resumo.TotalValue.Equal(decimal.NewFromFloat(275.00)), "o resumo carrega o valor total da nota")
}

// Item sem vínculo rejeita a nota inteira antes de qualquer escrita: estoque,
// status e relatório ficam intactos.
func TestProcessToStock_ItemSemVinculoNaoTemEfeito(t *testing.T) {
	uc, state := newFixture()

	partial := []notafiscal.BindingDTO{{ItemID: itemCabo, ProductID: prodCabo}}
	_, err := uc.ProcessToStock(context.Background(), notaID, partial, testIdentity())
	require.ErrorIs(t, err, domain.ErrUnboundItems)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.True(t, state.products[prodCabo].Quantity.Equal(decimal.NewFromInt(100)), "estoque não pode mudar")
	assert.Equal(t, entity.NotaStatusPendente, state.notas[notaID].Status)
	assert.Empty(t, state.notas[notaID].Items[0].BoundProductID)
	assert.Empty(t, state.audits)
}

// Nota já processada é terminal: o reenvio falha e não duplica o efeito no
// estoque nem no relatório.
func TestProcessToStock_NotaJaProcessadaEhTerminal(t *testing.T) {
	uc, state := newFixture()

	_, err := uc.ProcessToStock(context.Background(), notaID, allBindings(), testIdentity())
	require.NoError(t, err)
	auditsAfterFirst := len(state.audits)

	_, err = uc.ProcessToStock(context.Background(), notaID, allBindings(), testIdentity())
	require.ErrorIs(t, err, domain.ErrAlreadyProcessed)

	assert.True(t, state.products[prodCabo].Quantity.Equal(decimal.NewFromInt(150)),
		"o incremento não pode aplicar duas vezes")
	assert.Len(t, state.audits, auditsAfterFirst, "o reenvio não pode gravar novos lançamentos")
}

// Processada para consumo também bloqueia o processamento para estoque.
func TestProcessToStock_AposConsumoFalha(t *testing.T) {
	uc, state := newFixture()

	_, err := uc.ProcessToConsumption(context.Background(), notaID, []string{centerEng}, "", testIdentity())
	require.NoError(t, err)

	_, err = uc.ProcessToStock(context.Background(), notaID, allBindings(), testIdentity())
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	assert.Equal(t, entity.NotaStatusProcessadaConsumo, state.notas[notaID].Status)
}

func TestProcessToStock_NotaInexistente(t *testing.T) {
	uc, _ := newFixture()
	_, err := uc.ProcessToStock(context.Background(), "nota-fantasma", allBindings(), testIdentity())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProcessToStock_SemIdentidade(t *testing.T) {
	uc, _ := newFixture()
	_, err := uc.ProcessToStock(context.Background(), notaID, allBindings(), entity.Identity{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// Processamento para consumo direto
// ──────────────────────────────────────────────────────────────────────────────

// Consumo direto: nenhum produto muda, o registro de consumo é criado com o
// snapshot dos centros e cada item gera um lançamento atribuído ao primeiro
// centro selecionado.
func TestProcessToConsumption_NaoTocaEstoque(t *testing.T) {
	uc, state := newFixture()

	nota, err := uc.ProcessToConsumption(context.Background(), notaID,
		[]string{centerEng, centerMan}, "compra urgente", testIdentity())
	require.NoError(t, err)

	assert.Equal(t, entity.NotaStatusProcessadaConsumo, nota.Status)
	assert.Equal(t, entity.ProcessamentoConsumo, nota.ProcessingType)

	assert.True(t, state.products[prodCabo].Quantity.Equal(decimal.NewFromInt(100)),
		"consumo direto não altera o estoque")
	assert.True(t, state.products[prodFita].Quantity.Equal(decimal.NewFromInt(30)))

	require.Len(t, state.consumos, 1)
	consumo := state.consumos[0]
	assert.Equal(t, notaID, consumo.NotaFiscalID)
	assert.Equal(t, "compra urgente", consumo.Observations)
	assert.Equal(t, "Maria Silva", consumo.Responsible)
	require.Len(t, consumo.CostCenters, 2)
	assert.Equal(t, "Engenharia", consumo.CostCenters[0].Name)

	// Dois lançamentos de consumo + resumo, todos com o primeiro centro.
	require.Len(t, state.audits, 3)
	for _, e := range state.audits[:2] {
		assert.Equal(t, entity.AuditKindEntradaConsumo, e.Kind)
		assert.Equal(t, "Engenharia", e.CostCenter)
		assert.Equal(t, "Consumo Direto", e.Location)
	}
	assert.Equal(t, entity.AuditKindResumoNota, state.audits[2].Kind)
}

func TestProcessToConsumption_SemCentroDeCusto(t *testing.T) {
	uc, _ := newFixture()
	_, err := uc.ProcessToConsumption(context.Background(), notaID, nil, "", testIdentity())
	require.ErrorIs(t, err, domain.ErrNoCostCenter)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProcessToConsumption_CentroInexistente(t *testing.T) {
	uc, _ := newFixture()
	_, err := uc.ProcessToConsumption(context.Background(), notaID, []string{"cc-fantasma"}, "", testIdentity())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProcessToConsumption_NotaJaProcessadaEhTerminal(t *testing.T) {
	uc, state := newFixture()

	_, err := uc.ProcessToConsumption(context.Background(), notaID, []string{centerEng}, "", testIdentity())
	require.NoError(t, err)

	_, err = uc.ProcessToConsumption(context.Background(), notaID, []string{centerMan}, "", testIdentity())
	require.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	assert.Len(t, state.consumos, 1, "o reenvio não pode duplicar o registro de consumo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ingestão
// ──────────────────────────────────────────────────────────────────────────────

func TestIngest_ChaveDeAcessoDuplicada(t *testing.T) {
	uc, state := newFixture()

	// XML com a mesma chave de acesso da nota já ingerida no fixture.
	xml := sampleNFe(state.notas[notaID].AccessKey)
	_, err := uc.Ingest(context.Background(), []byte(xml), testIdentity())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestIngest_NotaNova(t *testing.T) {
	uc, state := newFixture()

	xml := sampleNFe("35240898765432000101550010000999991000099999")
	nota, err := uc.Ingest(context.Background(), []byte(xml), testIdentity())
	require.NoError(t, err)

	assert.NotEmpty(t, nota.ID)
	assert.Equal(t, entity.NotaStatusPendente, nota.Status)
	assert.Contains(t, state.notas, nota.ID)
	for _, item := range nota.Items {
		assert.NotEmpty(t, item.ID)
		assert.Equal(t, nota.ID, item.NotaFiscalID)
	}
}

func TestIngest_SemIdentidade(t *testing.T) {
	uc, _ := newFixture()
	_, err := uc.Ingest(context.Background(), []byte(sampleNFe("x")), entity.Identity{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
