package notafiscal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/almoxpro/almox-api/internal/domain"
	"github.com/almoxpro/almox-api/internal/domain/entity"
	"github.com/almoxpro/almox-api/internal/domain/repository"
)

// ProcessNotaUseCase concilia notas fiscais ingeridas com o estoque:
// ingestão do XML, processamento para estoque (incrementa os produtos
// vinculados) ou registro de consumo direto (sem efeito no estoque).
// Toda mutação roda em transação única com bloqueio de linha.
type ProcessNotaUseCase struct {
	txRunner       TxRunner
	notaRepo       repository.NotaFiscalRepository
	costCenterRepo repository.CostCenterRepository
}

// NewProcessNotaUseCase constrói o caso de uso.
func NewProcessNotaUseCase(
	txRunner TxRunner,
	notaRepo repository.NotaFiscalRepository,
	costCenterRepo repository.CostCenterRepository,
) *ProcessNotaUseCase {
	return &ProcessNotaUseCase{
		txRunner:       txRunner,
		notaRepo:       notaRepo,
		costCenterRepo: costCenterRepo,
	}
}

// Ingest faz o parse do XML da NF-e e persiste a nota como pendente.
// Rejeita chave de acesso já ingerida (ErrDuplicate).
func (uc *ProcessNotaUseCase) Ingest(ctx context.Context, xmlData []byte, identity entity.Identity) (*entity.NotaFiscal, error) {
	if identity.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	nota, err := ParseNFe(xmlData)
	if err != nil {
		return nil, err
	}

	if nota.AccessKey != "" {
		existing, err := uc.notaRepo.GetByAccessKey(nota.AccessKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}

	now := time.Now()
	nota.ID = uuid.New().String()
	nota.CreatedAt = now
	nota.UpdatedAt = now
	for i := range nota.Items {
		nota.Items[i].ID = uuid.New().String()
		nota.Items[i].NotaFiscalID = nota.ID
	}
	if err := uc.notaRepo.Create(nota); err != nil {
		return nil, err
	}
	return nota, nil
}

// BindingDTO vincula um item da nota a um produto do estoque.
type BindingDTO struct {
	ItemID    string
	ProductID string
}

// ProcessToStock processa a nota para estoque: exige todos os itens
// vinculados (tudo-ou-nada, verificado antes de qualquer escrita), incrementa
// cada produto vinculado sob bloqueio de linha, transiciona a nota e grava um
// lançamento entrada_estoque por item mais um resumo. Nota já processada
// falha com ErrAlreadyProcessed sem efeito algum.
func (uc *ProcessNotaUseCase) ProcessToStock(ctx context.Context, notaID string, bindings []BindingDTO, identity entity.Identity) (*entity.NotaFiscal, error) {
	if identity.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	if notaID == "" {
		return nil, domain.ErrInvalidInput
	}

	bound := make(map[string]string, len(bindings))
	for _, b := range bindings {
		if b.ItemID == "" || b.ProductID == "" {
			return nil, domain.ErrInvalidInput
		}
		bound[b.ItemID] = b.ProductID
	}

	var processed *entity.NotaFiscal
	err := uc.txRunner.RunNota(ctx, func(
		notaRepo repository.NotaFiscalRepository,
		productRepo repository.ProductRepository,
		auditRepo repository.AuditRepository,
	) error {
		nota, err := notaRepo.GetByIDForUpdate(notaID)
		if err != nil {
			return err
		}
		if nota == nil {
			return domain.ErrNotFound
		}

		// Vinculação completa antes de qualquer escrita: item sem produto
		// bloqueia o commit inteiro.
		for _, item := range nota.Items {
			if _, ok := bound[item.ID]; !ok {
				return domain.ErrUnboundItems
			}
		}

		now := time.Now()
		if err := nota.Transition(entity.NotaStatusProcessadaEstoque, entity.ProcessamentoEstoque, identity.UserID, now); err != nil {
			return err
		}

		for i := range nota.Items {
			item := &nota.Items[i]
			productID := bound[item.ID]

			product, err := productRepo.GetByIDForUpdate(productID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if err := productRepo.UpdateQuantity(product.ID, product.Quantity.Add(item.Quantity)); err != nil {
				return err
			}

			item.BoundProductID = productID
			if err := notaRepo.UpdateItemBinding(item.ID, productID); err != nil {
				return err
			}

			entry := &entity.AuditEntry{
				ID:           uuid.New().String(),
				Kind:         entity.AuditKindEntradaEstoque,
				ReferenceID:  nota.ID,
				ProductID:    product.ID,
				MaterialCode: product.MaterialCode,
				ProductName:  product.Name,
				Unit:         item.Unit,
				Quantity:     item.Quantity,
				UnitValue:    item.UnitValue,
				TotalValue:   item.TotalValue,
				Location:     "Estoque Principal",
				Actor:        identity,
				CreatedAt:    now,
			}
			if err := auditRepo.Append(entry); err != nil {
				return err
			}
		}

		if err := notaRepo.UpdateProcessing(nota); err != nil {
			return err
		}
		if err := auditRepo.Append(uc.summaryEntry(nota, "Estoque Principal", "Estoque", identity, now)); err != nil {
			return err
		}
		processed = nota
		return nil
	})
	if err != nil {
		return nil, err
	}
	return processed, nil
}

// ProcessToConsumption registra a nota como consumo direto: exige ao menos um
// centro de custo, não toca em nenhum produto, transiciona a nota, persiste o
// registro de consumo e grava um lançamento entrada_consumo_direto por item
// (atribuído ao primeiro centro selecionado) mais um resumo.
func (uc *ProcessNotaUseCase) ProcessToConsumption(ctx context.Context, notaID string, costCenterIDs []string, observations string, identity entity.Identity) (*entity.NotaFiscal, error) {
	if identity.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	if notaID == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(costCenterIDs) == 0 {
		return nil, domain.ErrNoCostCenter
	}

	centers := make([]entity.CostCenter, 0, len(costCenterIDs))
	for _, id := range costCenterIDs {
		center, err := uc.costCenterRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if center == nil {
			return nil, domain.ErrNotFound
		}
		centers = append(centers, *center)
	}

	var processed *entity.NotaFiscal
	err := uc.txRunner.RunNota(ctx, func(
		notaRepo repository.NotaFiscalRepository,
		_ repository.ProductRepository,
		auditRepo repository.AuditRepository,
	) error {
		nota, err := notaRepo.GetByIDForUpdate(notaID)
		if err != nil {
			return err
		}
		if nota == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		if err := nota.Transition(entity.NotaStatusProcessadaConsumo, entity.ProcessamentoConsumo, identity.UserID, now); err != nil {
			return err
		}

		consumo := &entity.ConsumoDireto{
			ID:           uuid.New().String(),
			NotaFiscalID: nota.ID,
			NotaNumber:   nota.Number,
			Supplier:     nota.Supplier,
			SupplierCNPJ: nota.SupplierCNPJ,
			CostCenters:  centers,
			Responsible:  identity.Name,
			Observations: observations,
			CreatedBy:    identity.UserID,
			CreatedAt:    now,
		}
		if err := notaRepo.CreateConsumption(consumo); err != nil {
			return err
		}

		// Atribuição por item: primeiro centro de custo selecionado.
		first := centers[0]
		for _, item := range nota.Items {
			entry := &entity.AuditEntry{
				ID:           uuid.New().String(),
				Kind:         entity.AuditKindEntradaConsumo,
				ReferenceID:  nota.ID,
				MaterialCode: item.Code,
				ProductName:  item.Description,
				Unit:         item.Unit,
				Quantity:     item.Quantity,
				UnitValue:    item.UnitValue,
				TotalValue:   item.TotalValue,
				Location:     "Consumo Direto",
				CostCenter:   first.Name,
				Actor:        identity,
				CreatedAt:    now,
			}
			if err := auditRepo.Append(entry); err != nil {
				return err
			}
		}

		if err := notaRepo.UpdateProcessing(nota); err != nil {
			return err
		}
		if err := auditRepo.Append(uc.summaryEntry(nota, "Consumo Direto", first.Name, identity, now)); err != nil {
			return err
		}
		processed = nota
		return nil
	})
	if err != nil {
		return nil, err
	}
	return processed, nil
}

// summaryEntry monta o lançamento-resumo da nota processada.
func (uc *ProcessNotaUseCase) summaryEntry(nota *entity.NotaFiscal, location, costCenter string, identity entity.Identity, now time.Time) *entity.AuditEntry {
	return &entity.AuditEntry{
		ID:          uuid.New().String(),
		Kind:        entity.AuditKindResumoNota,
		ReferenceID: nota.ID,
		ProductName: nota.Supplier,
		Quantity:    decimal.Zero,
		UnitValue:   decimal.Zero,
		TotalValue:  nota.TotalValue,
		Location:    location,
		CostCenter:  costCenter,
		Actor:       identity,
		CreatedAt:   now,
	}
}

// ListByStatus devolve as notas no status informado (pendentes, processadas
// para estoque ou para consumo), mais recentes primeiro.
func (uc *ProcessNotaUseCase) ListByStatus(_ context.Context, status string, limit, offset int) ([]*entity.NotaFiscal, error) {
	switch status {
	case entity.NotaStatusPendente, entity.NotaStatusProcessadaEstoque, entity.NotaStatusProcessadaConsumo:
		return uc.notaRepo.ListByStatus(status, limit, offset)
	default:
		return nil, domain.ErrInvalidInput
	}
}

// GetByID devolve uma nota com seus itens.
func (uc *ProcessNotaUseCase) GetByID(_ context.Context, id string) (*entity.NotaFiscal, error) {
	nota, err := uc.notaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if nota == nil {
		return nil, domain.ErrNotFound
	}
	return nota, nil
}
