package transfer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/almoxpro/almox-api/internal/domain"
	"github.com/almoxpro/almox-api/internal/domain/entity"
	"github.com/almoxpro/almox-api/internal/domain/repository"
)

// SubmitTransferUseCase move quantidades de produtos entre dois depósitos de
// forma transacional: bloqueio de linha (SELECT FOR UPDATE) na origem e no
// destino, débito/crédito na mesma transação e dois lançamentos de relatório
// (saída + entrada) por item. Falha em qualquer item desfaz o lote inteiro.
type SubmitTransferUseCase struct {
	txRunner    TxRunner
	depositRepo repository.DepositRepository
}

// NewSubmitTransferUseCase constrói o caso de uso.
func NewSubmitTransferUseCase(txRunner TxRunner, depositRepo repository.DepositRepository) *SubmitTransferUseCase {
	return &SubmitTransferUseCase{txRunner: txRunner, depositRepo: depositRepo}
}

// ItemInputDTO uma linha da transferência a submeter.
// AvailableAtSelection é o estoque visto pelo operador ao selecionar o
// produto; é gravado no histórico mas a validação usa a linha relida sob
// bloqueio, nunca este valor.
type ItemInputDTO struct {
	ProductID            string
	Quantity             decimal.Decimal
	AvailableAtSelection decimal.Decimal
}

// SubmitInputDTO entrada para submeter uma transferência.
type SubmitInputDTO struct {
	SourceDepositID      string
	DestinationDepositID string
	Observations         string
	Items                []ItemInputDTO
	Identity             entity.Identity
}

// Submit valida o lote, inicia a transação e aplica item a item:
// debita a origem, credita (ou cria) o registro de destino por
// (código de material, depósito destino) e grava saída + entrada no relatório.
// Devolve a transferência criada.
func (uc *SubmitTransferUseCase) Submit(ctx context.Context, input SubmitInputDTO) (*entity.Transfer, error) {
	if input.Identity.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	if len(input.Items) == 0 {
		return nil, domain.ErrEmptyItems
	}
	if input.SourceDepositID == "" || input.DestinationDepositID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.SourceDepositID == input.DestinationDepositID {
		return nil, domain.ErrSameDeposit
	}
	for _, item := range input.Items {
		if item.ProductID == "" {
			return nil, domain.ErrInvalidInput
		}
		if !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrNonPositiveQuantity
		}
	}

	source, err := uc.depositRepo.GetByID(input.SourceDepositID)
	if err != nil {
		return nil, err
	}
	destination, err := uc.depositRepo.GetByID(input.DestinationDepositID)
	if err != nil {
		return nil, err
	}
	if source == nil || destination == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	tr := &entity.Transfer{
		ID:                   uuid.New().String(),
		SourceDepositID:      source.ID,
		DestinationDepositID: destination.ID,
		SourceLabel:          source.Label(),
		DestinationLabel:     destination.Label(),
		Observations:         input.Observations,
		PerformedBy:          input.Identity,
		CreatedAt:            now,
	}

	// Transação única para o lote; Commit só após todos os itens aplicarem.
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		transferRepo repository.TransferRepository,
		auditRepo repository.AuditRepository,
	) error {
		for _, item := range input.Items {
			applied, err := uc.applyItem(productRepo, auditRepo, tr, item, now)
			if err != nil {
				return err
			}
			tr.Items = append(tr.Items, *applied)
		}
		return transferRepo.Create(tr)
	})
	if err != nil {
		return nil, err
	}
	return tr, nil
}

// applyItem debita a origem e credita o destino para um item, sob bloqueio de
// linha, e grava o par saída/entrada no relatório.
func (uc *SubmitTransferUseCase) applyItem(
	productRepo repository.ProductRepository,
	auditRepo repository.AuditRepository,
	tr *entity.Transfer,
	item ItemInputDTO,
	now time.Time,
) (*entity.TransferItem, error) {
	// Relê a linha de origem sob FOR UPDATE; a validação usa sempre o valor
	// fresco, não o estoque visto na seleção.
	src, err := productRepo.GetByIDForUpdate(item.ProductID)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, domain.ErrNotFound
	}
	if src.DepositID != tr.SourceDepositID {
		return nil, domain.ErrInvalidInput
	}
	if src.Quantity.LessThan(item.Quantity) {
		return nil, domain.ErrInsufficientStock
	}

	if err := productRepo.UpdateQuantity(src.ID, src.Quantity.Sub(item.Quantity)); err != nil {
		return nil, err
	}

	// Localiza ou cria o registro de destino por (código de material, depósito).
	dest, err := productRepo.GetByMaterialAndDepositForUpdate(src.MaterialCode, tr.DestinationDepositID)
	if err != nil {
		return nil, err
	}
	if dest == nil {
		clone := src.CloneForDeposit(tr.DestinationDepositID, item.Quantity, now)
		clone.ID = uuid.New().String()
		if err := productRepo.Create(clone); err != nil {
			return nil, err
		}
	} else {
		if err := productRepo.UpdateQuantity(dest.ID, dest.Quantity.Add(item.Quantity)); err != nil {
			return nil, err
		}
	}

	totalValue := item.Quantity.Mul(src.UnitValue)

	// Par saída/entrada no relatório: mesmas quantidades e valores, locais opostos.
	saida := &entity.AuditEntry{
		ID:           uuid.New().String(),
		Kind:         entity.AuditKindSaida,
		ReferenceID:  tr.ID,
		ProductID:    src.ID,
		MaterialCode: src.MaterialCode,
		ProductName:  src.Name,
		Unit:         src.Unit,
		Quantity:     item.Quantity,
		UnitValue:    src.UnitValue,
		TotalValue:   totalValue,
		Location:     tr.SourceLabel,
		Actor:        tr.PerformedBy,
		CreatedAt:    now,
	}
	if err := auditRepo.Append(saida); err != nil {
		return nil, err
	}
	entrada := &entity.AuditEntry{
		ID:           uuid.New().String(),
		Kind:         entity.AuditKindEntrada,
		ReferenceID:  tr.ID,
		ProductID:    src.ID,
		MaterialCode: src.MaterialCode,
		ProductName:  src.Name,
		Unit:         src.Unit,
		Quantity:     item.Quantity,
		UnitValue:    src.UnitValue,
		TotalValue:   totalValue,
		Location:     tr.DestinationLabel,
		Actor:        tr.PerformedBy,
		CreatedAt:    now,
	}
	if err := auditRepo.Append(entrada); err != nil {
		return nil, err
	}

	return &entity.TransferItem{
		ID:                   uuid.New().String(),
		TransferID:           tr.ID,
		ProductID:            src.ID,
		MaterialCode:         src.MaterialCode,
		Name:                 src.Name,
		Unit:                 src.Unit,
		Quantity:             item.Quantity,
		AvailableAtSelection: item.AvailableAtSelection,
		UnitValue:            src.UnitValue,
		TotalValue:           totalValue,
	}, nil
}

// ListTransfersUseCase consulta o histórico de transferências.
type ListTransfersUseCase struct {
	transferRepo repository.TransferRepository
}

// NewListTransfersUseCase constrói o caso de uso de consulta.
func NewListTransfersUseCase(transferRepo repository.TransferRepository) *ListTransfersUseCase {
	return &ListTransfersUseCase{transferRepo: transferRepo}
}

// List devolve transferências mais recentes primeiro.
func (uc *ListTransfersUseCase) List(_ context.Context, limit, offset int) ([]*entity.Transfer, error) {
	return uc.transferRepo.List(limit, offset)
}
