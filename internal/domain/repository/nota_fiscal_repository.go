package repository

import "github.com/almoxpro/almox-api/internal/domain/entity"

// NotaFiscalRepository define o porto de persistência para NotaFiscal.
type NotaFiscalRepository interface {
	Create(nota *entity.NotaFiscal) error
	GetByID(id string) (*entity.NotaFiscal, error)
	GetByIDForUpdate(id string) (*entity.NotaFiscal, error)
	GetByAccessKey(accessKey string) (*entity.NotaFiscal, error)
	// UpdateProcessing grava status, tipo, usuário e data de processamento.
	UpdateProcessing(nota *entity.NotaFiscal) error
	// UpdateItemBinding grava o produto vinculado a um item da nota.
	UpdateItemBinding(itemID, productID string) error
	CreateConsumption(consumo *entity.ConsumoDireto) error
	ListByStatus(status string, limit, offset int) ([]*entity.NotaFiscal, error)
}
