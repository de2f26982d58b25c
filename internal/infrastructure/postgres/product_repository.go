package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/almoxpro/almox-api/internal/domain/entity"
	"github.com/almoxpro/almox-api/internal/domain/repository"
	"github.com/almoxpro/almox-api/pkg/textutil"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, material_code, supplier_code, name, unit, deposit_id, shelf, quantity, minimum_quantity, unit_value, created_at, updated_at`

// ProductRepo implementação do porto ProductRepository sobre PostgreSQL
// (usável com pool ou tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository constrói o adaptador de produtos. Passar pool ou tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste um novo produto. search_name guarda o nome normalizado
// (sem acento, minúsculo) para a busca.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, material_code, supplier_code, name, search_name, unit, deposit_id, shelf, quantity, minimum_quantity, unit_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.MaterialCode, nullIfEmpty(product.SupplierCode),
		product.Name, textutil.Normalize(product.Name), product.Unit,
		product.DepositID, nullIfEmpty(product.Shelf),
		product.Quantity, product.MinimumQuantity, product.UnitValue,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("produto já existe no depósito: %w", err)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	var supplierCode, shelf *string
	err := row.Scan(
		&p.ID, &p.MaterialCode, &supplierCode, &p.Name, &p.Unit, &p.DepositID,
		&shelf, &p.Quantity, &p.MinimumQuantity, &p.UnitValue, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if supplierCode != nil {
		p.SupplierCode = *supplierCode
	}
	if shelf != nil {
		p.Shelf = *shelf
	}
	return &p, nil
}

// GetByID obtém um produto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetByIDForUpdate obtém o produto e bloqueia a linha (SELECT FOR UPDATE).
func (r *ProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product for update")
}

// GetByMaterialAndDeposit obtém o produto por (código de material, depósito).
func (r *ProductRepo) GetByMaterialAndDeposit(materialCode, depositID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE material_code = $1 AND deposit_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, materialCode, depositID), "get product by material")
}

// GetByMaterialAndDepositForUpdate idem, bloqueando a linha.
func (r *ProductRepo) GetByMaterialAndDepositForUpdate(materialCode, depositID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE material_code = $1 AND deposit_id = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, materialCode, depositID), "get product by material for update")
}

// UpdateQuantity grava a quantidade em estoque (usada só pelos motores,
// dentro de transação com a linha bloqueada).
func (r *ProductRepo) UpdateQuantity(productID string, quantity decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`,
		productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	return nil
}

// Update atualiza os campos descritivos. Quantidade não é editável por aqui.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET supplier_code = $2, name = $3, search_name = $4, unit = $5, shelf = $6,
		    minimum_quantity = $7, unit_value = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, nullIfEmpty(product.SupplierCode), product.Name,
		textutil.Normalize(product.Name), product.Unit, nullIfEmpty(product.Shelf),
		product.MinimumQuantity, product.UnitValue, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Search busca por nome normalizado, código de material ou código do
// fornecedor. term deve chegar já normalizado; depositID vazio = todos.
func (r *ProductRepo) Search(term, depositID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE (search_name LIKE '%' || $1 || '%' OR material_code = $1 OR supplier_code = $1)
		  AND ($2 = '' OR deposit_id = $2)
		ORDER BY name LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, term, depositID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return r.collect(rows)
}

// ListByDeposit lista os produtos de um depósito.
func (r *ProductRepo) ListByDeposit(depositID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE deposit_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, depositID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return r.collect(rows)
}

// ListBelowMinimum devolve produtos com estoque <= mínimo (alerta).
func (r *ProductRepo) ListBelowMinimum(depositID string) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE quantity <= minimum_quantity AND ($1 = '' OR deposit_id = $1)
		ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, depositID)
	if err != nil {
		return nil, fmt.Errorf("list products below minimum: %w", err)
	}
	return r.collect(rows)
}

// Delete remove um produto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) collect(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var supplierCode, shelf *string
		if err := rows.Scan(&p.ID, &p.MaterialCode, &supplierCode, &p.Name, &p.Unit, &p.DepositID,
			&shelf, &p.Quantity, &p.MinimumQuantity, &p.UnitValue, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if supplierCode != nil {
			p.SupplierCode = *supplierCode
		}
		if shelf != nil {
			p.Shelf = *shelf
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
