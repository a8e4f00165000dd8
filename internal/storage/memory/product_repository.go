package memory

import (
	"context"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// productRepository — in-memory реализация ProductRepository.
type productRepository struct {
	st *state
}

// Create сохраняет товар под следующим свободным идентификатором.
func (r *productRepository) Create(_ context.Context, product domain.Product) (int64, error) {
	product.ID = r.st.nextProductID
	r.st.nextProductID++
	r.st.products[product.ID] = product
	return product.ID, nil
}

// Get возвращает товар или ErrProductNotFound, если его нет.
func (r *productRepository) Get(_ context.Context, id int64) (domain.Product, error) {
	product, ok := r.st.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// GetForUpdate эквивалентен Get: блокировка всего хранилища уже взята UnitOfWork.
func (r *productRepository) GetForUpdate(ctx context.Context, id int64) (domain.Product, error) {
	return r.Get(ctx, id)
}

// Save перезаписывает товар, если строка существует.
func (r *productRepository) Save(_ context.Context, product domain.Product) error {
	if _, ok := r.st.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.st.products[product.ID] = product
	return nil
}

// Delete удаляет товар, если строка существует.
func (r *productRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.st.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.st.products, id)
	return nil
}

var _ domain.ProductRepository = (*productRepository)(nil)
