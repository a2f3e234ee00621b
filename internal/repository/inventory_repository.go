package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/givebridge/givebridge/internal/model"
)

var ErrInventoryItemNotFound = errors.New("inventory item not found")

// InventoryRepo manages stock rows kept by NGOs and organizations. Inventory
// is private bookkeeping: there is no public listing and, unlike the posted
// content entities, rows may be hard-deleted.
type InventoryRepo struct{ db *sql.DB }

func NewInventoryRepo(db *sql.DB) *InventoryRepo { return &InventoryRepo{db: db} }

const inventoryCols = `id, owner_id, name, category, quantity, unit, notes,
	is_available, created_at, updated_at`

func scanInventory(scan func(dest ...any) error) (*model.InventoryItem, error) {
	var it model.InventoryItem
	err := scan(&it.ID, &it.OwnerID, &it.Name, &it.Category, &it.Quantity, &it.Unit,
		&it.Notes, &it.IsAvailable, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *InventoryRepo) Create(ctx context.Context, it *model.InventoryItem) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO inventory_items (owner_id, name, category, quantity, unit, notes)
		 VALUES (?,?,?,?,?,?)`,
		it.OwnerID, it.Name, it.Category, it.Quantity, it.Unit, it.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = uint64(id)
	got, err := r.GetByID(ctx, it.ID)
	if err != nil {
		return err
	}
	*it = *got
	return nil
}

func (r *InventoryRepo) GetByID(ctx context.Context, id uint64) (*model.InventoryItem, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+inventoryCols+" FROM inventory_items WHERE id = ?", id)
	it, err := scanInventory(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInventoryItemNotFound
	}
	return it, err
}

func (r *InventoryRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.InventoryItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+inventoryCols+" FROM inventory_items WHERE owner_id = ? ORDER BY name", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.InventoryItem
	for rows.Next() {
		it, err := scanInventory(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *InventoryRepo) ownerOf(ctx context.Context, id uint64) (uint64, error) {
	var owner uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT owner_id FROM inventory_items WHERE id = ?", id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrInventoryItemNotFound
	}
	return owner, err
}

func (r *InventoryRepo) UpdateByIDAndOwner(ctx context.Context, it *model.InventoryItem, ownerID uint64) error {
	owner, err := r.ownerOf(ctx, it.ID)
	if err != nil {
		return err
	}
	if owner != ownerID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE inventory_items SET name=?, category=?, quantity=?, unit=?, notes=?,
		   is_available=?, updated_at=CURRENT_TIMESTAMP
		 WHERE id=? AND owner_id=?`,
		it.Name, it.Category, it.Quantity, it.Unit, it.Notes, it.IsAvailable,
		it.ID, ownerID)
	return err
}

// DeleteByIDAndOwner removes an inventory row outright.
func (r *InventoryRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	owner, err := r.ownerOf(ctx, id)
	if err != nil {
		return err
	}
	if owner != ownerID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx,
		"DELETE FROM inventory_items WHERE id=? AND owner_id=?", id, ownerID)
	return err
}
