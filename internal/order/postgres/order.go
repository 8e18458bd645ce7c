package postgres

import (
	"gorm.io/gorm"

	"github.com/worktrack/backend/internal"
	customerDatamodel "github.com/worktrack/backend/internal/core/datamodel/customer"
	materialDatamodel "github.com/worktrack/backend/internal/core/datamodel/material"
	orderDatamodel "github.com/worktrack/backend/internal/core/datamodel/order"
	userDatamodel "github.com/worktrack/backend/internal/core/datamodel/user"
	"github.com/worktrack/backend/internal/order"
)

// OrderRepository implements order.Repository using GORM. Relation summaries
// are resolved with batched follow-up fetches instead of joins so list
// queries stay flat.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) order.Repository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) GetAll() ([]*order.Order, error) {
	var rows []*orderDatamodel.Order
	if err := r.db.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.hydrate(rows)
}

func (r *OrderRepository) GetByAssignee(userID int64) ([]*order.Order, error) {
	var rows []*orderDatamodel.Order
	err := r.db.Where("assigned_to_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.hydrate(rows)
}

func (r *OrderRepository) GetByStatus(status order.Status) ([]*order.Order, error) {
	var rows []*orderDatamodel.Order
	err := r.db.Where("status = ?", string(status)).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.hydrate(rows)
}

func (r *OrderRepository) GetByID(id int64) (*order.Order, error) {
	var row orderDatamodel.Order
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrOrderNotFound
		}
		return nil, err
	}

	orders, err := r.hydrate([]*orderDatamodel.Order{&row})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

func (r *OrderRepository) Create(o *order.Order) error {
	dm := order.ToDataModel(o)
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	o.ID = dm.ID
	return nil
}

func (r *OrderRepository) Update(o *order.Order) error {
	// Save skips zero values for nullable columns, so update explicitly to
	// let cleared customer/material/quantity references reach the database.
	return r.db.Model(&orderDatamodel.Order{}).
		Where("id = ?", o.ID).
		Updates(map[string]interface{}{
			"product":        o.Product,
			"description":    o.Description,
			"priority":       string(o.Priority),
			"assigned_to_id": o.AssignedToID,
			"customer_id":    o.CustomerID,
			"material_id":    o.MaterialID,
			"quantity":       o.Quantity,
			"deadline":       o.Deadline,
			"updated_at":     o.UpdatedAt,
		}).Error
}

// UpdateStatusWithLog writes the order mutation and its audit record in one
// transaction; neither lands without the other.
func (r *OrderRepository) UpdateStatusWithLog(o *order.Order, log *order.StatusLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":     string(o.Status),
			"updated_at": o.UpdatedAt,
		}
		if o.Machine != nil {
			updates["machine"] = o.Machine
		}
		if err := tx.Model(&orderDatamodel.Order{}).
			Where("id = ?", o.ID).
			Updates(updates).Error; err != nil {
			return err
		}

		dm := order.LogToDataModel(log)
		if err := tx.Create(dm).Error; err != nil {
			return err
		}
		log.ID = dm.ID
		return nil
	})
}

func (r *OrderRepository) Delete(id int64) error {
	// status logs cascade in the database
	return r.db.Where("id = ?", id).Delete(&orderDatamodel.Order{}).Error
}

func (r *OrderRepository) GetStatusLogs(orderID int64) ([]*order.StatusLog, error) {
	var rows []*orderDatamodel.StatusLog
	err := r.db.Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	logs := make([]*order.StatusLog, len(rows))
	userIDs := make([]int64, 0, len(rows))
	for i, row := range rows {
		logs[i] = order.LogFromDataModel(row)
		userIDs = append(userIDs, row.ChangedByID)
	}

	users, err := r.userRefs(userIDs)
	if err != nil {
		return nil, err
	}
	for _, l := range logs {
		l.ChangedBy = users[l.ChangedByID]
	}
	return logs, nil
}

// hydrate maps rows to domain orders and attaches user, customer and
// material summaries in three batched lookups.
func (r *OrderRepository) hydrate(rows []*orderDatamodel.Order) ([]*order.Order, error) {
	orders := make([]*order.Order, len(rows))
	userIDs := make([]int64, 0, 2*len(rows))
	customerIDs := make([]int64, 0, len(rows))
	materialIDs := make([]int64, 0, len(rows))
	for i, row := range rows {
		orders[i] = order.FromDataModel(row)
		userIDs = append(userIDs, row.AssignedToID, row.CreatedByID)
		if row.CustomerID != nil {
			customerIDs = append(customerIDs, *row.CustomerID)
		}
		if row.MaterialID != nil {
			materialIDs = append(materialIDs, *row.MaterialID)
		}
	}

	users, err := r.userRefs(userIDs)
	if err != nil {
		return nil, err
	}
	customers, err := r.customerRefs(customerIDs)
	if err != nil {
		return nil, err
	}
	materials, err := r.materialRefs(materialIDs)
	if err != nil {
		return nil, err
	}

	for _, o := range orders {
		o.AssignedTo = users[o.AssignedToID]
		o.CreatedBy = users[o.CreatedByID]
		if o.CustomerID != nil {
			o.Customer = customers[*o.CustomerID]
		}
		if o.MaterialID != nil {
			o.Material = materials[*o.MaterialID]
		}
	}
	return orders, nil
}

func (r *OrderRepository) userRefs(ids []int64) (map[int64]*order.UserRef, error) {
	refs := make(map[int64]*order.UserRef)
	if len(ids) == 0 {
		return refs, nil
	}
	var users []*userDatamodel.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		refs[u.ID] = &order.UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return refs, nil
}

func (r *OrderRepository) customerRefs(ids []int64) (map[int64]*order.CustomerRef, error) {
	refs := make(map[int64]*order.CustomerRef)
	if len(ids) == 0 {
		return refs, nil
	}
	var customers []*customerDatamodel.Customer
	if err := r.db.Where("id IN ?", ids).Find(&customers).Error; err != nil {
		return nil, err
	}
	for _, c := range customers {
		refs[c.ID] = &order.CustomerRef{ID: c.ID, Name: c.Name, Company: c.Company}
	}
	return refs, nil
}

func (r *OrderRepository) materialRefs(ids []int64) (map[int64]*order.MaterialRef, error) {
	refs := make(map[int64]*order.MaterialRef)
	if len(ids) == 0 {
		return refs, nil
	}
	var materials []*materialDatamodel.Material
	if err := r.db.Where("id IN ?", ids).Find(&materials).Error; err != nil {
		return nil, err
	}
	for _, m := range materials {
		refs[m.ID] = &order.MaterialRef{ID: m.ID, Name: m.Name, Unit: m.Unit}
	}
	return refs, nil
}
