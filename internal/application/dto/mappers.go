package dto

import "github.com/jhoicas/stockledger-api/internal/domain/entity"

// FromProduct mapea la entidad a su salida JSON.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Category:      p.Category,
		UnitPrice:     p.UnitPrice,
		CurrentStock:  p.CurrentStock,
		MinStockLevel: p.MinStockLevel,
		StockStatus:   p.StockStatus(),
		Description:   p.Description,
		CreatedAt:     p.CreatedAt,
	}
}

// FromProducts mapea una lista; nunca devuelve nil.
func FromProducts(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromProduct(p))
	}
	return out
}

// FromSupplier mapea un proveedor sin entregas.
func FromSupplier(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Phone:         s.Phone,
		Email:         s.Email,
		Address:       s.Address,
		TotalDebt:     s.TotalDebt,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func FromSuppliers(list []*entity.Supplier) []SupplierResponse {
	out := make([]SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, FromSupplier(s))
	}
	return out
}

func productRef(r *entity.ProductRef) *ProductRefResponse {
	if r == nil {
		return nil
	}
	return &ProductRefResponse{ID: r.ID, Name: r.Name, Category: r.Category, UnitPrice: r.UnitPrice}
}

func userRef(id, name string) *UserRefResponse {
	if id == "" {
		return nil
	}
	return &UserRefResponse{ID: id, Name: name}
}

// FromStockIn mapea una entrada con sus referencias; una referencia colgante queda en null.
func FromStockIn(in *entity.StockIn) StockInResponse {
	out := StockInResponse{
		ID:            in.ID,
		Product:       productRef(in.Product),
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		TotalAmount:   in.TotalAmount,
		PaymentStatus: in.PaymentStatus,
		AmountPaid:    in.AmountPaid,
		RemainingDebt: in.RemainingDebt,
		DeliveryDate:  in.DeliveryDate,
		Notes:         in.Notes,
		CreatedBy:     userRef(in.CreatedBy, in.CreatedByName),
		CreatedAt:     in.CreatedAt,
	}
	if in.Supplier != nil {
		out.Supplier = &SupplierRefResponse{
			ID:            in.Supplier.ID,
			Name:          in.Supplier.Name,
			ContactPerson: in.Supplier.ContactPerson,
			Phone:         in.Supplier.Phone,
		}
	}
	return out
}

func FromStockIns(list []*entity.StockIn) []StockInResponse {
	out := make([]StockInResponse, 0, len(list))
	for _, in := range list {
		out = append(out, FromStockIn(in))
	}
	return out
}

// FromStockOut mapea una venta con su producto resuelto.
func FromStockOut(o *entity.StockOut) StockOutResponse {
	return StockOutResponse{
		ID:          o.ID,
		Product:     productRef(o.Product),
		Quantity:    o.Quantity,
		SalePrice:   o.SalePrice,
		TotalAmount: o.TotalAmount,
		Customer:    o.Customer,
		SaleDate:    o.SaleDate,
		Notes:       o.Notes,
		CreatedBy:   userRef(o.CreatedBy, o.CreatedByName),
		CreatedAt:   o.CreatedAt,
	}
}

func FromStockOuts(list []*entity.StockOut) []StockOutResponse {
	out := make([]StockOutResponse, 0, len(list))
	for _, o := range list {
		out = append(out, FromStockOut(o))
	}
	return out
}

// FromUser mapea un usuario sin su hash.
func FromUser(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
