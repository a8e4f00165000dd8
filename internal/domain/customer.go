package domain

// Customer описывает клиента, владеющего заказами.
type Customer struct {
	ID      int64
	Name    string
	Contact string
	Address string
}

// Validate проверяет обязательные поля клиента.
func (c *Customer) Validate() []error {
	var errs []error

	if c.Name == "" {
		errs = append(errs, ErrNameRequired)
	}

	return errs
}

// CustomerPatch описывает частичное обновление клиента.
// Нулевой указатель означает «поле не трогать».
type CustomerPatch struct {
	Name    *string
	Contact *string
	Address *string
}

// Empty сообщает, задано ли хоть одно поле для обновления.
func (p CustomerPatch) Empty() bool {
	return p.Name == nil && p.Contact == nil && p.Address == nil
}

// Apply переносит заданные поля патча на клиента.
func (p CustomerPatch) Apply(c *Customer) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Contact != nil {
		c.Contact = *p.Contact
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
}
