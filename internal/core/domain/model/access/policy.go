package access

import "optistore/internal/pkg/errs"

// Operation names an order workflow entry point subject to authorization.
type Operation string

const (
	CreateOrder          Operation = "create_order"
	ListOwnOrders        Operation = "list_own_orders"
	GetOwnOrder          Operation = "get_order"
	ListRoleOrders       Operation = "list_role_orders"
	UpdateOrderStatus    Operation = "update_status"
	AssignDelivery       Operation = "assign_delivery"
	ListDeliveryPersons  Operation = "list_active_delivery_persons"
	CountPendingOrders   Operation = "pending_order_count"
	ViewSalesAggregation Operation = "sales_aggregation"
)

// Scope is the set of orders a role can see when listing by role.
type Scope int

const (
	ScopeNone Scope = iota
	ScopeOwn
	ScopeAll
)

func allRoles() map[Role]bool {
	out := make(map[Role]bool, len(Roles()))
	for _, r := range Roles() {
		out[r] = true
	}
	return out
}

func onlyRoles(roles ...Role) map[Role]bool {
	out := make(map[Role]bool, len(roles))
	for _, r := range roles {
		out[r] = true
	}
	return out
}

// policy is the single (operation, role) -> allow table every entry point consults.
// Manufacturer and delivery users may change the status of any order; narrowing
// that is a matter of editing this table.
var policy = map[Operation]map[Role]bool{
	CreateOrder:          allRoles(),
	ListOwnOrders:        allRoles(),
	GetOwnOrder:          allRoles(),
	ListRoleOrders:       allRoles(),
	UpdateOrderStatus:    onlyRoles(Admin, Manufacturer, Delivery),
	AssignDelivery:       onlyRoles(Admin),
	ListDeliveryPersons:  onlyRoles(Admin),
	CountPendingOrders:   onlyRoles(Admin),
	ViewSalesAggregation: onlyRoles(Admin),
}

var visibility = map[Role]Scope{
	Admin:        ScopeAll,
	Manufacturer: ScopeAll,
	Delivery:     ScopeAll,
	Customer:     ScopeOwn,
}

// Allowed reports whether role may perform op.
func Allowed(op Operation, role Role) bool {
	return policy[op][role]
}

// Authorize returns a PermissionDeniedError unless the caller's role may perform op.
func Authorize(op Operation, caller Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	if !Allowed(op, caller.Role()) {
		return errs.NewPermissionDeniedError(string(op), string(caller.Role()))
	}
	return nil
}

// OrderScope returns which orders role sees through the role listing.
// Roles without an entry see nothing.
func OrderScope(role Role) Scope {
	return visibility[role]
}
