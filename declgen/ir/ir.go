// Package ir defines the target type model produced from resolved schema
// nodes: interfaces, enums, services, and functions. Entities are independent
// of the source node representation and are consumed by emitters.
package ir

import "sort"

// EnumMember is a single enum variant with its declared integer value.
type EnumMember struct {
	Value   int
	Comment string
}

// EnumEntity is an enumeration to emit.
type EnumEntity struct {
	// Name is the simple declared name.
	Name string

	// Comment is the leading comment on the declaration, if any.
	Comment string

	names   []string
	members map[string]EnumMember
}

// NewEnum returns an empty enum entity.
func NewEnum(name string) *EnumEntity {
	return &EnumEntity{Name: name, members: make(map[string]EnumMember)}
}

// AddMember records a member, preserving declaration order.
func (e *EnumEntity) AddMember(name string, m EnumMember) {
	if _, ok := e.members[name]; !ok {
		e.names = append(e.names, name)
	}
	e.members[name] = m
}

// MemberNames returns member names in declaration order.
func (e *EnumEntity) MemberNames() []string { return e.names }

// Member returns the member recorded under name.
func (e *EnumEntity) Member(name string) EnumMember { return e.members[name] }

// PropertyEntity is a single interface property.
type PropertyEntity struct {
	// Index is the declared field number.
	Index int

	// Type is the target type expression, already mapped and resolved.
	Type string

	// Optional marks at-most-once presence; emitted as `name?: T`.
	Optional bool

	// Required marks declared required presence.
	Required bool

	Comment string
}

// InterfaceEntity is an object type to emit, with any nested declarations.
type InterfaceEntity struct {
	// Name is the simple declared name.
	Name string

	// Comment is the leading comment on the declaration, if any.
	Comment string

	// NestedInterfaces holds nested message conversions in declaration order.
	NestedInterfaces []*InterfaceEntity

	// NestedEnums holds nested enum conversions in declaration order.
	NestedEnums []*EnumEntity

	fieldNames []string
	properties map[string]*PropertyEntity
}

// NewInterface returns an empty interface entity.
func NewInterface(name string) *InterfaceEntity {
	return &InterfaceEntity{Name: name, properties: make(map[string]*PropertyEntity)}
}

// AddProperty records a property, preserving field declaration order.
func (i *InterfaceEntity) AddProperty(name string, p *PropertyEntity) {
	if _, ok := i.properties[name]; !ok {
		i.fieldNames = append(i.fieldNames, name)
	}
	i.properties[name] = p
}

// PropertyNames returns property names in field declaration order.
// Properties are emitted in this order, not by numeric field index.
func (i *InterfaceEntity) PropertyNames() []string { return i.fieldNames }

// Property returns the property recorded under name, or nil.
func (i *InterfaceEntity) Property(name string) *PropertyEntity {
	return i.properties[name]
}

// FunctionEntity is a single service method.
type FunctionEntity struct {
	// ReturnType is the mapped return type; emitters wrap it in the
	// asynchronous result contract (Promise<T>).
	ReturnType string

	Comment string

	// inputParams keys parameter types by declared index. The request
	// parameter, when present, sits at index 1.
	inputParams map[int]string
}

// NewFunction returns a function entity with the given return type.
func NewFunction(returnType string) *FunctionEntity {
	return &FunctionEntity{ReturnType: returnType, inputParams: make(map[int]string)}
}

// SetParam records an input parameter type at the declared index.
func (f *FunctionEntity) SetParam(index int, typ string) {
	f.inputParams[index] = typ
}

// Params returns parameter types in ascending index order. Sparse or empty
// slots are filtered out before rendering.
func (f *FunctionEntity) Params() []string {
	indexes := make([]int, 0, len(f.inputParams))
	for i, typ := range f.inputParams {
		if typ == "" {
			continue
		}
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	params := make([]string, 0, len(indexes))
	for _, i := range indexes {
		params = append(params, f.inputParams[i])
	}
	return params
}

// ServiceEntity is a service to emit as an interface of async methods.
type ServiceEntity struct {
	// Name is the simple declared name.
	Name string

	Comment string

	methodNames []string
	methods     map[string]*FunctionEntity
}

// NewService returns an empty service entity.
func NewService(name string) *ServiceEntity {
	return &ServiceEntity{Name: name, methods: make(map[string]*FunctionEntity)}
}

// AddMethod records a method, preserving declaration order.
func (s *ServiceEntity) AddMethod(name string, f *FunctionEntity) {
	if _, ok := s.methods[name]; !ok {
		s.methodNames = append(s.methodNames, name)
	}
	s.methods[name] = f
}

// MethodNames returns method names in declaration order.
func (s *ServiceEntity) MethodNames() []string { return s.methodNames }

// Method returns the method recorded under name, or nil.
func (s *ServiceEntity) Method(name string) *FunctionEntity {
	return s.methods[name]
}
