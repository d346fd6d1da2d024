package model

// Conversion marks a method as a user-defined conversion operator.
type Conversion int

const (
	NoConversion Conversion = iota
	Implicit
	Explicit
)

func (c Conversion) String() string {
	switch c {
	case Implicit:
		return "implicit"
	case Explicit:
		return "explicit"
	default:
		return ""
	}
}

// Accessors selects the accessor set of a property.
type Accessors int

const (
	GetSet Accessors = iota
	GetOnly
	GetInit
)

// Param is a method or constructor parameter.
type Param struct {
	Base

	Name string
	Type *TypeRef
	// Default is the pre-rendered default value expression, if any.
	Default string
}

// NewParam creates a parameter.
func NewParam(name string, typ *TypeRef) *Param {
	return &Param{Name: name, Type: typ}
}

func (p *Param) Children() []Node { return nil }

// Field is a data member of a class.
type Field struct {
	Base

	Name     string
	Type     *TypeRef
	Access   Access
	Static   bool
	ReadOnly bool
	// Value is the pre-rendered initializer expression, if any.
	Value string

	attributes []*Attribute
}

// NewField creates a private field.
func NewField(name string, typ *TypeRef) *Field {
	return &Field{Name: name, Type: typ, Access: Private}
}

func (f *Field) MemberName() string { return f.Name }

// AddAttribute attaches attributes to the field.
func (f *Field) AddAttribute(attrs ...*Attribute) *Field {
	f.mustBeMutable("attribute")
	for _, a := range attrs {
		adopt(f, a)
		f.attributes = append(f.attributes, a)
	}
	return f
}

// Attributes returns the field's attributes.
func (f *Field) Attributes() []*Attribute { return append([]*Attribute(nil), f.attributes...) }

func (f *Field) Children() []Node { return attributeNodes(f.attributes) }

// Property is an accessor-backed member.
type Property struct {
	Base

	Name      string
	Type      *TypeRef
	Access    Access
	Accessors Accessors
	Static    bool
	Override  bool
	Virtual   bool
	Required  bool
	// Value is the pre-rendered initializer expression, if any.
	Value string

	attributes []*Attribute
}

// NewProperty creates a public get/set property.
func NewProperty(name string, typ *TypeRef) *Property {
	return &Property{Name: name, Type: typ}
}

func (p *Property) MemberName() string { return p.Name }

// AddAttribute attaches attributes to the property.
func (p *Property) AddAttribute(attrs ...*Attribute) *Property {
	p.mustBeMutable("attribute")
	for _, a := range attrs {
		adopt(p, a)
		p.attributes = append(p.attributes, a)
	}
	return p
}

// Attributes returns the property's attributes.
func (p *Property) Attributes() []*Attribute { return append([]*Attribute(nil), p.attributes...) }

func (p *Property) Children() []Node { return attributeNodes(p.attributes) }

// Method is a function member. Its body is opaque pre-rendered text; statements are
// not modelled.
type Method struct {
	Base

	Name    string
	Returns *TypeRef
	Access  Access
	Static  bool
	// Async marks a suspending method (async Task<T>, ctx-aware in Go).
	Async      bool
	Override   bool
	Virtual    bool
	Abstract   bool
	Conversion Conversion
	Body       string

	params     []*Param
	attributes []*Attribute
}

// NewMethod creates a public method.
func NewMethod(name string, returns *TypeRef) *Method {
	return &Method{Name: name, Returns: returns}
}

func (m *Method) MemberName() string { return m.Name }

// AddParam appends parameters in order.
func (m *Method) AddParam(params ...*Param) *Method {
	m.mustBeMutable("parameter")
	for _, p := range params {
		adopt(m, p)
		m.params = append(m.params, p)
	}
	return m
}

// Params returns the parameters in order.
func (m *Method) Params() []*Param { return append([]*Param(nil), m.params...) }

// AddAttribute attaches attributes to the method.
func (m *Method) AddAttribute(attrs ...*Attribute) *Method {
	m.mustBeMutable("attribute")
	for _, a := range attrs {
		adopt(m, a)
		m.attributes = append(m.attributes, a)
	}
	return m
}

// Attributes returns the method's attributes.
func (m *Method) Attributes() []*Attribute { return append([]*Attribute(nil), m.attributes...) }

// DeclaringKind returns the kind of the enclosing declaration, or Class when detached.
func (m *Method) DeclaringKind() DeclKind {
	if d, ok := m.Parent().(*TypeDecl); ok {
		return d.Kind
	}
	return Class
}

// IsDeclarationOnly reports whether the method renders without a body: always inside
// an interface, and for abstract methods of a class.
func (m *Method) IsDeclarationOnly() bool {
	return m.DeclaringKind() == Interface || m.Abstract
}

func (m *Method) Children() []Node {
	out := attributeNodes(m.attributes)
	for _, p := range m.params {
		out = append(out, p)
	}
	return out
}

// Constructor initializes a class.
type Constructor struct {
	Base

	Access Access
	Body   string
	// BaseArgs are passed to the base constructor when non-empty.
	BaseArgs []string

	params []*Param
}

// NewConstructor creates a public constructor.
func NewConstructor() *Constructor {
	return &Constructor{}
}

// MemberName returns the declaring type's name.
func (c *Constructor) MemberName() string {
	if d, ok := c.Parent().(*TypeDecl); ok {
		return d.Name
	}
	return ""
}

// AddParam appends parameters in order.
func (c *Constructor) AddParam(params ...*Param) *Constructor {
	c.mustBeMutable("parameter")
	for _, p := range params {
		adopt(c, p)
		c.params = append(c.params, p)
	}
	return c
}

// Params returns the parameters in order.
func (c *Constructor) Params() []*Param { return append([]*Param(nil), c.params...) }

func (c *Constructor) Children() []Node {
	out := make([]Node, 0, len(c.params))
	for _, p := range c.params {
		out = append(out, p)
	}
	return out
}

// NamedArg is a name = value attribute argument.
type NamedArg struct {
	Name  string
	Value string
}

// Attribute is an annotation on a declaration or member.
type Attribute struct {
	Base

	Name string
	// Args are pre-rendered positional argument expressions.
	Args  []string
	Named []NamedArg
}

// NewAttribute creates an attribute with positional arguments.
func NewAttribute(name string, args ...string) *Attribute {
	return &Attribute{Name: name, Args: args}
}

func (a *Attribute) Children() []Node { return nil }

func attributeNodes(attrs []*Attribute) []Node {
	out := make([]Node, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, a)
	}
	return out
}
