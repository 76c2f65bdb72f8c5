package serz

// ParseStep reads one field out of an object.
type ParseStep func(o *Object) error

// ObjParse chains field reads over one object. The first failure is kept and
// later steps are skipped; fields read before it stay assigned.
type ObjParse struct {
	obj *Object
	err error
}

// AsObj starts a parse chain over v, which must be an object.
func AsObj(v Value) *ObjParse {
	o, ok := v.AsObject()
	if !ok {
		return &ObjParse{err: invalidType("object")}
	}
	return &ObjParse{obj: o}
}

// And runs steps in order until one fails.
func (p *ObjParse) And(steps ...ParseStep) *ObjParse {
	for _, step := range steps {
		if p.err != nil {
			break
		}
		p.err = step(p.obj)
	}
	return p
}

// Done ends the chain and returns its first failure.
func (p *ObjParse) Done() error { return p.err }

// ParseNVP reads the value under name into *dst.
//
// When name is missing, sequences and maps become empty (see
// Options.DisallowMissingContainers), optionals become nil, and every other
// target fails with a required error.
func ParseNVP[T any](dst *T, name string, c Codec[T]) ParseStep {
	return func(o *Object) error {
		child, ok := o.Get(name)
		if !ok {
			if h, ok := c.(absentHandler[T]); ok && h.Absent(dst) {
				return nil
			}
			return missingKey(name)
		}
		return WithPath(c.Parse(dst, *child), name)
	}
}

// SerializeStep writes one field into an object.
type SerializeStep func(o *Object)

// ObjWriter chains field writes into one object.
type ObjWriter struct {
	obj *Object
}

// CreateObj starts a write chain over v. A v that is not already an object
// becomes an empty one, keeping its attribute flag; existing entries are
// kept.
func CreateObj(v *Value) *ObjWriter {
	if !v.Is(KindObject) {
		v.SetObject(nil)
	}
	return &ObjWriter{obj: v.MustObject()}
}

// And runs steps in order.
func (w *ObjWriter) And(steps ...SerializeStep) *ObjWriter {
	for _, step := range steps {
		step(w.obj)
	}
	return w
}

// Object returns the live object being written.
func (w *ObjWriter) Object() *Object { return w.obj }

// SerializeNVP writes src under name. A name already present keeps its first
// value. Nil optionals are left out.
func SerializeNVP[T any](src T, name string, c Codec[T]) SerializeStep {
	return serializeField(src, name, c, false)
}

// SerializeAttr is SerializeNVP with the new child flagged as an attribute.
func SerializeAttr[T any](src T, name string, c Codec[T]) SerializeStep {
	return serializeField(src, name, c, true)
}

func serializeField[T any](src T, name string, c Codec[T], attr bool) SerializeStep {
	return func(o *Object) {
		if om, ok := c.(omitter[T]); ok && om.Omit(src) {
			return
		}
		if o.Has(name) {
			return
		}
		child := NullValue().WithAttribute(attr)
		c.Serialize(src, &child)
		o.emplaceOwned(name, child)
	}
}
