package cyclex

// Properties is an unordered set of property names to values, representing the shading and
// render attributes carried on scene locations (and the render globals of a scene source).
type Properties struct {
	props map[string]*Property
}

// NewProperties returns a new Properties object.
func NewProperties() *Properties {
	return &Properties{map[string]*Property{}}
}

// Clone returns a deep copy of the Properties object (the Property entries are copied,
// so setting a value on the clone doesn't touch the original).
func (props *Properties) Clone() *Properties {
	newProps := NewProperties()
	for k, v := range props.props {
		newProps.Get(k).Set(v.Value)
	}
	return newProps
}

// Overlaid returns a new Properties object composed of the calling Properties with the
// other Properties layered on top - for any name present in both, the other's value wins.
// Neither source object is modified, so parent attribute sets stay untouched while
// traversing sibling subtrees.
func (props *Properties) Overlaid(other *Properties) *Properties {
	newProps := props.Clone()
	if other != nil {
		for k, v := range other.props {
			newProps.Get(k).Set(v.Value)
		}
	}
	return newProps
}

// Clear clears the Properties object of all properties.
func (props *Properties) Clear() {
	props.props = map[string]*Property{}
}

// Remove removes the property specified from the Properties object.
func (props *Properties) Remove(propName string) {
	delete(props.props, propName)
}

// Count returns the number of properties in the Properties object.
func (props *Properties) Count() int {
	return len(props.props)
}

// Has returns true if the Properties object has properties by all of the names specified,
// and false otherwise.
func (props *Properties) Has(propNames ...string) bool {
	for _, p := range propNames {
		if _, exists := props.props[p]; !exists {
			return false
		}
	}
	return true
}

// Get returns the value associated with the specified property name. If a property with
// the passed name (propName) doesn't exist, Get will add an empty one first - check with
// Has if you don't want that.
func (props *Properties) Get(propName string) *Property {
	if _, ok := props.props[propName]; !ok {
		props.props[propName] = &Property{}
	}
	return props.props[propName]
}

// Property represents a single named value on a scene location or in the render globals.
type Property struct {
	Value interface{}
}

// Set sets the property's value to the given value.
func (prop *Property) Set(value interface{}) {
	prop.Value = value
}

// IsBool returns true if the Property is a boolean value.
func (prop *Property) IsBool() bool {
	_, ok := prop.Value.(bool)
	return ok
}

// AsBool returns the value associated with the Property as a bool.
// Note that this does not sanity check to ensure the Property is a bool first.
func (prop *Property) AsBool() bool {
	return prop.Value.(bool)
}

// IsString returns true if the Property is a string.
func (prop *Property) IsString() bool {
	_, ok := prop.Value.(string)
	return ok
}

// AsString returns the value associated with the Property as a string.
// Note that this does not sanity check to ensure the Property is a string first.
func (prop *Property) AsString() string {
	return prop.Value.(string)
}

// IsFloat32 returns true if the Property is a float32.
func (prop *Property) IsFloat32() bool {
	_, ok := prop.Value.(float32)
	return ok
}

// AsFloat32 returns the value associated with the Property as a float32.
// Note that this does not sanity check to ensure the Property is a float32 first.
func (prop *Property) AsFloat32() float32 {
	return prop.Value.(float32)
}

// IsInt returns true if the Property is an int.
func (prop *Property) IsInt() bool {
	_, ok := prop.Value.(int)
	return ok
}

// AsInt returns the value associated with the Property as an int.
// Note that this does not sanity check to ensure the Property is an int first.
func (prop *Property) AsInt() int {
	return prop.Value.(int)
}

// IsVector3 returns true if the Property is a Vector3.
func (prop *Property) IsVector3() bool {
	_, ok := prop.Value.(Vector3)
	return ok
}

// AsVector3 returns the value associated with the Property as a Vector3.
// Note that this does not sanity check to ensure the Property is a Vector3 first.
func (prop *Property) AsVector3() Vector3 {
	return prop.Value.(Vector3)
}
