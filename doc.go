// Package serz converts typed Go values to and from a format-neutral DOM so
// one set of conversion code serves every wire format.
//
// The package provides:
//
//   - Value, the DOM node (null, bool, int, float, string, array, object and
//     the null-or-empty marker), with an attribute flag for formats that
//     distinguish attributes from children
//   - Object, the insertion-ordered map backing object values
//   - Codec, the type-driven conversion with bounds-checked numeric coercion
//     and container, optional and enum handling
//   - AsObj / CreateObj field chains for user aggregates
//   - Error, carrying a code, a JSON Pointer to the failing node and a message
//
// Format adapters live under format/ (json, yaml, xml); they turn text into a
// Value and back.
//
// Typical usage:
//
//	type Point struct{ X, Y int32 }
//
//	func (p *Point) ParseValue(v serz.Value) error {
//		return serz.AsObj(v).And(
//			serz.ParseNVP(&p.X, "x", serz.Int32()),
//			serz.ParseNVP(&p.Y, "y", serz.Int32()),
//		).Done()
//	}
//
//	func (p *Point) SerializeValue(v *serz.Value) {
//		serz.CreateObj(v).And(
//			serz.SerializeNVP(p.X, "x", serz.Int32()),
//			serz.SerializeNVP(p.Y, "y", serz.Int32()),
//		)
//	}
//
//	p, err := json.ParseAndReturn(serz.Struct[Point](), data)
package serz
