// Package pathutil builds the field paths validation errors point at, such
// as "calls[0].params[1].type", and checks output paths given on the
// command line.
//
// A [FieldPath] is pushed and popped while walking a contract, and only
// materialized when a problem is reported:
//
//	p := pathutil.Get()
//	defer pathutil.Put(p)
//
//	p.Push("calls")
//	p.PushIndex(0)
//	if bad {
//		report(p.Field("returns")) // "calls[0].returns"
//	}
//	p.Pop()
//	p.Pop()
package pathutil
