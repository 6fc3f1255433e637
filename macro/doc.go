// Package macro installs computed properties on classes.
//
// A Class is a table of virtual properties shared by every Object created
// from it. Reading a virtual property runs its getter against the object on
// every access; nothing is cached. Plain members that are not virtual are
// read and written on the object's target through package propath.
//
//	user := macro.NewClass("User").
//		Define("displayName", macro.Reads("nick", "anonymous")).
//		Define("adult", macro.GTE("age", 18))
//
//	obj := user.New(map[string]any{"age": 20})
//	obj.Get("adult") // true
//
// The derived macros (Alias, And, Union, SortBy, Sum, ...) all build on
// Definition, so user-written getters and setters can be mixed freely with
// them.
package macro
